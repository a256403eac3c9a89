package main

import (
	"fmt"
	"os"
)

// Version is set at build time via ldflags
var Version = ""

func main() {
	if err := newRootCmd(&cli{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
