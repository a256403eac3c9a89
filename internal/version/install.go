package version

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// InstallMethod represents how pinboard was installed.
type InstallMethod string

const (
	InstallMethodGo     InstallMethod = "go"
	InstallMethodBinary InstallMethod = "binary"
)

var (
	detectedMethod     InstallMethod
	detectedMethodOnce sync.Once
)

// DetectInstallMethod reports whether the running binary lives in a Go bin
// directory. The result is cached for the lifetime of the process.
func DetectInstallMethod() InstallMethod {
	detectedMethodOnce.Do(func() {
		detectedMethod = InstallMethodBinary
		exe, err := os.Executable()
		if err != nil {
			return
		}
		if exe, err = filepath.EvalSymlinks(exe); err != nil {
			return
		}
		home, _ := os.UserHomeDir()
		if isGoBinPath(exe, os.Getenv("GOBIN"), os.Getenv("GOPATH"), home) {
			detectedMethod = InstallMethodGo
		}
	})
	return detectedMethod
}

// isGoBinPath checks exe against GOBIN, GOPATH/bin and ~/go/bin.
func isGoBinPath(exe, gobin, gopath, home string) bool {
	dir := filepath.Dir(exe)
	if gobin != "" && dir == gobin {
		return true
	}
	if gopath != "" && dir == filepath.Join(gopath, "bin") {
		return true
	}
	if home != "" && dir == filepath.Join(home, "go", "bin") {
		return true
	}
	sep := string(filepath.Separator)
	return strings.Contains(exe, sep+"go"+sep+"bin"+sep)
}
