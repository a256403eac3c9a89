package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/pinboard/internal/export"
	"github.com/marcus/pinboard/internal/notes"
)

func newExportCmd(c *cli) *cobra.Command {
	var (
		format string
		filter string
		output string
	)
	names := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		names[i] = string(f)
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export notes as " + strings.Join(names, ", "),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			f, err := notes.ParseFilter(filter)
			if err != nil {
				return err
			}
			s, err := c.openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			s.notes.SetFilter(f)
			data, err := export.NewExporter(s.notes).Export(ft)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d notes to %s\n", len(s.notes.Project()), output)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(export.FormatJSON), strings.Join(names, ", "))
	cmd.Flags().StringVarP(&filter, "filter", "f", string(notes.FilterAll), "all, pending, completed, high, medium or low")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
