package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/pinboard/internal/app"
	"github.com/marcus/pinboard/internal/export"
	"github.com/marcus/pinboard/internal/notes"
	"github.com/marcus/pinboard/internal/ui"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid note id %q", s)
	}
	return id, nil
}

func newAddCmd(c *cli) *cobra.Command {
	var priority string
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Pin a new note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			if priority == "" {
				priority = s.cfg.Notes.DefaultPriority
			}
			p, err := notes.ParsePriority(priority)
			if err != nil {
				return err
			}

			res, err := s.notes.Add(strings.Join(args, " "), p)
			if err != nil {
				return err
			}
			if res.Action == notes.ActionRejected {
				return fmt.Errorf("note text is empty")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pinned %d\n", res.Note.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "high, medium or low")
	return cmd
}

func newListCmd(c *cli) *cobra.Command {
	var (
		filter string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			out := cmd.OutOrStdout()
			if asJSON {
				return export.Write(out, export.FormatJSON, s.notes.Snapshot())
			}
			writeList(out, s.notes.Snapshot())
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", string(notes.FilterAll), "all, pending, completed, high, medium or low")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

func writeList(w io.Writer, snap notes.Snapshot) {
	if len(snap.Projection) == 0 {
		fmt.Fprintln(w, notes.EmptyMessage(snap.Filter))
		return
	}
	for _, n := range snap.Projection {
		mark := "[ ]"
		if n.Completed {
			mark = "[x]"
		}
		fmt.Fprintf(w, "%s %-13d %-6s %s (%s)\n", mark, n.ID, n.Priority, ui.PlainText(n.Text), ui.PlainText(n.CreatedAt))
	}
	fmt.Fprintf(w, "\n%d total, %d completed, %d pending\n", snap.Stats.Total, snap.Stats.Completed, snap.Stats.Pending)
}

func newEditCmd(c *cli) *cobra.Command {
	var priority string
	cmd := &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Change the text or priority of a note",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := c.openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			n, ok := s.notes.BeginEdit(id)
			if !ok {
				return fmt.Errorf("note %d not found", id)
			}
			p := n.Priority
			if priority != "" {
				if p, err = notes.ParsePriority(priority); err != nil {
					return err
				}
			}

			res, err := s.notes.Add(strings.Join(args[1:], " "), p)
			if err != nil {
				return err
			}
			if res.Action == notes.ActionRejected {
				s.notes.CancelEdit()
				return fmt.Errorf("note text is empty")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d\n", id)
			return nil
		},
	}
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "high, medium or low (default: keep)")
	return cmd
}

func newToggleCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a note finished, or pending again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := c.openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			found, err := s.notes.Toggle(id)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("note %d not found", id)
			}
			n, _ := s.notes.Get(id)
			if n.Completed {
				fmt.Fprintf(cmd.OutOrStdout(), "Finished %d\n", id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Reopened %d\n", id)
			}
			return nil
		},
	}
}

func newDeleteCmd(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Tear off a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := c.openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			if _, ok := s.notes.Get(id); !ok {
				return fmt.Errorf("note %d not found", id)
			}
			removed, err := s.notes.Remove(id, func(n notes.Note) bool {
				return yes || confirm(cmd.InOrStdin(), out, n)
			})
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintf(out, "Tore off %d\n", id)
			} else {
				fmt.Fprintln(out, "Kept.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// confirm asks about n on out and reads a y/N answer from in.
func confirm(in io.Reader, out io.Writer, n notes.Note) bool {
	fmt.Fprintf(out, "%s\n  %q\n[y/N] ", app.ConfirmDeleteMessage, n.Text)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
