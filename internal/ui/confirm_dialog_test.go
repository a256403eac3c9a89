package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestNewConfirmDialog(t *testing.T) {
	d := NewConfirmDialog("Test Title", "Test message")

	if d.Title != "Test Title" {
		t.Errorf("expected title 'Test Title', got %q", d.Title)
	}
	if d.Message != "Test message" {
		t.Errorf("expected message 'Test message', got %q", d.Message)
	}
	if d.ConfirmLabel != " Confirm " {
		t.Errorf("expected default confirm label ' Confirm ', got %q", d.ConfirmLabel)
	}
	if d.Width != ModalWidthMedium {
		t.Errorf("expected width %d, got %d", ModalWidthMedium, d.Width)
	}
	if d.Focus() != ActionCancel {
		t.Errorf("expected cancel focused, got %q", d.Focus())
	}
}

func TestConfirmDialog_View(t *testing.T) {
	d := NewConfirmDialog("Tear off note?", "Are you sure?")
	d.ConfirmLabel = " Tear Off "

	output := ansi.Strip(d.View())
	for _, want := range []string{"Tear off note?", "Are you sure?", "Tear Off", "Cancel"} {
		if !strings.Contains(output, want) {
			t.Errorf("render should contain %q", want)
		}
	}
	for _, line := range strings.Split(output, "\n") {
		if w := ansi.StringWidth(line); w != d.Width {
			t.Errorf("line %q has width %d, want %d", line, w, d.Width)
		}
	}
}

func TestConfirmDialog_Focus(t *testing.T) {
	d := NewConfirmDialog("Test", "Message")

	d.CycleFocus()
	if d.Focus() != ActionConfirm {
		t.Errorf("expected confirm after cycle, got %q", d.Focus())
	}
	d.CycleFocus()
	if d.Focus() != ActionCancel {
		t.Errorf("expected cancel after second cycle, got %q", d.Focus())
	}

	d.SetFocus(ActionConfirm)
	if d.Focus() != ActionConfirm {
		t.Errorf("SetFocus(confirm) = %q", d.Focus())
	}
	d.SetFocus("bogus")
	if d.Focus() != ActionConfirm {
		t.Errorf("unknown action should not change focus, got %q", d.Focus())
	}
}

func TestConfirmDialog_Regions(t *testing.T) {
	d := NewConfirmDialog("Title", "Message")
	view := ansi.Strip(d.View())
	lines := strings.Split(view, "\n")

	regions := d.Regions(0, 0)
	if len(regions) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(regions))
	}

	for _, r := range regions {
		if r.Rect.Y >= len(lines) {
			t.Fatalf("region %s row %d outside %d-line view", r.ID, r.Rect.Y, len(lines))
		}
		row := []rune(lines[r.Rect.Y])
		label := strings.TrimSpace(string(row[r.Rect.X : r.Rect.X+r.Rect.W]))
		want := strings.TrimSpace(d.ConfirmLabel)
		if r.ID == ActionCancel {
			want = strings.TrimSpace(d.CancelLabel)
		}
		if label != want {
			t.Errorf("region %s covers %q, want %q", r.ID, label, want)
		}
	}

	shifted := d.Regions(10, 5)
	if shifted[0].Rect.X != regions[0].Rect.X+10 || shifted[0].Rect.Y != regions[0].Rect.Y+5 {
		t.Errorf("regions should shift with origin: %+v vs %+v", shifted[0].Rect, regions[0].Rect)
	}
}
