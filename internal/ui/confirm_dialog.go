package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/pinboard/internal/mouse"
	"github.com/marcus/pinboard/internal/styles"
)

// Dialog button actions.
const (
	ActionConfirm = "confirm"
	ActionCancel  = "cancel"
)

// Modal widths.
const (
	ModalWidthSmall  = 40
	ModalWidthMedium = 50
)

// ConfirmDialog is a yes/no modal with two focusable buttons.
type ConfirmDialog struct {
	Title        string
	Message      string
	ConfirmLabel string // e.g. " Tear Off ", " Yes "
	CancelLabel  string // e.g. " Cancel ", " No "
	Width        int    // modal width (default 50)

	focus string
}

// NewConfirmDialog creates a dialog with sensible defaults. The cancel button
// starts focused.
func NewConfirmDialog(title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		Title:        title,
		Message:      message,
		ConfirmLabel: " Confirm ",
		CancelLabel:  " Cancel ",
		Width:        ModalWidthMedium,
		focus:        ActionCancel,
	}
}

// Focus returns the action of the focused button.
func (d *ConfirmDialog) Focus() string { return d.focus }

// SetFocus focuses the button for action. Unknown actions are ignored.
func (d *ConfirmDialog) SetFocus(action string) {
	if action == ActionConfirm || action == ActionCancel {
		d.focus = action
	}
}

// CycleFocus moves focus to the other button.
func (d *ConfirmDialog) CycleFocus() {
	if d.focus == ActionConfirm {
		d.focus = ActionCancel
	} else {
		d.focus = ActionConfirm
	}
}

func (d *ConfirmDialog) buttons() (confirm, cancel string) {
	confirmStyle, cancelStyle := styles.ButtonDanger, styles.Button
	if d.focus == ActionConfirm {
		confirmStyle = styles.ButtonDangerFocused
	} else {
		cancelStyle = styles.ButtonFocused
	}
	return confirmStyle.Render(d.ConfirmLabel), cancelStyle.Render(d.CancelLabel)
}

const buttonGap = "  "

func (d *ConfirmDialog) inner() []string {
	inner := d.Width - styles.ModalBox.GetHorizontalFrameSize()
	confirm, cancel := d.buttons()
	return []string{
		styles.ModalTitle.Render(d.Title),
		lipgloss.NewStyle().Width(inner).Render(d.Message),
		"",
		confirm + buttonGap + cancel,
	}
}

// View renders the dialog box.
func (d *ConfirmDialog) View() string {
	inner := d.Width - styles.ModalBox.GetHorizontalFrameSize()
	return styles.ModalBox.Width(inner + styles.ModalBox.GetHorizontalPadding()).
		Render(strings.Join(d.inner(), "\n"))
}

// Regions returns the button hit regions for the dialog drawn with its
// top-left corner at (x, y).
func (d *ConfirmDialog) Regions(x, y int) []mouse.Region {
	lines := strings.Split(strings.Join(d.inner(), "\n"), "\n")
	row := y + styles.ModalBox.GetBorderTopSize() + styles.ModalBox.GetPaddingTop() + len(lines) - 1
	col := x + styles.ModalBox.GetBorderLeftSize() + styles.ModalBox.GetPaddingLeft()

	confirm, cancel := d.buttons()
	cw := ansi.StringWidth(confirm)
	return []mouse.Region{
		{ID: ActionConfirm, Rect: mouse.Rect{X: col, Y: row, W: cw, H: 1}},
		{ID: ActionCancel, Rect: mouse.Rect{X: col + cw + len(buttonGap), Y: row, W: ansi.StringWidth(cancel), H: 1}},
	}
}
