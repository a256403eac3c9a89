package app

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/pinboard/internal/keymap"
	"github.com/marcus/pinboard/internal/mouse"
	"github.com/marcus/pinboard/internal/notes"
	"github.com/marcus/pinboard/internal/styles"
	"github.com/marcus/pinboard/internal/ui"
)

const (
	maxCardWidth = 72
	// boardTop is the first row of the card list: header, blank, input box
	// (3 rows), controls, blank, filter chips, blank.
	boardTop = 9
	// leftMargin is the column cards start at before tilt is applied.
	leftMargin = 2

	editLabel   = "[edit]"
	deleteLabel = "[tear off]"
)

// View renders the board and registers mouse regions for it.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	m.mouse.Clear()

	var sections []string
	sections = append(sections, m.renderHeader(), "")
	sections = append(sections, m.renderInput(2), m.renderControls(5), "")
	sections = append(sections, m.renderFilters(7), "")
	sections = append(sections, m.renderCards(boardTop))

	body := lipgloss.NewStyle().
		Height(m.height - 1).
		MaxHeight(m.height - 1).
		Render(strings.Join(sections, "\n"))
	screen := body + "\n" + m.renderFooter()

	if m.dialog != nil {
		// Only the dialog is clickable while it is open.
		m.mouse.Clear()
		dv := m.dialog.View()
		x, y := ui.ModalOrigin(dv, m.width, m.height)
		for _, r := range m.dialog.Regions(x, y) {
			m.mouse.HitMap.Add(r.ID, r.Rect, nil)
		}
		return ui.OverlayModal(screen, dv, m.width, m.height)
	}
	return screen
}

func (m Model) renderHeader() string {
	title := styles.Logo.Render("pinboard")
	if !m.cfg.UI.ShowStats {
		return title
	}
	st := m.board.snap.Stats
	stats := fmt.Sprintf("%s total  %s completed  %s pending",
		styles.StatTotal.Render(fmt.Sprint(st.Total)),
		styles.StatCompleted.Render(fmt.Sprint(st.Completed)),
		styles.StatPending.Render(fmt.Sprint(st.Pending)))
	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(stats)-leftMargin, 2)
	return title + strings.Repeat(" ", gap) + stats
}

func (m Model) renderInput(y int) string {
	style := styles.InputInactive
	if m.focus == focusInput {
		style = styles.InputActive
	}
	box := style.Width(m.cardWidth()).Render(m.input.View())
	m.mouse.HitMap.Add(regionInput, mouse.Rect{X: 0, Y: y, W: lipgloss.Width(box), H: lipgloss.Height(box)}, nil)
	return box
}

func (m Model) renderControls(y int) string {
	label := styles.Muted.Render("Priority ")
	badge := styles.PriorityBadge(m.priority.String())
	submit := styles.ButtonFocused.Render(m.submitLabel())

	x := lipgloss.Width(label)
	m.mouse.HitMap.Add(regionPriority, mouse.Rect{X: x, Y: y, W: lipgloss.Width(badge), H: 1}, nil)
	x += lipgloss.Width(badge) + 2
	m.mouse.HitMap.Add(regionSubmit, mouse.Rect{X: x, Y: y, W: lipgloss.Width(submit), H: 1}, nil)

	line := label + badge + "  " + submit
	if _, editing := m.store.Editing(); editing {
		line += "  " + styles.Subtle.Render("esc to cancel")
	}
	return line
}

func (m Model) renderFilters(y int) string {
	current := m.store.Filter()
	chips := make([]string, 0, len(notes.Filters))
	x := 0
	for i, f := range notes.Filters {
		style := styles.BarChip
		if f == current {
			style = styles.BarChipActive
		}
		chip := style.Render(fmt.Sprintf("%d %s", i+1, filterLabel(f)))
		w := lipgloss.Width(chip)
		m.mouse.HitMap.Add(regionFilter, mouse.Rect{X: x, Y: y, W: w, H: 1}, f)
		chips = append(chips, chip)
		x += w + 1
	}
	return strings.Join(chips, " ")
}

func filterLabel(f notes.Filter) string {
	s := f.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// renderCards draws the visible part of the projection starting at row y.
func (m Model) renderCards(y int) string {
	p := m.projection()
	if len(p) == 0 {
		return lipgloss.NewStyle().MarginLeft(leftMargin).Render(
			styles.Title.Render(notes.EmptyMessage(m.store.Filter())) + "\n" +
				styles.Muted.Render(notes.EmptyHint))
	}

	avail := m.listHeight()
	var blocks []string
	used := 0
	for i := m.scroll; i < len(p); i++ {
		n := p[i]
		card, editX, deleteX := m.renderCard(n, i == m.cursor && m.focus == focusBoard)
		h := lipgloss.Height(card)
		if used > 0 && used+h > avail {
			blocks = append(blocks, styles.Subtle.Render(fmt.Sprintf("%*s%d more below", leftMargin, "", len(p)-i)))
			break
		}

		x := leftMargin + tilt(n.Rotation)
		top := y + used
		w := lipgloss.Width(card)
		m.mouse.HitMap.Add(regionNote, mouse.Rect{X: x, Y: top, W: w, H: h}, n.ID)
		m.mouse.HitMap.Add(regionEdit, mouse.Rect{X: x + editX, Y: top + h - 1, W: runewidth.StringWidth(editLabel), H: 1}, n.ID)
		m.mouse.HitMap.Add(regionDelete, mouse.Rect{X: x + deleteX, Y: top + h - 1, W: runewidth.StringWidth(deleteLabel), H: 1}, n.ID)

		blocks = append(blocks, lipgloss.NewStyle().MarginLeft(x).Render(card))
		used += h + 1
	}
	return strings.Join(blocks, "\n\n")
}

// tilt turns a note's rotation into a left offset of 0 to 3 cells.
func tilt(rotation float64) int {
	return int(math.Round(rotation + 1.5))
}

// renderCard renders one note and returns the columns of its edit and
// delete buttons relative to the card's left edge.
func (m Model) renderCard(n notes.Note, selected bool) (card string, editX, deleteX int) {
	width := m.cardWidth()
	text := width - 2 // horizontal padding

	body := runewidth.Wrap(ui.PlainText(n.Text), text)

	buttons := editLabel + " " + deleteLabel
	meta := fmt.Sprintf("Pinned: %s  %s", ui.PlainText(n.CreatedAt), n.Priority)
	room := text - runewidth.StringWidth(buttons) - 1
	if runewidth.StringWidth(meta) > room {
		meta = runewidth.Truncate(meta, max(room, 0), "…")
	}
	pad := max(text-runewidth.StringWidth(meta)-runewidth.StringWidth(buttons), 1)
	metaLine := meta + strings.Repeat(" ", pad) + buttons

	style := styles.Card(n.Priority.String(), n.Completed, selected, width)
	card = style.Render(body + "\n" + metaLine)

	// border + left padding
	offset := 1 + 1 + runewidth.StringWidth(meta) + pad
	return card, offset, offset + runewidth.StringWidth(editLabel) + 1
}

// cardWidth is the card width including padding.
func (m Model) cardWidth() int {
	return max(min(m.width-leftMargin-6, maxCardWidth), 20)
}

// cardHeight is the rows a card occupies including the gap after it.
func (m Model) cardHeight(n notes.Note) int {
	card, _, _ := m.renderCard(n, false)
	return lipgloss.Height(card) + 1
}

// listHeight is the number of rows available to cards.
func (m Model) listHeight() int {
	return m.height - boardTop - 1
}

func (m Model) renderFooter() string {
	var status string
	if m.statusMsg != "" {
		style := styles.ToastSuccess
		if m.statusIsError {
			style = styles.ToastError
		}
		status = style.Render(m.statusMsg)
	}
	if !m.showFooter {
		return status
	}

	hints := m.footerHints()
	gap := max(m.width-lipgloss.Width(hints)-lipgloss.Width(status), 1)
	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(hints + strings.Repeat(" ", gap) + status)
}

// footerHints lists the main keys of the current context.
func (m Model) footerHints() string {
	type hint struct{ command, label string }
	var hs []hint
	switch m.context() {
	case keymap.ContextInput:
		hs = []hint{{keymap.CmdSubmit, m.submitLabel()}, {keymap.CmdCyclePriority, "priority"}, {keymap.CmdBlurInput, "back"}}
	case keymap.ContextConfirm:
		hs = []hint{{keymap.CmdConfirm, "tear off"}, {keymap.CmdCancel, "keep"}}
	default:
		hs = []hint{
			{keymap.CmdFocusInput, "new"}, {keymap.CmdToggle, "finish"}, {keymap.CmdEdit, "edit"},
			{keymap.CmdDelete, "tear off"}, {keymap.CmdYank, "copy"}, {keymap.CmdNextFilter, "filter"},
			{keymap.CmdQuit, "quit"},
		}
	}

	ctx := m.context()
	parts := make([]string, 0, len(hs))
	for _, h := range hs {
		keys := m.keymap.KeysFor(h.command, ctx)
		if len(keys) == 0 {
			continue
		}
		k := keys[0]
		if k == " " && len(keys) > 1 {
			k = keys[1]
		}
		parts = append(parts, styles.KeyHint.Render(k)+" "+h.label)
	}
	return strings.Join(parts, "  ")
}
