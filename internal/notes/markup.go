package notes

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// EmptyMessage returns the headline shown when the projection is empty.
func EmptyMessage(f Filter) string {
	if f == FilterAll || f == "" {
		return "No notes pinned yet."
	}
	return fmt.Sprintf("No %s notes found.", f)
}

// EmptyHint is the line shown under EmptyMessage.
const EmptyHint = "Pin your first note above!"

// RenderMarkup renders a snapshot as the HTML note board. Note text is
// escaped; every card carries its note id in data-id so an interaction can be
// routed back to the record.
func RenderMarkup(snap Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<div class=\"stats\"><span id=\"totalTasks\">%d</span><span id=\"completedTasks\">%d</span><span id=\"pendingTasks\">%d</span></div>\n",
		snap.Stats.Total, snap.Stats.Completed, snap.Stats.Pending)

	b.WriteString("<div id=\"taskList\">\n")
	if len(snap.Projection) == 0 {
		fmt.Fprintf(&b, "<div class=\"empty-state\"><h3>%s</h3><p>%s</p></div>\n",
			html.EscapeString(EmptyMessage(snap.Filter)), EmptyHint)
	}
	for i, n := range snap.Projection {
		classes := "task-item priority-" + string(n.Priority)
		if n.Completed {
			classes += " completed"
		}
		id := strconv.FormatInt(n.ID, 10)
		fmt.Fprintf(&b, "<div class=\"%s\" data-id=\"%s\" data-action=\"toggle\" style=\"transform: rotate(%sdeg); --i: %d;\">",
			classes, id, strconv.FormatFloat(n.Rotation, 'f', -1, 64), i)
		fmt.Fprintf(&b, "<div class=\"task-content\"><div class=\"task-text\">%s</div>", html.EscapeString(n.Text))
		fmt.Fprintf(&b, "<div class=\"task-meta\"><span>Pinned: %s</span></div></div>", html.EscapeString(n.CreatedAt))
		fmt.Fprintf(&b, "<div class=\"task-actions\"><button class=\"action-btn edit-btn\" data-id=\"%s\" data-action=\"edit\" title=\"Edit Note\">edit</button>", id)
		fmt.Fprintf(&b, "<button class=\"action-btn delete-btn\" data-id=\"%s\" data-action=\"delete\" title=\"Tear Off\">delete</button></div></div>\n", id)
	}
	b.WriteString("</div>\n")
	return b.String()
}
