// Package mouse maps terminal mouse events onto rectangular regions of the
// rendered view.
package mouse

import tea "github.com/charmbracelet/bubbletea"

// Rect is a screen rectangle in cells. X and Y are inclusive, the right and
// bottom edges are exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a clickable area with an identifier and optional payload.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds the regions of the last render. Later regions sit on top of
// earlier ones.
type HitMap struct {
	regions []Region
}

// NewHitMap creates an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// Add registers a region.
func (h *HitMap) Add(id string, r Rect, data any) {
	h.regions = append(h.regions, Region{ID: id, Rect: r, Data: data})
}

// AddRect registers a region from raw coordinates.
func (h *HitMap) AddRect(id string, x, y, w, hgt int, data any) {
	h.Add(id, Rect{X: x, Y: y, W: w, H: hgt}, data)
}

// Test returns the topmost region containing the point, or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			r := h.regions[i]
			return &r
		}
	}
	return nil
}

// Clear removes all regions.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Regions returns a copy of the registered regions.
func (h *HitMap) Regions() []Region {
	out := make([]Region, len(h.regions))
	copy(out, h.regions)
	return out
}

// ActionType classifies a handled mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionScrollUp
	ActionScrollDown
	ActionHover
)

// scrollStep is the number of lines one wheel notch scrolls.
const scrollStep = 3

// Action is the result of handling a mouse event.
type Action struct {
	Type   ActionType
	Region *Region
	X, Y   int
	Delta  int // scroll lines; negative scrolls up
}

// Handler turns raw mouse messages into actions against its HitMap.
type Handler struct {
	HitMap *HitMap
}

// NewHandler creates a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap()}
}

// Clear resets the hit map before a new render.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}

// HandleMouse classifies msg. Left presses outside every region are ActionNone.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	a := Action{X: msg.X, Y: msg.Y}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		a.Type, a.Delta = ActionScrollUp, -scrollStep
		a.Region = h.HitMap.Test(msg.X, msg.Y)
	case msg.Button == tea.MouseButtonWheelDown:
		a.Type, a.Delta = ActionScrollDown, scrollStep
		a.Region = h.HitMap.Test(msg.X, msg.Y)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if r := h.HitMap.Test(msg.X, msg.Y); r != nil {
			a.Type, a.Region = ActionClick, r
		}
	case msg.Action == tea.MouseActionMotion:
		a.Type = ActionHover
		a.Region = h.HitMap.Test(msg.X, msg.Y)
	}
	return a
}
