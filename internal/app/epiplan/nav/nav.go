// Package nav switches between planner panels
package nav

// Panel name
type Panel string

// known panels
const (
	Planner     Panel = "planner"
	History     Panel = "history"
	Spreadsheet Panel = "spreadsheet"
)

// Panels lists known panels in tab order
func Panels() []Panel {
	return []Panel{Planner, History, Spreadsheet}
}

// ParsePanel returns panel by name
func ParsePanel(name string) (Panel, bool) {
	for _, p := range Panels() {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}

// Controller keeps exactly one panel active and runs its enter hook on every switch
type Controller struct {
	active  Panel
	onEnter map[Panel]func()
}

// NewController starts on the planner panel
func NewController() *Controller {
	return &Controller{active: Planner, onEnter: map[Panel]func(){}}
}

// OnEnter sets hook called each time panel is shown
func (c *Controller) OnEnter(p Panel, fn func()) {
	c.onEnter[p] = fn
}

// Show activates panel, unknown panels are ignored
func (c *Controller) Show(p Panel) bool {
	if _, ok := ParsePanel(string(p)); !ok {
		return false
	}
	c.active = p
	if fn := c.onEnter[p]; fn != nil {
		fn()
	}
	return true
}

// Active panel
func (c *Controller) Active() Panel {
	return c.active
}

// Next activates panel after the current one, wrapping around
func (c *Controller) Next() Panel {
	panels := Panels()
	for i, p := range panels {
		if p == c.active {
			c.Show(panels[(i+1)%len(panels)])
			break
		}
	}
	return c.active
}
