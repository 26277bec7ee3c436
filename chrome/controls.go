package chrome

import (
	"log/slog"

	"github.com/oliverbestmann/frameless/glm"
)

// Controls names the elements acting as window control buttons. Empty ids
// are ignored.
type Controls struct {
	Minimize string
	Maximize string
	Close    string
}

func (c Controls) ids() []string {
	return []string{c.Minimize, c.Maximize, c.Close}
}

// controlAt returns the id of the control under the local position.
func (c *Controller) controlAt(local glm.Vec2i) string {
	if c.layout == nil {
		return ""
	}

	pos := local.ToVec2f()

	for _, id := range c.opts.Controls.ids() {
		if id == "" {
			continue
		}

		if box, ok := c.layout.ElementBounds(id); ok && box.Contains(pos) {
			return id
		}
	}

	return ""
}

func (c *Controller) activateControl(id string) {
	controls := c.opts.Controls

	switch id {
	case controls.Minimize:
		c.log.Info("Minimize window")
		c.window.Minimize()

	case controls.Maximize:
		if c.window.IsMaximized() {
			c.log.Info("Restore window")
			c.window.Restore()
		} else {
			c.log.Info("Maximize window")
			c.window.Maximize()
		}

	case controls.Close:
		c.log.Info("Close requested by window control")
		c.window.RequestClose()

	default:
		c.log.Warn("Unknown window control", slog.String("id", id))
	}
}
