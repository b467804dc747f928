package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"

	"github.com/1broseidon/ringwm/internal/geom"
	"github.com/1broseidon/ringwm/internal/wm"
)

// Outputs lists every RandR output in server order. Outputs without a CRTC
// are reported as disconnected so the manager can unplug them.
func (c *Connection) Outputs() ([]wm.Output, error) {
	if !c.randr {
		return nil, wm.ErrNoRandR
	}

	conn := c.XUtil.Conn()
	resources, err := randr.GetScreenResourcesCurrent(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	outputs := make([]wm.Output, 0, len(resources.Outputs))
	for _, id := range resources.Outputs {
		info, err := randr.GetOutputInfo(conn, id, resources.ConfigTimestamp).Reply()
		if err != nil {
			c.log.Debug("skipping output", "output", id, "error", err)
			continue
		}

		out := wm.Output{
			ID:   wm.MonitorID(id),
			Name: string(info.Name),
		}
		if info.Crtc == 0 {
			outputs = append(outputs, out)
			continue
		}

		crtc, err := randr.GetCrtcInfo(conn, info.Crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			c.log.Debug("skipping crtc", "output", out.Name, "error", err)
			continue
		}
		out.Connected = true
		out.Rect = geom.Rect{
			X:      int(crtc.X),
			Y:      int(crtc.Y),
			Width:  int(crtc.Width),
			Height: int(crtc.Height),
		}
		outputs = append(outputs, out)
	}

	return outputs, nil
}
