package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/sheen-dev/sheen/internal/display"
)

// enumerateDisplays retrieves all active monitors using XRandR. The
// returned displays carry the CRTC enumeration index as their ID and
// WorkArea == Bounds; work-area resolution happens separately and
// only for the primary display. Mirrored CRTCs are reported as the
// server exposes them; no deduplication is attempted.
func (c *Connection) enumerateDisplays() ([]display.Display, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var displays []display.Display

	for _, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs.
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		id := len(displays)
		name := fmt.Sprintf("Monitor%d", id)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			name = string(outputInfo.Name)
		}

		bounds := display.Rect{
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		}
		displays = append(displays, display.Display{
			ID:       id,
			Name:     name,
			Bounds:   bounds,
			WorkArea: bounds,
		})
	}

	return displays, nil
}

// primaryIndex returns the index into displays of the RandR primary
// output's CRTC, or 0 when the server reports no primary or the
// primary cannot be matched.
func (c *Connection) primaryIndex(displays []display.Display) int {
	primary, err := randr.GetOutputPrimary(c.XUtil.Conn(), c.Root).Reply()
	if err != nil || primary.Output == 0 {
		return 0
	}

	outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), primary.Output, 0).Reply()
	if err != nil || outputInfo.Crtc == 0 {
		return 0
	}

	crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), outputInfo.Crtc, 0).Reply()
	if err != nil {
		return 0
	}

	for i, d := range displays {
		if d.Bounds.X == int(crtcInfo.X) && d.Bounds.Y == int(crtcInfo.Y) &&
			d.Bounds.Width == int(crtcInfo.Width) && d.Bounds.Height == int(crtcInfo.Height) {
			return i
		}
	}
	return 0
}

// workArea fetches the _NET_WORKAREA entry for the current desktop.
// The property is a window-manager hint spanning all monitors, so the
// caller intersects it with one display's bounds. The second return
// is false whenever the property is missing, short, or unreadable.
// Absence is a normal outcome, not an error.
func (c *Connection) workArea() (display.Rect, bool) {
	workAreas, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workAreas) == 0 {
		return display.Rect{}, false
	}

	desktopIndex := 0
	if current, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil {
		if int(current) >= 0 && int(current) < len(workAreas) {
			desktopIndex = int(current)
		}
	}

	wa := workAreas[desktopIndex]
	rect := display.Rect{
		X:      int(wa.X),
		Y:      int(wa.Y),
		Width:  int(wa.Width),
		Height: int(wa.Height),
	}
	if rect.IsEmpty() {
		return display.Rect{}, false
	}
	return rect, true
}

// applyPrimaryWorkArea narrows the primary display's work area using
// _NET_WORKAREA. Only the primary display is adjusted: the property
// is a single hint from the WM that generally spans all monitors, and
// applying it to a secondary monitor would make that monitor's work
// area larger than the monitor itself.
func (c *Connection) applyPrimaryWorkArea(displays []display.Display, primary int) {
	if primary < 0 || primary >= len(displays) {
		return
	}

	wa, ok := c.workArea()
	if !ok {
		return
	}

	intersected := wa.Intersect(displays[primary].Bounds)
	if intersected.IsEmpty() {
		return
	}
	displays[primary].WorkArea = intersected
}
