package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/sheen-dev/sheen/internal/display"
)

// windowCenter returns the center of a window in root coordinates.
func (c *Connection) windowCenter(win xproto.Window) (display.Point, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return display.Point{}, fmt.Errorf("failed to get window geometry: %w", err)
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		win,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return display.Point{}, fmt.Errorf("failed to translate window coordinates: %w", err)
	}

	return display.Point{
		X: int(translate.DstX) + int(geom.Width)/2,
		Y: int(translate.DstY) + int(geom.Height)/2,
	}, nil
}

// pointerPosition returns the pointer location in root coordinates.
func (c *Connection) pointerPosition() (display.Point, error) {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return display.Point{}, fmt.Errorf("failed to query pointer: %w", err)
	}
	return display.Point{X: int(pointer.RootX), Y: int(pointer.RootY)}, nil
}
