package main

import (
	"fmt"
	"os"

	"github.com/sheen-dev/sheen/internal/config"
	"github.com/sheen-dev/sheen/internal/display"
	"github.com/sheen-dev/sheen/internal/x11"
)

// backendHandle bundles an opened resolver with whatever platform
// connection backs it.
type backendHandle struct {
	name     string
	resolver display.Resolver
	conn     *x11.Connection // nil for the static backend
}

func (h *backendHandle) Close() {
	if h.conn != nil {
		h.conn.Close()
	}
}

// openResolver builds the resolver the config asks for. The auto
// backend uses X11 when DISPLAY is set and falls back to the
// configured static display list otherwise.
func openResolver(cfg *config.Config) (*backendHandle, error) {
	backend := cfg.Display.Backend
	if backend == config.BackendAuto {
		if os.Getenv("DISPLAY") != "" {
			backend = config.BackendX11
		} else {
			backend = config.BackendStatic
		}
	}

	switch backend {
	case config.BackendX11:
		conn, err := x11.NewConnection()
		if err != nil {
			return nil, fmt.Errorf("failed to connect to X11: %w", err)
		}
		return &backendHandle{
			name:     config.BackendX11,
			resolver: x11.NewResolver(conn),
			conn:     conn,
		}, nil

	case config.BackendStatic:
		if len(cfg.Display.Static) == 0 {
			return nil, fmt.Errorf("no DISPLAY and no static displays configured")
		}
		displays := make([]display.Display, 0, len(cfg.Display.Static))
		primary := 0
		for i, d := range cfg.Display.Static {
			if d.Primary {
				primary = i
			}
			displays = append(displays, display.Display{
				Name:   d.Name,
				Bounds: display.Rect{X: d.X, Y: d.Y, Width: d.Width, Height: d.Height},
			})
		}
		resolver, err := display.NewStaticResolver(displays, primary)
		if err != nil {
			return nil, err
		}
		return &backendHandle{
			name:     config.BackendStatic,
			resolver: resolver,
		}, nil

	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}
