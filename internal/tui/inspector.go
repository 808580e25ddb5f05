// Package tui implements an interactive display inspector: a scaled
// map of the current display arrangement with a movable probe point
// that shows nearest-display resolution live.
package tui

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/sheen-dev/sheen/internal/display"
)

// probeStep is how far one keypress moves the probe, in screen pixels.
const probeStep = 40

// Inspector holds the inspector state.
type Inspector struct {
	backend  string
	resolver display.Resolver

	displays []display.Display
	primary  display.Display
	probe    display.Point
	resolved display.Display
	lastErr  string

	// Terminal state
	oldState *term.State
	width    int
	height   int
}

// New creates an inspector over a resolver.
func New(backend string, resolver display.Resolver) *Inspector {
	return &Inspector{
		backend:  backend,
		resolver: resolver,
	}
}

// Run starts the inspector main loop.
func (t *Inspector) Run() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	if err := t.refresh(); err != nil {
		return err
	}
	// Start the probe on the primary display's center.
	t.probe = display.Point{
		X: t.primary.Bounds.X + t.primary.Bounds.Width/2,
		Y: t.primary.Bounds.Y + t.primary.Bounds.Height/2,
	}
	t.resolve()

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	t.oldState = oldState
	defer t.restore()

	t.updateSize()
	t.render()

	buf := make([]byte, 32)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return err
		}

		if t.handleInput(buf[:n]) {
			return nil
		}

		t.render()
	}
}

func (t *Inspector) restore() {
	if t.oldState != nil {
		term.Restore(int(os.Stdin.Fd()), t.oldState)
	}
	// Clear screen and show cursor on exit.
	fmt.Print("\x1b[0m")
	fmt.Print("\x1b[?25h")
	fmt.Print("\x1b[2J")
	fmt.Print("\x1b[H")
}

func (t *Inspector) updateSize() {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		t.width = 80
		t.height = 24
		return
	}
	t.width = w
	t.height = h
}

// refresh re-queries the resolver for displays and the primary.
func (t *Inspector) refresh() error {
	displays, err := t.resolver.AllDisplays()
	if err != nil {
		t.lastErr = err.Error()
		if t.displays == nil {
			return err
		}
		return nil
	}
	primary, err := t.resolver.PrimaryDisplay()
	if err != nil {
		t.lastErr = err.Error()
		if t.displays == nil {
			return err
		}
		return nil
	}

	t.displays = displays
	t.primary = primary
	t.lastErr = ""
	return nil
}

func (t *Inspector) resolve() {
	d, err := t.resolver.DisplayNearestPoint(t.probe)
	if err != nil {
		t.lastErr = err.Error()
		return
	}
	t.resolved = d
}

func (t *Inspector) handleInput(input []byte) bool {
	for len(input) > 0 {
		// Arrow key escape sequences.
		if len(input) >= 3 && input[0] == 0x1b && input[1] == '[' {
			switch input[2] {
			case 'A':
				t.moveProbe(0, -probeStep)
			case 'B':
				t.moveProbe(0, probeStep)
			case 'C':
				t.moveProbe(probeStep, 0)
			case 'D':
				t.moveProbe(-probeStep, 0)
			}
			input = input[3:]
			continue
		}

		switch input[0] {
		case 'q', 0x1b:
			return true
		case 0x03: // Ctrl+C
			return true
		case 'h':
			t.moveProbe(-probeStep, 0)
		case 'j':
			t.moveProbe(0, probeStep)
		case 'k':
			t.moveProbe(0, -probeStep)
		case 'l':
			t.moveProbe(probeStep, 0)
		case 'r':
			_ = t.refresh()
			t.resolve()
		}

		input = input[1:]
	}

	return false
}

func (t *Inspector) moveProbe(dx, dy int) {
	t.probe.X += dx
	t.probe.Y += dy
	t.resolve()
}

// virtualBounds returns the bounding box of all display bounds.
func (t *Inspector) virtualBounds() display.Rect {
	if len(t.displays) == 0 {
		return display.Rect{Width: 1, Height: 1}
	}

	b := t.displays[0].Bounds
	x1, y1 := b.X, b.Y
	x2, y2 := b.X+b.Width, b.Y+b.Height
	for _, d := range t.displays[1:] {
		x1 = min(x1, d.Bounds.X)
		y1 = min(y1, d.Bounds.Y)
		x2 = max(x2, d.Bounds.X+d.Bounds.Width)
		y2 = max(y2, d.Bounds.Y+d.Bounds.Height)
	}
	return display.Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

func (t *Inspector) render() {
	t.updateSize()

	var sb strings.Builder
	sb.WriteString("\x1b[2J\x1b[H\x1b[?25l")

	sb.WriteString(fmt.Sprintf("sheen inspector  backend=%s  displays=%d\r\n", t.backend, len(t.displays)))
	sb.WriteString("arrows/hjkl: move probe   r: refresh   q: quit\r\n\r\n")

	mapWidth := t.width - 4
	mapHeight := t.height - 9 - len(t.displays)
	if mapWidth < 20 {
		mapWidth = 20
	}
	if mapHeight < 5 {
		mapHeight = 5
	}
	t.renderMap(&sb, mapWidth, mapHeight)

	sb.WriteString("\r\n")
	for _, d := range t.displays {
		marker := " "
		if d.ID == t.primary.ID {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %d %-10s bounds=%d,%d %dx%d work=%d,%d %dx%d\r\n",
			marker, d.ID, d.Name,
			d.Bounds.X, d.Bounds.Y, d.Bounds.Width, d.Bounds.Height,
			d.WorkArea.X, d.WorkArea.Y, d.WorkArea.Width, d.WorkArea.Height))
	}

	sb.WriteString(fmt.Sprintf("\r\nprobe=(%d,%d) -> display %d (%s)\r\n",
		t.probe.X, t.probe.Y, t.resolved.ID, t.resolved.Name))
	if t.lastErr != "" {
		sb.WriteString(fmt.Sprintf("error: %s\r\n", t.lastErr))
	}

	fmt.Print(sb.String())
}

// renderMap draws the display arrangement scaled into a cell grid.
// Each cell shows the digit of the display covering it, '.' for gaps
// in the virtual screen, and '+' for the probe.
func (t *Inspector) renderMap(sb *strings.Builder, cols, rows int) {
	vb := t.virtualBounds()

	for row := 0; row < rows; row++ {
		sb.WriteString("  ")
		for col := 0; col < cols; col++ {
			// Sample the cell's center in screen coordinates.
			p := display.Point{
				X: vb.X + (col*2+1)*vb.Width/(cols*2),
				Y: vb.Y + (row*2+1)*vb.Height/(rows*2),
			}

			cell := byte('.')
			for _, d := range t.displays {
				if d.Bounds.Contains(p) {
					cell = byte('0' + d.ID%10)
					break
				}
			}

			if t.probeCell(vb, cols, rows) == [2]int{col, row} {
				cell = '+'
			}
			sb.WriteByte(cell)
		}
		sb.WriteString("\r\n")
	}
}

// probeCell maps the probe point into map cell coordinates.
func (t *Inspector) probeCell(vb display.Rect, cols, rows int) [2]int {
	col := (t.probe.X - vb.X) * cols / max(vb.Width, 1)
	row := (t.probe.Y - vb.Y) * rows / max(vb.Height, 1)
	return [2]int{
		min(max(col, 0), cols-1),
		min(max(row, 0), rows-1),
	}
}
