package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sheen-dev/sheen/internal/config"
	"github.com/sheen-dev/sheen/internal/display"
)

func printDisplaysUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  sheen displays list [--json]")
	fmt.Fprintln(w, "  sheen displays primary [--json]")
	fmt.Fprintln(w, "  sheen displays at-point [--json] <x> <y>")
	fmt.Fprintln(w, "  sheen displays nearest-window [--json] <window-id>")
	fmt.Fprintln(w, "  sheen displays matching [--json] <x> <y> <width> <height>")
	fmt.Fprintln(w, "  sheen displays under-pointer [--json]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Queries run against the live display backend; the daemon is not required.")
	fmt.Fprintln(w, "Run 'sheen displays <command> --help' for command-specific options.")
}

type displayJSON struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	WorkX      int    `json:"work_x"`
	WorkY      int    `json:"work_y"`
	WorkWidth  int    `json:"work_width"`
	WorkHeight int    `json:"work_height"`
	Primary    bool   `json:"primary"`
}

func toDisplayJSON(d display.Display, primary bool) displayJSON {
	return displayJSON{
		ID:         d.ID,
		Name:       d.Name,
		X:          d.Bounds.X,
		Y:          d.Bounds.Y,
		Width:      d.Bounds.Width,
		Height:     d.Bounds.Height,
		WorkX:      d.WorkArea.X,
		WorkY:      d.WorkArea.Y,
		WorkWidth:  d.WorkArea.Width,
		WorkHeight: d.WorkArea.Height,
		Primary:    primary,
	}
}

func runDisplays(args []string) int {
	if len(args) == 0 {
		printDisplaysUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printDisplaysUsage(os.Stdout)
		return 0
	}

	switch args[0] {
	case "list":
		return runDisplaysList(args[1:])
	case "primary":
		return runDisplaysPrimary(args[1:])
	case "at-point":
		return runDisplaysAtPoint(args[1:])
	case "nearest-window":
		return runDisplaysNearestWindow(args[1:])
	case "matching":
		return runDisplaysMatching(args[1:])
	case "under-pointer":
		return runDisplaysUnderPointer(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown displays command: %s\n\n", args[0])
		printDisplaysUsage(os.Stderr)
		return 2
	}
}

// openFromConfig loads the config and opens the backend it selects.
func openFromConfig() (*backendHandle, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return openResolver(cfg)
}

func runDisplaysList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: sheen displays list [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List connected displays in platform enumeration order.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	jsonOut := fs.Bool("json", false, "Output display details as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "displays list takes no arguments")
		fs.Usage()
		return 2
	}

	handle, err := openFromConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer handle.Close()

	displays, err := handle.resolver.AllDisplays()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	primary, err := handle.resolver.PrimaryDisplay()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *jsonOut {
		out := make([]displayJSON, 0, len(displays))
		for _, d := range displays {
			out = append(out, toDisplayJSON(d, d.ID == primary.ID))
		}
		return encodeJSON(out)
	}

	fmt.Printf("backend: %s\n", handle.name)
	for _, d := range displays {
		marker := " "
		if d.ID == primary.ID {
			marker = "*"
		}
		fmt.Printf("%s %d %-12s bounds=%d,%d %dx%d work=%d,%d %dx%d\n",
			marker, d.ID, d.Name,
			d.Bounds.X, d.Bounds.Y, d.Bounds.Width, d.Bounds.Height,
			d.WorkArea.X, d.WorkArea.Y, d.WorkArea.Width, d.WorkArea.Height)
	}
	return 0
}

func runDisplaysPrimary(args []string) int {
	fs := flag.NewFlagSet("primary", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: sheen displays primary [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the platform's designated primary display.")
	}
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "displays primary takes no arguments")
		fs.Usage()
		return 2
	}

	handle, err := openFromConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer handle.Close()

	d, err := handle.resolver.PrimaryDisplay()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return printDisplay(d, true, *jsonOut)
}

func runDisplaysAtPoint(args []string) int {
	fs := flag.NewFlagSet("at-point", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: sheen displays at-point [--json] <x> <y>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Resolve the display containing a point, or the nearest by center distance.")
	}
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "displays at-point requires <x> <y>")
		fs.Usage()
		return 2
	}

	x, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid x %q\n", fs.Arg(0))
		return 2
	}
	y, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid y %q\n", fs.Arg(1))
		return 2
	}

	handle, err := openFromConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer handle.Close()

	d, err := handle.resolver.DisplayNearestPoint(display.Point{X: x, Y: y})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return printResolvedDisplay(handle.resolver, d, *jsonOut)
}

func runDisplaysNearestWindow(args []string) int {
	fs := flag.NewFlagSet("nearest-window", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: sheen displays nearest-window [--json] <window-id>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Resolve the display containing a window's center. Accepts decimal or 0x hex")
		fmt.Fprintln(os.Stderr, "ids; 0 falls back to the default display.")
	}
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "displays nearest-window requires <window-id>")
		fs.Usage()
		return 2
	}

	win, err := strconv.ParseUint(fs.Arg(0), 0, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid window id %q\n", fs.Arg(0))
		return 2
	}

	handle, err := openFromConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer handle.Close()

	d, err := handle.resolver.DisplayNearestWindow(display.WindowID(win))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return printResolvedDisplay(handle.resolver, d, *jsonOut)
}

func runDisplaysMatching(args []string) int {
	fs := flag.NewFlagSet("matching", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: sheen displays matching [--json] <x> <y> <width> <height>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Resolve a display for a candidate rect. Always returns the primary display.")
	}
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 4 {
		fmt.Fprintln(os.Stderr, "displays matching requires <x> <y> <width> <height>")
		fs.Usage()
		return 2
	}

	vals := make([]int, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.Atoi(fs.Arg(i))
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid value %q\n", fs.Arg(i))
			return 2
		}
		vals[i] = v
	}

	handle, err := openFromConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer handle.Close()

	d, err := handle.resolver.DisplayMatching(display.Rect{
		X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3],
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return printResolvedDisplay(handle.resolver, d, *jsonOut)
}

func runDisplaysUnderPointer(args []string) int {
	fs := flag.NewFlagSet("under-pointer", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: sheen displays under-pointer [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Resolve the display containing the mouse pointer. Requires the X11 backend.")
	}
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "displays under-pointer takes no arguments")
		fs.Usage()
		return 2
	}

	handle, err := openFromConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer handle.Close()

	pr, ok := handle.resolver.(pointerResolver)
	if !ok {
		fmt.Fprintf(os.Stderr, "backend %s cannot query the pointer\n", handle.name)
		return 1
	}

	d, err := pr.DisplayUnderPointer()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return printResolvedDisplay(handle.resolver, d, *jsonOut)
}

// pointerResolver is the optional pointer-query capability; only the
// X11 backend provides it.
type pointerResolver interface {
	DisplayUnderPointer() (display.Display, error)
}

// printResolvedDisplay prints one display, marking it primary when it
// is the resolver's primary.
func printResolvedDisplay(r display.Resolver, d display.Display, jsonOut bool) int {
	primary := false
	if p, err := r.PrimaryDisplay(); err == nil {
		primary = d.ID == p.ID
	}
	return printDisplay(d, primary, jsonOut)
}

func printDisplay(d display.Display, primary bool, jsonOut bool) int {
	if jsonOut {
		return encodeJSON(toDisplayJSON(d, primary))
	}
	fmt.Printf("id:       %d\n", d.ID)
	fmt.Printf("name:     %s\n", d.Name)
	fmt.Printf("bounds:   %d,%d %dx%d\n", d.Bounds.X, d.Bounds.Y, d.Bounds.Width, d.Bounds.Height)
	fmt.Printf("work:     %d,%d %dx%d\n", d.WorkArea.X, d.WorkArea.Y, d.WorkArea.Width, d.WorkArea.Height)
	fmt.Printf("primary:  %v\n", primary)
	return 0
}

func encodeJSON(v interface{}) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
