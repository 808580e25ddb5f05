package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sheen-dev/sheen/internal/scene"
)

func printSurfaceUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  sheen surface compute [--json] <scene.yaml>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'sheen surface <command> --help' for command-specific options.")
}

func runSurface(args []string) int {
	if len(args) == 0 {
		printSurfaceUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printSurfaceUsage(os.Stdout)
		return 0
	}

	switch args[0] {
	case "compute":
		return runSurfaceCompute(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown surface command: %s\n\n", args[0])
		printSurfaceUsage(os.Stderr)
		return 2
	}
}

type surfaceJSON struct {
	Name    string  `json:"name"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Opacity float64 `json:"opacity"`
	Empty   bool    `json:"empty"`
}

func runSurfaceCompute(args []string) int {
	fs := flag.NewFlagSet("compute", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: sheen surface compute [--json] <scene.yaml>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Compute each layer's drawable content rect: the bounding box of the")
		fmt.Fprintln(os.Stderr, "transform-mapped content rect, unioned with the replica-mapped rect when")
		fmt.Fprintln(os.Stderr, "the layer declares a replica.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	jsonOut := fs.Bool("json", false, "Output surface rects as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "surface compute requires <scene.yaml>")
		fs.Usage()
		return 2
	}

	doc, err := scene.Load(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	_, reports, err := doc.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *jsonOut {
		out := make([]surfaceJSON, 0, len(reports))
		for _, r := range reports {
			out = append(out, surfaceJSON{
				Name:    r.Name,
				X:       r.DrawableRect.X,
				Y:       r.DrawableRect.Y,
				Width:   r.DrawableRect.Width,
				Height:  r.DrawableRect.Height,
				Opacity: r.Opacity,
				Empty:   r.DrawableRect.IsEmpty(),
			})
		}
		return encodeJSON(out)
	}

	for _, r := range reports {
		if r.DrawableRect.IsEmpty() {
			fmt.Printf("%-16s empty (opacity %g)\n", r.Name, r.Opacity)
			continue
		}
		fmt.Printf("%-16s x=%g y=%g w=%g h=%g (opacity %g)\n",
			r.Name, r.DrawableRect.X, r.DrawableRect.Y,
			r.DrawableRect.Width, r.DrawableRect.Height, r.Opacity)
	}
	return 0
}
