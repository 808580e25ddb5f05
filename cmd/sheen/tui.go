package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sheen-dev/sheen/internal/tui"
)

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: sheen tui")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactive display inspector: a scaled map of the current display")
		fmt.Fprintln(os.Stderr, "arrangement with a movable probe point showing nearest-display resolution.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  h/j/k/l, arrows  Move the probe point")
		fmt.Fprintln(os.Stderr, "  r                Re-query the display backend")
		fmt.Fprintln(os.Stderr, "  q, Esc           Quit")
		fmt.Fprintln(os.Stderr, "  Ctrl+C           Quit")
		return 0
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	handle, err := openFromConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer handle.Close()

	t := tui.New(handle.name, handle.resolver)
	if err := t.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
