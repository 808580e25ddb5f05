package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sheen-dev/sheen/internal/ipc"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: sheen daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: sheen daemon")
			os.Exit(2)
		}
		os.Exit(runDaemon())
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "displays":
		os.Exit(runDisplays(os.Args[2:]))
	case "surface":
		os.Exit(runSurface(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sheen <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon                   Start the display query daemon (foreground)")
	fmt.Fprintln(w, "  status                   Show daemon status")
	fmt.Fprintln(w, "  reload                   Ask the daemon to reload its configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  displays list            List connected displays")
	fmt.Fprintln(w, "  displays primary         Show the primary display")
	fmt.Fprintln(w, "  displays at-point        Resolve the display nearest a point")
	fmt.Fprintln(w, "  displays nearest-window  Resolve the display under a window")
	fmt.Fprintln(w, "  displays matching        Resolve a display for a rect")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  surface compute          Compute drawable content rects for a scene")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate          Validate configuration")
	fmt.Fprintln(w, "  config print             Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                      Open the interactive display inspector")
	fmt.Fprintln(w, "  mcp serve                Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'sheen <command> --help' for command-specific options.")
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: sheen status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running: %v\n", status.DaemonRunning)
	fmt.Printf("backend:        %s\n", status.Backend)
	fmt.Printf("display_count:  %d\n", status.DisplayCount)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}

func runReload(args []string) int {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: sheen reload")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Reload the daemon's configuration and reopen its display backend.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "reload takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := client.Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
