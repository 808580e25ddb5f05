package daemon

import (
	"context"
	"testing"
	"time"

	"github.com/sheen-dev/sheen/internal/display"
	"github.com/sheen-dev/sheen/internal/ipc"
	"github.com/sheen-dev/sheen/internal/logging"
)

func testResolver(t *testing.T, names ...string) *display.StaticResolver {
	t.Helper()
	var displays []display.Display
	for i, name := range names {
		displays = append(displays, display.Display{
			Name:   name,
			Bounds: display.Rect{X: i * 1920, Y: 0, Width: 1920, Height: 1080},
		})
	}
	r, err := display.NewStaticResolver(displays, 0)
	if err != nil {
		t.Fatalf("failed to build resolver: %v", err)
	}
	return r
}

func waitForStatus(t *testing.T) *ipc.StatusData {
	t.Helper()
	client := ipc.NewClient()
	var lastErr error
	for i := 0; i < 50; i++ {
		status, err := client.GetStatus()
		if err == nil {
			return status
		}
		lastErr = err
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("daemon never became reachable: %v", lastErr)
	return nil
}

func TestDaemon_ServesStatus(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	queryLog, err := logging.New(logging.Config{Enabled: false})
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}

	d, err := New(Options{
		Backend:  "static",
		Resolver: testResolver(t, "DP-1", "DP-2"),
		QueryLog: queryLog,
	})
	if err != nil {
		t.Fatalf("failed to create daemon: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	status := waitForStatus(t)
	if status.Backend != "static" || status.DisplayCount != 2 {
		t.Fatalf("unexpected status: %+v", status)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("daemon run failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("daemon did not stop")
	}
}

func TestDaemon_ReloadSwapsResolver(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	queryLog, err := logging.New(logging.Config{Enabled: false})
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}

	d, err := New(Options{
		Backend:  "static",
		Resolver: testResolver(t, "DP-1"),
		QueryLog: queryLog,
		Reopen: func() (string, display.Resolver, error) {
			return "static-reloaded", testResolver(t, "DP-1", "DP-2", "DP-3"), nil
		},
	})
	if err != nil {
		t.Fatalf("failed to create daemon: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	if status := waitForStatus(t); status.DisplayCount != 1 {
		t.Fatalf("unexpected initial status: %+v", status)
	}

	client := ipc.NewClient()
	if err := client.Reload(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	// The reload is applied asynchronously by the daemon loop.
	deadline := time.Now().Add(2 * time.Second)
	for {
		status, err := client.GetStatus()
		if err == nil && status.DisplayCount == 3 && status.Backend == "static-reloaded" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("reload never took effect: %+v (err=%v)", status, err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestNew_RequiresResolver(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatalf("expected error without resolver")
	}
}
