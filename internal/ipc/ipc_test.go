package ipc

import (
	"testing"

	"github.com/sheen-dev/sheen/internal/display"
	"github.com/sheen-dev/sheen/internal/logging"
)

func startTestServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	resolver, err := display.NewStaticResolver([]display.Display{
		{Name: "DP-1", Bounds: display.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}},
		{Name: "DP-2", Bounds: display.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}},
	}, 0)
	if err != nil {
		t.Fatalf("failed to build resolver: %v", err)
	}

	queryLog, err := logging.New(logging.Config{Enabled: false})
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}

	server, err := NewServer("static", resolver, queryLog, nil)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	if err := server.Start(); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}
	t.Cleanup(server.Stop)
	return server
}

func TestClientServer_GetStatus(t *testing.T) {
	startTestServer(t)

	status, err := NewClient().GetStatus()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status.DaemonRunning {
		t.Fatalf("expected running daemon")
	}
	if status.Backend != "static" || status.DisplayCount != 2 {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestClientServer_GetDisplays(t *testing.T) {
	startTestServer(t)

	displays, err := NewClient().GetDisplays()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(displays) != 2 {
		t.Fatalf("expected 2 displays, got %d", len(displays))
	}
	if !displays[0].Primary || displays[1].Primary {
		t.Fatalf("primary flag wrong: %+v", displays)
	}
	if displays[1].X != 1920 || displays[1].Width != 1920 {
		t.Fatalf("unexpected geometry: %+v", displays[1])
	}
}

func TestClientServer_DisplayAtPoint(t *testing.T) {
	startTestServer(t)

	info, err := NewClient().DisplayAtPoint(2000, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name != "DP-2" {
		t.Fatalf("expected DP-2, got %+v", info)
	}
}

func TestClientServer_DisplayNearestWindow(t *testing.T) {
	startTestServer(t)

	// The static backend has no window system; any id falls back to
	// the default display.
	info, err := NewClient().DisplayNearestWindow(0x1234)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name != "DP-1" {
		t.Fatalf("expected default display DP-1, got %+v", info)
	}
}

func TestClientServer_DisplayMatching(t *testing.T) {
	startTestServer(t)

	// Matching always resolves to the primary, even for a rect on the
	// second display.
	info, err := NewClient().DisplayMatching(2000, 100, 300, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name != "DP-1" || !info.Primary {
		t.Fatalf("expected primary DP-1, got %+v", info)
	}
}

func TestClientServer_ReloadUnsupported(t *testing.T) {
	startTestServer(t)

	if err := NewClient().Reload(); err == nil {
		t.Fatalf("expected error when reload channel is absent")
	}
}

func TestParseRequest_Invalid(t *testing.T) {
	if _, err := ParseRequest([]byte("{not json")); err == nil {
		t.Fatalf("expected parse error")
	}
}
