package mcp

import (
	"context"
	"testing"

	"github.com/sheen-dev/sheen/internal/display"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	resolver, err := display.NewStaticResolver([]display.Display{
		{Name: "DP-1", Bounds: display.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}},
		{Name: "DP-2", Bounds: display.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}},
	}, 0)
	if err != nil {
		t.Fatalf("failed to build resolver: %v", err)
	}
	return NewServer("static", resolver)
}

func TestHandleListDisplays(t *testing.T) {
	s := testServer(t)

	_, out, err := s.handleListDisplays(context.Background(), nil, ListDisplaysInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Backend != "static" || len(out.Displays) != 2 {
		t.Fatalf("unexpected output: %+v", out)
	}
	if !out.Displays[0].Primary || out.Displays[1].Primary {
		t.Fatalf("primary flags wrong: %+v", out.Displays)
	}
}

func TestHandleDisplayAtPoint(t *testing.T) {
	s := testServer(t)

	_, out, err := s.handleDisplayAtPoint(context.Background(), nil, DisplayAtPointInput{X: 2000, Y: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Display.Name != "DP-2" {
		t.Fatalf("expected DP-2, got %+v", out.Display)
	}
}

func TestHandleDisplayMatchingRect_ReturnsPrimary(t *testing.T) {
	s := testServer(t)

	// Rect fully on the second display; the documented approximation
	// still returns the primary.
	_, out, err := s.handleDisplayMatchingRect(context.Background(), nil, DisplayMatchingRectInput{
		X: 2000, Y: 100, Width: 300, Height: 300,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Display.Name != "DP-1" || !out.Display.Primary {
		t.Fatalf("expected primary DP-1, got %+v", out.Display)
	}
}

func TestHandleComputeDrawableRect(t *testing.T) {
	s := testServer(t)

	sceneYAML := `
layers:
  - name: mirrored
    content_rect: {x: 0, y: 0, width: 100, height: 100}
    replica:
      - op: translate
        args: [200, 0]
`
	_, out, err := s.handleComputeDrawableRect(context.Background(), nil, ComputeDrawableRectInput{Scene: sceneYAML})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Surfaces) != 1 {
		t.Fatalf("expected 1 surface, got %d", len(out.Surfaces))
	}
	got := out.Surfaces[0]
	if got.X != 0 || got.Y != 0 || got.Width != 300 || got.Height != 100 {
		t.Fatalf("unexpected rect: %+v", got)
	}
	if got.Empty {
		t.Fatalf("rect should not be empty")
	}
}

func TestHandleComputeDrawableRect_BadScene(t *testing.T) {
	s := testServer(t)

	_, _, err := s.handleComputeDrawableRect(context.Background(), nil, ComputeDrawableRectInput{Scene: "layers: []"})
	if err == nil {
		t.Fatalf("expected error for empty scene")
	}
}
