package display

import "testing"

func twoDisplayResolver(t *testing.T) *StaticResolver {
	t.Helper()
	r, err := NewStaticResolver([]Display{
		{Name: "DP-1", Bounds: Rect{X: 0, Y: 0, Width: 1920, Height: 1080}},
		{Name: "DP-2", Bounds: Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}},
	}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}

func TestDisplayNearestPoint_Containment(t *testing.T) {
	r := twoDisplayResolver(t)

	d, err := r.DisplayNearestPoint(Point{X: 2000, Y: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID != 1 {
		t.Fatalf("expected second display, got %+v", d)
	}

	d, err = r.DisplayNearestPoint(Point{X: 100, Y: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID != 0 {
		t.Fatalf("expected first display, got %+v", d)
	}
}

func TestDisplayNearestPoint_EveryContainedPointResolves(t *testing.T) {
	r := twoDisplayResolver(t)
	displays, err := r.AllDisplays()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, d := range displays {
		center := Point{X: d.Bounds.X + d.Bounds.Width/2, Y: d.Bounds.Y + d.Bounds.Height/2}
		got, err := r.DisplayNearestPoint(center)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != d.ID {
			t.Fatalf("center of display %d resolved to %d", d.ID, got.ID)
		}
	}
}

func TestDisplayNearestPoint_OutsideAllBoundsNeverFails(t *testing.T) {
	r := twoDisplayResolver(t)

	d, err := r.DisplayNearestPoint(Point{X: -5000, Y: -5000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID != 0 {
		t.Fatalf("expected nearest display 0, got %+v", d)
	}

	d, err = r.DisplayNearestPoint(Point{X: 10000, Y: 500})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID != 1 {
		t.Fatalf("expected nearest display 1, got %+v", d)
	}
}

func TestDisplayMatching_ReturnsPrimary(t *testing.T) {
	r, err := NewStaticResolver([]Display{
		{Name: "DP-1", Bounds: Rect{X: 0, Y: 0, Width: 1920, Height: 1080}},
		{Name: "DP-2", Bounds: Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}},
	}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Rect fully on display 0; the approximation still returns the
	// primary.
	d, err := r.DisplayMatching(Rect{X: 100, Y: 100, Width: 200, Height: 200})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID != 1 {
		t.Fatalf("expected primary display, got %+v", d)
	}
}

func TestPrimaryDisplay_WorkAreaWithinBounds(t *testing.T) {
	r, err := NewStaticResolver([]Display{
		{
			Name:     "DP-1",
			Bounds:   Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
			WorkArea: Rect{X: 0, Y: 30, Width: 1920, Height: 1050},
		},
	}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d, err := r.PrimaryDisplay()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.WorkArea.Intersect(d.Bounds) != d.WorkArea {
		t.Fatalf("work area %+v extends outside bounds %+v", d.WorkArea, d.Bounds)
	}
}

func TestStaticResolver_WorkAreaDefaultsToBounds(t *testing.T) {
	r := twoDisplayResolver(t)

	displays, err := r.AllDisplays()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, d := range displays {
		if d.WorkArea != d.Bounds {
			t.Fatalf("display %d work area %+v != bounds %+v", d.ID, d.WorkArea, d.Bounds)
		}
	}
}

func TestDisplayNearestWindow_FallsBackToDefault(t *testing.T) {
	r := twoDisplayResolver(t)

	d, err := r.DisplayNearestWindow(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID != 0 {
		t.Fatalf("expected default display, got %+v", d)
	}
}

func TestNewStaticResolver_RequiresDisplays(t *testing.T) {
	if _, err := NewStaticResolver(nil, 0); err == nil {
		t.Fatalf("expected error for empty display list")
	}
}
