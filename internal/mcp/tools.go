package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sheen-dev/sheen/internal/display"
	"github.com/sheen-dev/sheen/internal/scene"
)

func (s *Server) handleListDisplays(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListDisplaysInput) (*mcpsdk.CallToolResult, ListDisplaysOutput, error) {
	displays, err := s.resolver.AllDisplays()
	if err != nil {
		return nil, ListDisplaysOutput{}, fmt.Errorf("display enumeration failed: %w", err)
	}
	primary, err := s.resolver.PrimaryDisplay()
	if err != nil {
		return nil, ListDisplaysOutput{}, fmt.Errorf("primary display lookup failed: %w", err)
	}

	out := ListDisplaysOutput{Backend: s.backend}
	for _, d := range displays {
		out.Displays = append(out.Displays, toDisplayInfo(d, d.ID == primary.ID))
	}
	return nil, out, nil
}

func (s *Server) handleDisplayAtPoint(_ context.Context, _ *mcpsdk.CallToolRequest, args DisplayAtPointInput) (*mcpsdk.CallToolResult, DisplayOutput, error) {
	d, err := s.resolver.DisplayNearestPoint(display.Point{X: args.X, Y: args.Y})
	if err != nil {
		return nil, DisplayOutput{}, fmt.Errorf("point resolution failed: %w", err)
	}
	return nil, DisplayOutput{Display: s.markPrimary(d)}, nil
}

func (s *Server) handleDisplayNearestWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args DisplayNearestWindowInput) (*mcpsdk.CallToolResult, DisplayOutput, error) {
	d, err := s.resolver.DisplayNearestWindow(display.WindowID(args.Window))
	if err != nil {
		return nil, DisplayOutput{}, fmt.Errorf("window resolution failed: %w", err)
	}
	return nil, DisplayOutput{Display: s.markPrimary(d)}, nil
}

func (s *Server) handlePrimaryDisplay(_ context.Context, _ *mcpsdk.CallToolRequest, _ PrimaryDisplayInput) (*mcpsdk.CallToolResult, DisplayOutput, error) {
	d, err := s.resolver.PrimaryDisplay()
	if err != nil {
		return nil, DisplayOutput{}, fmt.Errorf("primary display lookup failed: %w", err)
	}
	return nil, DisplayOutput{Display: toDisplayInfo(d, true)}, nil
}

func (s *Server) handleDisplayMatchingRect(_ context.Context, _ *mcpsdk.CallToolRequest, args DisplayMatchingRectInput) (*mcpsdk.CallToolResult, DisplayOutput, error) {
	d, err := s.resolver.DisplayMatching(display.Rect{
		X:      args.X,
		Y:      args.Y,
		Width:  args.Width,
		Height: args.Height,
	})
	if err != nil {
		return nil, DisplayOutput{}, fmt.Errorf("rect resolution failed: %w", err)
	}
	return nil, DisplayOutput{Display: s.markPrimary(d)}, nil
}

func (s *Server) handleComputeDrawableRect(_ context.Context, _ *mcpsdk.CallToolRequest, args ComputeDrawableRectInput) (*mcpsdk.CallToolResult, ComputeDrawableRectOutput, error) {
	parsed, err := scene.Parse([]byte(args.Scene))
	if err != nil {
		return nil, ComputeDrawableRectOutput{}, err
	}

	_, reports, err := parsed.Build()
	if err != nil {
		return nil, ComputeDrawableRectOutput{}, err
	}

	out := ComputeDrawableRectOutput{}
	for _, report := range reports {
		out.Surfaces = append(out.Surfaces, SurfaceRect{
			Name:    report.Name,
			X:       report.DrawableRect.X,
			Y:       report.DrawableRect.Y,
			Width:   report.DrawableRect.Width,
			Height:  report.DrawableRect.Height,
			Opacity: report.Opacity,
			Empty:   report.DrawableRect.IsEmpty(),
		})
	}
	return nil, out, nil
}

// markPrimary fills the Primary flag by comparing against the
// resolver's primary display; lookup failures leave it false rather
// than failing the whole query.
func (s *Server) markPrimary(d display.Display) DisplayInfo {
	primary, err := s.resolver.PrimaryDisplay()
	return toDisplayInfo(d, err == nil && d.ID == primary.ID)
}

func toDisplayInfo(d display.Display, primary bool) DisplayInfo {
	return DisplayInfo{
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
