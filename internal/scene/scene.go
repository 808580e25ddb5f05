// Package scene loads declarative layer descriptions and turns them
// into a layer tree whose drawable content rects can be reported.
// Scene files are the offline counterpart of a layout pass: they
// supply the content rects and draw transforms a compositor would
// compute per frame.
package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sheen-dev/sheen/internal/compositor"
	"github.com/sheen-dev/sheen/internal/geometry"
	"github.com/sheen-dev/sheen/internal/transform"
)

// RectSpec is a rectangle in a scene file.
type RectSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// OpSpec is one transform operation. Ops listed on a layer apply in
// order: the first op maps content first, later ops map its result.
type OpSpec struct {
	Op   string    `yaml:"op"`
	Args []float64 `yaml:"args"`
}

// LayerSpec describes one layer in a scene file.
type LayerSpec struct {
	Name        string   `yaml:"name"`
	ContentRect RectSpec `yaml:"content_rect"`
	Opacity     *float64 `yaml:"opacity,omitempty"`
	Transform   []OpSpec `yaml:"transform,omitempty"`
	Replica     []OpSpec `yaml:"replica,omitempty"`
}

// Scene is a parsed scene document.
type Scene struct {
	Layers []LayerSpec `yaml:"layers"`
}

// SurfaceReport is the computed geometry for one layer's surface.
type SurfaceReport struct {
	Name         string
	DrawableRect geometry.Rect
	Opacity      float64
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene %s: %w", path, err)
	}
	scene, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid scene %s: %w", path, err)
	}
	return scene, nil
}

// Parse parses a scene document from YAML bytes.
func Parse(data []byte) (*Scene, error) {
	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	if len(scene.Layers) == 0 {
		return nil, fmt.Errorf("scene has no layers")
	}
	for i, layer := range scene.Layers {
		if layer.Name == "" {
			scene.Layers[i].Name = fmt.Sprintf("layer%d", i)
		}
		if layer.Opacity != nil && (*layer.Opacity < 0 || *layer.Opacity > 1) {
			return nil, fmt.Errorf("layer %q: opacity %v outside [0, 1]", scene.Layers[i].Name, *layer.Opacity)
		}
	}
	return &scene, nil
}

// Build constructs the layer tree and computes every surface's
// drawable content rect in scene order.
func (s *Scene) Build() (*compositor.LayerTree, []SurfaceReport, error) {
	tree := compositor.NewLayerTree()
	reports := make([]SurfaceReport, 0, len(s.Layers))

	for _, spec := range s.Layers {
		drawTransform, err := compileOps(spec.Transform)
		if err != nil {
			return nil, nil, fmt.Errorf("layer %q: %w", spec.Name, err)
		}

		id := tree.CreateLayer(spec.Name)
		layer, _ := tree.Layer(id)
		surface := layer.Surface()

		surface.SetContentRect(geometry.Rect{
			X:      spec.ContentRect.X,
			Y:      spec.ContentRect.Y,
			Width:  spec.ContentRect.Width,
			Height: spec.ContentRect.Height,
		})
		surface.SetDrawTransform(drawTransform)

		if spec.Opacity != nil {
			surface.SetDrawOpacity(*spec.Opacity)
		}

		if len(spec.Replica) > 0 {
			replicaTransform, err := compileOps(spec.Replica)
			if err != nil {
				return nil, nil, fmt.Errorf("layer %q replica: %w", spec.Name, err)
			}
			layer.SetReplica(true)
			surface.SetReplicaDrawTransform(replicaTransform)
		}

		reports = append(reports, SurfaceReport{
			Name:         spec.Name,
			DrawableRect: surface.DrawableContentRect(),
			Opacity:      surface.DrawOpacity(),
		})
	}

	return tree, reports, nil
}

// compileOps folds an op list into a single transform. No ops means
// the identity transform: a scene layer with no transform draws in
// place, unlike a raw surface whose transforms were never set.
func compileOps(ops []OpSpec) (transform.Transform, error) {
	result := transform.Identity()
	for _, op := range ops {
		m, err := compileOp(op)
		if err != nil {
			return transform.Transform{}, err
		}
		// Later ops apply after earlier ones.
		result = m.Mul(result)
	}
	return result, nil
}

func compileOp(op OpSpec) (transform.Transform, error) {
	switch op.Op {
	case "translate":
		if len(op.Args) != 2 {
			return transform.Transform{}, fmt.Errorf("translate wants 2 args, got %d", len(op.Args))
		}
		return transform.Translate(op.Args[0], op.Args[1]), nil

	case "scale":
		if len(op.Args) != 2 {
			return transform.Transform{}, fmt.Errorf("scale wants 2 args, got %d", len(op.Args))
		}
		return transform.Scale(op.Args[0], op.Args[1]), nil

	case "rotate":
		if len(op.Args) != 1 {
			return transform.Transform{}, fmt.Errorf("rotate wants 1 arg, got %d", len(op.Args))
		}
		return transform.Rotate(op.Args[0]), nil

	case "perspective":
		if len(op.Args) != 2 {
			return transform.Transform{}, fmt.Errorf("perspective wants 2 args, got %d", len(op.Args))
		}
		return transform.Perspective(op.Args[0], op.Args[1]), nil

	case "matrix":
		if len(op.Args) != 9 {
			return transform.Transform{}, fmt.Errorf("matrix wants 9 args, got %d", len(op.Args))
		}
		a := op.Args
		return transform.Transform{
			M00: a[0], M01: a[1], M02: a[2],
			M10: a[3], M11: a[4], M12: a[5],
			M20: a[6], M21: a[7], M22: a[8],
		}, nil

	default:
		return transform.Transform{}, fmt.Errorf("unknown transform op %q", op.Op)
	}
}
