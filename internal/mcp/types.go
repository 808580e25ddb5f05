package mcp

// DisplayInfo describes one display in tool output.
type DisplayInfo struct {
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

// ListDisplaysInput is the input for the list_displays tool.
type ListDisplaysInput struct{}

// ListDisplaysOutput is the output for the list_displays tool.
type ListDisplaysOutput struct {
	Backend  string        `json:"backend"`
	Displays []DisplayInfo `json:"displays"`
}

// DisplayAtPointInput is the input for the display_at_point tool.
type DisplayAtPointInput struct {
	X int `json:"x" jsonschema:"required,Screen x coordinate"`
	Y int `json:"y" jsonschema:"required,Screen y coordinate"`
}

// DisplayNearestWindowInput is the input for the
// display_nearest_window tool.
type DisplayNearestWindowInput struct {
	Window uint32 `json:"window,omitempty" jsonschema:"X11 window id; 0 or omitted falls back to the default display"`
}

// PrimaryDisplayInput is the input for the primary_display tool.
type PrimaryDisplayInput struct{}

// DisplayMatchingRectInput is the input for the display_matching_rect
// tool.
type DisplayMatchingRectInput struct {
	X      int `json:"x" jsonschema:"required,Rect x coordinate"`
	Y      int `json:"y" jsonschema:"required,Rect y coordinate"`
	Width  int `json:"width" jsonschema:"required,Rect width"`
	Height int `json:"height" jsonschema:"required,Rect height"`
}

// DisplayOutput is the output for the single-display tools.
type DisplayOutput struct {
	Display DisplayInfo `json:"display"`
}

// ComputeDrawableRectInput is the input for the compute_drawable_rect
// tool.
type ComputeDrawableRectInput struct {
	Scene string `json:"scene" jsonschema:"required,YAML scene document: a list of layers with content_rect and transform/replica op lists"`
}

// SurfaceRect is the computed drawable content rect for one layer.
type SurfaceRect struct {
	Name    string  `json:"name"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Opacity float64 `json:"opacity"`
	Empty   bool    `json:"empty"`
}

// ComputeDrawableRectOutput is the output for the
// compute_drawable_rect tool.
type ComputeDrawableRectOutput struct {
	Surfaces []SurfaceRect `json:"surfaces"`
}
