package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sheen-dev/sheen/internal/display"
)

const (
	ServerName    = "sheen"
	ServerVersion = "0.1.0"
)

// Server exposes display geometry and surface computation as MCP
// tools over stdio. All display tools delegate straight to the
// resolver, so results always reflect live platform state.
type Server struct {
	mcpServer *mcpsdk.Server
	backend   string
	resolver  display.Resolver
}

// NewServer creates an MCP server around a resolver.
func NewServer(backend string, resolver display.Resolver) *Server {
	s := &Server{
		backend:  backend,
		resolver: resolver,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_displays",
		Description: "List all connected displays with bounds and work areas, in platform enumeration order. Work areas differ from bounds only on the primary display and only when the window manager exposes one.",
	}, s.handleListDisplays)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "display_at_point",
		Description: "Resolve the display containing a screen point, falling back to the nearest display by center distance. Never fails while at least one display is connected.",
	}, s.handleDisplayAtPoint)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "display_nearest_window",
		Description: "Resolve the display containing an X11 window's center. A zero or unresolvable window id falls back to the default display.",
	}, s.handleDisplayNearestWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "primary_display",
		Description: "Return the platform's designated primary display, with its work area narrowed by the window manager's reserved chrome when available.",
	}, s.handlePrimaryDisplay)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "display_matching_rect",
		Description: "Resolve a display for a candidate rect. Always returns the primary display; this mirrors the platform layer's documented approximation rather than computing true maximal overlap.",
	}, s.handleDisplayMatchingRect)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "compute_drawable_rect",
		Description: "Compute drawable content rects for a YAML scene: per layer, the bounding box of the transform-mapped content rect unioned with the replica-mapped rect when a replica op list is present. Perspective transforms clip at the plane at infinity.",
	}, s.handleComputeDrawableRect)
}
