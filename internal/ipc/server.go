package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/sheen-dev/sheen/internal/display"
	"github.com/sheen-dev/sheen/internal/logging"
	"github.com/sheen-dev/sheen/internal/runtimepath"
)

// Server handles IPC requests from clients. It answers every display
// query by delegating to the resolver at request time; the server
// itself caches nothing.
type Server struct {
	socketPath   string
	listener     net.Listener
	backendName  string
	resolver     display.Resolver
	resolverMu   sync.RWMutex
	queryLog     *logging.Logger
	startTime    time.Time
	reloadChan   chan struct{}
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server around a resolver. reloadChan
// may be nil when reload is unsupported.
func NewServer(backendName string, resolver display.Resolver, queryLog *logging.Logger, reloadChan chan struct{}) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present.
	os.Remove(socketPath)

	return &Server{
		socketPath:  socketPath,
		backendName: backendName,
		resolver:    resolver,
		queryLog:    queryLog,
		startTime:   time.Now(),
		reloadChan:  reloadChan,
	}, nil
}

// SetResolver swaps the resolver, used after a config reload.
func (s *Server) SetResolver(backendName string, resolver display.Resolver) {
	s.resolverMu.Lock()
	defer s.resolverMu.Unlock()
	s.backendName = backendName
	s.resolver = resolver
}

func (s *Server) currentResolver() (string, display.Resolver) {
	s.resolverMu.RLock()
	defer s.resolverMu.RUnlock()
	return s.backendName, s.resolver
}

// Start begins listening for IPC connections.
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()

	return nil
}

// Stop shuts the server down and removes the socket.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection serves a single request/response exchange.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

func (s *Server) sendError(conn net.Conn, msg string) {
	resp := NewErrorResponse(msg)
	if data, err := resp.Marshal(); err == nil {
		conn.Write(append(data, '\n'))
	}
}

func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetDisplays:
		return s.handleGetDisplays()
	case CommandGetPrimary:
		return s.handleGetPrimary()
	case CommandDisplayAtPoint:
		return s.handleDisplayAtPoint(req.Payload)
	case CommandDisplayNearestWindow:
		return s.handleDisplayNearestWindow(req.Payload)
	case CommandDisplayMatching:
		return s.handleDisplayMatching(req.Payload)
	case CommandReload:
		return s.handleReload()
	default:
		return NewErrorResponse(fmt.Sprintf("unknown command: %s", req.Command))
	}
}

func (s *Server) handleGetStatus() *Response {
	backend, resolver := s.currentResolver()

	count, err := resolver.DisplayCount()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("display count failed: %v", err))
	}

	s.queryLog.Log(logging.EventStatus, map[string]interface{}{"displays": count})

	resp, err := NewOKResponse(StatusData{
		Backend:       backend,
		DisplayCount:  count,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		DaemonRunning: true,
	})
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleGetDisplays() *Response {
	_, resolver := s.currentResolver()

	displays, err := resolver.AllDisplays()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("display enumeration failed: %v", err))
	}
	primary, err := resolver.PrimaryDisplay()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("primary display failed: %v", err))
	}

	s.queryLog.Log(logging.EventDisplays, map[string]interface{}{"count": len(displays)})

	resp, err := NewOKResponse(DisplaysData{Displays: toDisplayInfos(displays, primary.ID)})
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleGetPrimary() *Response {
	_, resolver := s.currentResolver()

	primary, err := resolver.PrimaryDisplay()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("primary display failed: %v", err))
	}

	s.queryLog.Log(logging.EventPrimary, map[string]interface{}{"display": primary.Name})

	resp, err := NewOKResponse(toDisplayInfo(primary, true))
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleDisplayAtPoint(payload json.RawMessage) *Response {
	var point PointPayload
	if err := json.Unmarshal(payload, &point); err != nil {
		return NewErrorResponse(fmt.Sprintf("invalid point payload: %v", err))
	}

	_, resolver := s.currentResolver()

	d, err := resolver.DisplayNearestPoint(display.Point{X: point.X, Y: point.Y})
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("point resolution failed: %v", err))
	}
	primary, err := resolver.PrimaryDisplay()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("primary display failed: %v", err))
	}

	s.queryLog.Log(logging.EventPoint, map[string]interface{}{
		"x":       point.X,
		"y":       point.Y,
		"display": d.Name,
	})

	resp, err := NewOKResponse(toDisplayInfo(d, d.ID == primary.ID))
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleDisplayNearestWindow(payload json.RawMessage) *Response {
	var win WindowPayload
	if err := json.Unmarshal(payload, &win); err != nil {
		return NewErrorResponse(fmt.Sprintf("invalid window payload: %v", err))
	}

	_, resolver := s.currentResolver()

	d, err := resolver.DisplayNearestWindow(display.WindowID(win.Window))
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("window resolution failed: %v", err))
	}
	primary, err := resolver.PrimaryDisplay()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("primary display failed: %v", err))
	}

	s.queryLog.Log(logging.EventWindow, map[string]interface{}{
		"window":  win.Window,
		"display": d.Name,
	})

	resp, err := NewOKResponse(toDisplayInfo(d, d.ID == primary.ID))
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleDisplayMatching(payload json.RawMessage) *Response {
	var rect RectPayload
	if err := json.Unmarshal(payload, &rect); err != nil {
		return NewErrorResponse(fmt.Sprintf("invalid rect payload: %v", err))
	}

	_, resolver := s.currentResolver()

	d, err := resolver.DisplayMatching(display.Rect{
		X: rect.X, Y: rect.Y, Width: rect.Width, Height: rect.Height,
	})
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("rect resolution failed: %v", err))
	}
	primary, err := resolver.PrimaryDisplay()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("primary display failed: %v", err))
	}

	s.queryLog.Log(logging.EventMatching, map[string]interface{}{
		"x":       rect.X,
		"y":       rect.Y,
		"display": d.Name,
	})

	resp, err := NewOKResponse(toDisplayInfo(d, d.ID == primary.ID))
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleReload() *Response {
	if s.reloadChan == nil {
		return NewErrorResponse("reload not supported")
	}

	select {
	case s.reloadChan <- struct{}{}:
	default:
		// A reload is already pending.
	}

	resp, err := NewOKResponse(nil)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
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

func toDisplayInfos(displays []display.Display, primaryID int) []DisplayInfo {
	infos := make([]DisplayInfo, len(displays))
	for i, d := range displays {
		infos[i] = toDisplayInfo(d, d.ID == primaryID)
	}
	return infos
}
