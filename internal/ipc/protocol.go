package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types.
type CommandType string

const (
	CommandGetStatus            CommandType = "GET_STATUS"
	CommandGetDisplays          CommandType = "GET_DISPLAYS"
	CommandGetPrimary           CommandType = "GET_PRIMARY"
	CommandDisplayAtPoint       CommandType = "DISPLAY_AT_POINT"
	CommandDisplayNearestWindow CommandType = "DISPLAY_NEAREST_WINDOW"
	CommandDisplayMatching      CommandType = "DISPLAY_MATCHING"
	CommandReload               CommandType = "RELOAD"
)

// Request represents an IPC request from client to server.
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client.
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS.
type StatusData struct {
	Backend       string `json:"backend"`
	DisplayCount  int    `json:"display_count"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	DaemonRunning bool   `json:"daemon_running"`
}

// DisplayInfo represents one display in a response.
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

// DisplaysData represents the data returned by GET_DISPLAYS.
type DisplaysData struct {
	Displays []DisplayInfo `json:"displays"`
}

// PointPayload represents the payload for DISPLAY_AT_POINT.
type PointPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// WindowPayload represents the payload for DISPLAY_NEAREST_WINDOW.
type WindowPayload struct {
	Window uint32 `json:"window"`
}

// RectPayload represents the payload for DISPLAY_MATCHING.
type RectPayload struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewOKResponse creates a successful response with optional data.
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message.
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes.
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes.
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
