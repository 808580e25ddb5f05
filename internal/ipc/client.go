package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/sheen-dev/sheen/internal/runtimepath"
)

// Client handles IPC communication with the daemon.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response.
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// GetStatus fetches daemon status.
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}
	return &status, nil
}

// GetDisplays fetches the daemon's current display list.
func (c *Client) GetDisplays() ([]DisplayInfo, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetDisplays})
	if err != nil {
		return nil, err
	}

	var data DisplaysData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse displays data: %w", err)
	}
	return data.Displays, nil
}

// GetPrimary fetches the primary display.
func (c *Client) GetPrimary() (*DisplayInfo, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetPrimary})
	if err != nil {
		return nil, err
	}

	var info DisplayInfo
	if err := json.Unmarshal(resp.Data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse display data: %w", err)
	}
	return &info, nil
}

// DisplayAtPoint resolves the display nearest a screen point.
func (c *Client) DisplayAtPoint(x, y int) (*DisplayInfo, error) {
	payload, err := json.Marshal(PointPayload{X: x, Y: y})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal point payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{Command: CommandDisplayAtPoint, Payload: payload})
	if err != nil {
		return nil, err
	}

	var info DisplayInfo
	if err := json.Unmarshal(resp.Data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse display data: %w", err)
	}
	return &info, nil
}

// DisplayNearestWindow resolves the display containing a window's
// center; 0 falls back to the default display.
func (c *Client) DisplayNearestWindow(window uint32) (*DisplayInfo, error) {
	payload, err := json.Marshal(WindowPayload{Window: window})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal window payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{Command: CommandDisplayNearestWindow, Payload: payload})
	if err != nil {
		return nil, err
	}

	var info DisplayInfo
	if err := json.Unmarshal(resp.Data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse display data: %w", err)
	}
	return &info, nil
}

// DisplayMatching resolves a display for a candidate rect.
func (c *Client) DisplayMatching(x, y, width, height int) (*DisplayInfo, error) {
	payload, err := json.Marshal(RectPayload{X: x, Y: y, Width: width, Height: height})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rect payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{Command: CommandDisplayMatching, Payload: payload})
	if err != nil {
		return nil, err
	}

	var info DisplayInfo
	if err := json.Unmarshal(resp.Data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse display data: %w", err)
	}
	return &info, nil
}

// Reload asks the daemon to reload its configuration.
func (c *Client) Reload() error {
	_, err := c.sendRequest(&Request{Command: CommandReload})
	return err
}
