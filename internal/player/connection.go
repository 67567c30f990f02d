package player

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// request is the mpv JSON IPC request shape: a command array plus an integer
// request id that the matching response echoes back.
type request struct {
	Command   []interface{} `json:"command"`
	RequestID int           `json:"request_id"`
}

// response is the mpv JSON IPC response shape. Lines without a request_id
// are asynchronous events and are skipped while waiting for a reply.
type response struct {
	Error     string      `json:"error"`
	Data      interface{} `json:"data"`
	RequestID int         `json:"request_id"`
	Event     string      `json:"event"`
}

// Connection manages the Unix domain socket connection to mpv.
type Connection struct {
	socketPath string
	conn       net.Conn
	reader     *bufio.Reader
	timeout    time.Duration
	nextID     int
}

// NewConnection creates a new connection instance.
func NewConnection(socketPath string, timeout time.Duration) *Connection {
	return &Connection{
		socketPath: socketPath,
		timeout:    timeout,
		nextID:     1,
	}
}

// Connect establishes the Unix domain socket connection.
func (c *Connection) Connect() error {
	var err error
	c.conn, err = net.Dial("unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect to mpv socket %s: %w", c.socketPath, err)
	}
	c.reader = bufio.NewReader(c.conn)
	return nil
}

// Close closes the connection.
func (c *Connection) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsConnected returns true if the connection is established.
func (c *Connection) IsConnected() bool {
	return c.conn != nil
}

// SendCommand sends one command and waits for its matching response,
// skipping interleaved event lines.
func (c *Connection) SendCommand(ctx context.Context, args ...interface{}) (interface{}, error) {
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	id := c.nextID
	c.nextID++

	data, err := json.Marshal(request{Command: args, RequestID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal command: %w", err)
	}
	data = append(data, '\n')

	if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, fmt.Errorf("failed to set write deadline: %w", err)
	}
	if _, err := c.conn.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write command: %w", err)
	}

	respChan := make(chan *response, 1)
	errChan := make(chan error, 1)

	go func() {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			errChan <- fmt.Errorf("failed to set read deadline: %w", err)
			return
		}
		for {
			line, err := c.reader.ReadBytes('\n')
			if err != nil {
				errChan <- fmt.Errorf("failed to read response: %w", err)
				return
			}
			var resp response
			if err := json.Unmarshal(line, &resp); err != nil {
				errChan <- fmt.Errorf("failed to unmarshal response: %w", err)
				return
			}
			// Event lines arrive unprompted; keep reading until our id.
			if resp.Event != "" || resp.RequestID != id {
				continue
			}
			respChan <- &resp
			return
		}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("command cancelled or timed out: %w", ctx.Err())
	case err := <-errChan:
		return nil, err
	case resp := <-respChan:
		if resp.Error != "" && resp.Error != "success" {
			return nil, fmt.Errorf("mpv error: %s", resp.Error)
		}
		return resp.Data, nil
	}
}
