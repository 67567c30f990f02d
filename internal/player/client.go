package player

import (
	"context"
	"fmt"
	"time"
)

const (
	DefaultSocketPath = "/tmp/mpvsocket"
	DefaultTimeout    = 5 * time.Second
)

// Client talks to a running mpv instance over its JSON IPC socket. It is the
// apply layer: the geometry engine computes, the client tells mpv.
type Client struct {
	conn *Connection
}

// NewClient creates an mpv IPC client.
func NewClient(socketPath string, timeout time.Duration) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{conn: NewConnection(socketPath, timeout)}
}

// Connect establishes the connection to mpv.
func (c *Client) Connect() error {
	return c.conn.Connect()
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Command sends a raw mpv command array.
func (c *Client) Command(ctx context.Context, args ...interface{}) (interface{}, error) {
	if !c.conn.IsConnected() {
		if err := c.Connect(); err != nil {
			return nil, err
		}
	}
	return c.conn.SendCommand(ctx, args...)
}

// GetProperty reads an mpv property.
func (c *Client) GetProperty(ctx context.Context, name string) (interface{}, error) {
	return c.Command(ctx, "get_property", name)
}

// GetFloatProperty reads an mpv property as a float64.
func (c *Client) GetFloatProperty(ctx context.Context, name string) (float64, error) {
	v, err := c.GetProperty(ctx, name)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s is %T, not a number", name, v)
	}
	return f, nil
}

// SetProperty writes an mpv property.
func (c *Client) SetProperty(ctx context.Context, name string, value interface{}) error {
	_, err := c.Command(ctx, "set_property", name, value)
	return err
}

// VideoParams reads the properties the geometry engine needs about the
// current video track.
type VideoParams struct {
	// Width/Height are the display size after rotation, before any crop.
	Width, Height float64
	Aspect        float64
}

// GetVideoParams reads the current track's display dimensions. Returns an
// error when no video track is loaded.
func (c *Client) GetVideoParams(ctx context.Context) (VideoParams, error) {
	w, err := c.GetFloatProperty(ctx, "dwidth")
	if err != nil {
		return VideoParams{}, fmt.Errorf("reading video width: %w", err)
	}
	h, err := c.GetFloatProperty(ctx, "dheight")
	if err != nil {
		return VideoParams{}, fmt.Errorf("reading video height: %w", err)
	}
	if w <= 0 || h <= 0 {
		return VideoParams{}, fmt.Errorf("no video track loaded (dwidth=%v dheight=%v)", w, h)
	}
	return VideoParams{Width: w, Height: h, Aspect: w / h}, nil
}

// cropFilterLabel identifies our crop filter instance in mpv's filter chain
// so it can be replaced and removed without touching user filters.
const cropFilterLabel = "@playwin-crop"

// SetCropFilter installs or replaces the crop video filter.
// w/h/x/y are in unscaled video pixels; x/y is the crop's top-left corner.
func (c *Client) SetCropFilter(ctx context.Context, w, h, x, y int) error {
	filter := fmt.Sprintf("%s:crop=%d:%d:%d:%d", cropFilterLabel, w, h, x, y)
	_, err := c.Command(ctx, "vf", "add", filter)
	if err != nil {
		return fmt.Errorf("adding crop filter: %w", err)
	}
	return nil
}

// RemoveCropFilter removes the crop filter if present. mpv errors when the
// label does not exist; that is reported as-is since callers track whether a
// crop is active.
func (c *Client) RemoveCropFilter(ctx context.Context) error {
	_, err := c.Command(ctx, "vf", "remove", cropFilterLabel)
	if err != nil {
		return fmt.Errorf("removing crop filter: %w", err)
	}
	return nil
}
