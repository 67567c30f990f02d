package player

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// fakeMPV is a minimal JSON IPC server: it records every command array it
// receives and answers from a scripted queue, optionally interleaving
// unsolicited event lines the way mpv does.
type fakeMPV struct {
	listener net.Listener

	mu       sync.Mutex
	commands [][]interface{}
	replies  []string
}

func newFakeMPV(t *testing.T) *fakeMPV {
	t.Helper()
	socket := filepath.Join(t.TempDir(), "mpv.sock")
	l, err := net.Listen("unix", socket)
	if err != nil {
		t.Fatal(err)
	}
	f := &fakeMPV{listener: l}
	t.Cleanup(func() { l.Close() })
	go f.serve()
	return f
}

func (f *fakeMPV) socketPath() string {
	return f.listener.Addr().String()
}

// queue scripts the reply body for the next command; "%d" style substitution
// is not needed because the server echoes the request id itself.
func (f *fakeMPV) queue(replies ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies = append(f.replies, replies...)
}

func (f *fakeMPV) received() [][]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commands
}

func (f *fakeMPV) serve() {
	conn, err := f.listener.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var req struct {
			Command   []interface{} `json:"command"`
			RequestID int           `json:"request_id"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			return
		}

		f.mu.Lock()
		f.commands = append(f.commands, req.Command)
		body := `{"error": "success"}`
		if len(f.replies) > 0 {
			body = f.replies[0]
			f.replies = f.replies[1:]
		}
		f.mu.Unlock()

		// mpv pushes events at any time; a client must skip them.
		conn.Write([]byte(`{"event": "property-change"}` + "\n"))

		var resp map[string]interface{}
		json.Unmarshal([]byte(body), &resp)
		resp["request_id"] = req.RequestID
		out, _ := json.Marshal(resp)
		conn.Write(append(out, '\n'))
	}
}

func testClient(t *testing.T, f *fakeMPV) *Client {
	t.Helper()
	c := NewClient(f.socketPath(), time.Second)
	if err := c.Connect(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestClientGetProperty(t *testing.T) {
	f := newFakeMPV(t)
	f.queue(`{"error": "success", "data": 1920}`)
	c := testClient(t, f)

	v, err := c.GetFloatProperty(context.Background(), "dwidth")
	if err != nil {
		t.Fatal(err)
	}
	if v != 1920 {
		t.Errorf("dwidth = %v, want 1920", v)
	}

	got := f.received()
	if len(got) != 1 || got[0][0] != "get_property" || got[0][1] != "dwidth" {
		t.Errorf("sent %v, want [get_property dwidth]", got)
	}
}

func TestClientPropagatesMPVError(t *testing.T) {
	f := newFakeMPV(t)
	f.queue(`{"error": "property unavailable"}`)
	c := testClient(t, f)

	if _, err := c.GetProperty(context.Background(), "dwidth"); err == nil {
		t.Error("mpv error reply should surface as an error")
	}
}

func TestClientGetVideoParams(t *testing.T) {
	f := newFakeMPV(t)
	f.queue(
		`{"error": "success", "data": 1920}`,
		`{"error": "success", "data": 1080}`,
	)
	c := testClient(t, f)

	p, err := c.GetVideoParams(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if p.Width != 1920 || p.Height != 1080 {
		t.Errorf("params = %+v, want 1920x1080", p)
	}
	if p.Aspect != 1920.0/1080.0 {
		t.Errorf("aspect = %v, want 16:9", p.Aspect)
	}
}

func TestClientGetVideoParamsNoTrack(t *testing.T) {
	f := newFakeMPV(t)
	f.queue(
		`{"error": "success", "data": 0}`,
		`{"error": "success", "data": 0}`,
	)
	c := testClient(t, f)

	if _, err := c.GetVideoParams(context.Background()); err == nil {
		t.Error("zero dimensions should report no video track")
	}
}

func TestClientCropFilterCommands(t *testing.T) {
	f := newFakeMPV(t)
	c := testClient(t, f)
	ctx := context.Background()

	if err := c.SetCropFilter(ctx, 960, 1080, 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := c.RemoveCropFilter(ctx); err != nil {
		t.Fatal(err)
	}

	got := f.received()
	if len(got) != 2 {
		t.Fatalf("sent %d commands, want 2", len(got))
	}
	wantFilter := "@playwin-crop:crop=960:1080:0:0"
	if got[0][0] != "vf" || got[0][1] != "add" || got[0][2] != wantFilter {
		t.Errorf("crop command = %v, want [vf add %s]", got[0], wantFilter)
	}
	if got[1][0] != "vf" || got[1][1] != "remove" || got[1][2] != cropFilterLabel {
		t.Errorf("uncrop command = %v, want [vf remove %s]", got[1], cropFilterLabel)
	}
}
