package hub

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/lxzan/gws"

	"github.com/soar/mapview/internal/controller"
	"github.com/soar/mapview/internal/diagram"
	"github.com/soar/mapview/internal/session"
)

type fakeConn struct {
	mu      sync.Mutex
	written [][]byte
	local   net.Conn
}

func newFakeConn(t *testing.T) *fakeConn {
	a, b := net.Pipe()
	t.Cleanup(func() { a.Close(); b.Close() })
	return &fakeConn{local: a}
}

func (f *fakeConn) WriteMessage(_ gws.Opcode, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.written = append(f.written, payload)
	return nil
}

func (f *fakeConn) NetConn() net.Conn { return f.local }

type fakeSource struct {
	mu      sync.Mutex
	changes chan struct{}
	m       *controller.Map
	frame   []byte
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		changes: make(chan struct{}, 1),
		m:       controller.NewMap(controller.Map0, nil),
		frame:   []byte("<svg/>"),
	}
}

func (f *fakeSource) Changes() <-chan struct{} { return f.changes }

func (f *fakeSource) Snapshot() session.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return session.Snapshot{Preset: f.m.ID, Bindings: f.m.Bindings()}
}

func (f *fakeSource) Map() *controller.Map {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.m
}

func (f *fakeSource) FrameSVG() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frame, nil
}

func (f *fakeSource) setMap(id controller.MapID) {
	f.mu.Lock()
	f.m = controller.NewMap(id, nil)
	f.mu.Unlock()
	f.changes <- struct{}{}
}

type recordingCommander struct {
	got []session.Command
	err error
}

func (r *recordingCommander) Apply(cmd session.Command) error {
	r.got = append(r.got, cmd)
	return r.err
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(time.Millisecond)
	}
}

// nextMessage reads messages from c until one of type typ arrives.
func nextMessage(t *testing.T, c *Client, typ string) WSMessage {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				t.Fatalf("client closed while waiting for %q", typ)
			}
			var msg WSMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				t.Fatal(err)
			}
			if msg.Type == typ {
				return msg
			}
		case <-timeout:
			t.Fatalf("no %q message", typ)
		}
	}
}

func startHub(t *testing.T) *Hub {
	h := NewHub()
	go h.Run()
	t.Cleanup(h.Close)
	return h
}

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	h := startHub(t)
	c := NewClient(h, newFakeConn(t))
	h.Register(c)
	waitFor(t, func() bool { return h.Len() == 1 })

	h.Broadcast([]byte("hello"))
	if got := string(<-c.send); got != "hello" {
		t.Errorf("got %q", got)
	}

	h.Unregister(c)
	waitFor(t, func() bool { return h.Len() == 0 })
	if _, ok := <-c.send; ok {
		t.Error("send channel still open")
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	h := startHub(t)
	c := NewClient(h, newFakeConn(t))
	h.Register(c)
	waitFor(t, func() bool { return h.Len() == 1 })

	for range cap(c.send) + 1 {
		h.Broadcast([]byte("x"))
	}
	waitFor(t, func() bool { return h.Len() == 0 })
}

func TestSendAfterUnregister(t *testing.T) {
	h := startHub(t)
	c := NewClient(h, newFakeConn(t))
	if !h.Send(c, []byte("early")) {
		t.Fatal("send before registration failed")
	}
	<-c.send

	h.Register(c)
	waitFor(t, func() bool { return h.Len() == 1 })
	h.Unregister(c)
	waitFor(t, func() bool { return h.Len() == 0 })

	if h.Send(c, []byte("late")) {
		t.Error("send to a dropped client reported success")
	}
	h.Unregister(c)
	h.Close()
	if h.Send(c, []byte("after close")) {
		t.Error("send after close reported success")
	}
}

func TestWritePumpWritesQueuedMessages(t *testing.T) {
	h := startHub(t)
	conn := newFakeConn(t)
	c := NewClient(h, conn)
	c.send <- []byte("a")
	c.send <- []byte("b")
	close(c.send)
	c.WritePump()

	if len(conn.written) != 2 || string(conn.written[1]) != "b" {
		t.Errorf("written = %q", conn.written)
	}
}

func TestBroadcasterMessages(t *testing.T) {
	h := startHub(t)
	src := newFakeSource()
	b := NewBroadcaster(h, src, 1000)
	c := NewClient(h, newFakeConn(t))
	h.Register(c)
	waitFor(t, func() bool { return h.Len() == 1 })

	b.SendInitialState(c)
	full := nextMessage(t, c, "full")
	if full.Frame != "<svg/>" || full.State == nil || len(full.State.Bindings) == 0 {
		t.Errorf("full = %+v", full)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	frame := nextMessage(t, c, "frame")
	if frame.Frame != "<svg/>" || frame.Seq <= full.Seq {
		t.Errorf("frame = %+v", frame)
	}

	src.setMap(controller.Map5)
	delta := nextMessage(t, c, "delta")
	if delta.Changes == nil || delta.Changes.From != controller.Map0 || delta.Changes.To != controller.Map5 {
		t.Fatalf("delta changes = %+v", delta.Changes)
	}
	if len(delta.Changes.Changed) == 0 {
		t.Error("no changed bindings")
	}
	if delta.State == nil || delta.State.Bindings != nil {
		t.Errorf("delta state = %+v", delta.State)
	}

	src.changes <- struct{}{}
	state := nextMessage(t, c, "state")
	if state.State == nil || state.State.Preset != controller.Map5 {
		t.Errorf("state = %+v", state.State)
	}
}

func TestBroadcasterSendsAssignmentDelta(t *testing.T) {
	h := startHub(t)
	sess := session.New(session.Options{
		Width:  360,
		Height: 165,
		Preset: controller.MapCustom1,
		Detail: diagram.DetailBackMapping,
	})
	b := NewBroadcaster(h, sess, 1)
	c := NewClient(h, newFakeConn(t))
	h.Register(c)
	waitFor(t, func() bool { return h.Len() == 1 })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	for _, cell := range []int{0, 1} {
		if err := sess.Apply(session.Command{Name: session.CmdToggleCell, Cell: &cell}); err != nil {
			t.Fatal(err)
		}
	}
	if err := sess.Apply(session.Command{Name: session.CmdAssign, Output: "circle"}); err != nil {
		t.Fatal(err)
	}

	delta := nextMessage(t, c, "delta")
	d := delta.Changes
	if d == nil || d.From != controller.MapCustom1 || d.To != controller.MapCustom1 {
		t.Fatalf("delta changes = %+v", d)
	}
	want := map[controller.InputZone]bool{
		controller.RearGridZone(0, 0): true,
		controller.RearGridZone(0, 1): true,
	}
	if len(d.Changed) != len(want) {
		t.Fatalf("changed = %v", d.Changed)
	}
	for _, bind := range d.Changed {
		if !want[bind.Zone] || bind.Output != controller.OutCircle {
			t.Errorf("unexpected change %v -> %v", bind.Zone, bind.Output)
		}
	}
	if delta.State == nil || !delta.State.Editable {
		t.Errorf("delta state = %+v", delta.State)
	}
}

func TestBroadcasterSkipsUnchangedFrames(t *testing.T) {
	h := startHub(t)
	c := NewClient(h, newFakeConn(t))
	h.Register(c)
	waitFor(t, func() bool { return h.Len() == 1 })

	b := NewBroadcaster(h, newFakeSource(), 30)
	b.sendFrame()
	b.sendFrame()
	if n := len(c.send); n != 1 {
		t.Errorf("queued %d frames, want 1", n)
	}
}

func TestHandlerCommands(t *testing.T) {
	h := startHub(t)
	cmds := &recordingCommander{}
	handler := NewHandler(h, NewBroadcaster(h, newFakeSource(), 30), cmds)
	c := NewClient(h, newFakeConn(t))

	handler.handle(c, []byte(`{"type":"command","command":"next_preset"}`))
	handler.handle(c, []byte(`{"type":"command","command":"cursor","dRow":1,"dCol":-1}`))
	if len(cmds.got) != 2 || cmds.got[0].Name != session.CmdNextPreset {
		t.Fatalf("commands = %+v", cmds.got)
	}
	if cmds.got[1].DRow != 1 || cmds.got[1].DCol != -1 {
		t.Errorf("cursor = %+v", cmds.got[1])
	}

	cmds.err = errors.New("nope")
	handler.handle(c, []byte(`{"type":"command","command":"flip"}`))
	if msg := nextMessage(t, c, "error"); msg.Error != "nope" {
		t.Errorf("error = %q", msg.Error)
	}

	handler.handle(c, []byte(`{"type":"sync"}`))
	nextMessage(t, c, "full")

	handler.handle(c, []byte(`not json`))
	if len(cmds.got) != 3 {
		t.Errorf("bad message applied: %+v", cmds.got)
	}
}

func TestClientMessageEmbedsCommand(t *testing.T) {
	var msg ClientMessage
	if err := json.Unmarshal([]byte(`{"type":"command","command":"set_preset","preset":100}`), &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Name != session.CmdSetPreset || msg.Preset == nil || *msg.Preset != controller.Map100 {
		t.Errorf("msg = %+v", msg)
	}
}
