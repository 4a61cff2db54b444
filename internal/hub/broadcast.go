package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"github.com/soar/mapview/internal/controller"
	"github.com/soar/mapview/internal/session"
)

const (
	fullSyncInterval = 5 * time.Second
	deltaCountSync   = 100
)

// Source is the session as seen by the broadcaster.
type Source interface {
	Changes() <-chan struct{}
	Snapshot() session.Snapshot
	Map() *controller.Map
	FrameSVG() ([]byte, error)
}

// Broadcaster listens for session changes and broadcasts state, deltas and rendered frames
// to the hub.
type Broadcaster struct {
	hub       *Hub
	source    Source
	interval  time.Duration
	seq       atomic.Int64
	lastMap   *controller.Map
	lastFrame []byte
}

// NewBroadcaster renders frames at fps while clients are connected.
func NewBroadcaster(h *Hub, src Source, fps int) *Broadcaster {
	if fps <= 0 {
		fps = 30
	}
	return &Broadcaster{
		hub:      h,
		source:   src,
		interval: time.Second / time.Duration(fps),
		lastMap:  src.Map(),
	}
}

// Run starts the broadcaster loop until ctx is done. Should be run in a goroutine.
func (b *Broadcaster) Run(ctx context.Context) {
	fullTicker := time.NewTicker(fullSyncInterval)
	defer fullTicker.Stop()
	frameTicker := time.NewTicker(b.interval)
	defer frameTicker.Stop()

	var deltaCount int64

	for {
		select {
		case <-ctx.Done():
			return

		case <-b.source.Changes():
			snap := b.source.Snapshot()
			m := b.source.Map()
			if m == b.lastMap {
				b.broadcast(NewStateMessage(b.seq.Add(1), &snap))
				continue
			}

			delta := controller.ComputeDelta(b.lastMap, m)
			b.lastMap = m
			deltaCount++

			// Send full sync periodically
			if deltaCount >= deltaCountSync {
				b.sendFull(snap)
				deltaCount = 0
			} else {
				b.broadcast(NewDeltaMessage(b.seq.Add(1), &snap, delta))
			}

		case <-frameTicker.C:
			if b.hub.Len() == 0 {
				continue
			}
			b.sendFrame()

		case <-fullTicker.C:
			if b.hub.Len() > 0 {
				b.sendFull(b.source.Snapshot())
			}
		}
	}
}

// SendInitialState sends the current full state to a newly connected client.
func (b *Broadcaster) SendInitialState(c *Client) {
	msg, err := b.fullMessage(b.source.Snapshot())
	if err != nil {
		log.Printf("Error building initial state: %v", err)
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling initial state: %v", err)
		return
	}
	b.hub.Send(c, data)
}

func (b *Broadcaster) fullMessage(snap session.Snapshot) (*WSMessage, error) {
	frame, err := b.source.FrameSVG()
	if err != nil {
		return nil, err
	}
	return NewFullMessage(b.seq.Add(1), &snap, frame), nil
}

func (b *Broadcaster) sendFull(snap session.Snapshot) {
	msg, err := b.fullMessage(snap)
	if err != nil {
		log.Printf("Error rendering full message: %v", err)
		return
	}
	b.broadcast(msg)
}

// sendFrame broadcasts the current frame when it differs from the last one sent.
func (b *Broadcaster) sendFrame() {
	frame, err := b.source.FrameSVG()
	if err != nil {
		log.Printf("Error rendering frame: %v", err)
		return
	}
	if bytes.Equal(frame, b.lastFrame) {
		return
	}
	b.lastFrame = frame
	b.broadcast(NewFrameMessage(b.seq.Add(1), frame))
}

func (b *Broadcaster) broadcast(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling %s message: %v", msg.Type, err)
		return
	}
	b.hub.Broadcast(data)
}
