package hub

import (
	"encoding/json"
	"log"
	"net"

	"github.com/lxzan/gws"

	"github.com/soar/mapview/internal/session"
)

// Conn is the part of *gws.Conn a client writes through.
type Conn interface {
	WriteMessage(opcode gws.Opcode, payload []byte) error
	NetConn() net.Conn
}

// Commander applies navigation commands sent by clients.
type Commander interface {
	Apply(session.Command) error
}

// Client represents a connected WebSocket client.
type Client struct {
	hub  *Hub
	conn Conn
	send chan []byte
	// closed is set under hub.mu when send is closed.
	closed bool
}

// NewClient creates a new Client attached to the hub.
func NewClient(hub *Hub, conn Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// WritePump sends messages from the send channel to the WebSocket connection.
func (c *Client) WritePump() {
	defer func() {
		c.conn.NetConn().Close()
	}()

	for msg := range c.send {
		err := c.conn.WriteMessage(gws.OpcodeText, msg)
		if err != nil {
			break
		}
	}
}

const clientKey = "client"

// Handler implements gws.Event. Each connection gets a Client registered with the hub;
// messages read from it are applied as commands.
type Handler struct {
	gws.BuiltinEventHandler

	hub         *Hub
	broadcaster *Broadcaster
	commands    Commander
}

func NewHandler(h *Hub, b *Broadcaster, commands Commander) *Handler {
	return &Handler{hub: h, broadcaster: b, commands: commands}
}

func (h *Handler) OnOpen(socket *gws.Conn) {
	c := NewClient(h.hub, socket)
	socket.Session().Store(clientKey, c)
	h.hub.Register(c)
	go c.WritePump()
	h.broadcaster.SendInitialState(c)
}

func (h *Handler) OnClose(socket *gws.Conn, err error) {
	if c, ok := clientOf(socket); ok {
		h.hub.Unregister(c)
	}
}

func (h *Handler) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.WritePong(payload)
}

func (h *Handler) OnMessage(socket *gws.Conn, message *gws.Message) {
	defer message.Close()
	c, ok := clientOf(socket)
	if !ok {
		return
	}
	h.handle(c, message.Bytes())
}

// handle parses and executes one client message.
func (h *Handler) handle(c *Client, data []byte) {
	var clientMsg ClientMessage
	if err := json.Unmarshal(data, &clientMsg); err != nil {
		log.Printf("Error parsing client message: %v", err)
		return
	}

	switch clientMsg.Type {
	case "command":
		if err := h.commands.Apply(clientMsg.Command); err != nil {
			log.Printf("Client command rejected: %v", err)
			if data, err := json.Marshal(NewErrorMessage(err)); err == nil {
				h.hub.Send(c, data)
			}
		}
	case "sync":
		h.broadcaster.SendInitialState(c)
	default:
		log.Printf("Unknown client message type %q", clientMsg.Type)
	}
}

func clientOf(socket *gws.Conn) (*Client, bool) {
	v, ok := socket.Session().Load(clientKey)
	if !ok {
		return nil, false
	}
	c, ok := v.(*Client)
	return c, ok
}
