// Package stream publishes model frames to websocket viewers and forwards
// their clicks back to the goroutine that owns the model.
package stream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"cellsociety/internal/core"
	"cellsociety/internal/runner"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	pingInterval = 30 * time.Second
	writeWait    = 10 * time.Second
	sendBuffer   = 8
)

// Frame is one published generation.
type Frame struct {
	Model      string         `json:"model"`
	Generation int            `json:"generation"`
	Rows       int            `json:"rows"`
	Cols       int            `json:"cols"`
	Topology   string         `json:"topology"`
	Pattern    string         `json:"pattern"`
	Edges      string         `json:"edges"`
	States     []string       `json:"states"`
	Palette    []string       `json:"palette"`
	Cells      []int          `json:"cells"`
	Population map[string]int `json:"population"`
}

// Message is sent by viewers. The only supported type is "click".
type Message struct {
	Type string `json:"type"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

// NewFrame captures a model's current generation.
func NewFrame(m core.Model) Frame {
	snap := m.Snapshot()
	rows, cols := snap.Dimensions()
	f := m.Finder()
	frame := Frame{
		Model:      m.Name(),
		Generation: m.Generation(),
		Rows:       rows,
		Cols:       cols,
		Topology:   f.Topology.String(),
		Pattern:    f.Pattern.String(),
		Edges:      f.Edges.String(),
		States:     m.States().Names(),
		Cells:      make([]int, 0, rows*cols),
		Population: m.Population(),
	}
	for _, tag := range m.States().Palette() {
		frame.Palette = append(frame.Palette, fmt.Sprintf("#%02x%02x%02x", tag.R, tag.G, tag.B))
	}
	for _, st := range snap.States() {
		frame.Cells = append(frame.Cells, int(st))
	}
	return frame
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans frames out to connected viewers.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *log.Logger
	inbox    chan runner.Command

	mu      sync.Mutex
	clients map[*client]struct{}
	latest  []byte
	closed  bool
}

// NewHub creates a hub. Commands from viewers are queued on Inbox.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  logger,
		inbox:   make(chan runner.Command, 64),
		clients: make(map[*client]struct{}),
	}
}

// Inbox carries viewer commands; pass it to runner.Options.Inbox.
func (h *Hub) Inbox() <-chan runner.Command { return h.inbox }

// Publish sends the model's current frame to every viewer. It must be called
// by the goroutine that owns the model. Viewers that fall behind skip frames.
func (h *Hub) Publish(m core.Model) {
	data, err := json.Marshal(NewFrame(m))
	if err != nil {
		h.logger.Error("encode frame", "err", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = data
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Debug("viewer behind, frame dropped", "remote", c.conn.RemoteAddr())
		}
	}
}

// Clients reports the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Handler serves the websocket at /ws, the latest frame at /frame and a
// health check at /healthz.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	mux.HandleFunc("/frame", h.serveFrame)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"status": "healthy", "viewers": h.Clients()})
	})
	return mux
}

func (h *Hub) serveFrame(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	data := h.latest
	h.mu.Unlock()
	if data == nil {
		http.Error(w, "no frame published yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// ServeWS upgrades the request and streams frames until the viewer leaves.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "err", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	if h.latest != nil {
		c.send <- h.latest
	}
	h.mu.Unlock()
	h.logger.Info("viewer connected", "remote", conn.RemoteAddr())

	go h.writeLoop(c)
	h.readLoop(c)
}

func (h *Hub) readLoop(c *client) {
	defer h.drop(c)
	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("viewer read failed", "remote", c.conn.RemoteAddr(), "err", err)
			}
			return
		}
		switch msg.Type {
		case "click":
			row, col := msg.Row, msg.Col
			cmd := func(m core.Model) error { return m.Click(row, col) }
			select {
			case h.inbox <- cmd:
			default:
				h.logger.Warn("command queue full, click dropped", "row", row, "col", col)
			}
		default:
			h.logger.Warn("unknown viewer message", "type", msg.Type)
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.logger.Warn("viewer write failed", "remote", c.conn.RemoteAddr(), "err", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.logger.Warn("viewer ping failed", "remote", c.conn.RemoteAddr(), "err", err)
				return
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	h.logger.Info("viewer disconnected", "remote", c.conn.RemoteAddr())
}

// Close disconnects every viewer and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
