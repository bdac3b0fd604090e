// Package web streams live session summaries to spectators over WebSocket.
package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-defense/internal/games/defense"
	"github.com/vovakirdan/tui-defense/internal/games/defense/core"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 16
)

// Frame is one spectator update.
type Frame struct {
	Summary core.Summary `json:"summary"`
	Notice  string       `json:"notice,omitempty"`
	State   *core.State  `json:"state,omitempty"`
}

// SnapshotFrame captures a session. The full state is attached when full is
// set; otherwise only the summary travels.
func SnapshotFrame(sess *defense.Session, full bool) Frame {
	f := Frame{Summary: sess.Summary(), Notice: sess.Notice()}
	if full {
		st := sess.Snapshot()
		f.State = &st
	}
	return f
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans frames out to every connected spectator. Slow spectators are
// dropped rather than blocking the game.
type Hub struct {
	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	done       chan struct{}
	mu         sync.Mutex
	logger     *log.Logger
	upgrader   websocket.Upgrader
}

// NewHub creates a hub. Run must be started before clients connect.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		logger:     logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Run processes registrations until ctx is done, then disconnects everyone.
// It must be called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("spectator connected", "remote", c.conn.RemoteAddr().String(), "spectators", n)

		case c := <-h.unregister:
			h.drop(c)

		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		h.logger.Info("spectator disconnected", "remote", c.conn.RemoteAddr().String(), "spectators", len(h.clients))
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends v as JSON to every spectator.
func (h *Hub) Broadcast(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			delete(h.clients, c)
			close(c.send)
			h.logger.Warn("dropping slow spectator", "remote", c.conn.RemoteAddr().String())
		}
	}
	return nil
}

// Stream broadcasts a session frame every interval until ctx is done.
func (h *Hub) Stream(ctx context.Context, sess *defense.Session, interval time.Duration, full bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if h.Clients() == 0 {
				continue
			}
			if err := h.Broadcast(SnapshotFrame(sess, full)); err != nil {
				h.logger.Error("cannot encode frame", "error", err)
			}
		}
	}
}

// ServeHTTP upgrades a spectator connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go h.writePump(c)
	go h.readPump(c)
}

// readPump only watches for the spectator going away.
func (h *Hub) readPump(c *client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		//nolint:errcheck // a failed deadline surfaces on the write below
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	//nolint:errcheck // best-effort close frame
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
