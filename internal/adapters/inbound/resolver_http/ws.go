package resolver_http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/charleschow/loteca-pipeline/internal/core/resolver"
	"github.com/charleschow/loteca-pipeline/internal/telemetry"
)

const (
	clientSendBuf = 64
	writeDeadline = 5 * time.Second
	pongWait      = 60 * time.Second
	pingInterval  = 25 * time.Second
	maxFrameBytes = 4096
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool { return true },
}

type wsClient struct {
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	cancel context.CancelFunc
}

type wsHub struct {
	svc *resolver.Service
}

func newWSHub(svc *resolver.Service) *wsHub {
	return &wsHub{svc: svc}
}

// handle upgrades the request. Every text frame the client sends is a team
// name; the reply is the JSON resolution, in request order.
func (hub *wsHub) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		telemetry.Warnf("resolver ws: upgrade failed: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &wsClient{
		conn:   conn,
		send:   make(chan []byte, clientSendBuf),
		done:   make(chan struct{}),
		cancel: cancel,
	}
	telemetry.Metrics.ResolverConnections.Inc()
	telemetry.Infof("resolver ws: client connected %s", r.RemoteAddr)

	go hub.writePump(c)
	go hub.readPump(ctx, c)
}

// writePump owns the connection: it writes replies and pings, and closes
// the socket when readPump signals done or a write fails.
func (hub *wsHub) writePump(c *wsClient) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.cancel()
		c.conn.Close()
		telemetry.Metrics.ResolverConnections.Dec()
		telemetry.Infof("resolver ws: client disconnected")
	}()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				telemetry.Warnf("resolver ws: write error: %v", err)
				return
			}
		case <-c.done:
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump resolves each incoming frame and queues the reply. On exit it
// signals writePump via c.done (never closes c.send).
func (hub *wsHub) readPump(ctx context.Context, c *wsClient) {
	defer close(c.done)

	c.conn.SetReadLimit(maxFrameBytes)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		kind, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		c.conn.SetReadDeadline(time.Now().Add(pongWait))

		var reply []byte
		if name := strings.TrimSpace(string(msg)); name == "" {
			reply, _ = json.Marshal(map[string]string{"error": "empty name"})
		} else {
			reply, _ = json.Marshal(hub.svc.Resolve(ctx, name))
		}

		select {
		case c.send <- reply:
		case <-ctx.Done():
			return
		}
	}
}
