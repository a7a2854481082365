package events

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/junaidrashid-git/jewelry-api/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type client struct {
	sellerID string
	conn     *websocket.Conn
	send     chan []byte
}

// Hub pushes order events to the websocket connections of the seller who
// owns the ordered product.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*client]struct{})}
}

// Serve upgrades the request and streams events for sellerID until the
// connection closes.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, sellerID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	cl := &client{sellerID: sellerID, conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(cl)

	go h.writeLoop(cl)
	h.readLoop(cl)
	return nil
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[cl.sellerID] == nil {
		h.clients[cl.sellerID] = make(map[*client]struct{})
	}
	h.clients[cl.sellerID][cl] = struct{}{}
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[cl.sellerID]
	if !ok {
		return
	}
	if _, ok := set[cl]; !ok {
		return
	}
	delete(set, cl)
	close(cl.send)
	if len(set) == 0 {
		delete(h.clients, cl.sellerID)
	}
}

// Connections reports how many sockets are open for sellerID.
func (h *Hub) Connections(sellerID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sellerID])
}

// Publish sends ev to the seller's sockets. Slow clients miss events rather
// than stall the caller.
func (h *Hub) Publish(_ context.Context, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		logger.Error().Err(err).Msg("hub: marshal event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for cl := range h.clients[ev.SellerID] {
		select {
		case cl.send <- data:
		default:
			logger.Warn().Str("sellerId", ev.SellerID).Msg("hub: client buffer full, dropping event")
		}
	}
}

// readLoop only watches for the peer going away; sellers never send data.
func (h *Hub) readLoop(cl *client) {
	defer func() {
		h.unregister(cl)
		_ = cl.conn.Close()
	}()

	cl.conn.SetReadLimit(512)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = cl.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
