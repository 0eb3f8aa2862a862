package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dwikikusuma/shoping-cart/internal/cart/app"
	"github.com/dwikikusuma/shoping-cart/internal/cart/domain"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Clients only send control frames.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// streams tracks open websocket feeds so they can be ended on shutdown.
type streams struct {
	mu     sync.Mutex
	cancel map[string]context.CancelFunc
}

func newStreams() *streams {
	return &streams{cancel: make(map[string]context.CancelFunc)}
}

func (s *streams) add(id string, cancel context.CancelFunc) {
	s.mu.Lock()
	s.cancel[id] = cancel
	s.mu.Unlock()
}

func (s *streams) remove(id string) {
	s.mu.Lock()
	delete(s.cancel, id)
	s.mu.Unlock()
}

func (s *streams) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, cancel := range s.cancel {
		cancel()
		delete(s.cancel, id)
	}
}

func (s *streams) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cancel)
}

// CloseStreams ends every open websocket feed with a going-away frame.
func (s *Server) CloseStreams() {
	s.streams.closeAll()
}

// Watch upgrades to a websocket and pushes the cart (same shape as GET /cart,
// without warnings) every time it changes.
func (s *Server) Watch(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WarnContext(r.Context(), "websocket upgrade failed", slog.Any("err", err))
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	log := s.log.With(slog.String("stream_id", id))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	s.streams.add(id, cancel)
	defer s.streams.remove(id)

	carts, err := s.watch.Watch(ctx)
	if err != nil {
		log.ErrorContext(ctx, "cart watch failed", slog.Any("err", err))
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "cart feed unavailable"),
			time.Now().Add(writeWait))
		return
	}

	log.DebugContext(ctx, "cart stream opened")
	go readPump(conn, cancel)
	writePump(ctx, conn, carts)
	log.DebugContext(ctx, "cart stream closed")
}

// readPump keeps the read deadline moving on pongs and cancels the stream as
// soon as the peer goes away.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writePump(ctx context.Context, conn *websocket.Conn, carts <-chan domain.Cart) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case c, ok := <-carts:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteJSON(newCartResponse(app.Outcome{Cart: c})); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
