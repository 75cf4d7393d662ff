package stream

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 60 * time.Second
)

// Service serves GET /api/claims/stream.
type Service struct {
	hub          *Hub
	upgrader     websocket.Upgrader
	pingInterval time.Duration
}

// NewService upgrades requests from the given origins. With no origins only
// same-origin requests are accepted.
func NewService(hub *Hub, origins []string) *Service {
	s := &Service{hub: hub, pingInterval: pingInterval}
	if len(origins) > 0 {
		s.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(origins, origin)
		}
	}
	return s
}

func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/api/claims/stream", s.HandleStream)
}

// HandleStream sends one JSON Message per committed event matching the
// claim_id and customer_id query parameters.
func (s *Service) HandleStream(c *gin.Context) {
	filter := Filter{
		ClaimID:    c.Query("claim_id"),
		CustomerID: c.Query("customer_id"),
	}

	wc, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("Stream upgrade failed", "error", err)
		return
	}
	defer wc.Close()

	msgs, cancel := s.hub.Subscribe(filter)
	defer cancel()

	slog.Info("Stream client connected", "remote", c.ClientIP(), "claim_id", filter.ClaimID, "customer_id", filter.CustomerID)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.read(wc)
	}()

	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			slog.Info("Stream client disconnected", "remote", c.ClientIP())
			return
		case <-c.Request.Context().Done():
			s.close(wc)
			return
		case msg := <-msgs:
			wc.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := wc.WriteJSON(msg); err != nil {
				slog.Warn("Stream write failed", "error", err)
				return
			}
		case <-ticker.C:
			wc.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := wc.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// read drains client frames until the connection closes. Clients never
// send anything meaningful.
func (s *Service) read(wc *websocket.Conn) {
	for {
		if _, _, err := wc.NextReader(); err != nil {
			var closeErr *websocket.CloseError
			if !errors.As(err, &closeErr) {
				slog.Debug("Stream read ended", "error", err)
			}
			return
		}
	}
}

func (s *Service) close(wc *websocket.Conn) {
	wc.SetWriteDeadline(time.Now().Add(writeTimeout))
	wc.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
}
