package handler

import (
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
)

const (
	eventBuffer  = 64
	writeTimeout = 5 * time.Second
)

func (h *Handler) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return len(h.allowedOrigins) == 0 || origin == "" || slices.Contains(h.allowedOrigins, origin)
		},
	}
}

// Events streams every store change event as a JSON websocket message.
// Slow readers miss events rather than block the state layer; a client that
// needs the full picture re-reads /v1/state.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	// subscribed before the handshake completes so no event after it is missed
	events, cancel := h.forum.Subscribe(eventBuffer)
	defer cancel()

	upgrader := h.upgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// the client never sends anything meaningful; reading detects the close
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	h.log.Debug("event subscriber connected", "remote", r.RemoteAddr)
	for {
		select {
		case <-closed:
			h.log.Debug("event subscriber gone", "remote", r.RemoteAddr)
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(e); err != nil {
				h.log.Debug("event write failed", "error", err)
				return
			}
		}
	}
}
