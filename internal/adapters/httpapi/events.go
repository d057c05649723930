package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/ports"
)

const (
	sseHeartbeat = 15 * time.Second
	sessionTopic = "session."
)

type prefixSubscriber interface {
	SubscribePrefix(prefix string) (<-chan ports.Event, func())
}

// handleEvents diffuse les événements session.* du bus en SSE.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	if s.bus == nil {
		http.Error(w, "no event bus", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	var (
		events      <-chan ports.Event
		unsubscribe func()
	)
	if ps, ok := s.bus.(prefixSubscriber); ok {
		events, unsubscribe = ps.SubscribePrefix(sessionTopic)
	} else {
		events, unsubscribe = s.bus.Subscribe()
	}
	defer unsubscribe()

	ticker := time.NewTicker(sseHeartbeat)
	defer ticker.Stop()

	fmt.Fprintf(w, "event: hello\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			if !strings.HasPrefix(evt.Topic, sessionTopic) {
				continue
			}
			fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", xid.New().String(), evt.Topic, evt.Payload)
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprintf(w, "event: ping\ndata: {}\n\n")
			flusher.Flush()
		}
	}
}
