package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adhikram/ChartIQ-sub000/services"
)

// sseSink relays stream events to the HTTP client as Server-Sent
// Events, one frame per event, flushed immediately.
type sseSink struct {
	c       *gin.Context
	flusher http.Flusher
}

func newSSESink(c *gin.Context) *sseSink {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	flusher, _ := c.Writer.(http.Flusher)
	return &sseSink{c: c, flusher: flusher}
}

func (s *sseSink) Send(event services.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.Type, err)
	}
	if _, err := fmt.Fprintf(s.c.Writer, "data: %s\n\n", payload); err != nil {
		return fmt.Errorf("failed to write %s event to client: %w", event.Type, err)
	}
	if s.flusher != nil {
		s.flusher.Flush()
	}
	return nil
}
