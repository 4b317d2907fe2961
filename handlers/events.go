package handlers

import (
	"io"

	"github.com/gin-gonic/gin"
)

// StreamEvents bridges the in-process bus onto an SSE stream. Delivery
// is a hint, not a guarantee: a client that reconnects gets no replay
// and is expected to re-fetch whatever it cares about.
func (h *Handler) StreamEvents(c *gin.Context) {
	ch, cancel := h.Bus.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(string(ev.Topic), ev.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
