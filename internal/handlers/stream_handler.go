package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/joshua-takyi/eventscape/internal/helpers"
	"github.com/joshua-takyi/eventscape/internal/models"
	"github.com/joshua-takyi/eventscape/internal/realtime"
)

const streamHeartbeat = 25 * time.Second

// Stream pushes change notifications as server-sent events. ?collections=events,checkins narrows the feed.
func Stream(broker *realtime.Broker, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		wanted := map[string]bool{}
		for _, coll := range helpers.QueryList(c, "collections") {
			wanted[coll] = true
		}

		sub := broker.Subscribe()
		defer broker.Unsubscribe(sub.ID)
		logger.Debug("stream client connected", "subscriber", sub.ID)

		c.Writer.Header().Set("Content-Type", sse.ContentType)
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no")
		c.Writer.WriteHeader(http.StatusOK)
		c.Writer.Flush()

		heartbeat := time.NewTicker(streamHeartbeat)
		defer heartbeat.Stop()

		c.Stream(func(w io.Writer) bool {
			select {
			case <-c.Request.Context().Done():
				return false
			case <-heartbeat.C:
				c.Render(-1, sse.Event{Event: "ping", Data: time.Now().UTC().Format(time.RFC3339)})
				return true
			case n, ok := <-sub.C:
				if !ok {
					return false
				}
				if len(wanted) > 0 && !wanted[n.Collection] {
					return true
				}
				return writeNotification(c, n, logger)
			}
		})
		logger.Debug("stream client disconnected", "subscriber", sub.ID)
	}
}

func writeNotification(c *gin.Context, n *models.ChangeNotification, logger *slog.Logger) bool {
	payload, err := json.Marshal(n)
	if err != nil {
		logger.Error("failed to encode change notification", "error", err)
		return true
	}
	c.Render(-1, sse.Event{
		Id:    n.DocumentID,
		Event: n.Collection + "." + n.Operation,
		Data:  string(payload),
	})
	return true
}
