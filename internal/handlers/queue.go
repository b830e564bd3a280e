package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirelink/contract-sync-service/internal/audit"
	"github.com/hirelink/contract-sync-service/internal/metrics"
	"github.com/hirelink/contract-sync-service/internal/queue"
)

// RegisterQueueRoutes registers the manual enqueue endpoint.
//
// POST /SQS takes an arbitrary JSON payload and pushes it onto the retry
// queue verbatim, so operators can re-submit a failed envelope lifted from
// the audit log.
func RegisterQueueRoutes(r gin.IRoutes, pub queue.Publisher, sink audit.Sink) {
	r.POST("/SQS", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil || !json.Valid(body) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "body must be valid JSON"})
			return
		}

		if err := pub.Publish(body); err != nil {
			var payload map[string]any
			_ = json.Unmarshal(body, &payload)
			source, _ := payload["customer_id"].(string)
			if source == "" {
				source = "unknown"
			}
			sink.Error(c.Request.Context(), source,
				"retry enqueue failed: "+err.Error(), json.RawMessage(body))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enqueue payload"})
			return
		}

		metrics.RetryEnqueuedTotal.Inc()
		c.JSON(http.StatusAccepted, gin.H{"queued": true})
	})
}
