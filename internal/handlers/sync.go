package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hirelink/contract-sync-service/internal/audit"
	"github.com/hirelink/contract-sync-service/internal/mapper"
	"github.com/hirelink/contract-sync-service/internal/metrics"
	"github.com/hirelink/contract-sync-service/internal/models"
)

// Session obtains a fresh contract-system session token.
type Session interface {
	Logon(ctx context.Context) (string, error)
}

// Gateway gathers the contract records behind one contract number.
type Gateway interface {
	FetchAll(ctx context.Context, contno, session string) (*models.ContractBundle, error)
}

// Dispatcher delivers one mapped event to the messaging platform.
type Dispatcher interface {
	Send(ctx context.Context, customerID, event string, attrs models.EventAttributes) error
}

// RegisterSyncRoutes registers the main sync endpoint.
//
// GET /sync?contno=&event=&apikey=
// The flow is linear: authenticate against the contract system, gather
// records, map them to event attributes, dispatch, respond with the mapped
// attributes. Any failure ends the request; 404/400 keep their status, the
// rest collapse to a generic 500.
func RegisterSyncRoutes(r gin.IRoutes, sess Session, gw Gateway, disp Dispatcher, sink audit.Sink) {
	r.GET("/sync", func(c *gin.Context) {
		metrics.SyncRequestsTotal.Inc()
		start := time.Now()

		contno := strings.TrimSpace(c.Query("contno"))
		event := c.Query("event")
		if contno == "" || event == "" {
			metrics.SyncFailuresTotal.Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "contno and event are required"})
			return
		}

		ctx := c.Request.Context()

		token, err := sess.Logon(ctx)
		if err != nil {
			fail(c, sink, nil, err)
			return
		}

		bundle, err := gw.FetchAll(ctx, contno, token)
		if err != nil {
			fail(c, sink, nil, err)
			return
		}
		if bundle.Details == nil {
			fail(c, sink, nil, models.ErrNotFound)
			return
		}

		attrs, err := mapper.Map(event, bundle)
		if err != nil {
			fail(c, sink, attrs, err)
			return
		}

		email, _ := attrs["email"].(string)
		if err := disp.Send(ctx, email, event, attrs); err != nil {
			fail(c, sink, attrs, err)
			return
		}

		metrics.SyncDuration.Observe(time.Since(start).Seconds())
		c.JSON(http.StatusOK, attrs)
	})
}

// fail audit-logs the error with whatever partial attributes exist, then
// answers per the status taxonomy. Upstream detail never reaches the client
// on a 500.
func fail(c *gin.Context, sink audit.Sink, attrs models.EventAttributes, err error) {
	metrics.SyncFailuresTotal.Inc()

	source := "sync"
	if email, ok := attrs["email"].(string); ok && email != "" {
		source = email
	}
	sink.Error(c.Request.Context(), source, err.Error(), attrs)

	status := models.StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "failed to sync contract data"
	}
	c.JSON(status, gin.H{"error": msg})
}
