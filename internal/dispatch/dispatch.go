// Package dispatch delivers mapped events to the messaging platform and
// routes failures onto the retry queue.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hirelink/contract-sync-service/internal/audit"
	"github.com/hirelink/contract-sync-service/internal/config"
	"github.com/hirelink/contract-sync-service/internal/metrics"
	"github.com/hirelink/contract-sync-service/internal/models"
	"github.com/hirelink/contract-sync-service/internal/queue"
)

// Dispatcher posts event envelopes to the messaging platform.
type Dispatcher struct {
	url   string
	token string
	http  *http.Client
	audit audit.Sink
	queue queue.Publisher
}

func New(cfg config.Config, hc *http.Client, sink audit.Sink, pub queue.Publisher) *Dispatcher {
	return &Dispatcher{
		url:   cfg.EventAPIURL,
		token: "Basic " + cfg.EventAPIToken,
		http:  hc,
		audit: sink,
		queue: pub,
	}
}

// Send posts one event for a customer. On success a processed marker is
// recorded. On any failure the envelope is audit-logged and pushed onto the
// retry queue; the queued copy is the exact byte sequence that was posted, so
// the out-of-band consumer can replay it verbatim. Queue failures are only
// audit-logged, never propagated.
func (d *Dispatcher) Send(ctx context.Context, customerID, event string, attrs models.EventAttributes) error {
	env := models.NewEnvelope(customerID, event, attrs)

	body, err := json.Marshal(env)
	if err != nil {
		d.audit.Error(ctx, customerID, "envelope marshal failed: "+err.Error(), attrs)
		return &models.DispatchError{CustomerID: customerID, Err: err}
	}

	if err := d.post(ctx, body); err != nil {
		metrics.DispatchFailuresTotal.Inc()
		d.audit.Error(ctx, customerID, "event api error: "+err.Error(), json.RawMessage(body))

		if qerr := d.queue.Publish(body); qerr != nil {
			d.audit.Error(ctx, customerID, "retry enqueue failed: "+qerr.Error(), json.RawMessage(body))
		} else {
			metrics.RetryEnqueuedTotal.Inc()
		}
		return &models.DispatchError{CustomerID: customerID, Err: err}
	}

	metrics.EventsDispatchedTotal.Inc()
	d.audit.Processed(ctx, customerID)
	return nil
}

func (d *Dispatcher) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", d.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}
