package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/hirelink/contract-sync-service/internal/auth"
)

type memQueue struct {
	published [][]byte
	err       error
}

func (m *memQueue) Publish(body []byte) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, body)
	return nil
}

func (m *memQueue) Close() {}

func newQueueRouter(q *memQueue, sink *memSink) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("/")
	grp.Use(auth.APIKeyMiddleware(testKey, sink))
	RegisterQueueRoutes(grp, q, sink)
	return r
}

func postQueue(t *testing.T, r *gin.Engine, body string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/SQS?apikey="+testKey, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

// The payload lands on the queue byte-for-byte as received.
func TestQueueEndpoint(t *testing.T) {
	q := &memQueue{}
	r := newQueueRouter(q, &memSink{})

	body := `{"type":"event","customer_id":"a@b.com","actions":[{"action":"Order","attributes":{"item":"I1"}}]}`
	if code := postQueue(t, r, body); code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", code)
	}
	if len(q.published) != 1 || !bytes.Equal(q.published[0], []byte(body)) {
		t.Fatalf("published = %q, want verbatim body", q.published)
	}
}

func TestQueueEndpointRejectsBadJSON(t *testing.T) {
	q := &memQueue{}
	r := newQueueRouter(q, &memSink{})

	if code := postQueue(t, r, "{not json"); code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
	if len(q.published) != 0 {
		t.Errorf("published = %q, want none", q.published)
	}
}

func TestQueueEndpointPublishFailure(t *testing.T) {
	q := &memQueue{err: errors.New("queue down")}
	sink := &memSink{}
	r := newQueueRouter(q, sink)

	if code := postQueue(t, r, `{"customer_id":"a@b.com"}`); code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", code)
	}
	if len(sink.errors) != 1 || !strings.HasPrefix(sink.errors[0], "a@b.com: ") {
		t.Errorf("audit errors = %v, want one entry sourced to a@b.com", sink.errors)
	}
}
