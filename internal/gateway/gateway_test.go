package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hirelink/contract-sync-service/internal/audit"
	"github.com/hirelink/contract-sync-service/internal/config"
	"github.com/hirelink/contract-sync-service/internal/models"
)

// contractServer fakes the contract system. Per-path overrides let a test
// force error statuses or empty result sets.
type contractServer struct {
	items      []map[string]any
	contracts  []map[string]any
	invoices   []map[string]any
	deliveries []map[string]any
	notes      []map[string]any

	// stockFail lists item numbers whose analysis-code lookup returns 500.
	stockFail map[string]bool

	// status overrides per path prefix, e.g. "/contracts": 503.
	status map[string]int
}

func (s *contractServer) handler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/sessions/logon", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseForm(); err != nil || r.PostForm.Get("USERNAME") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if code := s.status["/sessions/logon"]; code != 0 {
			w.WriteHeader(code)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"SESSIONID": "sess-1"})
	})

	list := func(path string, rows *[]map[string]any) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("api_key") == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if !strings.Contains(r.URL.Query().Get("$filter"), "CONTNO eq") {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if code := s.status[path]; code != 0 {
				w.WriteHeader(code)
				return
			}
			if *rows == nil {
				w.Write([]byte("[]"))
				return
			}
			json.NewEncoder(w).Encode(*rows)
		})
	}
	list("/contractitems", &s.items)
	list("/contracts", &s.contracts)
	list("/invoices", &s.invoices)
	list("/deliverycharges", &s.deliveries)
	list("/contractnotes", &s.notes)

	mux.HandleFunc("/stock/", func(w http.ResponseWriter, r *http.Request) {
		itemNo := strings.TrimPrefix(r.URL.Path, "/stock/")
		if s.stockFail[itemNo] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"ANLCODE": " X-" + itemNo + " "})
	})

	return mux
}

func newClient(t *testing.T, s *contractServer) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(s.handler(t))
	t.Cleanup(srv.Close)

	cfg := config.Config{
		ContractBaseURL:  srv.URL,
		ContractUsername: "WEBQUOTES",
		ContractPassword: "pw",
		ContractDepot:    "SUP",
	}
	return New(cfg, &http.Client{Timeout: 5 * time.Second}, audit.Nop{}), srv
}

func TestLogon(t *testing.T) {
	c, _ := newClient(t, &contractServer{})

	token, err := c.Logon(context.Background())
	if err != nil {
		t.Fatalf("Logon: %v", err)
	}
	if token != "sess-1" {
		t.Fatalf("token = %q, want sess-1", token)
	}
}

func TestLogonFailure(t *testing.T) {
	c, _ := newClient(t, &contractServer{status: map[string]int{"/sessions/logon": 401}})

	_, err := c.Logon(context.Background())
	var authErr *models.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("err = %v, want *models.AuthError", err)
	}
}

// A failed analysis-code lookup defaults that item's code to "" without
// failing the items fetch.
func TestContractItemsPartialAnalysisCodes(t *testing.T) {
	s := &contractServer{
		items: []map[string]any{
			{"ITEMNO": "I1", "CONTNO": "C100"},
			{"ITEMNO": "I2", "CONTNO": "C100"},
			{"ITEMNO": "I3", "CONTNO": "C100"},
		},
		stockFail: map[string]bool{"I2": true},
	}
	c, _ := newClient(t, s)

	items, err := c.ContractItems(context.Background(), "C100", "sess-1")
	if err != nil {
		t.Fatalf("ContractItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}

	want := []string{"X-I1", "", "X-I3"}
	for i, w := range want {
		if items[i].AnlCode != w {
			t.Errorf("items[%d].AnlCode = %q, want %q", i, items[i].AnlCode, w)
		}
	}
}

func TestContractItemsEmpty(t *testing.T) {
	c, _ := newClient(t, &contractServer{})

	items, err := c.ContractItems(context.Background(), "C100", "sess-1")
	if err != nil {
		t.Fatalf("ContractItems: %v", err)
	}
	if items != nil {
		t.Fatalf("items = %v, want nil", items)
	}
}

func TestFetchAll(t *testing.T) {
	s := &contractServer{
		items: []map[string]any{
			{"ITEMNO": "I1", "CONTNO": "C100", "RATE1": 9.5},
		},
		contracts: []map[string]any{
			{"CONTNO": "C100", "ORDBYEMAIL": "a@b.com", "TOTAL": 120.5},
		},
		invoices:   []map[string]any{{"GOODS": 42.5}},
		deliveries: []map[string]any{{"METHOD": "Van"}},
		notes:      []map[string]any{{"MEMO": "memo"}},
	}
	c, _ := newClient(t, s)

	b, err := c.FetchAll(context.Background(), "C100", "sess-1")
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	if b.Details == nil || b.Details.OrderEmail != "a@b.com" {
		t.Fatalf("Details = %+v, want header with a@b.com", b.Details)
	}
	if len(b.Items) != 1 || b.Items[0].AnlCode != "X-I1" {
		t.Fatalf("Items = %+v", b.Items)
	}
	if b.Invoice.Goods != 42.5 {
		t.Errorf("Invoice.Goods = %v", b.Invoice.Goods)
	}
	if b.Delivery.Method != "Van" {
		t.Errorf("Delivery.Method = %q", b.Delivery.Method)
	}
	if b.Notes.Memo != "memo" {
		t.Errorf("Notes.Memo = %q", b.Notes.Memo)
	}
}

// Empty singleton results degrade to zero values; a missing header comes back
// as a nil Details pointer, not an error.
func TestFetchAllEmptyUpstream(t *testing.T) {
	c, _ := newClient(t, &contractServer{})

	b, err := c.FetchAll(context.Background(), "C999", "sess-1")
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if b.Details != nil {
		t.Fatalf("Details = %+v, want nil", b.Details)
	}
	if b.Items != nil || b.Invoice.Goods != 0 || b.Delivery.Method != "" || b.Notes.Memo != "" {
		t.Fatalf("bundle not zero-valued: %+v", b)
	}
}

// A hard failure on any top-level fetch aborts the join and keeps the
// upstream status.
func TestFetchAllUpstreamError(t *testing.T) {
	s := &contractServer{
		contracts: []map[string]any{{"CONTNO": "C100"}},
		status:    map[string]int{"/contractitems": 503},
	}
	c, _ := newClient(t, s)

	_, err := c.FetchAll(context.Background(), "C100", "sess-1")
	var fetchErr *models.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("err = %v, want *models.FetchError", err)
	}
	if fetchErr.Status != 503 {
		t.Errorf("Status = %d, want 503", fetchErr.Status)
	}
	if fetchErr.Op != "fetch_contract_items" {
		t.Errorf("Op = %q", fetchErr.Op)
	}
}

// Transport-level failures carry the internal default status.
func TestFetchTransportError(t *testing.T) {
	cfg := config.Config{ContractBaseURL: "http://127.0.0.1:1"}
	c := New(cfg, &http.Client{Timeout: 500 * time.Millisecond}, audit.Nop{})

	_, err := c.ContractDetails(context.Background(), "C100", "sess-1")
	var fetchErr *models.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("err = %v, want *models.FetchError", err)
	}
	if fetchErr.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", fetchErr.Status)
	}
}
