package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hirelink/contract-sync-service/internal/audit"
	"github.com/hirelink/contract-sync-service/internal/config"
	"github.com/hirelink/contract-sync-service/internal/models"
)

// Client talks to the contract system: one logon endpoint plus read-only
// record queries. All reads require a session token obtained via Logon and
// filter on contract number with an explicit field projection.
type Client struct {
	baseURL  string
	username string
	password string
	depot    string
	http     *http.Client
	audit    audit.Sink
}

func New(cfg config.Config, hc *http.Client, sink audit.Sink) *Client {
	return &Client{
		baseURL:  cfg.ContractBaseURL,
		username: cfg.ContractUsername,
		password: cfg.ContractPassword,
		depot:    cfg.ContractDepot,
		http:     hc,
		audit:    sink,
	}
}

// Logon obtains a fresh session token. There is no caching: every top-level
// request re-authenticates.
func (c *Client) Logon(ctx context.Context) (string, error) {
	form := url.Values{
		"USERNAME": {c.username},
		"PASSWORD": {c.password},
		"DEPOT":    {c.depot},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/sessions/logon", strings.NewReader(form.Encode()))
	if err != nil {
		return "", &models.AuthError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		c.audit.Error(ctx, "logon", "logon request failed: "+err.Error(), nil)
		return "", &models.AuthError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.audit.Error(ctx, "logon",
			fmt.Sprintf("logon returned status %d: %s", resp.StatusCode, body), nil)
		return "", &models.AuthError{Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var out struct {
		SessionID string `json:"SESSIONID"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.audit.Error(ctx, "logon", "logon response decode failed: "+err.Error(), nil)
		return "", &models.AuthError{Err: err}
	}
	return out.SessionID, nil
}

// get issues one projected, filtered read and decodes the response into out.
// Non-2xx statuses and transport errors both become FetchError; the former
// keeps the upstream status, the latter defaults to 500.
func (c *Client) get(ctx context.Context, op, path, contno string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return &models.FetchError{Op: op, ContNo: contno, Status: http.StatusInternalServerError, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.audit.Error(ctx, op, "request failed: "+err.Error(),
			map[string]string{"contno": contno})
		return &models.FetchError{Op: op, ContNo: contno, Status: http.StatusInternalServerError, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.audit.Error(ctx, op,
			fmt.Sprintf("upstream returned status %d", resp.StatusCode),
			map[string]string{"contno": contno})
		return &models.FetchError{
			Op: op, ContNo: contno, Status: resp.StatusCode,
			Err: fmt.Errorf("status %d", resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.audit.Error(ctx, op, "response decode failed: "+err.Error(),
			map[string]string{"contno": contno})
		return &models.FetchError{Op: op, ContNo: contno, Status: http.StatusInternalServerError, Err: err}
	}
	return nil
}

func query(session, contno, fields string) url.Values {
	return url.Values{
		"api_key": {session},
		"$filter": {fmt.Sprintf("CONTNO eq '%s'", contno)},
		"fields":  {fields},
	}
}
