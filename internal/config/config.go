package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config contains everything the service needs at runtime: upstream
// endpoints, credentials, the inbound API key, and infrastructure URLs.
// It is loaded once in main and passed by injection; no package keeps a
// global copy.
type Config struct {
	ContractBaseURL  string `json:"CONTRACT_BASE_URL"`
	ContractUsername string `json:"CONTRACT_USERNAME"`
	ContractPassword string `json:"CONTRACT_PASSWORD"`
	ContractDepot    string `json:"CONTRACT_DEPOT"`

	EventAPIURL   string `json:"EVENT_API_URL"`
	EventAPIToken string `json:"EVENT_API_TOKEN"`

	APIKey string `json:"SYNC_API_KEY"`

	DBURL string `json:"DB_URL"`

	QueueURL       string `json:"QUEUE_URL"`
	QueueClusterID string `json:"QUEUE_CLUSTER_ID"`
	QueueClientID  string `json:"QUEUE_CLIENT_ID"`
	QueueSubject   string `json:"QUEUE_SUBJECT"`

	UpstreamTimeoutRaw string `json:"UPSTREAM_TIMEOUT"`
	ListenAddr         string `json:"LISTEN_ADDR"`

	UpstreamTimeout time.Duration `json:"-"`
}

// Load reads the secret bundle named by SECRET_BUNDLE (default secrets.json).
// The process must not start without a complete bundle, so any missing file,
// malformed JSON, or absent required value is an error.
func Load() (Config, error) {
	path := strings.TrimSpace(os.Getenv("SECRET_BUNDLE"))
	if path == "" {
		path = "secrets.json"
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read secret bundle %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse secret bundle %s: %w", path, err)
	}

	// Infrastructure endpoints may be overridden per environment without
	// editing the bundle.
	if v := strings.TrimSpace(os.Getenv("DB_URL")); v != "" {
		cfg.DBURL = v
	}
	if v := strings.TrimSpace(os.Getenv("QUEUE_URL")); v != "" {
		cfg.QueueURL = v
	}
	if v := strings.TrimSpace(os.Getenv("LISTEN_ADDR")); v != "" {
		cfg.ListenAddr = v
	}

	required := map[string]string{
		"CONTRACT_BASE_URL": cfg.ContractBaseURL,
		"CONTRACT_USERNAME": cfg.ContractUsername,
		"CONTRACT_PASSWORD": cfg.ContractPassword,
		"EVENT_API_URL":     cfg.EventAPIURL,
		"EVENT_API_TOKEN":   cfg.EventAPIToken,
		"SYNC_API_KEY":      cfg.APIKey,
		"DB_URL":            cfg.DBURL,
	}
	for name, v := range required {
		if strings.TrimSpace(v) == "" {
			return Config{}, fmt.Errorf("secret bundle %s: %s required", path, name)
		}
	}

	cfg.ContractBaseURL = strings.TrimRight(cfg.ContractBaseURL, "/")

	// Upstream calls must not inherit the transport's unlimited default.
	cfg.UpstreamTimeout = 15 * time.Second
	if cfg.UpstreamTimeoutRaw != "" {
		d, err := time.ParseDuration(cfg.UpstreamTimeoutRaw)
		if err != nil {
			return Config{}, fmt.Errorf("secret bundle %s: UPSTREAM_TIMEOUT: %w", path, err)
		}
		cfg.UpstreamTimeout = d
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.QueueClusterID == "" {
		cfg.QueueClusterID = "sync-cluster"
	}
	if cfg.QueueClientID == "" {
		cfg.QueueClientID = "contract-sync"
	}
	if cfg.QueueSubject == "" {
		cfg.QueueSubject = "contract-events.retry"
	}

	return cfg, nil
}
