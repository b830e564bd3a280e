package main

import (
	"log"
	"net/http"

	"github.com/hirelink/contract-sync-service/internal/audit"
	"github.com/hirelink/contract-sync-service/internal/config"
	"github.com/hirelink/contract-sync-service/internal/dispatch"
	"github.com/hirelink/contract-sync-service/internal/gateway"
	"github.com/hirelink/contract-sync-service/internal/httpserver"
	"github.com/hirelink/contract-sync-service/internal/metrics"
	"github.com/hirelink/contract-sync-service/internal/queue"
)

// main boots the service: secret bundle → audit store → retry queue → HTTP server.
func main() {
	// Resolve the secret bundle once; refuse to start without it.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Connect the audit store (Postgres) and bootstrap its tables.
	store, err := audit.NewStore(cfg.DBURL)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	if err := store.EnsureSchema(); err != nil {
		log.Fatal(err)
	}

	// Retry queue: a missing queue degrades delivery-failure handling but
	// must not take the sync path down with it.
	var pub queue.Publisher
	if cfg.QueueURL != "" {
		sp, err := queue.NewStanPublisher(cfg.QueueClusterID, cfg.QueueClientID, cfg.QueueURL, cfg.QueueSubject)
		if err != nil {
			log.Printf("retry queue unavailable, continuing without it: %v", err)
			pub = queue.Nop{}
		} else {
			defer sp.Close()
			pub = sp
		}
	} else {
		log.Printf("QUEUE_URL not set, retry queue disabled")
		pub = queue.Nop{}
	}

	metrics.Register()

	// One shared outbound client with the configured timeout.
	hc := &http.Client{Timeout: cfg.UpstreamTimeout}

	gw := gateway.New(cfg, hc, store)
	disp := dispatch.New(cfg, hc, store, pub)

	router := httpserver.NewRouter(cfg, store, store, gw, gw, disp, pub)

	log.Println("server started on " + cfg.ListenAddr)
	log.Fatal(router.Run(cfg.ListenAddr))
}
