package audit

import (
	"context"
	_ "embed"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaSQL is embedded so the service can self-bootstrap its audit tables.
//
//go:embed schema.sql
var schemaSQL string

// writeTimeout caps how long an audit write may hold up the request that
// triggered it.
const writeTimeout = 2 * time.Second

// Store is the durable audit log: error records for manual reprocessing and
// processed markers for delivered events. Both tables are append-only.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a connection pool and fails fast if the database is
// unreachable.
func NewStore(dbURL string) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &Store{pool: pool}, nil
}

// EnsureSchema applies schema.sql. Safe to run multiple times.
func (s *Store) EnsureSchema() error {
	_, err := s.pool.Exec(context.Background(), schemaSQL)
	return err
}

// Ping is used by the readiness endpoint to validate DB connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close shuts down the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Error writes one error_log row. The write uses its own deadline, detached
// from the request context, so records survive client disconnects. Failures
// are logged locally and swallowed.
func (s *Store) Error(_ context.Context, source, message string, payload any) {
	body := []byte("{}")
	if payload != nil {
		b, err := json.Marshal(payload)
		if err == nil {
			body = b
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO error_log(id, ts, source, error_msg, payload)
		VALUES ($1, now(), $2, $3, $4)
	`, uuid.New().String(), source, message, body)
	if err != nil {
		log.Printf("audit: error_log write failed: %v", err)
	}
}

// Processed writes one processed-marker row. Same best-effort contract as
// Error.
func (s *Store) Processed(_ context.Context, customerID string) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO processed(customer_id, ts)
		VALUES ($1, now())
	`, customerID)
	if err != nil {
		log.Printf("audit: processed write failed: %v", err)
	}
}
