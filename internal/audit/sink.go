package audit

import "context"

// Sink records audit events. Implementations are best-effort by contract:
// neither method returns an error, neither may panic, and a failed write must
// only be logged locally. Callers stay on their primary path regardless of
// what happens here.
type Sink interface {
	// Error records one failure with its source (a fetch name or customer
	// identifier), message, and whatever payload existed at the time.
	Error(ctx context.Context, source, message string, payload any)

	// Processed records one successful event delivery for a customer.
	Processed(ctx context.Context, customerID string)
}

// Nop discards all audit records.
type Nop struct{}

func (Nop) Error(context.Context, string, string, any) {}
func (Nop) Processed(context.Context, string)          {}
