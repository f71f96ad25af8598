package domain

import "context"

// Transactor runs fn inside one storage transaction. Repositories called with the context
// passed to fn join that transaction. If fn returns an error the transaction is rolled back
// and the error is returned unchanged.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// OutcomeRecorder counts operation outcomes (metrics port).
type OutcomeRecorder interface {
	RecordOutcome(operation, outcome string)
}

// NopRecorder discards outcomes.
type NopRecorder struct{}

func (NopRecorder) RecordOutcome(string, string) {}
