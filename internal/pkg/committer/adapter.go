package committer

import (
	"context"
	"errors"

	"cloud.google.com/go/spanner"
)

// ErrNoClient is returned when the adapter was built without a Spanner client.
var ErrNoClient = errors.New("committer: spanner client is nil")

// Adapter applies plans in a single read-write transaction.
type Adapter struct {
	client *spanner.Client
}

func NewAdapter(client *spanner.Client) *Adapter {
	return &Adapter{client: client}
}

// Apply commits every mutation of plan. Errors are returned as reported by
// Spanner so callers can classify them by code.
func (a *Adapter) Apply(ctx context.Context, plan *Plan) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}
	if a.client == nil {
		return ErrNoClient
	}

	_, err := a.client.ReadWriteTransaction(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		return tx.BufferWrite(plan.Mutations())
	})
	return err
}
