package contracts

import (
	"context"

	"github.com/gizigo/product-console/internal/app/product/domain"
)

// Fields is a partial document keyed by the wire names in m_product.
// Timestamp values are m_product.ServerTimestamp; adapters translate it to
// the store's own clock.
type Fields map[string]interface{}

// Query describes the single ordering a subscription asks for.
type Query struct {
	OrderBy    string
	Descending bool
}

// Snapshot is the full current result set of a subscribed query.
// A non-nil Err is terminal: no further snapshots follow on that subscription.
type Snapshot struct {
	Products []domain.Product
	Err      error
}

// Subscription is a live query. Snapshots is closed once the subscription
// stops, whether by Close, context cancellation or a terminal error.
type Subscription interface {
	Snapshots() <-chan Snapshot
	// Close releases the listener. Safe to call more than once.
	Close() error
}

// Store is a handle to one remote collection of product documents.
type Store interface {
	// Subscribe starts a listener that pushes a full snapshot on every change.
	Subscribe(ctx context.Context, q Query) (Subscription, error)

	// Insert creates a document and returns the identifier the store assigned.
	Insert(ctx context.Context, fields Fields) (string, error)

	// Patch updates the given fields. It fails when id does not exist.
	Patch(ctx context.Context, id string, fields Fields) error

	// Remove deletes the document permanently.
	Remove(ctx context.Context, id string) error

	// Get reads one document.
	Get(ctx context.Context, id string) (*domain.Product, error)
}
