package contracts

import (
	"context"

	commitplan "github.com/gizigo/product-console/internal/pkg/committer"
)

// Committer applies a collection of Spanner mutations atomically.
// The Spanner store adapter builds a plan per write and hands it here, so the
// adapter stays independent of how the transaction is driven.
type Committer interface {
	Apply(ctx context.Context, plan *commitplan.Plan) error
}
