package get_product

import (
	"context"

	"github.com/gizigo/product-console/internal/app/product/domain"
)

// Reader is the single-document read the query needs. contracts.Store satisfies it.
type Reader interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
}
