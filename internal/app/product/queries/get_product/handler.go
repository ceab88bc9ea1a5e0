package get_product

import (
	"context"

	"github.com/gizigo/product-console/internal/app/product/domain"
	"github.com/gizigo/product-console/internal/app/product/dto"
	"github.com/gizigo/product-console/internal/app/product/storeerr"
)

// Handler loads one product, e.g. to prefill the edit form.
type Handler struct {
	reader Reader
}

func NewHandler(r Reader) *Handler {
	return &Handler{reader: r}
}

func (h *Handler) Execute(ctx context.Context, productID string) (*dto.ProductDTO, error) {
	if productID == "" {
		return nil, &domain.Error{Kind: domain.KindNotFound, Op: domain.OpRead, Err: domain.ErrEmptyProductID}
	}
	if h.reader == nil {
		return nil, domain.StoreUnavailable(domain.OpRead)
	}

	p, err := h.reader.Get(ctx, productID)
	if err != nil {
		return nil, storeerr.Classify(domain.OpRead, err)
	}
	return dto.FromDomain(*p), nil
}
