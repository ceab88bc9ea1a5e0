package toggle_status

import (
	"context"

	"go.uber.org/zap"

	contracts "github.com/gizigo/product-console/internal/app/product/contracts"
	"github.com/gizigo/product-console/internal/app/product/domain"
	"github.com/gizigo/product-console/internal/app/product/storeerr"
	"github.com/gizigo/product-console/internal/models/m_product"
)

type Request struct {
	ProductID string
	IsActive  bool
}

// Interactor writes only isActive and updatedAt.
type Interactor struct {
	Store contracts.Store
	Log   *zap.Logger
}

func NewInteractor(store contracts.Store, log *zap.Logger) *Interactor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interactor{Store: store, Log: log}
}

// Execute logs a failure and also returns it classified, so callers can show
// that the switch did not persist.
func (it *Interactor) Execute(ctx context.Context, req Request) error {
	err := it.execute(ctx, req)
	if err != nil {
		it.Log.Error("toggle product status failed",
			zap.String("id", req.ProductID), zap.Bool("isActive", req.IsActive), zap.Error(err))
	}
	return err
}

func (it *Interactor) execute(ctx context.Context, req Request) error {
	if req.ProductID == "" {
		return &domain.Error{Kind: domain.KindNotFound, Op: domain.OpUpdate, Err: domain.ErrEmptyProductID}
	}
	if it.Store == nil {
		return domain.StoreUnavailable(domain.OpUpdate)
	}
	if err := it.Store.Patch(ctx, req.ProductID, m_product.BuildStatusMap(req.IsActive)); err != nil {
		return storeerr.Classify(domain.OpUpdate, err)
	}
	return nil
}
