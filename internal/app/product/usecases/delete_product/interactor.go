package delete_product

import (
	"context"

	"go.uber.org/zap"

	contracts "github.com/gizigo/product-console/internal/app/product/contracts"
	"github.com/gizigo/product-console/internal/app/product/domain"
	"github.com/gizigo/product-console/internal/app/product/storeerr"
)

// Request for deleting a product. Confirmation must accept before anything
// is sent to the store; a nil Confirmation never accepts.
type Request struct {
	ProductID    string
	Confirmation contracts.Confirmation
}

// Interactor removes a product permanently. There is no soft delete.
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

func (it *Interactor) Execute(ctx context.Context, req Request) error {
	if req.ProductID == "" {
		return &domain.Error{Kind: domain.KindNotFound, Op: domain.OpDelete, Err: domain.ErrEmptyProductID}
	}

	// 1. Blocking accept/cancel gate
	if req.Confirmation == nil {
		return domain.ErrDeletionNotConfirmed
	}
	ok, err := req.Confirmation.Confirm(ctx, req.ProductID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrDeletionNotConfirmed
	}

	// 2. Remove
	if it.Store == nil {
		return domain.StoreUnavailable(domain.OpDelete)
	}
	if err := it.Store.Remove(ctx, req.ProductID); err != nil {
		err = storeerr.Classify(domain.OpDelete, err)
		it.Log.Error("delete product failed", zap.String("id", req.ProductID), zap.Error(err))
		return err
	}

	it.Log.Info("product deleted", zap.String("id", req.ProductID))
	return nil
}
