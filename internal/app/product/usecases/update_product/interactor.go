package update_product

import (
	"context"
	"errors"

	"go.uber.org/zap"

	contracts "github.com/gizigo/product-console/internal/app/product/contracts"
	"github.com/gizigo/product-console/internal/app/product/domain"
	"github.com/gizigo/product-console/internal/app/product/storeerr"
	"github.com/gizigo/product-console/internal/models/m_product"
)

// Request carries the edited fields. Nil fields keep the stored value.
type Request struct {
	ProductID   string
	Name        *string
	Category    *string
	Price       any
	Description *string
	Image       *domain.Image
}

// Result reports what the update could not apply without failing it.
type Result struct {
	// ImageErr is set when a new image could not be encoded; the previous
	// image was kept and the rest of the edit was saved.
	ImageErr error
}

// Interactor replaces the editable fields of a product.
type Interactor struct {
	Store   contracts.Store
	Encoder contracts.ImageEncoder
	Log     *zap.Logger
}

func NewInteractor(store contracts.Store, encoder contracts.ImageEncoder, log *zap.Logger) *Interactor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interactor{Store: store, Encoder: encoder, Log: log}
}

var errNoEncoder = errors.New("no image encoder configured")

func (it *Interactor) Execute(ctx context.Context, req Request) (Result, error) {
	if req.ProductID == "" {
		return Result{}, &domain.Error{Kind: domain.KindNotFound, Op: domain.OpUpdate, Err: domain.ErrEmptyProductID}
	}
	if it.Store == nil {
		return Result{}, domain.StoreUnavailable(domain.OpUpdate)
	}

	// 1. Load the current record to prefill what the request leaves out
	existing, err := it.Store.Get(ctx, req.ProductID)
	if err != nil {
		return Result{}, storeerr.Classify(domain.OpRead, err)
	}

	draft, keepRange := prefill(*existing, req)

	// 2. Local validation
	v, err := draft.Validate()
	if err != nil {
		return Result{}, err
	}

	// 3. Optional new image; failure keeps the old one
	var res Result
	imageURL, imageHint := existing.ImageURL, existing.ImageAIHint
	if imageHint == "" {
		imageHint = domain.PlaceholderImageHint
	}
	if v.Image != nil {
		encoded, err := it.encode(ctx, *v.Image)
		if err != nil {
			res.ImageErr = domain.ImageEncodingFailed(domain.OpUpdate, err)
			it.Log.Warn("keeping previous product image",
				zap.String("id", req.ProductID), zap.Error(err))
		} else {
			imageURL, imageHint = encoded, v.Category
		}
	}

	var description *string
	if v.Description != "" {
		description = &v.Description
	}

	// 4. Replace editable fields, request a fresh updatedAt
	fields := m_product.BuildUpdateMap(v.Name, v.Category, v.Price, description, imageURL, imageHint)
	if keepRange {
		delete(fields, m_product.FieldPrice)
	}

	if err := it.Store.Patch(ctx, req.ProductID, fields); err != nil {
		err = storeerr.Classify(domain.OpUpdate, err)
		it.Log.Error("update product failed", zap.String("id", req.ProductID), zap.Error(err))
		return res, err
	}

	it.Log.Info("product updated", zap.String("id", req.ProductID))
	return res, nil
}

func (it *Interactor) encode(ctx context.Context, img domain.Image) (string, error) {
	if it.Encoder == nil {
		return "", errNoEncoder
	}
	return it.Encoder.Encode(ctx, img)
}

// prefill builds the draft from the request, falling back to the stored
// record for every field the request leaves nil. keepRange reports that the
// stored price is a range the request did not replace; it is validated
// through its lower bound and left untouched in storage.
func prefill(existing domain.Product, req Request) (domain.Draft, bool) {
	d := domain.Draft{
		Name:     existing.Name,
		Category: existing.Category,
		Price:    req.Price,
		Image:    req.Image,
	}
	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Category != nil {
		d.Category = *req.Category
	}
	if req.Description != nil {
		d.Description = req.Description
	} else if existing.Description != "" {
		desc := existing.Description
		d.Description = &desc
	}

	keepRange := false
	if d.Price == nil {
		if amount, ok := existing.Price.Amount(); ok {
			d.Price = amount
		} else if min, _, ok := existing.Price.Bounds(); ok {
			d.Price = min
			keepRange = true
		}
	}
	return d, keepRange
}
