package create_product

import (
	"context"
	"errors"

	"go.uber.org/zap"

	contracts "github.com/gizigo/product-console/internal/app/product/contracts"
	"github.com/gizigo/product-console/internal/app/product/domain"
	"github.com/gizigo/product-console/internal/app/product/storeerr"
	"github.com/gizigo/product-console/internal/models/m_product"
	"github.com/gizigo/product-console/internal/pkg/clock"
)

// Request is the application-level create-product request.
type Request struct {
	Name        string
	Category    string
	Price       any
	Description *string
	Image       *domain.Image
}

// Interactor creates a product document. It does not touch any catalog
// mirror; the new product shows up through the next snapshot.
type Interactor struct {
	Store   contracts.Store
	Encoder contracts.ImageEncoder
	Clock   clock.Clock
	Log     *zap.Logger
}

var errNoEncoder = errors.New("no image encoder configured")

// NewInteractor constructs the interactor.
func NewInteractor(store contracts.Store, encoder contracts.ImageEncoder, clk clock.Clock, log *zap.Logger) *Interactor {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Interactor{Store: store, Encoder: encoder, Clock: clk, Log: log}
}

// Execute validates, inline-encodes the image if one was supplied and
// inserts the document. An image that fails to encode fails the whole call;
// nothing is written.
func (it *Interactor) Execute(ctx context.Context, req Request) (string, error) {
	// 1. Local validation
	v, err := domain.Draft{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
	}.Validate()
	if err != nil {
		return "", err
	}

	if it.Store == nil {
		return "", domain.StoreUnavailable(domain.OpCreate)
	}

	// 2. Image, or the placeholder
	imageURL, imageHint := domain.PlaceholderImageURL, domain.PlaceholderImageHint
	if v.Image != nil {
		if it.Encoder == nil {
			return "", domain.ImageEncodingFailed(domain.OpCreate, errNoEncoder)
		}
		encoded, err := it.Encoder.Encode(ctx, *v.Image)
		if err != nil {
			return "", domain.ImageEncodingFailed(domain.OpCreate, err)
		}
		imageURL, imageHint = encoded, v.Category
	}

	var description *string
	if v.Description != "" {
		description = &v.Description
	}

	// 3. Insert with store-assigned id and createdAt
	fields := m_product.BuildInsertMap(v.Name, v.Category, v.Price, description,
		imageURL, imageHint, domain.NewSKU(it.Clock.Now()))

	id, err := it.Store.Insert(ctx, fields)
	if err != nil {
		err = storeerr.Classify(domain.OpCreate, err)
		it.Log.Error("create product failed", zap.String("name", v.Name), zap.Error(err))
		return "", err
	}

	it.Log.Info("product created", zap.String("id", id), zap.String("name", v.Name))
	return id, nil
}
