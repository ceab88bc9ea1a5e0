package contracts

import (
	"context"

	"github.com/gizigo/product-console/internal/app/product/domain"
)

// ImageEncoder turns an uploaded image into a payload that can be embedded in
// the document's imageUrl field.
type ImageEncoder interface {
	Encode(ctx context.Context, img domain.Image) (string, error)
}
