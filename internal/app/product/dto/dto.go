package dto

import (
	"github.com/gizigo/product-console/internal/app/product/domain"
	"github.com/gizigo/product-console/internal/app/product/utils"
)

// ProductDTO is the presentation shape of a product. Timestamps are RFC3339
// strings and absent until the store fills them in.
type ProductDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	SKU         *string  `json:"sku"`
	Price       *float64 `json:"price,omitempty"`
	PriceMin    *float64 `json:"priceMin,omitempty"`
	PriceMax    *float64 `json:"priceMax,omitempty"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	ImageAIHint string   `json:"imageAiHint"`
	IsActive    bool     `json:"isActive"`
	CreatedAt   *string  `json:"createdAt"`
	UpdatedAt   *string  `json:"updatedAt"`

	// DisplayPrice is the formatted Rupiah price, a range, or "N/A".
	DisplayPrice string `json:"displayPrice"`
}

func FromDomain(p domain.Product) *ProductDTO {
	out := &ProductDTO{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		ImageAIHint:  p.ImageAIHint,
		IsActive:     p.IsActive,
		CreatedAt:    utils.FormatTimePtr(p.CreatedAt),
		UpdatedAt:    utils.FormatTimePtr(p.UpdatedAt),
		DisplayPrice: p.Price.Format(),
	}
	if p.SKU != nil {
		sku := *p.SKU
		out.SKU = &sku
	}
	if amount, ok := p.Price.Amount(); ok {
		out.Price = &amount
	}
	if min, max, ok := p.Price.Bounds(); ok {
		out.PriceMin, out.PriceMax = &min, &max
	}
	return out
}

// FromDomainList never returns nil so lists encode as [] rather than null.
func FromDomainList(ps []domain.Product) []*ProductDTO {
	out := make([]*ProductDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromDomain(p))
	}
	return out
}
