package domain

import (
	"strings"
	"time"
)

// Product is one catalog entry as mirrored from the remote collection.
// ID, CreatedAt and UpdatedAt are assigned by the store and never set locally.
type Product struct {
	ID          string
	Name        string
	Category    string
	SKU         *string
	Price       Price
	Description string
	ImageURL    string
	ImageAIHint string
	IsActive    bool
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}

// HasSKU reports whether the product carries a non-empty SKU.
func (p Product) HasSKU() bool {
	return p.SKU != nil && *p.SKU != ""
}

// Matches reports whether term is a case-insensitive substring of the name or the SKU.
// An empty term matches every product.
func (p Product) Matches(term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	if strings.Contains(strings.ToLower(p.Name), needle) {
		return true
	}
	return p.HasSKU() && strings.Contains(strings.ToLower(*p.SKU), needle)
}

// Clone returns a deep copy so callers cannot alias the controller's base list.
func (p Product) Clone() Product {
	out := p
	if p.SKU != nil {
		sku := *p.SKU
		out.SKU = &sku
	}
	if p.CreatedAt != nil {
		t := *p.CreatedAt
		out.CreatedAt = &t
	}
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

// CloneAll deep-copies a product list. A nil input yields an empty, non-nil slice.
func CloneAll(in []Product) []Product {
	out := make([]Product, 0, len(in))
	for _, p := range in {
		out = append(out, p.Clone())
	}
	return out
}
