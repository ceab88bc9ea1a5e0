package catalog

import (
	"fmt"
	"strings"

	"github.com/gizigo/product-console/internal/app/product/domain"
)

// StatusFilter narrows the list by isActive.
type StatusFilter string

const (
	StatusAll      StatusFilter = "all"
	StatusActive   StatusFilter = "active"
	StatusInactive StatusFilter = "inactive"
)

// ParseStatusFilter accepts "all", "active" or "inactive" in any case.
// An empty string means StatusAll.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return StatusAll, nil
	case StatusAll, StatusActive, StatusInactive:
		return f, nil
	default:
		return "", fmt.Errorf("unknown status filter %q", s)
	}
}

func (f StatusFilter) admits(p domain.Product) bool {
	switch f {
	case StatusActive:
		return p.IsActive
	case StatusInactive:
		return !p.IsActive
	default:
		return true
	}
}

// Counts partitions a list by isActive. All == Active + Inactive.
type Counts struct {
	All      int `json:"all"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// Filter returns the products matching both the search term and the status
// filter, in list order. list is not modified.
func Filter(list []domain.Product, term string, filter StatusFilter) []domain.Product {
	out := make([]domain.Product, 0, len(list))
	for _, p := range list {
		if filter.admits(p) && p.Matches(term) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// CountByStatus counts the whole list; the search term never applies here.
func CountByStatus(list []domain.Product) Counts {
	c := Counts{All: len(list)}
	for _, p := range list {
		if p.IsActive {
			c.Active++
		} else {
			c.Inactive++
		}
	}
	return c
}
