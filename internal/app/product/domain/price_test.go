package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }

func TestResolvePrice(t *testing.T) {
	p := ResolvePrice(f64(100), f64(1), f64(2))
	amount, ok := p.Amount()
	assert.True(t, ok)
	assert.Equal(t, 100.0, amount)

	p = ResolvePrice(nil, f64(10), f64(20))
	min, max, ok := p.Bounds()
	assert.True(t, ok)
	assert.Equal(t, 10.0, min)
	assert.Equal(t, 20.0, max)

	assert.Equal(t, PriceKindUnset, ResolvePrice(nil, f64(10), nil).Kind())
	assert.Equal(t, PriceKindUnset, ResolvePrice(nil, nil, nil).Kind())
}

func TestPriceFormat(t *testing.T) {
	exact := PriceExact(25000).Format()
	assert.True(t, strings.HasPrefix(exact, "Rp "), exact)
	assert.Contains(t, exact, "25")
	assert.NotContains(t, exact, ",00")

	rng := PriceRange(10000, 20000).Format()
	parts := strings.Split(rng, " - ")
	if assert.Len(t, parts, 2) {
		assert.True(t, strings.HasPrefix(parts[0], "Rp "))
		assert.True(t, strings.HasPrefix(parts[1], "Rp "))
	}

	assert.Equal(t, "N/A", PriceUnset().Format())
	assert.Equal(t, "Rp 5", PriceExact(4.6).Format())
}
