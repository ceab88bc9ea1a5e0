package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSKU(t *testing.T) {
	now := time.UnixMilli(1_717_000_123_456)
	assert.Equal(t, "SKU123456", NewSKU(now))

	// leading zeros are kept
	assert.Equal(t, "SKU000042", NewSKU(time.UnixMilli(5_000_000_042)))

	assert.Regexp(t, regexp.MustCompile(`^SKU\d{6}$`), NewSKU(time.Now()))
}

func TestProductMatches(t *testing.T) {
	sku := "SKU123456"
	p := Product{Name: "Roti Gandum", SKU: &sku}

	assert.True(t, p.Matches(""))
	assert.True(t, p.Matches("roti"))
	assert.True(t, p.Matches("ROTI"))
	assert.True(t, p.Matches("sku1234"))
	assert.False(t, p.Matches("susu"))

	noSKU := Product{Name: "Susu Segar"}
	assert.True(t, noSKU.Matches("susu"))
	assert.False(t, noSKU.Matches("sku"))
}

func TestProductClone(t *testing.T) {
	sku := "SKU000001"
	created := time.Now()
	p := Product{ID: "a", Name: "Kopi", SKU: &sku, CreatedAt: &created}

	c := p.Clone()
	require.NotNil(t, c.SKU)
	*c.SKU = "changed"
	assert.Equal(t, "SKU000001", *p.SKU)
	assert.NotSame(t, p.CreatedAt, c.CreatedAt)

	assert.NotNil(t, CloneAll(nil))
}

func TestErrorRemediation(t *testing.T) {
	err := &Error{Kind: KindAccessDenied, Op: OpDelete, Code: "permission-denied"}
	assert.Contains(t, err.Remediation(), "delete")

	err = &Error{Kind: KindUnclassified, Code: "unavailable", Message: "backend down"}
	assert.Contains(t, err.Remediation(), "unavailable")
	assert.Contains(t, err.Remediation(), "backend down")

	unavailable := StoreUnavailable(OpRead)
	assert.ErrorIs(t, unavailable, ErrStoreNotConfigured)
	assert.Equal(t, KindStoreUnavailable, KindOf(unavailable))
	assert.Equal(t, KindUnclassified, KindOf(assert.AnError))
}
