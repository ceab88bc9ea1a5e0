package domain

import (
	"fmt"
	"time"
)

// SKUPrefix is prepended to every generated SKU.
const SKUPrefix = "SKU"

// NewSKU derives a human-facing SKU from the low-order six decimal digits of
// now in Unix milliseconds. Two creates within the same millisecond modulo 10^6
// collide; uniqueness is not enforced.
func NewSKU(now time.Time) string {
	return fmt.Sprintf("%s%06d", SKUPrefix, now.UnixMilli()%1_000_000)
}
