package domain

import "io"

// MaxImageSize is the largest accepted upload, 5 MiB.
const MaxImageSize = 5 * 1024 * 1024

// AllowedImageTypes lists the accepted upload MIME types.
var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// Image is a write-time upload. It is never stored as-is: the mutation
// operations inline-encode it into Product.ImageURL.
type Image struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Placeholder image used when a product is created without an upload.
const (
	PlaceholderImageURL  = "https://placehold.co/600x400.png"
	PlaceholderImageHint = "product image"
)
