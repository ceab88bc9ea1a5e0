// Package datauri inline-encodes uploaded images as RFC 2397 data URIs so they
// can be embedded in a document field.
package datauri

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/gizigo/product-console/internal/app/product/domain"
)

var ErrEmptyImage = errors.New("datauri: image has no content")

// Encoder reads an image to completion and returns "data:<mime>;base64,<payload>".
type Encoder struct {
	// MaxSize bounds how much is read; zero means domain.MaxImageSize.
	MaxSize int64
}

func NewEncoder() *Encoder {
	return &Encoder{MaxSize: domain.MaxImageSize}
}

// Encode reads img.Content fully. The declared content type is used when
// present, otherwise the type is sniffed from the bytes.
func (e *Encoder) Encode(ctx context.Context, img domain.Image) (string, error) {
	if img.Content == nil {
		return "", ErrEmptyImage
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	limit := e.MaxSize
	if limit <= 0 {
		limit = domain.MaxImageSize
	}
	data, err := io.ReadAll(io.LimitReader(img.Content, limit+1))
	if err != nil {
		return "", fmt.Errorf("datauri: read %s: %w", img.Filename, err)
	}
	if len(data) == 0 {
		return "", ErrEmptyImage
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("datauri: %s exceeds %d bytes", img.Filename, limit)
	}

	mime := baseType(img.ContentType)
	if mime == "" {
		mime = baseType(mimetype.Detect(data).String())
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Sniff detects the MIME type of r from its leading bytes and rewinds r.
// Parameters such as charset are dropped.
func Sniff(r io.ReadSeeker) (string, error) {
	m, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("datauri: sniff: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("datauri: rewind: %w", err)
	}
	return baseType(m.String()), nil
}

func baseType(mime string) string {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return strings.TrimSpace(mime)
}
