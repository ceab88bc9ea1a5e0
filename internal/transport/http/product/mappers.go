package product

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gizigo/product-console/internal/app/product/catalog"
	"github.com/gizigo/product-console/internal/app/product/domain"
	"github.com/gizigo/product-console/internal/app/product/dto"
	"github.com/gizigo/product-console/internal/pkg/datauri"
)

// productForm is the decoded create/edit form. Nil pointers mean the field
// was not sent at all.
type productForm struct {
	Name        *string
	Category    *string
	Price       any
	Description *string
	Image       *domain.Image
	file        multipart.File
}

func (f *productForm) Close() {
	if f.file != nil {
		_ = f.file.Close()
	}
}

func formValue(c echo.Context, key string) *string {
	params, err := c.FormParams()
	if err != nil {
		return nil
	}
	vs, ok := params[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	v := vs[0]
	return &v
}

func bindProductForm(c echo.Context) (*productForm, error) {
	f := &productForm{
		Name:        formValue(c, "name"),
		Category:    formValue(c, "category"),
		Description: formValue(c, "description"),
	}
	if p := formValue(c, "price"); p != nil {
		f.Price = *p
	}

	fh, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return f, nil
	case err != nil:
		return nil, err
	}
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	f.file = file
	// The declared part type is client-controlled; the bytes decide.
	contentType, err := datauri.Sniff(file)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	f.Image = &domain.Image{
		Filename:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Content:     file,
	}
	return f, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type statusPayload struct {
	IsActive *bool `json:"isActive"`
}

type viewResponse struct {
	State      string            `json:"state"`
	Products   []*dto.ProductDTO `json:"products"`
	Counts     catalog.Counts    `json:"counts"`
	SearchTerm string            `json:"searchTerm"`
	Filter     string            `json:"filter"`
	Error      *ErrorResponse    `json:"error,omitempty"`
}

func mapView(v catalog.View) viewResponse {
	out := viewResponse{
		State:      v.State.String(),
		Products:   dto.FromDomainList(v.Products),
		Counts:     v.Counts,
		SearchTerm: v.SearchTerm,
		Filter:     string(v.Filter),
	}
	if v.Err != nil {
		_, resp := mapError(v.Err)
		out.Error = &resp
	}
	return out
}
