package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validDraft() Draft {
	return Draft{Name: "Roti Gandum", Category: "Bakery", Price: 25000}
}

func requireFieldErrors(t *testing.T, err error) ValidationErrors {
	t.Helper()
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	return verrs
}

func TestValidate_NameLength(t *testing.T) {
	d := validDraft()
	d.Name = "ab"
	_, err := d.Validate()
	verrs := requireFieldErrors(t, err)
	assert.True(t, verrs.Has("name"))
	assert.Len(t, verrs, 1)

	d.Name = "abc"
	_, err = d.Validate()
	require.NoError(t, err)
}

func TestValidate_NameIsTrimmed(t *testing.T) {
	d := validDraft()
	d.Name = "  ab  "
	_, err := d.Validate()
	verrs := requireFieldErrors(t, err)
	assert.True(t, verrs.Has("name"))

	d.Name = "  Roti  "
	v, err := d.Validate()
	require.NoError(t, err)
	assert.Equal(t, "Roti", v.Name)
}

func TestValidate_Category(t *testing.T) {
	d := validDraft()
	d.Category = ""
	_, err := d.Validate()
	verrs := requireFieldErrors(t, err)
	assert.True(t, verrs.Has("category"))
}

func TestValidate_Price(t *testing.T) {
	cases := []struct {
		name  string
		price any
		ok    bool
	}{
		{"zero", 0, false},
		{"one", 1, true},
		{"negative", -5, false},
		{"numeric string", "25000", true},
		{"padded string", " 1500 ", true},
		{"empty string", "", false},
		{"not a number", "abc", false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			d.Price = tc.price
			_, err := d.Validate()
			if tc.ok {
				require.NoError(t, err)
				return
			}
			verrs := requireFieldErrors(t, err)
			assert.True(t, verrs.Has("price"))
			assert.Len(t, verrs, 1)
		})
	}
}

func TestValidate_PriceCoerced(t *testing.T) {
	d := validDraft()
	d.Price = "25000"
	v, err := d.Validate()
	require.NoError(t, err)
	assert.Equal(t, 25000.0, v.Price)
}

func TestValidate_Description(t *testing.T) {
	d := validDraft()
	v, err := d.Validate()
	require.NoError(t, err)
	assert.Equal(t, "", v.Description)

	d.Description = strPtr(strings.Repeat("x", 9))
	_, err = d.Validate()
	verrs := requireFieldErrors(t, err)
	assert.True(t, verrs.Has("description"))

	d.Description = strPtr(strings.Repeat("x", 10))
	v, err = d.Validate()
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 10), v.Description)

	d.Description = strPtr("   ")
	_, err = d.Validate()
	require.NoError(t, err)
}

func TestValidate_Image(t *testing.T) {
	cases := []struct {
		name        string
		size        int64
		contentType string
		ok          bool
	}{
		{"png too large", 6 * 1024 * 1024, "image/png", false},
		{"bmp", 1024 * 1024, "image/bmp", false},
		{"webp", 1024 * 1024, "image/webp", true},
		{"exact limit", MaxImageSize, "image/jpeg", true},
		{"one byte over", MaxImageSize + 1, "image/gif", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			d.Image = &Image{Filename: "photo", ContentType: tc.contentType, Size: tc.size}
			_, err := d.Validate()
			if tc.ok {
				require.NoError(t, err)
				return
			}
			verrs := requireFieldErrors(t, err)
			assert.True(t, verrs.Has("image"))
		})
	}
}

func TestValidate_ImageMessages(t *testing.T) {
	d := validDraft()
	d.Image = &Image{Filename: "photo.bmp", ContentType: "image/bmp", Size: MaxImageSize + 1}
	_, err := d.Validate()
	verrs := requireFieldErrors(t, err)

	require.Len(t, verrs, 2)
	assert.Equal(t, FieldError{Field: "image", Message: "image must be at most 5MB"}, verrs[0])
	assert.Equal(t, FieldError{Field: "image", Message: "supported image formats: JPEG, PNG, GIF, WEBP"}, verrs[1])
}

func TestValidate_ReportsEveryField(t *testing.T) {
	d := Draft{Name: "x", Category: "y", Price: 0, Description: strPtr("short")}
	_, err := d.Validate()
	verrs := requireFieldErrors(t, err)

	for _, f := range []string{"name", "category", "price", "description"} {
		assert.True(t, verrs.Has(f), f)
	}
}
