package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

// Draft holds the editable fields of a product as submitted by a form.
// Price accepts anything spf13/cast can coerce to a number ("25000", 25000, 2.5e4).
type Draft struct {
	Name        string
	Category    string
	Price       any
	Description *string
	Image       *Image
}

// Validated is a Draft that passed validation, with values normalized.
type Validated struct {
	Name        string
	Category    string
	Price       float64
	Description string
	Image       *Image
}

// FieldError is a rejection of one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors lists every rejected field of a Draft.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "invalid product: " + strings.Join(parts, "; ")
}

// Has reports whether field was rejected.
func (v ValidationErrors) Has(field string) bool {
	for _, fe := range v {
		if fe.Field == field {
			return true
		}
	}
	return false
}

type draftRules struct {
	Name        string  `json:"name" validate:"required,min=3"`
	Category    string  `json:"category" validate:"required,min=3"`
	Price       float64 `json:"price" validate:"gt=0"`
	Description string  `json:"description" validate:"omitempty,min=10"`
}

// Image limits live in image.go; the rules are built from them.
var (
	imageSizeRule = fmt.Sprintf("max=%d", MaxImageSize)
	imageTypeRule = "oneof=" + strings.Join(AllowedImageTypes, " ")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the draft locally. On failure it returns a KindValidation
// *Error wrapping ValidationErrors; no store call is ever involved.
func (d Draft) Validate() (Validated, error) {
	out := Validated{
		Name:     strings.TrimSpace(d.Name),
		Category: strings.TrimSpace(d.Category),
		Image:    d.Image,
	}
	if d.Description != nil {
		out.Description = strings.TrimSpace(*d.Description)
	}

	var errs ValidationErrors

	price, coerceErr := coercePrice(d.Price)
	rules := draftRules{
		Name:        out.Name,
		Category:    out.Category,
		Price:       price,
		Description: out.Description,
	}
	if coerceErr != nil {
		// Reported below; keep the gt=0 rule from adding a second price message.
		rules.Price = 1
	}
	errs = append(errs, collect(validate.Struct(rules))...)
	if coerceErr != nil {
		errs = append(errs, FieldError{Field: "price", Message: "price must be a number"})
	}

	if d.Image != nil {
		errs = append(errs, validateImage(*d.Image)...)
	}

	if len(errs) > 0 {
		return Validated{}, &Error{Kind: KindValidation, Message: errs.Error(), Err: errs}
	}
	out.Price = price
	return out, nil
}

func validateImage(img Image) ValidationErrors {
	var errs ValidationErrors
	if validate.Var(img.Size, imageSizeRule) != nil {
		errs = append(errs, FieldError{
			Field:   "image",
			Message: fmt.Sprintf("image must be at most %dMB", MaxImageSize>>20),
		})
	}
	if validate.Var(img.ContentType, imageTypeRule) != nil {
		labels := make([]string, 0, len(AllowedImageTypes))
		for _, t := range AllowedImageTypes {
			labels = append(labels, strings.ToUpper(strings.TrimPrefix(t, "image/")))
		}
		errs = append(errs, FieldError{
			Field:   "image",
			Message: "supported image formats: " + strings.Join(labels, ", "),
		})
	}
	return errs
}

func coercePrice(v any) (float64, error) {
	if v == nil {
		return 0, nil
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
		v = s
	}
	return cast.ToFloat64E(v)
}

func collect(err error) ValidationErrors {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{{Field: "", Message: err.Error()}}
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "gt":
		return "price cannot be empty or zero"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
