package m_product

import (
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/spf13/cast"

	"github.com/gizigo/product-console/internal/app/product/domain"
)

// Document is the stored shape of a product. Optional fields are pointers so
// that absent and zero stay distinguishable.
type Document struct {
	Name        string     `firestore:"name"`
	Category    string     `firestore:"category"`
	SKU         *string    `firestore:"sku"`
	Price       *float64   `firestore:"price"`
	PriceMin    *float64   `firestore:"priceMin"`
	PriceMax    *float64   `firestore:"priceMax"`
	Description *string    `firestore:"description"`
	ImageURL    string     `firestore:"imageUrl"`
	ImageAIHint *string    `firestore:"imageAiHint"`
	IsActive    bool       `firestore:"isActive"`
	CreatedAt   *time.Time `firestore:"createdAt"`
	UpdatedAt   *time.Time `firestore:"updatedAt"`
}

// ToDomain resolves the document into a domain.Product with the given id.
func (d Document) ToDomain(id string) domain.Product {
	p := domain.Product{
		ID:        id,
		Name:      d.Name,
		Category:  d.Category,
		Price:     domain.ResolvePrice(d.Price, d.PriceMin, d.PriceMax),
		ImageURL:  d.ImageURL,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.SKU != nil {
		sku := *d.SKU
		p.SKU = &sku
	}
	if d.Description != nil {
		p.Description = *d.Description
	}
	if d.ImageAIHint != nil {
		p.ImageAIHint = *d.ImageAIHint
	}
	return p.Clone()
}

// Apply writes fields into the document the way a document store would,
// resolving ServerTimestamp to now. A nil value clears an optional field.
func (d *Document) Apply(fields map[string]interface{}, now time.Time) error {
	for field, v := range fields {
		if err := d.set(field, v, now); err != nil {
			return fmt.Errorf("field %s: %w", field, err)
		}
	}
	return nil
}

func (d *Document) set(field string, v interface{}, now time.Time) error {
	switch field {
	case FieldName:
		return setString(&d.Name, v)
	case FieldCategory:
		return setString(&d.Category, v)
	case FieldImageURL:
		return setString(&d.ImageURL, v)
	case FieldSKU:
		return setOptString(&d.SKU, v)
	case FieldDescription:
		return setOptString(&d.Description, v)
	case FieldImageAIHint:
		return setOptString(&d.ImageAIHint, v)
	case FieldPrice:
		return setOptFloat(&d.Price, v)
	case FieldPriceMin:
		return setOptFloat(&d.PriceMin, v)
	case FieldPriceMax:
		return setOptFloat(&d.PriceMax, v)
	case FieldIsActive:
		b, err := cast.ToBoolE(v)
		if err != nil {
			return err
		}
		d.IsActive = b
		return nil
	case FieldCreatedAt:
		return setTime(&d.CreatedAt, v, now)
	case FieldUpdatedAt:
		return setTime(&d.UpdatedAt, v, now)
	default:
		return fmt.Errorf("unknown field")
	}
}

func setString(dst *string, v interface{}) error {
	s, err := cast.ToStringE(v)
	if err != nil {
		return err
	}
	*dst = s
	return nil
}

func setOptString(dst **string, v interface{}) error {
	if v == nil {
		*dst = nil
		return nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return err
	}
	*dst = &s
	return nil
}

func setOptFloat(dst **float64, v interface{}) error {
	if v == nil {
		*dst = nil
		return nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return err
	}
	*dst = &f
	return nil
}

func setTime(dst **time.Time, v interface{}, now time.Time) error {
	if IsServerTimestamp(v) {
		t := now
		*dst = &t
		return nil
	}
	if v == nil {
		*dst = nil
		return nil
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		return err
	}
	*dst = &t
	return nil
}

// BuildInsertMap prepares the fields of a new document. isActive is always
// true and createdAt is requested from the store clock.
func BuildInsertMap(name, category string, price float64, description *string,
	imageURL, imageAIHint, sku string) map[string]interface{} {

	m := map[string]interface{}{
		FieldName:        name,
		FieldCategory:    category,
		FieldSKU:         sku,
		FieldPrice:       price,
		FieldImageURL:    imageURL,
		FieldImageAIHint: imageAIHint,
		FieldIsActive:    true,
		FieldCreatedAt:   ServerTimestamp,
	}
	if description != nil {
		m[FieldDescription] = *description
	} else {
		m[FieldDescription] = nil
	}
	return m
}

// BuildUpdateMap replaces every editable field and requests a fresh updatedAt.
// sku, isActive and createdAt are left alone.
func BuildUpdateMap(name, category string, price float64, description *string,
	imageURL, imageAIHint string) map[string]interface{} {

	m := map[string]interface{}{
		FieldName:        name,
		FieldCategory:    category,
		FieldPrice:       price,
		FieldImageURL:    imageURL,
		FieldImageAIHint: imageAIHint,
		FieldUpdatedAt:   ServerTimestamp,
	}
	if description != nil {
		m[FieldDescription] = *description
	} else {
		m[FieldDescription] = nil
	}
	return m
}

// BuildStatusMap touches only isActive and updatedAt.
func BuildStatusMap(isActive bool) map[string]interface{} {
	return map[string]interface{}{
		FieldIsActive:  isActive,
		FieldUpdatedAt: ServerTimestamp,
	}
}

// spannerColumns translates wire fields to Spanner columns and values.
// ServerTimestamp becomes spanner.CommitTimestamp.
func spannerColumns(values map[string]interface{}) ([]string, []interface{}, error) {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for field, v := range values {
		col, ok := ColumnFor(field)
		if !ok {
			return nil, nil, fmt.Errorf("m_product: unknown field %q", field)
		}
		if IsServerTimestamp(v) {
			v = spanner.CommitTimestamp
		}
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return cols, vals, nil
}

// InsertMutation builds a spanner.Insert mutation for a new product row.
func InsertMutation(productID string, values map[string]interface{}) (*spanner.Mutation, error) {
	cols, vals, err := spannerColumns(values)
	if err != nil {
		return nil, err
	}
	cols = append([]string{ColProductID}, cols...)
	vals = append([]interface{}{productID}, vals...)
	return spanner.Insert(TableName, cols, vals), nil
}

// UpdateMutation builds a spanner.Update mutation. product_id goes first as
// the primary key; Spanner rejects the update when the row does not exist.
func UpdateMutation(productID string, values map[string]interface{}) (*spanner.Mutation, error) {
	cols, vals, err := spannerColumns(values)
	if err != nil {
		return nil, err
	}
	cols = append([]string{ColProductID}, cols...)
	vals = append([]interface{}{productID}, vals...)
	return spanner.Update(TableName, cols, vals), nil
}

// DeleteMutation removes a product row.
func DeleteMutation(productID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{productID})
}

// ScanRow decodes a row read with SelectColumns.
func ScanRow(row *spanner.Row) (string, Document, error) {
	var (
		id                        string
		name, category, imageURL  spanner.NullString
		sku, description, aiHint  spanner.NullString
		price, priceMin, priceMax spanner.NullFloat64
		isActive                  spanner.NullBool
		createdAt, updatedAt      spanner.NullTime
	)
	if err := row.Columns(&id, &name, &category, &sku, &price, &priceMin, &priceMax,
		&description, &imageURL, &aiHint, &isActive, &createdAt, &updatedAt); err != nil {
		return "", Document{}, err
	}

	d := Document{
		Name:     name.StringVal,
		Category: category.StringVal,
		ImageURL: imageURL.StringVal,
		IsActive: isActive.Valid && isActive.Bool,
	}
	d.SKU = optString(sku)
	d.Description = optString(description)
	d.ImageAIHint = optString(aiHint)
	d.Price = optFloat(price)
	d.PriceMin = optFloat(priceMin)
	d.PriceMax = optFloat(priceMax)
	if createdAt.Valid {
		t := createdAt.Time.UTC()
		d.CreatedAt = &t
	}
	if updatedAt.Valid {
		t := updatedAt.Time.UTC()
		d.UpdatedAt = &t
	}
	return id, d, nil
}

func optString(v spanner.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.StringVal
	return &s
}

func optFloat(v spanner.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
