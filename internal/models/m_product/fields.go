package m_product

// Document field names as they appear on the wire (the "products" collection).
const (
	CollectionName = "products"

	FieldName        = "name"
	FieldCategory    = "category"
	FieldSKU         = "sku"
	FieldPrice       = "price"
	FieldPriceMin    = "priceMin"
	FieldPriceMax    = "priceMax"
	FieldDescription = "description"
	FieldImageURL    = "imageUrl"
	FieldImageAIHint = "imageAiHint"
	FieldIsActive    = "isActive"
	FieldCreatedAt   = "createdAt"
	FieldUpdatedAt   = "updatedAt"
)

// Column constants for the Spanner products table.
const (
	TableName = "products"

	ColProductID   = "product_id"
	ColName        = "name"
	ColCategory    = "category"
	ColSKU         = "sku"
	ColPrice       = "price"
	ColPriceMin    = "price_min"
	ColPriceMax    = "price_max"
	ColDescription = "description"
	ColImageURL    = "image_url"
	ColImageAIHint = "image_ai_hint"
	ColIsActive    = "is_active"
	ColCreatedAt   = "created_at"
	ColUpdatedAt   = "updated_at"
)

var fieldColumns = map[string]string{
	FieldName:        ColName,
	FieldCategory:    ColCategory,
	FieldSKU:         ColSKU,
	FieldPrice:       ColPrice,
	FieldPriceMin:    ColPriceMin,
	FieldPriceMax:    ColPriceMax,
	FieldDescription: ColDescription,
	FieldImageURL:    ColImageURL,
	FieldImageAIHint: ColImageAIHint,
	FieldIsActive:    ColIsActive,
	FieldCreatedAt:   ColCreatedAt,
	FieldUpdatedAt:   ColUpdatedAt,
}

// ColumnFor maps a wire field name to its Spanner column.
func ColumnFor(field string) (string, bool) {
	col, ok := fieldColumns[field]
	return col, ok
}

// SelectColumns is the column order used by ScanRow.
var SelectColumns = []string{
	ColProductID, ColName, ColCategory, ColSKU, ColPrice, ColPriceMin, ColPriceMax,
	ColDescription, ColImageURL, ColImageAIHint, ColIsActive, ColCreatedAt, ColUpdatedAt,
}

// serverTimestamp marks a field the store must fill from its own clock.
type serverTimestamp struct{}

// ServerTimestamp is the value written for createdAt/updatedAt.
var ServerTimestamp interface{} = serverTimestamp{}

// IsServerTimestamp reports whether v is the ServerTimestamp sentinel.
func IsServerTimestamp(v interface{}) bool {
	_, ok := v.(serverTimestamp)
	return ok
}
