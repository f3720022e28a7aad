package domain

import "time"

type Variant struct {
	ID              int64      `json:"id" gorm:"primaryKey"`
	OrgID           int64      `json:"orgId" gorm:"column:org_id;not null;index:ix_variants_org"`
	ProductID       int64      `json:"productId" gorm:"not null;index:ix_variants_product"`
	Slug            string     `json:"slug" gorm:"type:text;not null"`
	SKU             *string    `json:"sku,omitempty" gorm:"column:sku;type:text"`
	Currency        string     `json:"currency" gorm:"type:text;not null"`
	PriceAmount     *float64   `json:"priceAmount"`
	PriceSaleAmount *float64   `json:"priceSaleAmount"`
	IsPrimary       bool       `json:"isPrimary" gorm:"not null;default:false"`
	IsPublished     bool       `json:"isPublished" gorm:"not null;default:false"`
	PublishedAt     *time.Time `json:"publishedAt"`
	CreatedAt       time.Time  `json:"createdAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time  `json:"updatedAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt       *time.Time `json:"-" gorm:"index"`
}

func (Variant) TableName() string { return "variants" }

// Visible reports the public-surface predicate for the variant row itself;
// callers also gate on the parent product.
func (v Variant) Visible(cutoff time.Time) bool {
	if !v.IsPublished {
		return false
	}
	return v.PublishedAt == nil || v.PublishedAt.Before(cutoff)
}

type VariantOptionValue struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	VariantID int64      `json:"variantId" gorm:"not null;index:ix_variant_option_values_variant"`
	ValueID   int64      `json:"valueId" gorm:"column:option_value_id;not null;index:ix_variant_option_values_value"`
	CreatedAt time.Time  `json:"createdAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt *time.Time `json:"-" gorm:"index"`
}

func (VariantOptionValue) TableName() string { return "variant_option_values" }
