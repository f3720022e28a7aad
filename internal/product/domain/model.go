package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Product struct {
	ID          int64             `json:"id" gorm:"primaryKey"`
	OrgID       int64             `json:"orgId" gorm:"column:org_id;not null;index:ix_products_org_slug,priority:1"`
	Slug        string            `json:"slug" gorm:"type:text;not null;index:ix_products_org_slug,priority:2"`
	Serial      *string           `json:"serial,omitempty" gorm:"type:text"`
	SortKey     int               `json:"sortKey" gorm:"not null;default:0"`
	CanSearch   bool              `json:"canSearch" gorm:"not null;default:true"`
	IsPublished bool              `json:"isPublished" gorm:"not null;default:false"`
	PublishedAt *time.Time        `json:"publishedAt"`
	CountAccess int64             `json:"countAccess" gorm:"not null;default:0"`
	PlaceID     *int64            `json:"-" gorm:"column:place_id"`
	SupplierID  *int64            `json:"-" gorm:"column:supplier_id"`
	Metadata    datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt   time.Time         `json:"createdAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time         `json:"updatedAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt   *time.Time        `json:"-" gorm:"index"`
}

func (Product) TableName() string { return "products" }

// Visible reports the public-surface predicate: published and past the
// publish cutoff. cutoff is the start of the next UTC day, so anything
// published today already counts.
func (p Product) Visible(cutoff time.Time) bool {
	if !p.IsPublished {
		return false
	}
	return p.PublishedAt == nil || p.PublishedAt.Before(cutoff)
}

type ProductTranslation struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	ProductID    int64      `json:"productId" gorm:"not null;index:ix_product_translations_product_lang,priority:1"`
	LanguageCode string     `json:"languageCode" gorm:"type:text;not null;index:ix_product_translations_product_lang,priority:2"`
	Name         string     `json:"name" gorm:"type:text;not null"`
	Description  *string    `json:"description,omitempty" gorm:"type:text"`
	Summary      *string    `json:"summary,omitempty" gorm:"type:text"`
	Content      *string    `json:"content,omitempty" gorm:"type:text"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time  `json:"updatedAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt    *time.Time `json:"-" gorm:"index"`
}

func (ProductTranslation) TableName() string { return "product_translations" }
