package domain

import "time"

type Collection struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	OrgID       int64      `json:"orgId" gorm:"column:org_id;not null;index:ix_collections_org_slug,priority:1"`
	Slug        string     `json:"slug" gorm:"type:text;not null;index:ix_collections_org_slug,priority:2"`
	Name        string     `json:"name" gorm:"type:text;not null"`
	IsPublished bool       `json:"isPublished" gorm:"not null;default:false"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time  `json:"updatedAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt   *time.Time `json:"-" gorm:"index"`
}

func (Collection) TableName() string { return "collections" }

// CollectionProduct links a product to a collection. At most one row per
// product carries IsPrimary. Rows are hard-deleted and recreated when a
// product's memberships change.
type CollectionProduct struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	CollectionID int64     `json:"collectionId" gorm:"not null;index:ix_collection_products_collection"`
	ProductID    int64     `json:"productId" gorm:"not null;index:ix_collection_products_product"`
	IsPrimary    bool      `json:"isPrimary" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"createdAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (CollectionProduct) TableName() string { return "collection_products" }
