package domain

import "time"

// ProductPlace and ProductSupplier are lookup references a product may point
// at. They have no write surface; rows arrive through seeding or operator
// SQL.
type ProductPlace struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	OrgID     int64      `json:"orgId" gorm:"column:org_id;not null;index:ix_product_places_org"`
	Name      string     `json:"name" gorm:"type:text;not null"`
	CreatedAt time.Time  `json:"createdAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time  `json:"updatedAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt *time.Time `json:"-" gorm:"index"`
}

func (ProductPlace) TableName() string { return "product_places" }

type ProductSupplier struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	OrgID     int64      `json:"orgId" gorm:"column:org_id;not null;index:ix_product_suppliers_org"`
	Name      string     `json:"name" gorm:"type:text;not null"`
	CreatedAt time.Time  `json:"createdAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time  `json:"updatedAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt *time.Time `json:"-" gorm:"index"`
}

func (ProductSupplier) TableName() string { return "product_suppliers" }
