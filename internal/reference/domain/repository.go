package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindPlaceByID(ctx context.Context, db *gorm.DB, orgID, id int64) (*ProductPlace, error)
	FindSupplierByID(ctx context.Context, db *gorm.DB, orgID, id int64) (*ProductSupplier, error)
}
