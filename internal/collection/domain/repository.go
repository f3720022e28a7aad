package domain

import (
	"context"

	"github.com/smallbiznis/mall/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	Name        string
	Slug        string
	IsPublished *bool
	OrderBy     []string
	Pagination  pagination.Pagination
}

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, collection *Collection) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id int64) (*Collection, error)
	FindBySlug(ctx context.Context, db *gorm.DB, orgID int64, slug string) (*Collection, error)
	FindByIDs(ctx context.Context, db *gorm.DB, orgID int64, ids []int64) ([]Collection, error)
	List(ctx context.Context, db *gorm.DB, orgID int64, filter ListFilter) ([]Collection, int64, error)

	// ReplaceProductMemberships hard-deletes the product's join rows and
	// recreates them, flagging primaryID when it is non-zero.
	ReplaceProductMemberships(ctx context.Context, db *gorm.DB, genID func() int64, productID int64, collectionIDs []int64, primaryID int64) error
	FindMembershipsByProduct(ctx context.Context, db *gorm.DB, productID int64) ([]CollectionProduct, error)
	FindByProductID(ctx context.Context, db *gorm.DB, orgID, productID int64) ([]Collection, error)
}
