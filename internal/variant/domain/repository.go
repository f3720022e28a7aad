package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/mall/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	Slug        string
	ProductName string
	IsPrimary   *bool

	CreatedAtGT  *time.Time
	CreatedAtGTE *time.Time
	CreatedAtLT  *time.Time
	CreatedAtLTE *time.Time
	UpdatedAtGT  *time.Time
	UpdatedAtGTE *time.Time
	UpdatedAtLT  *time.Time
	UpdatedAtLTE *time.Time

	// VisibleOnly applies the public predicate to both the variant and its
	// parent product.
	VisibleOnly bool
	VisibleAt   time.Time

	// LanguageCode pins the translation join used by ProductName filtering
	// and name ordering.
	LanguageCode string

	OrderBy    []string
	Pagination pagination.Pagination
}

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, variant *Variant) error
	Update(ctx context.Context, db *gorm.DB, variant *Variant) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id int64) (*Variant, error)
	FindByIDAndProduct(ctx context.Context, db *gorm.DB, orgID, id, productID int64) (*Variant, error)
	FindPrimaryByProduct(ctx context.Context, db *gorm.DB, orgID, productID int64) (*Variant, error)
	// FindByProduct lists a product's live variants; visibleOnly applies the
	// public predicate to the variant rows with cutoff as the publish bound.
	FindByProduct(ctx context.Context, db *gorm.DB, orgID, productID int64, visibleOnly bool, cutoff time.Time) ([]Variant, error)
	// FindBySKU checks live non-null skus within a product, skipping
	// excludeID so updates can keep their own sku.
	FindBySKU(ctx context.Context, db *gorm.DB, productID int64, sku string, excludeID int64) (*Variant, error)
	List(ctx context.Context, db *gorm.DB, orgID int64, filter ListFilter) ([]Variant, int64, error)

	// ReplaceOptionValues reconciles the variant's link rows against
	// valueIDs: links outside the set are removed, missing ones created.
	ReplaceOptionValues(ctx context.Context, db *gorm.DB, genID func() int64, variantID int64, valueIDs []int64) error
	FindOptionValueIDs(ctx context.Context, db *gorm.DB, variantID int64) ([]int64, error)

	// SoftDeleteCascade marks the variant and its link rows.
	SoftDeleteCascade(ctx context.Context, db *gorm.DB, orgID, id int64, now time.Time) error
}
