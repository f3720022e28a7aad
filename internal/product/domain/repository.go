package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/mall/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	LanguageCode string

	Name        string
	Description string
	Summary     string
	Content     string
	Slug        string
	Serial      string
	CanSearch   *bool
	IsPublished *bool

	CreatedAtGT  *time.Time
	CreatedAtGTE *time.Time
	CreatedAtLT  *time.Time
	CreatedAtLTE *time.Time
	UpdatedAtGT  *time.Time
	UpdatedAtGTE *time.Time
	UpdatedAtLT  *time.Time
	UpdatedAtLTE *time.Time

	// VisibleOnly restricts rows to the public predicate, with VisibleAt as
	// the publish cutoff.
	VisibleOnly bool
	VisibleAt   time.Time

	OrderBy    []string
	Pagination pagination.Pagination
}

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id int64) (*Product, error)
	FindVisibleByID(ctx context.Context, db *gorm.DB, orgID, id int64, cutoff time.Time) (*Product, error)
	// FindBySlug looks up a live product by slug, skipping excludeID so
	// updates can re-validate their own slug.
	FindBySlug(ctx context.Context, db *gorm.DB, orgID int64, slug string, excludeID int64) (*Product, error)
	List(ctx context.Context, db *gorm.DB, orgID int64, filter ListFilter) ([]Product, int64, error)

	UpsertTranslation(ctx context.Context, db *gorm.DB, t *ProductTranslation) error
	FindTranslations(ctx context.Context, db *gorm.DB, productID int64) ([]ProductTranslation, error)
	FindTranslation(ctx context.Context, db *gorm.DB, productID int64, languageCode string) (*ProductTranslation, error)

	IncrementAccess(ctx context.Context, db *gorm.DB, orgID, id int64) error

	// SoftDeleteCascade marks the product and every owned row deleted:
	// translations, options, option translations, values, value
	// translations, variants and variant links. Collection join rows are
	// hard-deleted.
	SoftDeleteCascade(ctx context.Context, db *gorm.DB, orgID, id int64, now time.Time) error
}
