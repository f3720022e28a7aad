package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/mall/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	ProductID    int64
	LanguageCode string
	Name         string

	CreatedAtGT  *time.Time
	CreatedAtGTE *time.Time
	CreatedAtLT  *time.Time
	CreatedAtLTE *time.Time
	UpdatedAtGT  *time.Time
	UpdatedAtGTE *time.Time
	UpdatedAtLT  *time.Time
	UpdatedAtLTE *time.Time

	// VisibleOnly gates rows on the parent product being publicly visible
	// and searchable.
	VisibleOnly bool
	VisibleAt   time.Time

	OrderBy    []string
	Pagination pagination.Pagination
}

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, option *ProductOption) error
	Update(ctx context.Context, db *gorm.DB, option *ProductOption) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id int64) (*ProductOption, error)
	FindByProduct(ctx context.Context, db *gorm.DB, productID int64) ([]ProductOption, error)
	CountByProduct(ctx context.Context, db *gorm.DB, productID int64) (int64, error)
	List(ctx context.Context, db *gorm.DB, orgID int64, filter ListFilter) ([]ProductOption, int64, error)

	UpsertTranslation(ctx context.Context, db *gorm.DB, t *ProductOptionTranslation) error
	FindTranslations(ctx context.Context, db *gorm.DB, optionID int64) ([]ProductOptionTranslation, error)
	FindTranslation(ctx context.Context, db *gorm.DB, optionID int64, languageCode string) (*ProductOptionTranslation, error)

	// SoftDeleteCascade marks the option, its translations, its values,
	// their translations and every variant link through those values.
	SoftDeleteCascade(ctx context.Context, db *gorm.DB, orgID, id int64, now time.Time) error
}
