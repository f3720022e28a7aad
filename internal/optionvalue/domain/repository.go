package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/mall/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	OptionID     int64
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

	VisibleOnly bool
	VisibleAt   time.Time

	// LinkedOnly keeps only values with a live variant link; the public
	// selectedOptionValues field reads with it set.
	LinkedOnly bool

	OrderBy    []string
	Pagination pagination.Pagination
}

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, value *ProductOptionValue) error
	Update(ctx context.Context, db *gorm.DB, value *ProductOptionValue) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id int64) (*ProductOptionValue, error)
	FindByIDs(ctx context.Context, db *gorm.DB, orgID int64, ids []int64) ([]ProductOptionValue, error)
	FindByOption(ctx context.Context, db *gorm.DB, optionID int64, linkedOnly bool) ([]ProductOptionValue, error)
	List(ctx context.Context, db *gorm.DB, orgID int64, filter ListFilter) ([]ProductOptionValue, int64, error)

	UpsertTranslation(ctx context.Context, db *gorm.DB, t *ProductOptionValueTranslation) error
	FindTranslations(ctx context.Context, db *gorm.DB, valueID int64) ([]ProductOptionValueTranslation, error)
	FindTranslation(ctx context.Context, db *gorm.DB, valueID int64, languageCode string) (*ProductOptionValueTranslation, error)

	// SoftDeleteCascade marks the value, its translations and its variant
	// links.
	SoftDeleteCascade(ctx context.Context, db *gorm.DB, orgID, id int64, now time.Time) error
}
