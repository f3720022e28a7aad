package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/mall/internal/batch"
	"github.com/smallbiznis/mall/internal/tenant"
	"github.com/smallbiznis/mall/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, scope tenant.Scope, req CreateRequest) (*ProductOptionValue, error)
	Update(ctx context.Context, scope tenant.Scope, req UpdateRequest) (*ProductOptionValue, error)
	DeleteBatch(ctx context.Context, scope tenant.Scope, ids []string) (*batch.Report, error)

	Get(ctx context.Context, scope tenant.Scope, id string) (*ProductOptionValue, error)
	GetVisible(ctx context.Context, scope tenant.Scope, id string) (*ProductOptionValue, error)
	List(ctx context.Context, scope tenant.Scope, req ListRequest) ([]ProductOptionValue, int64, error)
	ListVisible(ctx context.Context, scope tenant.Scope, req ListRequest) ([]ProductOptionValue, int64, error)

	// ForOption lists an option's live values; linkedOnly keeps only values
	// still linked to a live variant (the public selectedOptionValues read).
	ForOption(ctx context.Context, optionID int64, linkedOnly bool) ([]ProductOptionValue, error)
	// ByIDs resolves the value rows a variant's option links point at.
	ByIDs(ctx context.Context, scope tenant.Scope, ids []int64) ([]ProductOptionValue, error)
	Translations(ctx context.Context, valueID int64) ([]ProductOptionValueTranslation, error)
	Translation(ctx context.Context, valueID int64, languageCode string) (*ProductOptionValueTranslation, error)
}

type TranslationInput struct {
	LanguageCode string
	Name         string
}

type CreateRequest struct {
	OptionID     string
	SortKey      int
	Translations []TranslationInput
}

type UpdateRequest struct {
	ID           string
	SortKey      int
	Translations []TranslationInput
}

type ListRequest struct {
	OptionID     string
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
	OrderBy      []string
	Pagination   pagination.Pagination
}
