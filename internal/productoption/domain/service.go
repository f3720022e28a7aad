package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/mall/internal/batch"
	"github.com/smallbiznis/mall/internal/tenant"
	"github.com/smallbiznis/mall/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, scope tenant.Scope, req CreateRequest) (*ProductOption, error)
	Update(ctx context.Context, scope tenant.Scope, req UpdateRequest) (*ProductOption, error)
	DeleteBatch(ctx context.Context, scope tenant.Scope, ids []string) (*batch.Report, error)

	Get(ctx context.Context, scope tenant.Scope, id string) (*ProductOption, error)
	GetVisible(ctx context.Context, scope tenant.Scope, id string) (*ProductOption, error)
	List(ctx context.Context, scope tenant.Scope, req ListRequest) ([]ProductOption, int64, error)
	ListVisible(ctx context.Context, scope tenant.Scope, req ListRequest) ([]ProductOption, int64, error)

	ForProduct(ctx context.Context, productID int64) ([]ProductOption, error)
	Translations(ctx context.Context, optionID int64) ([]ProductOptionTranslation, error)
	Translation(ctx context.Context, optionID int64, languageCode string) (*ProductOptionTranslation, error)
}

type TranslationInput struct {
	LanguageCode string
	Name         string
}

type CreateRequest struct {
	ProductID    string
	SortKey      int
	Translations []TranslationInput
}

type UpdateRequest struct {
	ID           string
	SortKey      int
	Translations []TranslationInput
}

type ListRequest struct {
	ProductID    string
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
