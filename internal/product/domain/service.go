package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/mall/internal/batch"
	"github.com/smallbiznis/mall/internal/tenant"
	"github.com/smallbiznis/mall/pkg/db/pagination"
	"github.com/smallbiznis/mall/pkg/optional"
)

type Service interface {
	Create(ctx context.Context, scope tenant.Scope, req CreateRequest) (*Product, error)
	Update(ctx context.Context, scope tenant.Scope, req UpdateRequest) (*Product, error)
	DeleteBatch(ctx context.Context, scope tenant.Scope, ids []string) (*batch.Report, error)

	Get(ctx context.Context, scope tenant.Scope, id string) (*Product, error)
	GetVisible(ctx context.Context, scope tenant.Scope, id string) (*Product, error)
	List(ctx context.Context, scope tenant.Scope, req ListRequest) ([]Product, int64, error)
	ListVisible(ctx context.Context, scope tenant.Scope, req ListRequest) ([]Product, int64, error)

	IncrementAccess(ctx context.Context, scope tenant.Scope, id string) (*Product, error)

	Translations(ctx context.Context, productID int64) ([]ProductTranslation, error)
	Translation(ctx context.Context, productID int64, languageCode string) (*ProductTranslation, error)

	// ResolveVisible rechecks the public predicate for an already-loaded
	// row; variant and option reads gate on their parent product with it.
	ResolveVisible(ctx context.Context, scope tenant.Scope, productID int64) (*Product, error)
}

type TranslationInput struct {
	LanguageCode string
	Name         string
	Description  *string
	Summary      *string
	Content      *string
}

type CreateRequest struct {
	Slug            string
	Serial          *string
	SortKey         *int
	PriceAmount     *float64
	PriceSaleAmount *float64
	PlaceID         *string
	SupplierID      *string
	CollectionID    *string
	CollectionIDs   []string
	CanSearch       *bool
	IsPublished     *bool
	PublishedAt     *time.Time
	Metadata        map[string]any
	Translations    []TranslationInput
}

// UpdateRequest uses optional values: an absent field keeps the stored
// value, an explicit null clears it.
type UpdateRequest struct {
	ID              string
	Slug            optional.Value[string]
	Serial          optional.Value[string]
	SortKey         optional.Value[int]
	PriceAmount     optional.Value[float64]
	PriceSaleAmount optional.Value[float64]
	PlaceID         optional.Value[string]
	SupplierID      optional.Value[string]
	CollectionID    optional.Value[string]
	CollectionIDs   optional.Value[[]string]
	CanSearch       optional.Value[bool]
	IsPublished     optional.Value[bool]
	PublishedAt     optional.Value[time.Time]
	Metadata        optional.Value[map[string]any]
	Translations    []TranslationInput
}

type ListRequest struct {
	LanguageCode string
	Name         string
	Description  string
	Summary      string
	Content      string
	Slug         string
	Serial       string
	CanSearch    *bool
	IsPublished  *bool
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
