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
	Create(ctx context.Context, scope tenant.Scope, req CreateRequest) (*Variant, error)
	Update(ctx context.Context, scope tenant.Scope, req UpdateRequest) (*Variant, error)
	DeleteBatch(ctx context.Context, scope tenant.Scope, ids []string) (*batch.Report, error)

	Get(ctx context.Context, scope tenant.Scope, id string) (*Variant, error)
	GetVisible(ctx context.Context, scope tenant.Scope, id string) (*Variant, error)
	List(ctx context.Context, scope tenant.Scope, req ListRequest) ([]Variant, int64, error)
	ListVisible(ctx context.Context, scope tenant.Scope, req ListRequest) ([]Variant, int64, error)

	ForProduct(ctx context.Context, scope tenant.Scope, productID int64, visibleOnly bool) ([]Variant, error)
	// SelectedValueIDs returns the value ids the variant's live links point
	// at.
	SelectedValueIDs(ctx context.Context, variantID int64) ([]int64, error)
}

type CreateRequest struct {
	ProductID       string
	SKU             *string
	PriceAmount     *float64
	PriceSaleAmount *float64
	OptionValues    []string
	IsPublished     *bool
	PublishedAt     *time.Time
}

type UpdateRequest struct {
	ID              string
	ProductID       string
	SKU             optional.Value[string]
	PriceAmount     optional.Value[float64]
	PriceSaleAmount optional.Value[float64]
	OptionValues    []string
	IsPublished     optional.Value[bool]
	PublishedAt     optional.Value[time.Time]
}

type ListRequest struct {
	Slug         string
	ProductName  string
	IsPrimary    *bool
	LanguageCode string
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
