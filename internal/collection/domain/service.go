package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/mall/internal/tenant"
	"github.com/smallbiznis/mall/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, scope tenant.Scope, req CreateRequest) (*Collection, error)
	Get(ctx context.Context, scope tenant.Scope, id string) (*Collection, error)
	List(ctx context.Context, scope tenant.Scope, req ListRequest) ([]Collection, int64, error)
	ForProduct(ctx context.Context, scope tenant.Scope, productID int64) ([]Collection, error)
}

type CreateRequest struct {
	Name        string
	IsPublished *bool
	PublishedAt *time.Time
}

type ListRequest struct {
	Name        string
	Slug        string
	IsPublished *bool
	OrderBy     []string
	Pagination  pagination.Pagination
}
