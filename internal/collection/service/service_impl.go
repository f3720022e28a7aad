package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/mall/internal/collection/domain"
	"github.com/smallbiznis/mall/internal/tenant"
	"github.com/smallbiznis/mall/internal/validate"
	"github.com/smallbiznis/mall/pkg/globalid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("collection.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, scope tenant.Scope, req domain.CreateRequest) (*domain.Collection, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validate.NewError("The name is required!")
	}

	collectionSlug := slug.Make(name)
	existing, err := s.repo.FindBySlug(ctx, s.db, scope.OrgID.Int64(), collectionSlug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, validate.NewError("The slug is already in use!")
	}

	now := time.Now().UTC()
	c := &domain.Collection{
		ID:          s.genID.Generate().Int64(),
		OrgID:       scope.OrgID.Int64(),
		Slug:        collectionSlug,
		Name:        name,
		PublishedAt: req.PublishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.IsPublished != nil {
		c.IsPublished = *req.IsPublished
	}

	if err := s.repo.Create(ctx, s.db, c); err != nil {
		return nil, err
	}
	s.log.Info("collection created", zap.Int64("collection_id", c.ID), zap.String("slug", c.Slug))
	return c, nil
}

func (s *Service) Get(ctx context.Context, scope tenant.Scope, id string) (*domain.Collection, error) {
	collectionID, err := globalid.DecodeID(id)
	if err != nil {
		return nil, validate.NewError("Bad Request!")
	}
	c, err := s.repo.FindByID(ctx, s.db, scope.OrgID.Int64(), collectionID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, validate.NewError("Bad Request!")
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, scope tenant.Scope, req domain.ListRequest) ([]domain.Collection, int64, error) {
	filter := domain.ListFilter{
		Name:        strings.TrimSpace(req.Name),
		Slug:        strings.TrimSpace(req.Slug),
		IsPublished: req.IsPublished,
		OrderBy:     req.OrderBy,
		Pagination:  req.Pagination.Normalize(),
	}
	return s.repo.List(ctx, s.db, scope.OrgID.Int64(), filter)
}

func (s *Service) ForProduct(ctx context.Context, scope tenant.Scope, productID int64) ([]domain.Collection, error) {
	return s.repo.FindByProductID(ctx, s.db, scope.OrgID.Int64(), productID)
}
