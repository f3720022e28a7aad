package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/mall/internal/batch"
	"github.com/smallbiznis/mall/internal/clock"
	"github.com/smallbiznis/mall/internal/config"
	"github.com/smallbiznis/mall/internal/optionvalue/domain"
	productdomain "github.com/smallbiznis/mall/internal/product/domain"
	optiondomain "github.com/smallbiznis/mall/internal/productoption/domain"
	"github.com/smallbiznis/mall/internal/tenant"
	"github.com/smallbiznis/mall/internal/translation"
	"github.com/smallbiznis/mall/internal/validate"
	"github.com/smallbiznis/mall/pkg/globalid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Catalog     *config.CatalogConfigHolder
	Repo        domain.Repository
	OptionRepo  optiondomain.Repository
	ProductRepo productdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	catalog     *config.CatalogConfigHolder
	repo        domain.Repository
	optionRepo  optiondomain.Repository
	productRepo productdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("optionvalue.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		catalog:     p.Catalog,
		repo:        p.Repo,
		optionRepo:  p.OptionRepo,
		productRepo: p.ProductRepo,
	}
}

func (s *Service) validateTranslations(entries []domain.TranslationInput) error {
	converted := make([]translation.Entry, 0, len(entries))
	for _, entry := range entries {
		converted = append(converted, translation.Entry{
			LanguageCode: entry.LanguageCode,
			Fields:       map[string]string{"name": strings.TrimSpace(entry.Name)},
		})
	}
	helper := translation.Helper{
		Languages:      s.catalog.Get().Languages,
		RequiredFields: []string{"name"},
	}
	ok, message := helper.Validate("productOptionValue", converted)
	if !ok {
		return validate.NewError(message)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, scope tenant.Scope, req domain.CreateRequest) (*domain.ProductOptionValue, error) {
	optionID, err := globalid.DecodeID(req.OptionID)
	if err != nil {
		return nil, validate.NewError("Can not find this productOption!")
	}
	option, err := s.optionRepo.FindByID(ctx, s.db, scope.OrgID.Int64(), optionID)
	if err != nil {
		return nil, err
	}
	if option == nil {
		return nil, validate.NewError("Can not find this productOption!")
	}

	if err := s.validateTranslations(req.Translations); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	value := &domain.ProductOptionValue{
		ID:        s.genID.Generate().Int64(),
		OrgID:     scope.OrgID.Int64(),
		OptionID:  optionID,
		SortKey:   req.SortKey,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, value); err != nil {
			return err
		}
		for _, entry := range req.Translations {
			t := &domain.ProductOptionValueTranslation{
				ID:           s.genID.Generate().Int64(),
				ValueID:      value.ID,
				LanguageCode: entry.LanguageCode,
				Name:         strings.TrimSpace(entry.Name),
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := s.repo.UpsertTranslation(ctx, tx, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("product option value created", zap.Int64("value_id", value.ID), zap.Int64("option_id", optionID))
	return value, nil
}

func (s *Service) Update(ctx context.Context, scope tenant.Scope, req domain.UpdateRequest) (*domain.ProductOptionValue, error) {
	// The target id resolves the value itself; the parent option comes from
	// the loaded row.
	valueID, err := globalid.DecodeID(req.ID)
	if err != nil {
		return nil, validate.NewError("Can not find this productOptionValue!")
	}
	value, err := s.repo.FindByID(ctx, s.db, scope.OrgID.Int64(), valueID)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, validate.NewError("Can not find this productOptionValue!")
	}

	if err := s.validateTranslations(req.Translations); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	value.SortKey = req.SortKey
	value.UpdatedAt = now

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, value); err != nil {
			return err
		}
		for _, entry := range req.Translations {
			t := &domain.ProductOptionValueTranslation{
				ID:           s.genID.Generate().Int64(),
				ValueID:      value.ID,
				LanguageCode: entry.LanguageCode,
				Name:         strings.TrimSpace(entry.Name),
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := s.repo.UpsertTranslation(ctx, tx, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (s *Service) DeleteBatch(ctx context.Context, scope tenant.Scope, ids []string) (*batch.Report, error) {
	report := batch.NewReport()
	now := s.clock.Now()

	for _, raw := range ids {
		id, err := globalid.DecodeID(raw)
		if err != nil {
			report.Error = append(report.Error, raw)
			continue
		}
		value, err := s.repo.FindByID(ctx, s.db, scope.OrgID.Int64(), id)
		if err != nil {
			report.Error = append(report.Error, raw)
			continue
		}
		if value == nil {
			report.NotFound = append(report.NotFound, raw)
			continue
		}
		err = s.db.Transaction(func(tx *gorm.DB) error {
			return s.repo.SoftDeleteCascade(ctx, tx, scope.OrgID.Int64(), id, now)
		})
		if err != nil {
			s.log.Error("product option value delete failed", zap.Int64("value_id", id), zap.Error(err))
			report.Error = append(report.Error, raw)
			continue
		}
		report.Done = append(report.Done, raw)
	}

	return report, nil
}

func (s *Service) Get(ctx context.Context, scope tenant.Scope, id string) (*domain.ProductOptionValue, error) {
	valueID, err := globalid.DecodeID(id)
	if err != nil {
		return nil, validate.NewError("Bad Request!")
	}
	value, err := s.repo.FindByID(ctx, s.db, scope.OrgID.Int64(), valueID)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, validate.NewError("Bad Request!")
	}
	return value, nil
}

func (s *Service) GetVisible(ctx context.Context, scope tenant.Scope, id string) (*domain.ProductOptionValue, error) {
	value, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	option, err := s.optionRepo.FindByID(ctx, s.db, scope.OrgID.Int64(), value.OptionID)
	if err != nil {
		return nil, err
	}
	if option == nil {
		return nil, validate.NewError("Bad Request!")
	}
	product, err := s.productRepo.FindVisibleByID(ctx, s.db, scope.OrgID.Int64(), option.ProductID, clock.PublishCutoff(s.clock.Now()))
	if err != nil {
		return nil, err
	}
	if product == nil || !product.CanSearch {
		return nil, validate.NewError("Bad Request!")
	}
	return value, nil
}

func (s *Service) List(ctx context.Context, scope tenant.Scope, req domain.ListRequest) ([]domain.ProductOptionValue, int64, error) {
	filter, err := s.buildFilter(scope, req, false)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, s.db, scope.OrgID.Int64(), filter)
}

func (s *Service) ListVisible(ctx context.Context, scope tenant.Scope, req domain.ListRequest) ([]domain.ProductOptionValue, int64, error) {
	filter, err := s.buildFilter(scope, req, true)
	if err != nil {
		return nil, 0, err
	}
	filter.LinkedOnly = true
	return s.repo.List(ctx, s.db, scope.OrgID.Int64(), filter)
}

func (s *Service) buildFilter(scope tenant.Scope, req domain.ListRequest, visibleOnly bool) (domain.ListFilter, error) {
	filter := domain.ListFilter{
		LanguageCode: req.LanguageCode,
		Name:         strings.TrimSpace(req.Name),
		CreatedAtGT:  req.CreatedAtGT,
		CreatedAtGTE: req.CreatedAtGTE,
		CreatedAtLT:  req.CreatedAtLT,
		CreatedAtLTE: req.CreatedAtLTE,
		UpdatedAtGT:  req.UpdatedAtGT,
		UpdatedAtGTE: req.UpdatedAtGTE,
		UpdatedAtLT:  req.UpdatedAtLT,
		UpdatedAtLTE: req.UpdatedAtLTE,
		VisibleOnly:  visibleOnly,
		VisibleAt:    clock.PublishCutoff(s.clock.Now()),
		OrderBy:      req.OrderBy,
		Pagination:   req.Pagination.Normalize(),
	}
	if filter.LanguageCode == "" {
		filter.LanguageCode = scope.Language
	}
	if req.OptionID != "" {
		optionID, err := globalid.DecodeID(req.OptionID)
		if err != nil {
			return filter, validate.NewError("Bad Request!")
		}
		filter.OptionID = optionID
	}
	return filter, nil
}

func (s *Service) ForOption(ctx context.Context, optionID int64, linkedOnly bool) ([]domain.ProductOptionValue, error) {
	return s.repo.FindByOption(ctx, s.db, optionID, linkedOnly)
}

func (s *Service) ByIDs(ctx context.Context, scope tenant.Scope, ids []int64) ([]domain.ProductOptionValue, error) {
	if len(ids) == 0 {
		return []domain.ProductOptionValue{}, nil
	}
	return s.repo.FindByIDs(ctx, s.db, scope.OrgID.Int64(), ids)
}

func (s *Service) Translations(ctx context.Context, valueID int64) ([]domain.ProductOptionValueTranslation, error) {
	return s.repo.FindTranslations(ctx, s.db, valueID)
}

func (s *Service) Translation(ctx context.Context, valueID int64, languageCode string) (*domain.ProductOptionValueTranslation, error) {
	return s.repo.FindTranslation(ctx, s.db, valueID, languageCode)
}
