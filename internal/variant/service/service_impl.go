package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/smallbiznis/mall/internal/batch"
	"github.com/smallbiznis/mall/internal/clock"
	"github.com/smallbiznis/mall/internal/config"
	valuedomain "github.com/smallbiznis/mall/internal/optionvalue/domain"
	productdomain "github.com/smallbiznis/mall/internal/product/domain"
	optiondomain "github.com/smallbiznis/mall/internal/productoption/domain"
	"github.com/smallbiznis/mall/internal/tenant"
	"github.com/smallbiznis/mall/internal/validate"
	"github.com/smallbiznis/mall/internal/variant/domain"
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
	ProductRepo productdomain.Repository
	OptionRepo  optiondomain.Repository
	ValueRepo   valuedomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	catalog     *config.CatalogConfigHolder
	repo        domain.Repository
	productRepo productdomain.Repository
	optionRepo  optiondomain.Repository
	valueRepo   valuedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("variant.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		catalog:     p.Catalog,
		repo:        p.Repo,
		productRepo: p.ProductRepo,
		optionRepo:  p.OptionRepo,
		valueRepo:   p.ValueRepo,
	}
}

func newVariantSlug() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// resolveOptionValues enforces option coverage: exactly one supplied value
// per option defined on the product, every value live, and no two values
// sharing an option.
func (s *Service) resolveOptionValues(ctx context.Context, scope tenant.Scope, productID int64, rawIDs []string) ([]int64, error) {
	optionCount, err := s.optionRepo.CountByProduct(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if int64(len(rawIDs)) != optionCount {
		return nil, validate.NewError("The length of the optionValues is invalid!")
	}
	if len(rawIDs) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := globalid.DecodeID(raw)
		if err != nil {
			return nil, validate.NewError("The optionValues is invalid!")
		}
		ids = append(ids, id)
	}

	values, err := s.valueRepo.FindByIDs(ctx, s.db, scope.OrgID.Int64(), ids)
	if err != nil {
		return nil, err
	}
	if len(values) != len(ids) {
		return nil, validate.NewError("The optionValues is invalid!")
	}

	options, err := s.optionRepo.FindByProduct(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	productOptions := make(map[int64]bool, len(options))
	for _, option := range options {
		productOptions[option.ID] = true
	}

	seenOptions := make(map[int64]bool, len(values))
	for _, value := range values {
		if !productOptions[value.OptionID] || seenOptions[value.OptionID] {
			return nil, validate.NewError("The optionValues is invalid!")
		}
		seenOptions[value.OptionID] = true
	}

	return ids, nil
}

func (s *Service) Create(ctx context.Context, scope tenant.Scope, req domain.CreateRequest) (*domain.Variant, error) {
	if err := validate.Price("priceAmount", req.PriceAmount); err != nil {
		return nil, err
	}
	if err := validate.Price("priceSaleAmount", req.PriceSaleAmount); err != nil {
		return nil, err
	}

	productID, err := globalid.DecodeID(req.ProductID)
	if err != nil {
		return nil, validate.NewError("Bad Request!")
	}
	product, err := s.productRepo.FindByID(ctx, s.db, scope.OrgID.Int64(), productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, validate.NewError("Bad Request!")
	}

	valueIDs, err := s.resolveOptionValues(ctx, scope, productID, req.OptionValues)
	if err != nil {
		return nil, err
	}

	var sku *string
	if req.SKU != nil {
		trimmed := strings.TrimSpace(*req.SKU)
		if trimmed != "" {
			existing, err := s.repo.FindBySKU(ctx, s.db, productID, trimmed, 0)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, validate.NewError("The sku is already in use!")
			}
			sku = &trimmed
		}
	}

	now := s.clock.Now()
	v := &domain.Variant{
		ID:              s.genID.Generate().Int64(),
		OrgID:           scope.OrgID.Int64(),
		ProductID:       productID,
		Slug:            newVariantSlug(),
		SKU:             sku,
		Currency:        s.catalog.Get().DefaultCurrency,
		PriceAmount:     req.PriceAmount,
		PriceSaleAmount: req.PriceSaleAmount,
		PublishedAt:     req.PublishedAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if req.IsPublished != nil {
		v.IsPublished = *req.IsPublished
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, v); err != nil {
			return err
		}
		genID := func() int64 { return s.genID.Generate().Int64() }
		return s.repo.ReplaceOptionValues(ctx, tx, genID, v.ID, valueIDs)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("variant created", zap.Int64("variant_id", v.ID), zap.Int64("product_id", productID))
	return v, nil
}

func (s *Service) Update(ctx context.Context, scope tenant.Scope, req domain.UpdateRequest) (*domain.Variant, error) {
	if err := validate.Price("priceAmount", req.PriceAmount.Ptr()); err != nil {
		return nil, err
	}
	if err := validate.Price("priceSaleAmount", req.PriceSaleAmount.Ptr()); err != nil {
		return nil, err
	}

	productID, err := globalid.DecodeID(req.ProductID)
	if err != nil {
		return nil, validate.NewError("Bad Request!")
	}
	product, err := s.productRepo.FindByID(ctx, s.db, scope.OrgID.Int64(), productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, validate.NewError("Bad Request!")
	}

	variantID, err := globalid.DecodeID(req.ID)
	if err != nil {
		return nil, validate.NewError("Can not find this variant!")
	}
	v, err := s.repo.FindByIDAndProduct(ctx, s.db, scope.OrgID.Int64(), variantID, productID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, validate.NewError("Can not find this variant!")
	}
	if v.IsPrimary {
		// Primary variants change only through the product update path.
		return nil, validate.NewError("This operation is not allowed!")
	}

	valueIDs, err := s.resolveOptionValues(ctx, scope, productID, req.OptionValues)
	if err != nil {
		return nil, err
	}

	if req.SKU.Present {
		if !req.SKU.Valid || strings.TrimSpace(req.SKU.Val) == "" {
			v.SKU = nil
		} else {
			trimmed := strings.TrimSpace(req.SKU.Val)
			existing, err := s.repo.FindBySKU(ctx, s.db, productID, trimmed, v.ID)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, validate.NewError("The sku is already in use!")
			}
			v.SKU = &trimmed
		}
	}

	if req.PriceAmount.Present {
		v.PriceAmount = req.PriceAmount.Ptr()
	}
	if req.PriceSaleAmount.Present {
		v.PriceSaleAmount = req.PriceSaleAmount.Ptr()
	}
	if req.IsPublished.Present && req.IsPublished.Valid {
		v.IsPublished = req.IsPublished.Val
	}
	if req.PublishedAt.Present {
		v.PublishedAt = req.PublishedAt.Ptr()
	}
	v.UpdatedAt = s.clock.Now()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, v); err != nil {
			return err
		}
		genID := func() int64 { return s.genID.Generate().Int64() }
		return s.repo.ReplaceOptionValues(ctx, tx, genID, v.ID, valueIDs)
	})
	if err != nil {
		return nil, err
	}

	return v, nil
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
		v, err := s.repo.FindByID(ctx, s.db, scope.OrgID.Int64(), id)
		if err != nil {
			report.Error = append(report.Error, raw)
			continue
		}
		if v == nil {
			report.NotFound = append(report.NotFound, raw)
			continue
		}
		if v.IsPrimary {
			// Primary variants are flagged as protected yet still removed;
			// the report carries both outcomes.
			report.InProtected = append(report.InProtected, raw)
		}
		err = s.db.Transaction(func(tx *gorm.DB) error {
			return s.repo.SoftDeleteCascade(ctx, tx, scope.OrgID.Int64(), id, now)
		})
		if err != nil {
			s.log.Error("variant delete failed", zap.Int64("variant_id", id), zap.Error(err))
			report.Error = append(report.Error, raw)
			continue
		}
		report.Done = append(report.Done, raw)
	}

	return report, nil
}

func (s *Service) Get(ctx context.Context, scope tenant.Scope, id string) (*domain.Variant, error) {
	variantID, err := globalid.DecodeID(id)
	if err != nil {
		return nil, validate.NewError("Bad Request!")
	}
	v, err := s.repo.FindByID(ctx, s.db, scope.OrgID.Int64(), variantID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, validate.NewError("Bad Request!")
	}
	return v, nil
}

func (s *Service) GetVisible(ctx context.Context, scope tenant.Scope, id string) (*domain.Variant, error) {
	v, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	cutoff := clock.PublishCutoff(s.clock.Now())
	if !v.Visible(cutoff) {
		return nil, validate.NewError("Bad Request!")
	}
	product, err := s.productRepo.FindVisibleByID(ctx, s.db, scope.OrgID.Int64(), v.ProductID, cutoff)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, validate.NewError("Bad Request!")
	}
	return v, nil
}

func (s *Service) List(ctx context.Context, scope tenant.Scope, req domain.ListRequest) ([]domain.Variant, int64, error) {
	return s.repo.List(ctx, s.db, scope.OrgID.Int64(), s.buildFilter(scope, req, false))
}

func (s *Service) ListVisible(ctx context.Context, scope tenant.Scope, req domain.ListRequest) ([]domain.Variant, int64, error) {
	return s.repo.List(ctx, s.db, scope.OrgID.Int64(), s.buildFilter(scope, req, true))
}

func (s *Service) buildFilter(scope tenant.Scope, req domain.ListRequest, visibleOnly bool) domain.ListFilter {
	language := req.LanguageCode
	if language == "" {
		language = scope.Language
	}
	return domain.ListFilter{
		Slug:         strings.TrimSpace(req.Slug),
		ProductName:  strings.TrimSpace(req.ProductName),
		IsPrimary:    req.IsPrimary,
		LanguageCode: language,
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
}

func (s *Service) ForProduct(ctx context.Context, scope tenant.Scope, productID int64, visibleOnly bool) ([]domain.Variant, error) {
	return s.repo.FindByProduct(ctx, s.db, scope.OrgID.Int64(), productID, visibleOnly, clock.PublishCutoff(s.clock.Now()))
}

func (s *Service) SelectedValueIDs(ctx context.Context, variantID int64) ([]int64, error) {
	return s.repo.FindOptionValueIDs(ctx, s.db, variantID)
}
