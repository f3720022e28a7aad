package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	collectiondomain "github.com/smallbiznis/mall/internal/collection/domain"
	"github.com/smallbiznis/mall/internal/batch"
	"github.com/smallbiznis/mall/internal/clock"
	"github.com/smallbiznis/mall/internal/config"
	"github.com/smallbiznis/mall/internal/product/domain"
	referencedomain "github.com/smallbiznis/mall/internal/reference/domain"
	"github.com/smallbiznis/mall/internal/tenant"
	"github.com/smallbiznis/mall/internal/translation"
	"github.com/smallbiznis/mall/internal/validate"
	variantdomain "github.com/smallbiznis/mall/internal/variant/domain"
	"github.com/smallbiznis/mall/pkg/globalid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB             *gorm.DB
	Log            *zap.Logger
	GenID          *snowflake.Node
	Clock          clock.Clock
	Catalog        *config.CatalogConfigHolder
	Repo           domain.Repository
	VariantRepo    variantdomain.Repository
	CollectionRepo collectiondomain.Repository
	ReferenceRepo  referencedomain.Repository
}

type Service struct {
	db             *gorm.DB
	log            *zap.Logger
	genID          *snowflake.Node
	clock          clock.Clock
	catalog        *config.CatalogConfigHolder
	repo           domain.Repository
	variantRepo    variantdomain.Repository
	collectionRepo collectiondomain.Repository
	referenceRepo  referencedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:             p.DB,
		log:            p.Log.Named("product.service"),
		genID:          p.GenID,
		clock:          p.Clock,
		catalog:        p.Catalog,
		repo:           p.Repo,
		variantRepo:    p.VariantRepo,
		collectionRepo: p.CollectionRepo,
		referenceRepo:  p.ReferenceRepo,
	}
}

// newVariantSlug mints the opaque token primary and secondary variants carry
// instead of a human slug.
func newVariantSlug() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (s *Service) translationHelper() translation.Helper {
	return translation.Helper{
		Languages:      s.catalog.Get().Languages,
		RequiredFields: []string{"name"},
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
	ok, message := s.translationHelper().Validate("product", converted)
	if !ok {
		return validate.NewError(message)
	}
	return nil
}

type collectionRefs struct {
	ids       []int64
	primaryID int64
}

// resolveCollections decodes and resolves the membership set and the primary
// membership, enforcing that the primary is part of the set.
func (s *Service) resolveCollections(ctx context.Context, scope tenant.Scope, collectionID *string, collectionIDs []string) (collectionRefs, error) {
	var refs collectionRefs

	for _, raw := range collectionIDs {
		id, err := globalid.DecodeID(raw)
		if err != nil {
			return refs, validate.NewError("Can not find some collection!")
		}
		refs.ids = append(refs.ids, id)
	}

	if collectionID != nil && *collectionID != "" {
		primaryID, err := globalid.DecodeID(*collectionID)
		if err != nil {
			return refs, validate.NewError("Can not find this collection!")
		}
		found := false
		for _, id := range refs.ids {
			if id == primaryID {
				found = true
				break
			}
		}
		if !found {
			return refs, validate.NewError("The collectionId must in collectionIds!")
		}
		refs.primaryID = primaryID
	}

	if len(refs.ids) > 0 {
		existing, err := s.collectionRepo.FindByIDs(ctx, s.db, scope.OrgID.Int64(), refs.ids)
		if err != nil {
			return refs, err
		}
		if len(existing) != len(refs.ids) {
			return refs, validate.NewError("Can not find some collection!")
		}
	}

	return refs, nil
}

func (s *Service) resolvePlace(ctx context.Context, scope tenant.Scope, raw string) (int64, error) {
	id, err := globalid.DecodeID(raw)
	if err != nil {
		return 0, validate.NewError("Can not find this productPlace!")
	}
	place, err := s.referenceRepo.FindPlaceByID(ctx, s.db, scope.OrgID.Int64(), id)
	if err != nil {
		return 0, err
	}
	if place == nil {
		return 0, validate.NewError("Can not find this productPlace!")
	}
	return id, nil
}

func (s *Service) resolveSupplier(ctx context.Context, scope tenant.Scope, raw string) (int64, error) {
	id, err := globalid.DecodeID(raw)
	if err != nil {
		return 0, validate.NewError("Can not find this productSupplier!")
	}
	supplier, err := s.referenceRepo.FindSupplierByID(ctx, s.db, scope.OrgID.Int64(), id)
	if err != nil {
		return 0, err
	}
	if supplier == nil {
		return 0, validate.NewError("Can not find this productSupplier!")
	}
	return id, nil
}

func (s *Service) Create(ctx context.Context, scope tenant.Scope, req domain.CreateRequest) (*domain.Product, error) {
	if err := s.validateTranslations(req.Translations); err != nil {
		return nil, err
	}
	slug := strings.TrimSpace(req.Slug)
	if err := validate.Slug(slug); err != nil {
		return nil, err
	}
	if err := validate.Price("priceAmount", req.PriceAmount); err != nil {
		return nil, err
	}
	if err := validate.Price("priceSaleAmount", req.PriceSaleAmount); err != nil {
		return nil, err
	}

	var placeID, supplierID *int64
	if req.PlaceID != nil && *req.PlaceID != "" {
		id, err := s.resolvePlace(ctx, scope, *req.PlaceID)
		if err != nil {
			return nil, err
		}
		placeID = &id
	}
	if req.SupplierID != nil && *req.SupplierID != "" {
		id, err := s.resolveSupplier(ctx, scope, *req.SupplierID)
		if err != nil {
			return nil, err
		}
		supplierID = &id
	}

	refs, err := s.resolveCollections(ctx, scope, req.CollectionID, req.CollectionIDs)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindBySlug(ctx, s.db, scope.OrgID.Int64(), slug, 0)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, validate.NewError("The slug is already in use!")
	}

	now := s.clock.Now()
	p := &domain.Product{
		ID:          s.genID.Generate().Int64(),
		OrgID:       scope.OrgID.Int64(),
		Slug:        slug,
		Serial:      req.Serial,
		CanSearch:   true,
		PublishedAt: req.PublishedAt,
		PlaceID:     placeID,
		SupplierID:  supplierID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.SortKey != nil {
		p.SortKey = *req.SortKey
	}
	if req.CanSearch != nil {
		p.CanSearch = *req.CanSearch
	}
	if req.IsPublished != nil {
		p.IsPublished = *req.IsPublished
	}
	if req.Metadata != nil {
		p.Metadata = datatypes.JSONMap(req.Metadata)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, p); err != nil {
			return err
		}
		for _, entry := range req.Translations {
			t := &domain.ProductTranslation{
				ID:           s.genID.Generate().Int64(),
				ProductID:    p.ID,
				LanguageCode: entry.LanguageCode,
				Name:         strings.TrimSpace(entry.Name),
				Description:  entry.Description,
				Summary:      entry.Summary,
				Content:      entry.Content,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := s.repo.UpsertTranslation(ctx, tx, t); err != nil {
				return err
			}
		}

		primary := &variantdomain.Variant{
			ID:              s.genID.Generate().Int64(),
			OrgID:           scope.OrgID.Int64(),
			ProductID:       p.ID,
			Slug:            newVariantSlug(),
			Currency:        s.catalog.Get().DefaultCurrency,
			PriceAmount:     req.PriceAmount,
			PriceSaleAmount: req.PriceSaleAmount,
			IsPrimary:       true,
			IsPublished:     p.IsPublished,
			PublishedAt:     p.PublishedAt,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := s.variantRepo.Create(ctx, tx, primary); err != nil {
			return err
		}

		if len(refs.ids) > 0 {
			genID := func() int64 { return s.genID.Generate().Int64() }
			if err := s.collectionRepo.ReplaceProductMemberships(ctx, tx, genID, p.ID, refs.ids, refs.primaryID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("product created", zap.Int64("product_id", p.ID), zap.String("slug", p.Slug))
	return p, nil
}

func (s *Service) Update(ctx context.Context, scope tenant.Scope, req domain.UpdateRequest) (*domain.Product, error) {
	productID, err := globalid.DecodeID(req.ID)
	if err != nil {
		return nil, validate.NewError("Can not find this product!")
	}
	p, err := s.repo.FindByID(ctx, s.db, scope.OrgID.Int64(), productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, validate.NewError("Can not find this product!")
	}

	if err := s.validateTranslations(req.Translations); err != nil {
		return nil, err
	}

	if req.Slug.Present {
		if !req.Slug.Valid {
			return nil, validate.NewError("The slug is invalid!")
		}
		slug := strings.TrimSpace(req.Slug.Val)
		if err := validate.Slug(slug); err != nil {
			return nil, err
		}
		other, err := s.repo.FindBySlug(ctx, s.db, scope.OrgID.Int64(), slug, p.ID)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, validate.NewError("The slug is already in use!")
		}
		p.Slug = slug
	}

	if err := validate.Price("priceAmount", req.PriceAmount.Ptr()); err != nil {
		return nil, err
	}
	if err := validate.Price("priceSaleAmount", req.PriceSaleAmount.Ptr()); err != nil {
		return nil, err
	}

	if req.Serial.Present {
		p.Serial = req.Serial.Ptr()
	}
	if req.SortKey.Present && req.SortKey.Valid {
		p.SortKey = req.SortKey.Val
	}
	if req.CanSearch.Present && req.CanSearch.Valid {
		p.CanSearch = req.CanSearch.Val
	}
	if req.IsPublished.Present && req.IsPublished.Valid {
		p.IsPublished = req.IsPublished.Val
	}
	if req.PublishedAt.Present {
		p.PublishedAt = req.PublishedAt.Ptr()
	}
	if req.Metadata.Present {
		if req.Metadata.Valid {
			p.Metadata = datatypes.JSONMap(req.Metadata.Val)
		} else {
			p.Metadata = nil
		}
	}

	if req.PlaceID.Present {
		if !req.PlaceID.Valid || req.PlaceID.Val == "" {
			p.PlaceID = nil
		} else {
			id, err := s.resolvePlace(ctx, scope, req.PlaceID.Val)
			if err != nil {
				return nil, err
			}
			p.PlaceID = &id
		}
	}
	if req.SupplierID.Present {
		if !req.SupplierID.Valid || req.SupplierID.Val == "" {
			p.SupplierID = nil
		} else {
			id, err := s.resolveSupplier(ctx, scope, req.SupplierID.Val)
			if err != nil {
				return nil, err
			}
			p.SupplierID = &id
		}
	}

	replaceMemberships := req.CollectionIDs.Present || req.CollectionID.Present
	var refs collectionRefs
	if replaceMemberships {
		var rawIDs []string
		if req.CollectionIDs.Valid {
			rawIDs = req.CollectionIDs.Val
		}
		refs, err = s.resolveCollections(ctx, scope, req.CollectionID.Ptr(), rawIDs)
		if err != nil {
			return nil, err
		}
	}

	now := s.clock.Now()
	p.UpdatedAt = now

	primary, err := s.variantRepo.FindPrimaryByProduct(ctx, s.db, scope.OrgID.Int64(), p.ID)
	if err != nil {
		return nil, err
	}
	if primary == nil {
		return nil, validate.NewError("Can not find this variant!")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, p); err != nil {
			return err
		}
		for _, entry := range req.Translations {
			t := &domain.ProductTranslation{
				ID:           s.genID.Generate().Int64(),
				ProductID:    p.ID,
				LanguageCode: entry.LanguageCode,
				Name:         strings.TrimSpace(entry.Name),
				Description:  entry.Description,
				Summary:      entry.Summary,
				Content:      entry.Content,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := s.repo.UpsertTranslation(ctx, tx, t); err != nil {
				return err
			}
		}

		if req.PriceAmount.Present {
			primary.PriceAmount = req.PriceAmount.Ptr()
		}
		if req.PriceSaleAmount.Present {
			primary.PriceSaleAmount = req.PriceSaleAmount.Ptr()
		}
		primary.IsPublished = p.IsPublished
		primary.PublishedAt = p.PublishedAt
		// The primary variant never carries its own sku.
		primary.SKU = nil
		primary.UpdatedAt = now
		if err := s.variantRepo.Update(ctx, tx, primary); err != nil {
			return err
		}

		if replaceMemberships {
			genID := func() int64 { return s.genID.Generate().Int64() }
			if err := s.collectionRepo.ReplaceProductMemberships(ctx, tx, genID, p.ID, refs.ids, refs.primaryID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("product updated", zap.Int64("product_id", p.ID))
	return p, nil
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
		p, err := s.repo.FindByID(ctx, s.db, scope.OrgID.Int64(), id)
		if err != nil {
			report.Error = append(report.Error, raw)
			continue
		}
		if p == nil {
			report.NotFound = append(report.NotFound, raw)
			continue
		}
		err = s.db.Transaction(func(tx *gorm.DB) error {
			return s.repo.SoftDeleteCascade(ctx, tx, scope.OrgID.Int64(), id, now)
		})
		if err != nil {
			s.log.Error("product delete failed", zap.Int64("product_id", id), zap.Error(err))
			report.Error = append(report.Error, raw)
			continue
		}
		report.Done = append(report.Done, raw)
	}

	return report, nil
}

func (s *Service) Get(ctx context.Context, scope tenant.Scope, id string) (*domain.Product, error) {
	productID, err := globalid.DecodeID(id)
	if err != nil {
		return nil, validate.NewError("Bad Request!")
	}
	p, err := s.repo.FindByID(ctx, s.db, scope.OrgID.Int64(), productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, validate.NewError("Bad Request!")
	}
	return p, nil
}

func (s *Service) GetVisible(ctx context.Context, scope tenant.Scope, id string) (*domain.Product, error) {
	productID, err := globalid.DecodeID(id)
	if err != nil {
		return nil, validate.NewError("Bad Request!")
	}
	p, err := s.repo.FindVisibleByID(ctx, s.db, scope.OrgID.Int64(), productID, clock.PublishCutoff(s.clock.Now()))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, validate.NewError("Bad Request!")
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, scope tenant.Scope, req domain.ListRequest) ([]domain.Product, int64, error) {
	return s.repo.List(ctx, s.db, scope.OrgID.Int64(), s.buildFilter(scope, req, false))
}

func (s *Service) ListVisible(ctx context.Context, scope tenant.Scope, req domain.ListRequest) ([]domain.Product, int64, error) {
	return s.repo.List(ctx, s.db, scope.OrgID.Int64(), s.buildFilter(scope, req, true))
}

func (s *Service) buildFilter(scope tenant.Scope, req domain.ListRequest, visibleOnly bool) domain.ListFilter {
	language := req.LanguageCode
	if language == "" {
		language = scope.Language
	}
	return domain.ListFilter{
		LanguageCode: language,
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		Summary:      strings.TrimSpace(req.Summary),
		Content:      strings.TrimSpace(req.Content),
		Slug:         strings.TrimSpace(req.Slug),
		Serial:       strings.TrimSpace(req.Serial),
		CanSearch:    req.CanSearch,
		IsPublished:  req.IsPublished,
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

func (s *Service) IncrementAccess(ctx context.Context, scope tenant.Scope, id string) (*domain.Product, error) {
	productID, err := globalid.DecodeID(id)
	if err != nil {
		return nil, validate.NewError("Can not find this product!")
	}
	p, err := s.repo.FindByID(ctx, s.db, scope.OrgID.Int64(), productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, validate.NewError("Can not find this product!")
	}
	if err := s.repo.IncrementAccess(ctx, s.db, scope.OrgID.Int64(), productID); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, s.db, scope.OrgID.Int64(), productID)
}

func (s *Service) Translations(ctx context.Context, productID int64) ([]domain.ProductTranslation, error) {
	return s.repo.FindTranslations(ctx, s.db, productID)
}

func (s *Service) Translation(ctx context.Context, productID int64, languageCode string) (*domain.ProductTranslation, error) {
	return s.repo.FindTranslation(ctx, s.db, productID, languageCode)
}

func (s *Service) ResolveVisible(ctx context.Context, scope tenant.Scope, productID int64) (*domain.Product, error) {
	return s.repo.FindVisibleByID(ctx, s.db, scope.OrgID.Int64(), productID, clock.PublishCutoff(s.clock.Now()))
}
