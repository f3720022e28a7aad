package repository

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/mall/internal/variant/domain"
	"github.com/smallbiznis/mall/pkg/db/filters"
	"github.com/smallbiznis/mall/pkg/db/ordering"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, variant *domain.Variant) error {
	return db.WithContext(ctx).Create(variant).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, variant *domain.Variant) error {
	if variant == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).
		Model(&domain.Variant{}).
		Where("org_id = ? AND id = ?", variant.OrgID, variant.ID).
		Updates(map[string]any{
			"sku":               variant.SKU,
			"currency":          variant.Currency,
			"price_amount":      variant.PriceAmount,
			"price_sale_amount": variant.PriceSaleAmount,
			"is_published":      variant.IsPublished,
			"published_at":      variant.PublishedAt,
			"updated_at":        variant.UpdatedAt,
		}).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id int64) (*domain.Variant, error) {
	var v domain.Variant
	err := db.WithContext(ctx).
		Where("org_id = ? AND id = ? AND deleted_at IS NULL", orgID, id).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repo) FindByIDAndProduct(ctx context.Context, db *gorm.DB, orgID, id, productID int64) (*domain.Variant, error) {
	var v domain.Variant
	err := db.WithContext(ctx).
		Where("org_id = ? AND id = ? AND product_id = ? AND deleted_at IS NULL", orgID, id, productID).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repo) FindPrimaryByProduct(ctx context.Context, db *gorm.DB, orgID, productID int64) (*domain.Variant, error) {
	var v domain.Variant
	err := db.WithContext(ctx).
		Where("org_id = ? AND product_id = ? AND is_primary = ? AND deleted_at IS NULL", orgID, productID, true).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repo) FindByProduct(ctx context.Context, db *gorm.DB, orgID, productID int64, visibleOnly bool, cutoff time.Time) ([]domain.Variant, error) {
	stmt := db.WithContext(ctx).
		Where("org_id = ? AND product_id = ? AND deleted_at IS NULL", orgID, productID)
	if visibleOnly {
		stmt = stmt.
			Where("is_published = ?", true).
			Where("published_at IS NULL OR published_at < ?", cutoff)
	}
	var items []domain.Variant
	if err := stmt.Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindBySKU(ctx context.Context, db *gorm.DB, productID int64, sku string, excludeID int64) (*domain.Variant, error) {
	stmt := db.WithContext(ctx).
		Where("product_id = ? AND sku = ? AND deleted_at IS NULL", productID, sku)
	if excludeID != 0 {
		stmt = stmt.Where("id <> ?", excludeID)
	}
	var v domain.Variant
	err := stmt.First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID int64, filter domain.ListFilter) ([]domain.Variant, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Variant{}).
		Joins("JOIN products p ON p.id = variants.product_id").
		Where("variants.org_id = ? AND variants.deleted_at IS NULL AND p.deleted_at IS NULL", orgID)

	if filter.Slug != "" {
		stmt = stmt.Where("variants.slug = ?", filter.Slug)
	}
	if filter.IsPrimary != nil {
		stmt = stmt.Where("variants.is_primary = ?", *filter.IsPrimary)
	}
	if filter.ProductName != "" {
		stmt = stmt.
			Joins("LEFT JOIN product_translations pt ON pt.product_id = p.id AND pt.language_code = ? AND pt.deleted_at IS NULL", filter.LanguageCode).
			Where("LOWER(pt.name) LIKE ?", filters.Contains(filter.ProductName))
	}
	stmt = filters.TimeRanges{
		CreatedAtGT:  filter.CreatedAtGT,
		CreatedAtGTE: filter.CreatedAtGTE,
		CreatedAtLT:  filter.CreatedAtLT,
		CreatedAtLTE: filter.CreatedAtLTE,
		UpdatedAtGT:  filter.UpdatedAtGT,
		UpdatedAtGTE: filter.UpdatedAtGTE,
		UpdatedAtLT:  filter.UpdatedAtLT,
		UpdatedAtLTE: filter.UpdatedAtLTE,
	}.Apply(stmt, "variants")

	if filter.VisibleOnly {
		stmt = stmt.
			Where("variants.is_published = ?", true).
			Where("variants.published_at IS NULL OR variants.published_at < ?", filter.VisibleAt).
			Where("p.is_published = ?", true).
			Where("p.published_at IS NULL OR p.published_at < ?", filter.VisibleAt)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	stmt = ordering.Apply(stmt, filter.OrderBy, map[string]string{
		"sortKey":         "p.sort_key",
		"countAccess":     "p.count_access",
		"priceSaleAmount": "variants.price_sale_amount",
		"createdAt":       "variants.created_at",
		"updatedAt":       "variants.updated_at",
	}, "variants.created_at ASC")
	stmt = filter.Pagination.Apply(stmt)

	var items []domain.Variant
	if err := stmt.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repo) ReplaceOptionValues(ctx context.Context, db *gorm.DB, genID func() int64, variantID int64, valueIDs []int64) error {
	session := db.WithContext(ctx)

	keep := make(map[int64]bool, len(valueIDs))
	for _, id := range valueIDs {
		keep[id] = true
	}

	var existing []domain.VariantOptionValue
	if err := session.
		Where("variant_id = ? AND deleted_at IS NULL", variantID).
		Find(&existing).Error; err != nil {
		return err
	}

	now := time.Now().UTC()
	have := make(map[int64]bool, len(existing))
	for _, link := range existing {
		if !keep[link.ValueID] {
			if err := session.
				Model(&domain.VariantOptionValue{}).
				Where("id = ?", link.ID).
				Update("deleted_at", now).Error; err != nil {
				return err
			}
			continue
		}
		have[link.ValueID] = true
	}

	for _, valueID := range valueIDs {
		if have[valueID] {
			continue
		}
		link := domain.VariantOptionValue{
			ID:        genID(),
			VariantID: variantID,
			ValueID:   valueID,
			CreatedAt: now,
		}
		if err := session.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) FindOptionValueIDs(ctx context.Context, db *gorm.DB, variantID int64) ([]int64, error) {
	var ids []int64
	err := db.WithContext(ctx).
		Model(&domain.VariantOptionValue{}).
		Where("variant_id = ? AND deleted_at IS NULL", variantID).
		Pluck("option_value_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repo) SoftDeleteCascade(ctx context.Context, db *gorm.DB, orgID, id int64, now time.Time) error {
	session := db.WithContext(ctx)

	if err := session.Exec(
		`UPDATE variant_option_values SET deleted_at = ? WHERE variant_id = ? AND deleted_at IS NULL`,
		now, id,
	).Error; err != nil {
		return err
	}
	return session.Exec(
		`UPDATE variants SET deleted_at = ?, updated_at = ? WHERE org_id = ? AND id = ? AND deleted_at IS NULL`,
		now, now, orgID, id,
	).Error
}
