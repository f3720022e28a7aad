package repository

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/mall/internal/product/domain"
	"github.com/smallbiznis/mall/pkg/db/filters"
	"github.com/smallbiznis/mall/pkg/db/ordering"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	if product == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("org_id = ? AND id = ?", product.OrgID, product.ID).
		Updates(map[string]any{
			"slug":         product.Slug,
			"serial":       product.Serial,
			"sort_key":     product.SortKey,
			"can_search":   product.CanSearch,
			"is_published": product.IsPublished,
			"published_at": product.PublishedAt,
			"place_id":     product.PlaceID,
			"supplier_id":  product.SupplierID,
			"metadata":     product.Metadata,
			"updated_at":   product.UpdatedAt,
		}).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id int64) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).
		Where("org_id = ? AND id = ? AND deleted_at IS NULL", orgID, id).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) FindVisibleByID(ctx context.Context, db *gorm.DB, orgID, id int64, cutoff time.Time) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).
		Where("org_id = ? AND id = ? AND deleted_at IS NULL", orgID, id).
		Where("is_published = ?", true).
		Where("published_at IS NULL OR published_at < ?", cutoff).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, orgID int64, slug string, excludeID int64) (*domain.Product, error) {
	stmt := db.WithContext(ctx).
		Where("org_id = ? AND slug = ? AND deleted_at IS NULL", orgID, slug)
	if excludeID != 0 {
		stmt = stmt.Where("id <> ?", excludeID)
	}
	var p domain.Product
	err := stmt.First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID int64, filter domain.ListFilter) ([]domain.Product, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("products.org_id = ? AND products.deleted_at IS NULL", orgID)

	if needsTranslationJoin(filter) {
		stmt = stmt.Joins(
			"LEFT JOIN product_translations pt ON pt.product_id = products.id AND pt.language_code = ? AND pt.deleted_at IS NULL",
			filter.LanguageCode,
		)
	}

	if filter.Name != "" {
		stmt = stmt.Where("LOWER(pt.name) LIKE ?", filters.Contains(filter.Name))
	}
	if filter.Description != "" {
		stmt = stmt.Where("LOWER(pt.description) LIKE ?", filters.Contains(filter.Description))
	}
	if filter.Summary != "" {
		stmt = stmt.Where("LOWER(pt.summary) LIKE ?", filters.Contains(filter.Summary))
	}
	if filter.Content != "" {
		stmt = stmt.Where("LOWER(pt.content) LIKE ?", filters.Contains(filter.Content))
	}
	if filter.Slug != "" {
		stmt = stmt.Where("products.slug = ?", filter.Slug)
	}
	if filter.Serial != "" {
		stmt = stmt.Where("products.serial = ?", filter.Serial)
	}
	if filter.CanSearch != nil {
		stmt = stmt.Where("products.can_search = ?", *filter.CanSearch)
	}
	if filter.IsPublished != nil {
		stmt = stmt.Where("products.is_published = ?", *filter.IsPublished)
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
	}.Apply(stmt, "products")
	if filter.VisibleOnly {
		stmt = stmt.
			Where("products.is_published = ?", true).
			Where("products.published_at IS NULL OR products.published_at < ?", filter.VisibleAt)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	fallback := "products.created_at ASC"
	if requested, desc := ordering.Requested(filter.OrderBy, "priceSaleAmount"); requested {
		if desc {
			stmt = stmt.Order("(SELECT MAX(v.price_sale_amount) FROM variants v WHERE v.product_id = products.id AND v.deleted_at IS NULL) DESC")
		} else {
			stmt = stmt.Order("(SELECT MIN(v.price_sale_amount) FROM variants v WHERE v.product_id = products.id AND v.deleted_at IS NULL) ASC")
		}
		fallback = ""
	}
	stmt = ordering.Apply(stmt, filter.OrderBy, map[string]string{
		"name":        "pt.name",
		"sortKey":     "products.sort_key",
		"countAccess": "products.count_access",
		"createdAt":   "products.created_at",
		"updatedAt":   "products.updated_at",
	}, fallback)
	stmt = filter.Pagination.Apply(stmt)

	var items []domain.Product
	if err := stmt.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repo) UpsertTranslation(ctx context.Context, db *gorm.DB, t *domain.ProductTranslation) error {
	var existing domain.ProductTranslation
	err := db.WithContext(ctx).
		Where("product_id = ? AND language_code = ? AND deleted_at IS NULL", t.ProductID, t.LanguageCode).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.WithContext(ctx).Create(t).Error
	}
	if err != nil {
		return err
	}
	return db.WithContext(ctx).
		Model(&domain.ProductTranslation{}).
		Where("id = ?", existing.ID).
		Updates(map[string]any{
			"name":        t.Name,
			"description": t.Description,
			"summary":     t.Summary,
			"content":     t.Content,
			"updated_at":  t.UpdatedAt,
		}).Error
}

func (r *repo) FindTranslations(ctx context.Context, db *gorm.DB, productID int64) ([]domain.ProductTranslation, error) {
	var items []domain.ProductTranslation
	err := db.WithContext(ctx).
		Where("product_id = ? AND deleted_at IS NULL", productID).
		Order("language_code ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindTranslation(ctx context.Context, db *gorm.DB, productID int64, languageCode string) (*domain.ProductTranslation, error) {
	var t domain.ProductTranslation
	err := db.WithContext(ctx).
		Where("product_id = ? AND language_code = ? AND deleted_at IS NULL", productID, languageCode).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repo) IncrementAccess(ctx context.Context, db *gorm.DB, orgID, id int64) error {
	return db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("org_id = ? AND id = ? AND deleted_at IS NULL", orgID, id).
		UpdateColumn("count_access", gorm.Expr("count_access + 1")).Error
}

func (r *repo) SoftDeleteCascade(ctx context.Context, db *gorm.DB, orgID, id int64, now time.Time) error {
	session := db.WithContext(ctx)

	// Leaf rows first: the subselects still see their live parents.
	steps := []struct {
		sql  string
		args []any
	}{
		{
			`UPDATE product_option_value_translations SET deleted_at = ?
			 WHERE deleted_at IS NULL AND value_id IN (
				SELECT v.id FROM product_option_values v
				JOIN product_options o ON o.id = v.option_id
				WHERE o.product_id = ? AND v.deleted_at IS NULL AND o.deleted_at IS NULL)`,
			[]any{now, id},
		},
		{
			`UPDATE product_option_values SET deleted_at = ?
			 WHERE deleted_at IS NULL AND option_id IN (
				SELECT id FROM product_options WHERE product_id = ? AND deleted_at IS NULL)`,
			[]any{now, id},
		},
		{
			`UPDATE product_option_translations SET deleted_at = ?
			 WHERE deleted_at IS NULL AND option_id IN (
				SELECT id FROM product_options WHERE product_id = ? AND deleted_at IS NULL)`,
			[]any{now, id},
		},
		{
			`UPDATE product_options SET deleted_at = ? WHERE product_id = ? AND deleted_at IS NULL`,
			[]any{now, id},
		},
		{
			`UPDATE variant_option_values SET deleted_at = ?
			 WHERE deleted_at IS NULL AND variant_id IN (
				SELECT id FROM variants WHERE product_id = ? AND deleted_at IS NULL)`,
			[]any{now, id},
		},
		{
			`UPDATE variants SET deleted_at = ? WHERE product_id = ? AND deleted_at IS NULL`,
			[]any{now, id},
		},
		{
			`UPDATE product_translations SET deleted_at = ? WHERE product_id = ? AND deleted_at IS NULL`,
			[]any{now, id},
		},
		{
			`DELETE FROM collection_products WHERE product_id = ?`,
			[]any{id},
		},
		{
			`UPDATE products SET deleted_at = ?, updated_at = ? WHERE org_id = ? AND id = ? AND deleted_at IS NULL`,
			[]any{now, now, orgID, id},
		},
	}

	for _, step := range steps {
		if err := session.Exec(step.sql, step.args...).Error; err != nil {
			return err
		}
	}
	return nil
}

func needsTranslationJoin(filter domain.ListFilter) bool {
	if filter.Name != "" || filter.Description != "" || filter.Summary != "" || filter.Content != "" {
		return true
	}
	if requested, _ := ordering.Requested(filter.OrderBy, "name"); requested {
		return true
	}
	return false
}
