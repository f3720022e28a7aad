package repository

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/mall/internal/productoption/domain"
	"github.com/smallbiznis/mall/pkg/db/filters"
	"github.com/smallbiznis/mall/pkg/db/ordering"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, option *domain.ProductOption) error {
	return db.WithContext(ctx).Create(option).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, option *domain.ProductOption) error {
	if option == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).
		Model(&domain.ProductOption{}).
		Where("org_id = ? AND id = ?", option.OrgID, option.ID).
		Updates(map[string]any{
			"sort_key":   option.SortKey,
			"updated_at": option.UpdatedAt,
		}).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id int64) (*domain.ProductOption, error) {
	var option domain.ProductOption
	err := db.WithContext(ctx).
		Where("org_id = ? AND id = ? AND deleted_at IS NULL", orgID, id).
		First(&option).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &option, nil
}

func (r *repo) FindByProduct(ctx context.Context, db *gorm.DB, productID int64) ([]domain.ProductOption, error) {
	var items []domain.ProductOption
	err := db.WithContext(ctx).
		Where("product_id = ? AND deleted_at IS NULL", productID).
		Order("sort_key ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) CountByProduct(ctx context.Context, db *gorm.DB, productID int64) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.ProductOption{}).
		Where("product_id = ? AND deleted_at IS NULL", productID).
		Count(&count).Error
	return count, err
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID int64, filter domain.ListFilter) ([]domain.ProductOption, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.ProductOption{}).
		Where("product_options.org_id = ? AND product_options.deleted_at IS NULL", orgID)

	if filter.ProductID != 0 {
		stmt = stmt.Where("product_options.product_id = ?", filter.ProductID)
	}
	if filter.Name != "" {
		stmt = stmt.
			Joins("JOIN product_option_translations pot ON pot.option_id = product_options.id AND pot.deleted_at IS NULL").
			Where("LOWER(pot.name) LIKE ?", filters.Contains(filter.Name))
		if filter.LanguageCode != "" {
			stmt = stmt.Where("pot.language_code = ?", filter.LanguageCode)
		}
		stmt = stmt.Distinct("product_options.*")
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
	}.Apply(stmt, "product_options")

	if filter.VisibleOnly {
		stmt = stmt.
			Joins("JOIN products p ON p.id = product_options.product_id").
			Where("p.deleted_at IS NULL AND p.is_published = ? AND p.can_search = ?", true, true).
			Where("p.published_at IS NULL OR p.published_at < ?", filter.VisibleAt)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	stmt = ordering.Apply(stmt, filter.OrderBy, map[string]string{
		"sortKey":   "product_options.sort_key",
		"createdAt": "product_options.created_at",
		"updatedAt": "product_options.updated_at",
	}, "product_options.sort_key ASC")
	stmt = filter.Pagination.Apply(stmt)

	var items []domain.ProductOption
	if err := stmt.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repo) UpsertTranslation(ctx context.Context, db *gorm.DB, t *domain.ProductOptionTranslation) error {
	var existing domain.ProductOptionTranslation
	err := db.WithContext(ctx).
		Where("option_id = ? AND language_code = ? AND deleted_at IS NULL", t.OptionID, t.LanguageCode).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.WithContext(ctx).Create(t).Error
	}
	if err != nil {
		return err
	}
	return db.WithContext(ctx).
		Model(&domain.ProductOptionTranslation{}).
		Where("id = ?", existing.ID).
		Updates(map[string]any{
			"name":       t.Name,
			"updated_at": t.UpdatedAt,
		}).Error
}

func (r *repo) FindTranslations(ctx context.Context, db *gorm.DB, optionID int64) ([]domain.ProductOptionTranslation, error) {
	var items []domain.ProductOptionTranslation
	err := db.WithContext(ctx).
		Where("option_id = ? AND deleted_at IS NULL", optionID).
		Order("language_code ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindTranslation(ctx context.Context, db *gorm.DB, optionID int64, languageCode string) (*domain.ProductOptionTranslation, error) {
	var t domain.ProductOptionTranslation
	err := db.WithContext(ctx).
		Where("option_id = ? AND language_code = ? AND deleted_at IS NULL", optionID, languageCode).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repo) SoftDeleteCascade(ctx context.Context, db *gorm.DB, orgID, id int64, now time.Time) error {
	session := db.WithContext(ctx)

	steps := []struct {
		sql  string
		args []any
	}{
		{
			`UPDATE variant_option_values SET deleted_at = ?
			 WHERE deleted_at IS NULL AND option_value_id IN (
				SELECT id FROM product_option_values WHERE option_id = ? AND deleted_at IS NULL)`,
			[]any{now, id},
		},
		{
			`UPDATE product_option_value_translations SET deleted_at = ?
			 WHERE deleted_at IS NULL AND value_id IN (
				SELECT id FROM product_option_values WHERE option_id = ? AND deleted_at IS NULL)`,
			[]any{now, id},
		},
		{
			`UPDATE product_option_values SET deleted_at = ? WHERE option_id = ? AND deleted_at IS NULL`,
			[]any{now, id},
		},
		{
			`UPDATE product_option_translations SET deleted_at = ? WHERE option_id = ? AND deleted_at IS NULL`,
			[]any{now, id},
		},
		{
			`UPDATE product_options SET deleted_at = ?, updated_at = ? WHERE org_id = ? AND id = ? AND deleted_at IS NULL`,
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
