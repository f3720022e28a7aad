package repository

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/mall/internal/optionvalue/domain"
	"github.com/smallbiznis/mall/pkg/db/filters"
	"github.com/smallbiznis/mall/pkg/db/ordering"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, value *domain.ProductOptionValue) error {
	return db.WithContext(ctx).Create(value).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, value *domain.ProductOptionValue) error {
	if value == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).
		Model(&domain.ProductOptionValue{}).
		Where("org_id = ? AND id = ?", value.OrgID, value.ID).
		Updates(map[string]any{
			"sort_key":   value.SortKey,
			"updated_at": value.UpdatedAt,
		}).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id int64) (*domain.ProductOptionValue, error) {
	var value domain.ProductOptionValue
	err := db.WithContext(ctx).
		Where("org_id = ? AND id = ? AND deleted_at IS NULL", orgID, id).
		First(&value).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, orgID int64, ids []int64) ([]domain.ProductOptionValue, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []domain.ProductOptionValue
	err := db.WithContext(ctx).
		Where("org_id = ? AND id IN ? AND deleted_at IS NULL", orgID, ids).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindByOption(ctx context.Context, db *gorm.DB, optionID int64, linkedOnly bool) ([]domain.ProductOptionValue, error) {
	stmt := db.WithContext(ctx).
		Where("product_option_values.option_id = ? AND product_option_values.deleted_at IS NULL", optionID)
	if linkedOnly {
		stmt = stmt.Where(
			`EXISTS (SELECT 1 FROM variant_option_values vov
			  WHERE vov.option_value_id = product_option_values.id AND vov.deleted_at IS NULL)`)
	}
	var items []domain.ProductOptionValue
	err := stmt.Order("product_option_values.sort_key ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID int64, filter domain.ListFilter) ([]domain.ProductOptionValue, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.ProductOptionValue{}).
		Where("product_option_values.org_id = ? AND product_option_values.deleted_at IS NULL", orgID)

	if filter.OptionID != 0 {
		stmt = stmt.Where("product_option_values.option_id = ?", filter.OptionID)
	}
	if filter.Name != "" {
		stmt = stmt.
			Joins("JOIN product_option_value_translations povt ON povt.value_id = product_option_values.id AND povt.deleted_at IS NULL").
			Where("LOWER(povt.name) LIKE ?", filters.Contains(filter.Name))
		if filter.LanguageCode != "" {
			stmt = stmt.Where("povt.language_code = ?", filter.LanguageCode)
		}
		stmt = stmt.Distinct("product_option_values.*")
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
	}.Apply(stmt, "product_option_values")

	if filter.VisibleOnly {
		stmt = stmt.
			Joins("JOIN product_options po ON po.id = product_option_values.option_id AND po.deleted_at IS NULL").
			Joins("JOIN products p ON p.id = po.product_id").
			Where("p.deleted_at IS NULL AND p.is_published = ? AND p.can_search = ?", true, true).
			Where("p.published_at IS NULL OR p.published_at < ?", filter.VisibleAt)
	}
	if filter.LinkedOnly {
		stmt = stmt.Where(
			`EXISTS (SELECT 1 FROM variant_option_values vov
			  WHERE vov.option_value_id = product_option_values.id AND vov.deleted_at IS NULL)`)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	stmt = ordering.Apply(stmt, filter.OrderBy, map[string]string{
		"sortKey":   "product_option_values.sort_key",
		"createdAt": "product_option_values.created_at",
		"updatedAt": "product_option_values.updated_at",
	}, "product_option_values.sort_key ASC")
	stmt = filter.Pagination.Apply(stmt)

	var items []domain.ProductOptionValue
	if err := stmt.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repo) UpsertTranslation(ctx context.Context, db *gorm.DB, t *domain.ProductOptionValueTranslation) error {
	var existing domain.ProductOptionValueTranslation
	err := db.WithContext(ctx).
		Where("value_id = ? AND language_code = ? AND deleted_at IS NULL", t.ValueID, t.LanguageCode).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.WithContext(ctx).Create(t).Error
	}
	if err != nil {
		return err
	}
	return db.WithContext(ctx).
		Model(&domain.ProductOptionValueTranslation{}).
		Where("id = ?", existing.ID).
		Updates(map[string]any{
			"name":       t.Name,
			"updated_at": t.UpdatedAt,
		}).Error
}

func (r *repo) FindTranslations(ctx context.Context, db *gorm.DB, valueID int64) ([]domain.ProductOptionValueTranslation, error) {
	var items []domain.ProductOptionValueTranslation
	err := db.WithContext(ctx).
		Where("value_id = ? AND deleted_at IS NULL", valueID).
		Order("language_code ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindTranslation(ctx context.Context, db *gorm.DB, valueID int64, languageCode string) (*domain.ProductOptionValueTranslation, error) {
	var t domain.ProductOptionValueTranslation
	err := db.WithContext(ctx).
		Where("value_id = ? AND language_code = ? AND deleted_at IS NULL", valueID, languageCode).
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
			`UPDATE variant_option_values SET deleted_at = ? WHERE option_value_id = ? AND deleted_at IS NULL`,
			[]any{now, id},
		},
		{
			`UPDATE product_option_value_translations SET deleted_at = ? WHERE value_id = ? AND deleted_at IS NULL`,
			[]any{now, id},
		},
		{
			`UPDATE product_option_values SET deleted_at = ?, updated_at = ? WHERE org_id = ? AND id = ? AND deleted_at IS NULL`,
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
