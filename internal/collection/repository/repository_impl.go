package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/smallbiznis/mall/internal/collection/domain"
	"github.com/smallbiznis/mall/pkg/db/ordering"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, collection *domain.Collection) error {
	return db.WithContext(ctx).Create(collection).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id int64) (*domain.Collection, error) {
	var c domain.Collection
	err := db.WithContext(ctx).
		Where("org_id = ? AND id = ? AND deleted_at IS NULL", orgID, id).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, orgID int64, slug string) (*domain.Collection, error) {
	var c domain.Collection
	err := db.WithContext(ctx).
		Where("org_id = ? AND slug = ? AND deleted_at IS NULL", orgID, slug).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, orgID int64, ids []int64) ([]domain.Collection, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []domain.Collection
	err := db.WithContext(ctx).
		Where("org_id = ? AND id IN ? AND deleted_at IS NULL", orgID, ids).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID int64, filter domain.ListFilter) ([]domain.Collection, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Collection{}).
		Where("org_id = ? AND deleted_at IS NULL", orgID)

	if filter.Name != "" {
		stmt = stmt.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Slug != "" {
		stmt = stmt.Where("slug = ?", filter.Slug)
	}
	if filter.IsPublished != nil {
		stmt = stmt.Where("is_published = ?", *filter.IsPublished)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	stmt = ordering.Apply(stmt, filter.OrderBy, map[string]string{
		"name":      "name",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}, "created_at ASC")
	stmt = filter.Pagination.Apply(stmt)

	var items []domain.Collection
	if err := stmt.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repo) ReplaceProductMemberships(ctx context.Context, db *gorm.DB, genID func() int64, productID int64, collectionIDs []int64, primaryID int64) error {
	if err := db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&domain.CollectionProduct{}).Error; err != nil {
		return err
	}
	for _, collectionID := range collectionIDs {
		row := domain.CollectionProduct{
			ID:           genID(),
			CollectionID: collectionID,
			ProductID:    productID,
			IsPrimary:    primaryID != 0 && collectionID == primaryID,
		}
		if err := db.WithContext(ctx).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) FindMembershipsByProduct(ctx context.Context, db *gorm.DB, productID int64) ([]domain.CollectionProduct, error) {
	var rows []domain.CollectionProduct
	err := db.WithContext(ctx).
		Where("product_id = ?", productID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) FindByProductID(ctx context.Context, db *gorm.DB, orgID, productID int64) ([]domain.Collection, error) {
	var items []domain.Collection
	err := db.WithContext(ctx).
		Joins("JOIN collection_products cp ON cp.collection_id = collections.id").
		Where("cp.product_id = ? AND collections.org_id = ? AND collections.deleted_at IS NULL", productID, orgID).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
