package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/mall/internal/reference/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindPlaceByID(ctx context.Context, db *gorm.DB, orgID, id int64) (*domain.ProductPlace, error) {
	var place domain.ProductPlace
	err := db.WithContext(ctx).
		Where("org_id = ? AND id = ? AND deleted_at IS NULL", orgID, id).
		First(&place).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &place, nil
}

func (r *repo) FindSupplierByID(ctx context.Context, db *gorm.DB, orgID, id int64) (*domain.ProductSupplier, error) {
	var supplier domain.ProductSupplier
	err := db.WithContext(ctx).
		Where("org_id = ? AND id = ? AND deleted_at IS NULL", orgID, id).
		First(&supplier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}
