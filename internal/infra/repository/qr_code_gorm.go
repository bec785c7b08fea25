package repository

import (
	"context"
	"errors"

	"menutotem/internal/domain/model"
	repo "menutotem/internal/repository"

	"gorm.io/gorm"
)

type QRCodeGormRepository struct {
	db *gorm.DB
}

// DI
func NewQRCodeGormRepository(db *gorm.DB) *QRCodeGormRepository {
	return &QRCodeGormRepository{db: db}
}

func (r *QRCodeGormRepository) Create(ctx context.Context, qr model.QRCode) (model.QRCode, error) {
	if err := r.db.WithContext(ctx).Create(&qr).Error; err != nil {
		return model.QRCode{}, err
	}
	return qr, nil
}

func (r *QRCodeGormRepository) ListByRestaurantID(ctx context.Context, restaurantID string) ([]model.QRCode, error) {
	var items []model.QRCode
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return []model.QRCode{}, err
	}
	return items, nil
}

// 読み取られたtokenの解決。無効化済みは対象外。
func (r *QRCodeGormRepository) FindByToken(ctx context.Context, token string) (model.QRCode, error) {
	var qr model.QRCode
	err := r.db.WithContext(ctx).
		Where("token = ? AND is_active = ?", token, true).
		First(&qr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.QRCode{}, repo.ErrNotFound
	}
	if err != nil {
		return model.QRCode{}, err
	}
	return qr, nil
}

func (r *QRCodeGormRepository) Deactivate(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&model.QRCode{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
