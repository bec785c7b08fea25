package repository

import (
	"context"
	"errors"

	"menutotem/internal/domain/model"
	repo "menutotem/internal/repository"

	"gorm.io/gorm"
)

type RestaurantGormRepository struct {
	db *gorm.DB
}

// DI
func NewRestaurantGormRepository(db *gorm.DB) *RestaurantGormRepository {
	return &RestaurantGormRepository{db: db}
}

func (r *RestaurantGormRepository) Create(ctx context.Context, rest model.Restaurant) (model.Restaurant, error) {
	if err := r.db.WithContext(ctx).Create(&rest).Error; err != nil {
		return model.Restaurant{}, err
	}
	return rest, nil
}

func (r *RestaurantGormRepository) FindByID(ctx context.Context, id string) (model.Restaurant, error) {
	var rest model.Restaurant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Restaurant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Restaurant{}, err
	}
	return rest, nil
}

// slugでレストランを1件取得（トーテムのURL解決）
func (r *RestaurantGormRepository) FindBySlug(ctx context.Context, slug string) (model.Restaurant, error) {
	var rest model.Restaurant
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&rest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Restaurant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Restaurant{}, err
	}
	return rest, nil
}

func (r *RestaurantGormRepository) Update(ctx context.Context, rest model.Restaurant) error {
	res := r.db.WithContext(ctx).Model(&model.Restaurant{}).Where("id = ?", rest.ID).Updates(map[string]interface{}{
		"name":      rest.Name,
		"slug":      rest.Slug,
		"logo_url":  rest.LogoURL,
		"is_active": rest.IsActive,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *RestaurantGormRepository) List(ctx context.Context, page int, limit int) ([]model.Restaurant, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Restaurant{}).Count(&total).Error; err != nil {
		return []model.Restaurant{}, 0, err
	}

	var items []model.Restaurant
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.Restaurant{}, 0, err
	}

	return items, total, nil
}

// サブスク状態の反映（課金コラボレーターの応答をそのまま書く）
func (r *RestaurantGormRepository) UpdateSubscription(ctx context.Context, id string, status model.SubscriptionStatus, tier string) error {
	res := r.db.WithContext(ctx).Model(&model.Restaurant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"subscription_status": status,
			"subscription_tier":   tier,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
