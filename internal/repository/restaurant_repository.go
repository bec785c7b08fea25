package repository

import (
	"context"

	"menutotem/internal/domain/model"
)

type RestaurantRepository interface {
	Create(ctx context.Context, r model.Restaurant) (model.Restaurant, error)
	FindByID(ctx context.Context, id string) (model.Restaurant, error)

	//トーテム/QRメニューのURLで使う
	FindBySlug(ctx context.Context, slug string) (model.Restaurant, error)

	Update(ctx context.Context, r model.Restaurant) error
	List(ctx context.Context, page int, limit int) ([]model.Restaurant, int64, error)

	//課金コラボレーターが返したサブスク状態を反映する
	UpdateSubscription(ctx context.Context, id string, status model.SubscriptionStatus, tier string) error
}
