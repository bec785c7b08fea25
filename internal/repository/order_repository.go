package repository

import (
	"context"
	"errors"

	"menutotem/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧の絞り込み条件。Statusがnilなら全ステータス、Limitが0以下なら全件。
type OrderListFilter struct {
	RestaurantID string
	Status       *model.OrderStatus
	Limit        int
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) error
	FindByID(ctx context.Context, orderID string) (model.Order, error)

	//新しい順（created_at desc）で返す
	List(ctx context.Context, f OrderListFilter) ([]model.Order, error)

	//statusを書き換えてupdated_atも更新する
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
}
