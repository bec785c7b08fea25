package repository

import (
	"context"

	"menutotem/internal/domain/model"
)

// メニュー一覧の検索条件
type ProductListQuery struct {
	RestaurantID  string
	Category      string
	OnlyAvailable bool
	Page          int
	Limit         int
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id string) (model.Product, error)

	//注文明細の表示用に、現在の商品をまとめて引く
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id string) error
}
