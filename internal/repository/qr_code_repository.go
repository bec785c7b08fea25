package repository

import (
	"context"

	"menutotem/internal/domain/model"
)

type QRCodeRepository interface {
	Create(ctx context.Context, qr model.QRCode) (model.QRCode, error)
	ListByRestaurantID(ctx context.Context, restaurantID string) ([]model.QRCode, error)

	//読み取られたtokenからレストランを引く
	FindByToken(ctx context.Context, token string) (model.QRCode, error)

	Deactivate(ctx context.Context, id string) error
}
