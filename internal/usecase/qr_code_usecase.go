package usecase

import (
	"context"
	"net/http"
	"strings"

	"menutotem/internal/domain/model"
	repo "menutotem/internal/repository"

	"github.com/google/uuid"
)

// コミュニティQRコードの管理と解決。
// 画像の生成はしない。tokenを発行して、読み取り時にレストランへ解決するだけ。
type QRCodeUsecase struct {
	qrRepo         repo.QRCodeRepository
	restaurantRepo repo.RestaurantRepository
}

// DI
func NewQRCodeUsecase(qrRepo repo.QRCodeRepository, restaurantRepo repo.RestaurantRepository) *QRCodeUsecase {
	return &QRCodeUsecase{qrRepo: qrRepo, restaurantRepo: restaurantRepo}
}

type QRCodeOutput struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	Label    string `json:"label"`
	IsActive bool   `json:"is_active"`
}

// 読み取り後にトーテムが開く先
type QRResolveOutput struct {
	RestaurantSlug string `json:"restaurant_slug"`
	RestaurantName string `json:"restaurant_name"`
	Label          string `json:"label"`
}

func (u *QRCodeUsecase) Create(ctx context.Context, restaurantID string, label string) (QRCodeOutput, error) {
	if restaurantID == "" {
		return QRCodeOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	qr := model.QRCode{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		Token:        uuid.NewString(),
		Label:        strings.TrimSpace(label),
		IsActive:     true,
	}

	created, err := u.qrRepo.Create(ctx, qr)
	if err != nil {
		return QRCodeOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toQRCodeOutput(created), nil
}

func (u *QRCodeUsecase) List(ctx context.Context, restaurantID string) ([]QRCodeOutput, error) {
	if restaurantID == "" {
		return []QRCodeOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	qrs, err := u.qrRepo.ListByRestaurantID(ctx, restaurantID)
	if err != nil {
		return []QRCodeOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]QRCodeOutput, 0, len(qrs))
	for _, qr := range qrs {
		outs = append(outs, toQRCodeOutput(qr))
	}
	return outs, nil
}

// Resolveは読み取られたtokenをレストランへ解決する。認証なし。
func (u *QRCodeUsecase) Resolve(ctx context.Context, token string) (QRResolveOutput, error) {
	if strings.TrimSpace(token) == "" {
		return QRResolveOutput{}, NewHTTPError(http.StatusBadRequest, "invalid token")
	}

	qr, err := u.qrRepo.FindByToken(ctx, token)
	if err == repo.ErrNotFound {
		return QRResolveOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return QRResolveOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	rest, err := u.restaurantRepo.FindByID(ctx, qr.RestaurantID)
	if err == repo.ErrNotFound || (err == nil && !rest.IsActive) {
		return QRResolveOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return QRResolveOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return QRResolveOutput{
		RestaurantSlug: rest.Slug,
		RestaurantName: rest.Name,
		Label:          qr.Label,
	}, nil
}

func (u *QRCodeUsecase) Deactivate(ctx context.Context, restaurantID string, qrID string) error {
	if restaurantID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if qrID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	//所有チェック（他レストランのQRは「存在しない扱い」）
	qrs, err := u.qrRepo.ListByRestaurantID(ctx, restaurantID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	owned := false
	for _, qr := range qrs {
		if qr.ID == qrID {
			owned = true
			break
		}
	}
	if !owned {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.qrRepo.Deactivate(ctx, qrID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func toQRCodeOutput(qr model.QRCode) QRCodeOutput {
	return QRCodeOutput{
		ID:       qr.ID,
		Token:    qr.Token,
		Label:    qr.Label,
		IsActive: qr.IsActive,
	}
}
