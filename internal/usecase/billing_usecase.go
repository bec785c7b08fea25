package usecase

import (
	"context"
	"net/http"

	"menutotem/internal/domain/model"
	"menutotem/internal/infra/billing"
	repo "menutotem/internal/repository"
)

// 決済プロセッサ関数の呼び出し口。usecaseはこの約束に依存する。
type BillingGateway interface {
	CheckSubscription(ctx context.Context, restaurantID string) (billing.SubscriptionResult, error)
	CreateCheckout(ctx context.Context, restaurantID string, tier string) (billing.RedirectResult, error)
	CreatePortal(ctx context.Context, restaurantID string) (billing.RedirectResult, error)
}

// サブスク関連は全部外部コラボレーターへのパススルー。
// こちらでやるのは応答のsubscription_statusをレストランに反映するだけ。
type BillingUsecase struct {
	gateway        BillingGateway
	restaurantRepo repo.RestaurantRepository
}

// DI
func NewBillingUsecase(gateway BillingGateway, restaurantRepo repo.RestaurantRepository) *BillingUsecase {
	return &BillingUsecase{gateway: gateway, restaurantRepo: restaurantRepo}
}

type SubscriptionOutput struct {
	Subscribed bool   `json:"subscribed"`
	Status     string `json:"status"`
	Tier       string `json:"subscription_tier"`
}

type RedirectOutput struct {
	URL string `json:"url"`
}

func (u *BillingUsecase) CheckSubscription(ctx context.Context, restaurantID string) (SubscriptionOutput, error) {
	if restaurantID == "" {
		return SubscriptionOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	res, err := u.gateway.CheckSubscription(ctx, restaurantID)
	if err != nil {
		return SubscriptionOutput{}, NewHTTPError(http.StatusBadGateway, "billing unavailable")
	}

	//応答をレストランへ反映
	status := model.SubscriptionInactive
	switch res.Status {
	case "active":
		status = model.SubscriptionActive
	case "past_due":
		status = model.SubscriptionPastDue
	}
	if err := u.restaurantRepo.UpdateSubscription(ctx, restaurantID, status, res.Tier); err != nil {
		if err == repo.ErrNotFound {
			return SubscriptionOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return SubscriptionOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return SubscriptionOutput{
		Subscribed: res.Subscribed,
		Status:     string(status),
		Tier:       res.Tier,
	}, nil
}

func (u *BillingUsecase) CreateCheckout(ctx context.Context, restaurantID string, tier string) (RedirectOutput, error) {
	if restaurantID == "" {
		return RedirectOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if tier == "" {
		return RedirectOutput{}, NewHTTPError(http.StatusBadRequest, "invalid tier")
	}

	res, err := u.gateway.CreateCheckout(ctx, restaurantID, tier)
	if err != nil {
		return RedirectOutput{}, NewHTTPError(http.StatusBadGateway, "billing unavailable")
	}
	return RedirectOutput{URL: res.URL}, nil
}

func (u *BillingUsecase) CreatePortal(ctx context.Context, restaurantID string) (RedirectOutput, error) {
	if restaurantID == "" {
		return RedirectOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	res, err := u.gateway.CreatePortal(ctx, restaurantID)
	if err != nil {
		return RedirectOutput{}, NewHTTPError(http.StatusBadGateway, "billing unavailable")
	}
	return RedirectOutput{URL: res.URL}, nil
}
