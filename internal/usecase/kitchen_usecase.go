package usecase

import (
	"context"
	"net/http"
	"time"

	"menutotem/internal/domain/model"
	repo "menutotem/internal/repository"
)

// キッチン画面のレーン取得と「進める」操作。
// レーンはnew/preparing/ready/deliveredの4つで、UIが30秒ごとにポーリングする。
type KitchenUsecase struct {
	tx        repo.TransactionManager
	auditRepo repo.AuditLogRepository
}

func NewKitchenUsecase(tx repo.TransactionManager, auditRepo repo.AuditLogRepository) *KitchenUsecase {
	return &KitchenUsecase{tx: tx, auditRepo: auditRepo}
}

type AdvanceOutput struct {
	OrderID    string    `json:"order_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Laneは1レーン分の注文（新しい順）。limitが0以下なら全件。
func (u *KitchenUsecase) Lane(ctx context.Context, restaurantID string, status string, limit int) ([]OrderOutput, error) {
	if restaurantID == "" {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !model.IsValidOrderStatus(status) {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	s := model.OrderStatus(status)

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		outs, err = loadOrderOutputs(ctx, r, repo.OrderListFilter{
			RestaurantID: restaurantID,
			Status:       &s,
			Limit:        limit,
		})
		return err
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// Advanceは固定の次ステータスへ進める。
// new→preparing→ready→delivered。deliveredは終端でno-op成功。
func (u *KitchenUsecase) Advance(ctx context.Context, actorUserID string, restaurantID string, orderID string) (AdvanceOutput, error) {
	if actorUserID == "" || restaurantID == "" {
		return AdvanceOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return AdvanceOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out AdvanceOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		//他レストランの注文は「存在しない扱い」
		if o.RestaurantID != restaurantID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		//終端はそのまま返す
		if o.Status == model.OrderStatusDelivered {
			out = AdvanceOutput{
				OrderID:    o.ID,
				FromStatus: string(o.Status),
				ToStatus:   string(o.Status),
				UpdatedAt:  o.UpdatedAt,
			}
			return nil
		}

		next := o.Status.Next()
		if err := r.Orders().UpdateStatus(ctx, orderID, next); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//保存されたupdated_atを返す（手元のtime.Now()は使わない）
		updated, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//監査ログ（UPDATE_ORDER_STATUS）
		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  actorUserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   `{"status":"` + string(o.Status) + `"}`,
			AfterJSON:    `{"status":"` + string(next) + `"}`,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = AdvanceOutput{
			OrderID:    o.ID,
			FromStatus: string(o.Status),
			ToStatus:   string(next),
			UpdatedAt:  updated.UpdatedAt,
		}
		return nil
	})

	if err != nil {
		return AdvanceOutput{}, err
	}
	return out, nil
}
