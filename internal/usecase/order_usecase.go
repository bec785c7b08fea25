package usecase

import (
	"context"
	"net/http"
	"time"

	"menutotem/internal/domain/model"
	repo "menutotem/internal/repository"

	"github.com/google/uuid"
)

type OrderUsecase struct {
	tx        repo.TransactionManager
	auditRepo repo.AuditLogRepository
}

func NewOrderUsecase(tx repo.TransactionManager, auditRepo repo.AuditLogRepository) *OrderUsecase {
	return &OrderUsecase{tx: tx, auditRepo: auditRepo}
}

type PlaceOrderItemInput struct {
	ProductID string
	Quantity  int64
	Note      string
}

type PlaceOrderInput struct {
	Items         []PlaceOrderItemInput
	PaymentMethod string
	CustomerName  string
	TableLabel    string
}

type OrderItemOutput struct {
	ProductID string `json:"product_id"`
	//表示用の商品名/価格/画像は「現在の」商品から引く。
	//unit_price_centsは注文時点のスナップショット（合計の根拠）。
	Name              string `json:"name"`
	ImageURL          string `json:"image_url"`
	UnitPriceCents    int64  `json:"unit_price_cents"`
	CurrentPriceCents int64  `json:"current_price_cents"`
	Quantity          int64  `json:"quantity"`
	Note              string `json:"note,omitempty"`
}

type OrderOutput struct {
	ID            string            `json:"id"`
	RestaurantID  string            `json:"restaurant_id"`
	Status        string            `json:"status"`
	TotalCents    int64             `json:"total_cents"`
	PaymentMethod string            `json:"payment_method"`
	CustomerName  string            `json:"customer_name,omitempty"`
	TableLabel    string            `json:"table_label,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Items         []OrderItemOutput `json:"items"`
}

// PlaceOrderはトーテム/QRメニューからの注文確定。
// ヘッダ行と明細行は必ず1トランザクションで書く（明細が失敗したらヘッダも残さない）。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, restaurantSlug string, in PlaceOrderInput) (OrderOutput, error) {
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity < 1 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid item")
		}
	}
	if !model.IsValidPaymentMethod(in.PaymentMethod) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//レストラン解決（slugはトーテムURL）
		rest, err := r.Restaurants().FindBySlug(ctx, restaurantSlug)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "restaurant not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !rest.IsActive {
			return NewHTTPError(http.StatusNotFound, "restaurant not found")
		}

		//商品を確認して、注文時点の単価をスナップショット
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		outItems := make([]OrderItemOutput, 0, len(in.Items))
		var total int64 = 0

		for _, it := range in.Items {
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "invalid product")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			//他レストランの商品や非公開商品は注文不可
			if p.RestaurantID != rest.ID || !p.IsAvailable {
				return NewHTTPError(http.StatusBadRequest, "invalid product")
			}

			orderItems = append(orderItems, model.OrderItem{
				ID:             uuid.NewString(),
				ProductID:      p.ID,
				Quantity:       it.Quantity,
				UnitPriceCents: p.PriceCents,
				Note:           it.Note,
			})
			outItems = append(outItems, OrderItemOutput{
				ProductID:         p.ID,
				Name:              p.Name,
				ImageURL:          p.ImageURL,
				UnitPriceCents:    p.PriceCents,
				CurrentPriceCents: p.PriceCents,
				Quantity:          it.Quantity,
				Note:              it.Note,
			})

			total += p.PriceCents * it.Quantity
		}

		//注文作成（初期ステータスはnew）
		now := time.Now()
		order := model.Order{
			ID:            uuid.NewString(),
			RestaurantID:  rest.ID,
			Status:        model.OrderStatusNew,
			TotalCents:    total,
			PaymentMethod: model.PaymentMethod(in.PaymentMethod),
			CustomerName:  in.CustomerName,
			TableLabel:    in.TableLabel,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := r.Orders().Create(ctx, order); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細一括作成（失敗したらトランザクションごとロールバック）
		if err := r.OrderItems().CreateBulk(ctx, order.ID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = OrderOutput{
			ID:            order.ID,
			RestaurantID:  order.RestaurantID,
			Status:        string(order.Status),
			TotalCents:    order.TotalCents,
			PaymentMethod: string(order.PaymentMethod),
			CustomerName:  order.CustomerName,
			TableLabel:    order.TableLabel,
			CreatedAt:     order.CreatedAt,
			UpdatedAt:     order.UpdatedAt,
			Items:         outItems,
		}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ListOrdersはレストランの注文一覧。statusが空なら全部、新しい順。
// limitが0以下なら全件。
func (u *OrderUsecase) ListOrders(ctx context.Context, restaurantID string, status string, limit int) ([]OrderOutput, error) {
	if restaurantID == "" {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var statusPtr *model.OrderStatus
	if status != "" {
		if !model.IsValidOrderStatus(status) {
			return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		s := model.OrderStatus(status)
		statusPtr = &s
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		outs, err = loadOrderOutputs(ctx, r, repo.OrderListFilter{
			RestaurantID: restaurantID,
			Status:       statusPtr,
			Limit:        limit,
		})
		return err
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// GetOrderは注文1件（お客さまの注文確認画面用、認証なし）。
func (u *OrderUsecase) GetOrder(ctx context.Context, orderID string) (OrderOutput, error) {
	if orderID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs, err := hydrateOrders(ctx, r, []model.Order{o})
		if err != nil {
			return err
		}
		out = outs[0]
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// UpdateStatusは注文ステータスの直接更新。
// 4値のどれでも受け付ける（前後関係のガードはしない）。
// ワークフローの順序はキッチンUI側の運用で、スタッフの手動訂正をここで妨げない。
func (u *OrderUsecase) UpdateStatus(ctx context.Context, actorUserID string, restaurantID string, orderID string, newStatus string) error {
	if actorUserID == "" || restaurantID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !model.IsValidOrderStatus(newStatus) {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
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

		// すでに同じなら何もしない（200）
		if string(o.Status) == newStatus {
			return nil
		}

		beforeStatus := string(o.Status)
		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatus(newStatus)); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//監査ログ（UPDATE_ORDER_STATUS）
		beforeJSON := `{"status":"` + beforeStatus + `"}`
		afterJSON := `{"status":"` + newStatus + `"}`
		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  actorUserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}

// 注文一覧を明細・商品表示情報つきで組み立てる。
// 価格はスナップショット、商品名/画像は現在の商品から。
func loadOrderOutputs(ctx context.Context, r repo.TxRepos, f repo.OrderListFilter) ([]OrderOutput, error) {
	orders, err := r.Orders().List(ctx, f)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return hydrateOrders(ctx, r, orders)
}

func hydrateOrders(ctx context.Context, r repo.TxRepos, orders []model.Order) ([]OrderOutput, error) {
	outs := make([]OrderOutput, 0, len(orders))

	for _, o := range orders {
		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//現在の商品をまとめて引く
		ids := make([]string, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ProductID)
		}
		products, err := r.Products().FindByIDs(ctx, ids)
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		byID := make(map[string]model.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		outItems := make([]OrderItemOutput, 0, len(items))
		for _, it := range items {
			p := byID[it.ProductID]
			outItems = append(outItems, OrderItemOutput{
				ProductID:         it.ProductID,
				Name:              p.Name,
				ImageURL:          p.ImageURL,
				UnitPriceCents:    it.UnitPriceCents,
				CurrentPriceCents: p.PriceCents,
				Quantity:          it.Quantity,
				Note:              it.Note,
			})
		}

		outs = append(outs, OrderOutput{
			ID:            o.ID,
			RestaurantID:  o.RestaurantID,
			Status:        string(o.Status),
			TotalCents:    o.TotalCents,
			PaymentMethod: string(o.PaymentMethod),
			CustomerName:  o.CustomerName,
			TableLabel:    o.TableLabel,
			CreatedAt:     o.CreatedAt,
			UpdatedAt:     o.UpdatedAt,
			Items:         outItems,
		})
	}

	return outs, nil
}
