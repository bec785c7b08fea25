package model

import "time"

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
)

// キッチンの「進める」操作で使う固定の次ステータス。
// deliveredは終端なのでdeliveredのまま。
func (s OrderStatus) Next() OrderStatus {
	switch s {
	case OrderStatusNew:
		return OrderStatusPreparing
	case OrderStatusPreparing:
		return OrderStatusReady
	case OrderStatusReady:
		return OrderStatusDelivered
	default:
		return OrderStatusDelivered
	}
}

// 4つのステータス以外は受け付けない
func IsValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusNew, OrderStatusPreparing, OrderStatusReady, OrderStatusDelivered:
		return true
	default:
		return false
	}
}

type PaymentMethod string

const (
	PaymentMethodPix        PaymentMethod = "pix"
	PaymentMethodCreditCard PaymentMethod = "creditCard"
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodPayLater   PaymentMethod = "payLater"
)

func IsValidPaymentMethod(m string) bool {
	switch PaymentMethod(m) {
	case PaymentMethodPix, PaymentMethodCreditCard, PaymentMethodCash, PaymentMethodPayLater:
		return true
	default:
		return false
	}
}

// 注文は作成後、ステータス更新以外では変更しない。削除もしない。
type Order struct {
	ID            string        `gorm:"type:uuid;primaryKey" json:"id"`
	RestaurantID  string        `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	Status        OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalCents    int64         `gorm:"not null" json:"total_cents"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	CustomerName  string        `gorm:"type:varchar(255)" json:"customer_name"`
	TableLabel    string        `gorm:"type:varchar(50)" json:"table_label"`
	CreatedAt     time.Time     `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
