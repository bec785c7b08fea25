package model

import "time"

// 注文明細
// 注文時点の単価を必ず保存。作成後は不変。
type OrderItem struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID        string    `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID      string    `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity       int64     `gorm:"not null" json:"quantity"`
	UnitPriceCents int64     `gorm:"not null;column:unit_price_cents" json:"unit_price_cents"`
	Note           string    `gorm:"type:text" json:"note"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
