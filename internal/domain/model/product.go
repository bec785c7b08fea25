package model

import (
	"time"

	"gorm.io/gorm"
)

// メニュー商品（レストラン単位）
type Product struct {
	ID           string         `gorm:"type:uuid;primaryKey" json:"id"`
	RestaurantID string         `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	PriceCents   int64          `gorm:"not null" json:"price_cents"`
	ImageURL     string         `gorm:"type:text" json:"image_url"`
	Category     string         `gorm:"type:varchar(100);index" json:"category"`
	IsAvailable  bool           `gorm:"not null;default:true" json:"is_available"`
	CreatedAt    time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
