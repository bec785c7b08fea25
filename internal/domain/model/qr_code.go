package model

import "time"

// コミュニティQRコード。
// tokenが印刷されたコードに入る値で、読み取るとレストランのメニューを開く。
// 画像の生成はここではやらない（フロント側）。
type QRCode struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	RestaurantID string    `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	Token        string    `gorm:"type:uuid;not null;uniqueIndex" json:"token"`
	//テーブル番号など
	Label     string    `gorm:"type:varchar(100)" json:"label"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
