package model

import "time"

type SubscriptionStatus string

const (
	SubscriptionInactive SubscriptionStatus = "inactive"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
)

// テナント。slugがトーテム/QRメニューのURLになる。
type Restaurant struct {
	ID                 string             `gorm:"type:uuid;primaryKey" json:"id"`
	Name               string             `gorm:"type:varchar(255);not null" json:"name"`
	Slug               string             `gorm:"type:varchar(100);not null;uniqueIndex" json:"slug"`
	LogoURL            string             `gorm:"type:text" json:"logo_url"`
	SubscriptionStatus SubscriptionStatus `gorm:"type:varchar(20);not null;default:'inactive'" json:"subscription_status"`
	SubscriptionTier   string             `gorm:"type:varchar(50)" json:"subscription_tier"`
	IsActive           bool               `gorm:"not null;default:true" json:"is_active"`
	CreatedAt          time.Time          `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time          `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
