package models

import "time"

type RewardTransaction string

const (
	RewardEarn   RewardTransaction = "earn"
	RewardRedeem RewardTransaction = "redeem"
)

// RewardPoint is one signed ledger entry. Positive points are earned,
// negative points are redeemed.
type RewardPoint struct {
	ID              uint              `json:"id" gorm:"primaryKey"`
	UserID          uint              `json:"user_id" gorm:"not null;index"`
	OrderID         *uint             `json:"order_id"`
	Points          int               `json:"points" gorm:"not null"`
	TransactionType RewardTransaction `json:"type" gorm:"size:50;not null"`
	Reason          string            `json:"reason" gorm:"size:255"`
	CreatedAt       time.Time         `json:"created_at"`
}
