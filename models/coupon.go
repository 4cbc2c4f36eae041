package models

type DiscountType string

const (
	DiscountPercentage DiscountType = "Percentage"
	DiscountFixed      DiscountType = "Fixed"
)

func (d DiscountType) Valid() bool {
	return d == DiscountPercentage || d == DiscountFixed
}

// Coupon with a nil RestaurantID is platform-wide and managed by admins
type Coupon struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	RestaurantID  *uint        `json:"restaurant_id" gorm:"index"`
	Code          string       `json:"code" gorm:"size:50;not null;uniqueIndex"`
	DiscountType  DiscountType `json:"type" gorm:"size:50;not null"`
	DiscountValue float64      `json:"value" gorm:"not null"`
	IsActive      bool         `json:"is_active" gorm:"not null"`
}
