package models

import "time"

// RestaurantStatus is derived, never stored
type RestaurantStatus string

const (
	RestaurantPending  RestaurantStatus = "Pending"
	RestaurantVerified RestaurantStatus = "Verified"
	RestaurantBlocked  RestaurantStatus = "Blocked"
)

type Restaurant struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	OwnerID     uint       `json:"owner_id" gorm:"not null;index"`
	Owner       *User      `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name        string     `json:"name" gorm:"size:100;not null"`
	Slug        string     `json:"slug" gorm:"size:120;index"`
	Description string     `json:"description" gorm:"type:text"`
	Address     string     `json:"address" gorm:"size:255;not null"`
	City        string     `json:"city" gorm:"size:100;not null"`
	IsVerified  bool       `json:"is_verified" gorm:"not null"`
	IsActive    bool       `json:"is_active" gorm:"not null"` // toggled by the owner
	Categories  []Category `json:"categories,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Status derives the moderation status shown to admins. Blocking is expressed
// through the owner account, so Owner must be loaded.
func (r *Restaurant) Status() RestaurantStatus {
	switch {
	case r.Owner != nil && !r.Owner.Active:
		return RestaurantBlocked
	case r.IsVerified && r.Owner != nil:
		return RestaurantVerified
	default:
		return RestaurantPending
	}
}

type Category struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	RestaurantID uint       `json:"restaurant_id" gorm:"not null;index"`
	Name         string     `json:"name" gorm:"size:50;not null"`
	MenuItems    []MenuItem `json:"menu_items" gorm:"foreignKey:CategoryID"`
}

type MenuItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	CategoryID   uint      `json:"category_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Description  string    `json:"description" gorm:"type:text"`
	Price        float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	IsAvailable  bool      `json:"is_available" gorm:"not null"`
	ImageURL     string    `json:"image_url" gorm:"size:255"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
