package models

import "time"

type Review struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	UserID       uint        `json:"user_id" gorm:"not null;index"`
	User         *User       `json:"customer,omitempty" gorm:"foreignKey:UserID"`
	RestaurantID uint        `json:"restaurant_id" gorm:"not null;index"`
	Restaurant   *Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	OrderID      uint        `json:"order_id" gorm:"not null;uniqueIndex"`
	Rating       int         `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment      string      `json:"comment" gorm:"type:text"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Favorite joins a customer to a restaurant they saved
type Favorite struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_favorite_user_restaurant"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;uniqueIndex:idx_favorite_user_restaurant"`
	CreatedAt    time.Time `json:"created_at"`
}
