package models

import "time"

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	StatusPlaced    OrderStatus = "placed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusRejected  OrderStatus = "rejected"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderType is how the customer collects the order
type OrderType string

const (
	OrderTakeaway OrderType = "takeaway"
	OrderDineIn   OrderType = "dine_in"
)

func (t OrderType) Valid() bool {
	return t == OrderTakeaway || t == OrderDineIn
}

type Order struct {
	ID            uint                 `json:"id" gorm:"primaryKey"`
	UserID        uint                 `json:"user_id" gorm:"not null;index"`
	User          *User                `json:"customer,omitempty" gorm:"foreignKey:UserID"`
	RestaurantID  uint                 `json:"restaurant_id" gorm:"not null;index"`
	Restaurant    *Restaurant          `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	TotalAmount   float64              `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Status        OrderStatus          `json:"status" gorm:"size:50;not null;index"`
	OrderType     OrderType            `json:"order_type" gorm:"size:50;not null"`
	OTP           string               `json:"otp" gorm:"size:6;not null"`
	QRPayload     string               `json:"qr_payload" gorm:"size:255;not null;uniqueIndex"`
	Items         []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time            `json:"created_at" gorm:"index"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// OrderItem is immutable once written: price and name are snapshots taken at
// order time and are never recomputed from the menu.
type OrderItem struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	OrderID      uint    `json:"order_id" gorm:"not null;index"`
	MenuItemID   uint    `json:"menu_item_id" gorm:"not null;index"`
	MenuItemName string  `json:"name" gorm:"size:100"`
	Quantity     int     `json:"quantity" gorm:"not null"`
	PriceAtOrder float64 `json:"price_at_order" gorm:"type:decimal(10,2);not null"`
}

// OrderStatusHistory tracks every status change
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status" gorm:"size:50"`
	ToStatus   OrderStatus `json:"to_status" gorm:"size:50;not null"`
	ChangedBy  uint        `json:"changed_by"` // user ID who triggered the transition
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
