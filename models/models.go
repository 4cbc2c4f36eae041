package models

// All lists every model in migration order
func All() []any {
	return []any{
		&Role{},
		&User{},
		&Restaurant{},
		&Category{},
		&MenuItem{},
		&Order{},
		&OrderItem{},
		&OrderStatusHistory{},
		&Review{},
		&Favorite{},
		&RewardPoint{},
		&Coupon{},
	}
}
