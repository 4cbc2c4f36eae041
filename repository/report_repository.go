package repository

import (
	"context"
	"time"

	"food-ordering-api/models"

	"gorm.io/gorm"
)

// ReportRepository runs the read-only aggregate queries behind the
// dashboards. Nothing is cached; each call hits the database.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// OrderScope narrows an aggregate; the zero value covers the whole platform
type OrderScope struct {
	RestaurantID uint
	Statuses     []models.OrderStatus
	Since        time.Time
}

func (r *ReportRepository) orders(ctx context.Context, scope OrderScope) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Order{})
	if scope.RestaurantID != 0 {
		query = query.Where("restaurant_id = ?", scope.RestaurantID)
	}
	if len(scope.Statuses) > 0 {
		query = query.Where("status IN ?", scope.Statuses)
	}
	if !scope.Since.IsZero() {
		query = query.Where("created_at >= ?", scope.Since)
	}
	return query
}

// Revenue sums order totals in scope
func (r *ReportRepository) Revenue(ctx context.Context, scope OrderScope) (float64, error) {
	var total float64
	err := r.orders(ctx, scope).Select("COALESCE(SUM(total_amount), 0)").Scan(&total).Error
	return total, err
}

func (r *ReportRepository) CountOrders(ctx context.Context, scope OrderScope) (int64, error) {
	var n int64
	err := r.orders(ctx, scope).Count(&n).Error
	return n, err
}

// CountUsersWithRole counts users holding role
func (r *ReportRepository) CountUsersWithRole(ctx context.Context, role models.RoleName) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.name = ?", role).
		Count(&n).Error
	return n, err
}

// OrderAmount is the slice of an order the per-day reports need
type OrderAmount struct {
	CreatedAt   time.Time
	TotalAmount float64
}

// OrderAmounts lists creation time and total of every order in scope.
// Bucketing by calendar day is done by the caller: date functions differ
// between the supported drivers.
func (r *ReportRepository) OrderAmounts(ctx context.Context, scope OrderScope) ([]OrderAmount, error) {
	var rows []OrderAmount
	err := r.orders(ctx, scope).Select("created_at, total_amount").Order("created_at").Scan(&rows).Error
	return rows, err
}

// RestaurantRevenue is one row of the top restaurants ranking
type RestaurantRevenue struct {
	RestaurantID uint    `json:"id"`
	Name         string  `json:"name"`
	Revenue      float64 `json:"revenue"`
}

// TopRestaurants ranks restaurants by completed-order revenue
func (r *ReportRepository) TopRestaurants(ctx context.Context, limit int) ([]RestaurantRevenue, error) {
	var rows []RestaurantRevenue
	err := r.db.WithContext(ctx).Table("restaurants").
		Select("restaurants.id AS restaurant_id, restaurants.name AS name, SUM(orders.total_amount) AS revenue").
		Joins("JOIN orders ON orders.restaurant_id = restaurants.id").
		Where("orders.status = ?", models.StatusCompleted).
		Group("restaurants.id, restaurants.name").
		Order("revenue DESC, restaurants.id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// ItemPopularity is one row of the popular items ranking
type ItemPopularity struct {
	MenuItemID uint   `json:"id"`
	Name       string `json:"name"`
	Orders     int64  `json:"orders"`
}

// PopularItems ranks a restaurant's menu items by the number of order lines
// that reference them
func (r *ReportRepository) PopularItems(ctx context.Context, restaurantID uint, limit int) ([]ItemPopularity, error) {
	var rows []ItemPopularity
	err := r.db.WithContext(ctx).Table("menu_items").
		Select("menu_items.id AS menu_item_id, menu_items.name AS name, COUNT(order_items.id) AS orders").
		Joins("JOIN order_items ON order_items.menu_item_id = menu_items.id").
		Where("menu_items.restaurant_id = ?", restaurantID).
		Group("menu_items.id, menu_items.name").
		Order("orders DESC, menu_items.id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// CustomerStat is a customer with lifetime order totals
type CustomerStat struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Active      bool    `json:"-"`
	TotalOrders int64   `json:"total_orders"`
	TotalSpent  float64 `json:"total_spent"`
}

// CustomerStats lists every customer with their order count and spend. The
// outer join keeps customers who never ordered, reported with zeros.
func (r *ReportRepository) CustomerStats(ctx context.Context) ([]CustomerStat, error) {
	perUser := r.db.Model(&models.Order{}).
		Select("user_id, COUNT(id) AS total_orders, SUM(total_amount) AS total_spent").
		Group("user_id")

	var rows []CustomerStat
	err := r.db.WithContext(ctx).Table("users").
		Select("users.id, users.name, users.email, users.active, "+
			"COALESCE(stats.total_orders, 0) AS total_orders, COALESCE(stats.total_spent, 0) AS total_spent").
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Joins("JOIN roles ON roles.id = user_roles.role_id AND roles.name = ?", models.RoleCustomer).
		Joins("LEFT JOIN (?) AS stats ON stats.user_id = users.id", perUser).
		Order("users.id").
		Scan(&rows).Error
	return rows, err
}
