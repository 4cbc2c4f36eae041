package repository

import (
	"context"

	"food-ordering-api/models"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

// Create inserts the order together with its items
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit("User", "Restaurant", "StatusHistory").Create(order).Error
}

func (r *OrderRepository) AddHistory(ctx context.Context, entry *models.OrderStatusHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// FindForUser is scoped by both order id and customer id
func (r *OrderRepository) FindForUser(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		Preload("Restaurant").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("order_status_histories.id") }).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *OrderRepository) ListForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("Restaurant").
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&orders).Error
	return orders, err
}

// FindForRestaurant is scoped by both order id and restaurant id
func (r *OrderRepository) FindForRestaurant(ctx context.Context, restaurantID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Where("id = ? AND restaurant_id = ?", orderID, restaurantID).First(&order).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// ListActiveForRestaurant returns the kitchen queue, oldest first
func (r *OrderRepository) ListActiveForRestaurant(ctx context.Context, restaurantID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("Items").Preload("User").
		Where("restaurant_id = ? AND status NOT IN ?", restaurantID,
			[]models.OrderStatus{models.StatusCompleted, models.StatusCancelled, models.StatusRejected}).
		Order("created_at asc, id asc").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) ListRecentForRestaurant(ctx context.Context, restaurantID uint, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("Items").Preload("User").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("User").Preload("Restaurant").
		Order("created_at desc, id desc").
		Find(&orders).Error
	return orders, err
}

// UpdateStatus moves the order from one status to another. It reports false
// when the order was no longer in the expected status.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID uint, from, to models.OrderStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
