package repository

import (
	"context"

	"food-ordering-api/models"

	"gorm.io/gorm"
)

type RestaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

func (r *RestaurantRepository) WithTx(tx *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{db: tx}
}

func (r *RestaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	return r.db.WithContext(ctx).Omit("Owner", "Categories").Create(restaurant).Error
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.WithContext(ctx).Preload("Owner").First(&restaurant, id).Error; err != nil {
		return nil, translate(err)
	}
	return &restaurant, nil
}

// FindByOwner returns the restaurant owned by ownerID
func (r *RestaurantRepository) FindByOwner(ctx context.Context, ownerID uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").First(&restaurant).Error; err != nil {
		return nil, translate(err)
	}
	return &restaurant, nil
}

// FindWithMenu loads the restaurant with its categories and their items
func (r *RestaurantRepository) FindWithMenu(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.WithContext(ctx).
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Order("categories.id") }).
		Preload("Categories.MenuItems", func(db *gorm.DB) *gorm.DB { return db.Order("menu_items.id") }).
		First(&restaurant, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &restaurant, nil
}

// ListVisible returns verified and active restaurants, the ones customers can browse
func (r *RestaurantRepository) ListVisible(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.WithContext(ctx).
		Where("is_verified = ? AND is_active = ?", true, true).
		Order("id").
		Find(&restaurants).Error
	return restaurants, err
}

func (r *RestaurantRepository) ListWithOwners(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.WithContext(ctx).Preload("Owner").Order("id").Find(&restaurants).Error
	return restaurants, err
}

func (r *RestaurantRepository) ListPending(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.WithContext(ctx).Preload("Owner").Where("is_verified = ?", false).Order("id").Find(&restaurants).Error
	return restaurants, err
}

func (r *RestaurantRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Restaurant{}).Count(&n).Error
	return n, err
}

// Update applies the given column values
func (r *RestaurantRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.Restaurant{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes the restaurant and everything it owns. Orders and their line
// items are kept as history. Must run inside a transaction.
func (r *RestaurantRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	steps := []struct {
		model any
		where string
	}{
		{&models.Review{}, "restaurant_id = ?"},
		{&models.MenuItem{}, "restaurant_id = ?"},
		{&models.Category{}, "restaurant_id = ?"},
		{&models.Coupon{}, "restaurant_id = ?"},
		{&models.Favorite{}, "restaurant_id = ?"},
	}
	for _, step := range steps {
		if err := db.Where(step.where, id).Delete(step.model).Error; err != nil {
			return err
		}
	}
	res := db.Delete(&models.Restaurant{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RatingSummary aggregates reviews of one restaurant
type RatingSummary struct {
	RestaurantID uint
	Average      float64
	Reviews      int64
}

// RatingSummaries returns review aggregates keyed by restaurant id. Restaurants
// without reviews are absent from the map.
func (r *RestaurantRepository) RatingSummaries(ctx context.Context, ids []uint) (map[uint]RatingSummary, error) {
	out := make(map[uint]RatingSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []RatingSummary
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("restaurant_id, AVG(rating) AS average, COUNT(id) AS reviews").
		Where("restaurant_id IN ?", ids).
		Group("restaurant_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.RestaurantID] = row
	}
	return out, nil
}
