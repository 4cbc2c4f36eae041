package repository

import (
	"context"

	"food-ordering-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add is idempotent: an existing favorite is left untouched
func (r *FavoriteRepository) Add(ctx context.Context, userID, restaurantID uint) error {
	fav := models.Favorite{UserID: userID, RestaurantID: restaurantID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&fav).Error
}

// Remove is idempotent: removing a missing favorite is not an error
func (r *FavoriteRepository) Remove(ctx context.Context, userID, restaurantID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Delete(&models.Favorite{}).Error
}

// ListRestaurants returns the user's favorite restaurants in the order they were saved
func (r *FavoriteRepository) ListRestaurants(ctx context.Context, userID uint) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.WithContext(ctx).
		Joins("JOIN favorites ON favorites.restaurant_id = restaurants.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.id").
		Find(&restaurants).Error
	return restaurants, err
}
