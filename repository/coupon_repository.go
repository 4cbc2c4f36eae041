package repository

import (
	"context"

	"food-ordering-api/models"

	"gorm.io/gorm"
)

type CouponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	return r.db.WithContext(ctx).Create(coupon).Error
}

func (r *CouponRepository) FindByID(ctx context.Context, id uint) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.WithContext(ctx).First(&coupon, id).Error; err != nil {
		return nil, translate(err)
	}
	return &coupon, nil
}

// CodeTaken reports whether another coupon already uses code
func (r *CouponRepository) CodeTaken(ctx context.Context, code string, exceptID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Coupon{}).
		Where("code = ? AND id <> ?", code, exceptID).
		Count(&n).Error
	return n > 0, err
}

// ListByRestaurant lists a restaurant's coupons; nil lists platform-wide coupons
func (r *CouponRepository) ListByRestaurant(ctx context.Context, restaurantID *uint) ([]models.Coupon, error) {
	var coupons []models.Coupon
	query := r.db.WithContext(ctx).Order("id")
	if restaurantID == nil {
		query = query.Where("restaurant_id IS NULL")
	} else {
		query = query.Where("restaurant_id = ?", *restaurantID)
	}
	err := query.Find(&coupons).Error
	return coupons, err
}

// Save writes every column of coupon
func (r *CouponRepository) Save(ctx context.Context, coupon *models.Coupon) error {
	return r.db.WithContext(ctx).Save(coupon).Error
}

func (r *CouponRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Coupon{}, id).Error
}
