package services

import (
	"context"
	"strings"

	"food-ordering-api/apperror"
	"food-ordering-api/models"
	"food-ordering-api/repository"

	"gorm.io/gorm"
)

// CouponService manages coupons for one scope at a time: a restaurant id for
// owner promotions, nil for platform-wide coupons managed by admins.
type CouponService struct {
	coupons *repository.CouponRepository
}

func NewCouponService(db *gorm.DB) *CouponService {
	return &CouponService{coupons: repository.NewCouponRepository(db)}
}

type CouponInput struct {
	Code     string              `json:"code" binding:"required"`
	Type     models.DiscountType `json:"type" binding:"required"`
	Value    float64             `json:"value" binding:"required,gt=0"`
	IsActive *bool               `json:"is_active"`
}

type UpdateCouponInput struct {
	Code     *string              `json:"code"`
	Type     *models.DiscountType `json:"type"`
	Value    *float64             `json:"value"`
	IsActive *bool                `json:"is_active"`
}

func (s *CouponService) List(ctx context.Context, scope *uint) ([]models.Coupon, error) {
	coupons, err := s.coupons.ListByRestaurant(ctx, scope)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return coupons, nil
}

func (s *CouponService) Create(ctx context.Context, scope *uint, in CouponInput) (*models.Coupon, error) {
	coupon := &models.Coupon{
		RestaurantID:  scope,
		Code:          strings.TrimSpace(in.Code),
		DiscountType:  in.Type,
		DiscountValue: in.Value,
		IsActive:      in.IsActive == nil || *in.IsActive,
	}
	if err := s.validate(ctx, coupon); err != nil {
		return nil, err
	}
	if err := s.coupons.Create(ctx, coupon); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperror.Conflict("Coupon code '%s' already exists.", coupon.Code)
		}
		return nil, apperror.Internal(err)
	}
	return coupon, nil
}

func (s *CouponService) Update(ctx context.Context, scope *uint, id uint, in UpdateCouponInput) (*models.Coupon, error) {
	coupon, err := s.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if in.Code != nil {
		coupon.Code = strings.TrimSpace(*in.Code)
	}
	if in.Type != nil {
		coupon.DiscountType = *in.Type
	}
	if in.Value != nil {
		coupon.DiscountValue = *in.Value
	}
	if in.IsActive != nil {
		coupon.IsActive = *in.IsActive
	}
	if err := s.validate(ctx, coupon); err != nil {
		return nil, err
	}
	if err := s.coupons.Save(ctx, coupon); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperror.Conflict("Coupon code '%s' already exists.", coupon.Code)
		}
		return nil, apperror.Internal(err)
	}
	return coupon, nil
}

func (s *CouponService) Delete(ctx context.Context, scope *uint, id uint) error {
	coupon, err := s.find(ctx, scope, id)
	if err != nil {
		return err
	}
	if err := s.coupons.Delete(ctx, coupon.ID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// find loads a coupon and checks it belongs to scope. A platform scope never
// sees restaurant coupons; a restaurant touching another's coupon is refused.
func (s *CouponService) find(ctx context.Context, scope *uint, id uint) (*models.Coupon, error) {
	coupon, err := s.coupons.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "Coupon not found")
	}
	switch {
	case scope == nil && coupon.RestaurantID != nil:
		return nil, apperror.NotFound("Coupon not found")
	case scope != nil && (coupon.RestaurantID == nil || *coupon.RestaurantID != *scope):
		return nil, apperror.Forbidden("Unauthorized to modify this coupon.")
	}
	return coupon, nil
}

func (s *CouponService) validate(ctx context.Context, coupon *models.Coupon) error {
	if coupon.Code == "" {
		return apperror.Validation("Coupon code must not be empty.")
	}
	if !coupon.DiscountType.Valid() {
		return apperror.Validation("Discount type must be %s or %s.", models.DiscountPercentage, models.DiscountFixed)
	}
	if coupon.DiscountValue <= 0 {
		return apperror.Validation("Discount value must be greater than zero.")
	}
	if coupon.DiscountType == models.DiscountPercentage && coupon.DiscountValue > 100 {
		return apperror.Validation("A percentage discount cannot exceed 100.")
	}

	taken, err := s.coupons.CodeTaken(ctx, coupon.Code, coupon.ID)
	if err != nil {
		return apperror.Internal(err)
	}
	if taken {
		return apperror.Conflict("Coupon code '%s' already exists.", coupon.Code)
	}
	return nil
}
