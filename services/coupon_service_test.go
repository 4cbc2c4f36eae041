package services

import (
	"context"
	"net/http"
	"testing"

	"food-ordering-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestaurantCoupons(t *testing.T) {
	w := newWorld(t)
	svc := NewCouponService(w.db)
	ctx := context.Background()
	mine, theirs := &w.restaurant.ID, &w.rival.ID

	coupon, err := svc.Create(ctx, mine, CouponInput{Code: "SAVE10", Type: models.DiscountPercentage, Value: 10})
	require.NoError(t, err)
	assert.True(t, coupon.IsActive)
	require.NotNil(t, coupon.RestaurantID)
	assert.Equal(t, w.restaurant.ID, *coupon.RestaurantID)

	_, err = svc.Create(ctx, theirs, CouponInput{Code: "SAVE10", Type: models.DiscountFixed, Value: 2})
	requireStatus(t, err, http.StatusConflict)

	_, err = svc.Create(ctx, mine, CouponInput{Code: "BOGUS", Type: "Bogus", Value: 2})
	requireStatus(t, err, http.StatusBadRequest)
	_, err = svc.Create(ctx, mine, CouponInput{Code: "HUGE", Type: models.DiscountPercentage, Value: 150})
	requireStatus(t, err, http.StatusBadRequest)

	inactive := false
	_, err = svc.Update(ctx, theirs, coupon.ID, UpdateCouponInput{IsActive: &inactive})
	requireStatus(t, err, http.StatusForbidden)
	requireStatus(t, svc.Delete(ctx, theirs, coupon.ID), http.StatusForbidden)

	updated, err := svc.Update(ctx, mine, coupon.ID, UpdateCouponInput{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "SAVE10", updated.Code)

	list, err := svc.List(ctx, theirs)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, svc.Delete(ctx, mine, coupon.ID))
	list, err = svc.List(ctx, mine)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPlatformCouponsAreSeparate(t *testing.T) {
	w := newWorld(t)
	svc := NewCouponService(w.db)
	ctx := context.Background()

	platform, err := svc.Create(ctx, nil, CouponInput{Code: "WELCOME", Type: models.DiscountFixed, Value: 5})
	require.NoError(t, err)
	assert.Nil(t, platform.RestaurantID)

	local, err := svc.Create(ctx, &w.restaurant.ID, CouponInput{Code: "LOCAL", Type: models.DiscountFixed, Value: 1})
	require.NoError(t, err)

	list, err := svc.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "WELCOME", list[0].Code)

	requireStatus(t, svc.Delete(ctx, nil, local.ID), http.StatusNotFound)
	requireStatus(t, svc.Delete(ctx, &w.restaurant.ID, platform.ID), http.StatusForbidden)

	code := "LOCAL"
	_, err = svc.Update(ctx, nil, platform.ID, UpdateCouponInput{Code: &code})
	requireStatus(t, err, http.StatusConflict)
}
