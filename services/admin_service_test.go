package services

import (
	"context"
	"net/http"
	"testing"

	"food-ordering-api/models"
	"food-ordering-api/repository"
	"food-ordering-api/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusOf(t *testing.T, svc *AdminService, id uint) models.RestaurantStatus {
	t.Helper()
	listings, err := svc.Restaurants(context.Background())
	require.NoError(t, err)
	for _, l := range listings {
		if l.ID == id {
			return l.Status
		}
	}
	t.Fatalf("restaurant %d not listed", id)
	return ""
}

func TestBlockRestaurantDeactivatesOwner(t *testing.T) {
	w := newWorld(t)
	svc := NewAdminService(w.db, w.log)
	ctx := context.Background()
	admin := principal(w.admin)

	assert.Equal(t, models.RestaurantVerified, statusOf(t, svc, w.restaurant.ID))

	_, err := svc.Block(ctx, admin, w.restaurant.ID)
	require.NoError(t, err)

	owner, err := repository.NewUserRepository(w.db).FindByID(ctx, w.owner.ID)
	require.NoError(t, err)
	assert.False(t, owner.Active)
	assert.Equal(t, models.RestaurantBlocked, statusOf(t, svc, w.restaurant.ID))

	_, err = svc.Unblock(ctx, admin, w.restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RestaurantVerified, statusOf(t, svc, w.restaurant.ID))

	_, err = svc.Block(ctx, admin, 9999)
	requireStatus(t, err, http.StatusNotFound)
}

func TestVerifyRestaurant(t *testing.T) {
	w := newWorld(t)
	svc := NewAdminService(w.db, w.log)
	ctx := context.Background()
	owner := testutil.CreateUser(t, w.db, "owner3@email.com", models.RoleOwner)
	pending := testutil.CreateRestaurant(t, w.db, owner, "New Place", false)

	assert.Equal(t, models.RestaurantPending, statusOf(t, svc, pending.ID))
	_, err := svc.Verify(ctx, principal(w.admin), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RestaurantVerified, statusOf(t, svc, pending.ID))

	// an orphaned restaurant can be neither verified nor blocked
	orphan := &models.Restaurant{OwnerID: 9999, Name: "Orphan", Address: "a", City: "b", IsActive: true}
	require.NoError(t, repository.NewRestaurantRepository(w.db).Create(ctx, orphan))
	_, err = svc.Verify(ctx, principal(w.admin), orphan.ID)
	requireStatus(t, err, http.StatusBadRequest)
	_, err = svc.Block(ctx, principal(w.admin), orphan.ID)
	requireStatus(t, err, http.StatusBadRequest)
}

func TestDeleteRestaurantCascades(t *testing.T) {
	w := newWorld(t)
	svc := NewAdminService(w.db, w.log)
	ctx := context.Background()

	order := testutil.CreateOrder(t, w.db, w.customer, w.restaurant, models.StatusCompleted, 10, testNow)
	require.NoError(t, w.db.Create(&models.Review{UserID: w.customer.ID, RestaurantID: w.restaurant.ID, OrderID: order.ID, Rating: 5}).Error)
	require.NoError(t, repository.NewFavoriteRepository(w.db).Add(ctx, w.customer.ID, w.restaurant.ID))
	require.NoError(t, repository.NewCouponRepository(w.db).Create(ctx, &models.Coupon{
		RestaurantID: &w.restaurant.ID, Code: "GONE", DiscountType: models.DiscountFixed, DiscountValue: 1, IsActive: true,
	}))

	_, err := svc.DeleteRestaurant(ctx, principal(w.admin), w.restaurant.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), count(t, w.db, &models.Restaurant{}))
	assert.Equal(t, int64(1), count(t, w.db, &models.Category{}))
	assert.Equal(t, int64(1), count(t, w.db, &models.MenuItem{}))
	assert.Zero(t, count(t, w.db, &models.Review{}))
	assert.Zero(t, count(t, w.db, &models.Favorite{}))
	assert.Zero(t, count(t, w.db, &models.Coupon{}))
	assert.Equal(t, int64(1), count(t, w.db, &models.Order{}), "orders are kept as history")

	_, err = svc.DeleteRestaurant(ctx, principal(w.admin), w.restaurant.ID)
	requireStatus(t, err, http.StatusNotFound)
}

func TestReviewModeration(t *testing.T) {
	w := newWorld(t)
	svc := NewAdminService(w.db, w.log)
	ctx := context.Background()

	order := testutil.CreateOrder(t, w.db, w.customer, w.restaurant, models.StatusCompleted, 10, testNow)
	review := &models.Review{UserID: w.customer.ID, RestaurantID: w.restaurant.ID, OrderID: order.ID, Rating: 1, Comment: "rude"}
	require.NoError(t, w.db.Create(review).Error)

	reviews, err := svc.Reviews(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	require.NotNil(t, reviews[0].User)
	assert.Equal(t, w.customer.Email, reviews[0].User.Email)

	require.NoError(t, svc.DeleteReview(ctx, principal(w.admin), review.ID))
	requireStatus(t, svc.DeleteReview(ctx, principal(w.admin), review.ID), http.StatusNotFound)
}

func TestCustomersIncludeThoseWithoutOrders(t *testing.T) {
	w := newWorld(t)
	svc := NewAdminService(w.db, w.log)
	ctx := context.Background()

	testutil.CreateOrder(t, w.db, w.customer, w.restaurant, models.StatusCompleted, 10.25, testNow)
	testutil.CreateOrder(t, w.db, w.customer, w.rival, models.StatusPlaced, 4.5, testNow)

	customers, err := svc.Customers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)

	assert.Equal(t, w.customer.ID, customers[0].ID)
	assert.Equal(t, int64(2), customers[0].TotalOrders)
	assert.Equal(t, 14.75, customers[0].TotalSpent)

	assert.Equal(t, w.otherCustomer.ID, customers[1].ID)
	assert.Zero(t, customers[1].TotalOrders)
	assert.Zero(t, customers[1].TotalSpent)
	assert.False(t, customers[1].IsBlocked)
}

func TestBlockUser(t *testing.T) {
	w := newWorld(t)
	svc := NewAdminService(w.db, w.log)
	ctx := context.Background()
	admin := principal(w.admin)

	user, err := svc.BlockUser(ctx, admin, w.customer.ID)
	require.NoError(t, err)
	assert.False(t, user.Active)

	customers, err := svc.Customers(ctx)
	require.NoError(t, err)
	assert.True(t, customers[0].IsBlocked)

	user, err = svc.UnblockUser(ctx, admin, w.customer.ID)
	require.NoError(t, err)
	assert.True(t, user.Active)

	_, err = svc.BlockUser(ctx, admin, w.admin.ID)
	requireStatus(t, err, http.StatusBadRequest)
	_, err = svc.BlockUser(ctx, admin, 9999)
	requireStatus(t, err, http.StatusNotFound)
}
