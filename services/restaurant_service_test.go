package services

import (
	"context"
	"net/http"
	"testing"

	"food-ordering-api/models"
	"food-ordering-api/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeaturedListsVisibleRestaurantsWithRatings(t *testing.T) {
	w := newWorld(t)
	svc := NewRestaurantService(w.db, w.log)
	ctx := context.Background()

	pending := testutil.CreateRestaurant(t, w.db, testutil.CreateUser(t, w.db, "owner3@email.com", models.RoleOwner), "Pending Place", false)

	for i, rating := range []int{4, 5} {
		order := testutil.CreateOrder(t, w.db, w.customer, w.restaurant, models.StatusCompleted, 10, testNow)
		require.NoError(t, w.db.Create(&models.Review{
			UserID: w.customer.ID, RestaurantID: w.restaurant.ID, OrderID: order.ID, Rating: rating,
			Comment: []string{"good", "great"}[i],
		}).Error)
	}

	cards, err := svc.Featured(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	for _, card := range cards {
		assert.NotEqual(t, pending.ID, card.ID)
	}
	assert.Equal(t, w.restaurant.ID, cards[0].ID)
	assert.Equal(t, 4.5, cards[0].Rating)
	assert.Equal(t, int64(2), cards[0].Reviews)
	assert.Zero(t, cards[1].Rating)
	assert.Zero(t, cards[1].Reviews)
}

func TestDetailIncludesMenu(t *testing.T) {
	w := newWorld(t)
	svc := NewRestaurantService(w.db, w.log)

	restaurant, err := svc.Detail(context.Background(), w.restaurant.ID)
	require.NoError(t, err)
	require.Len(t, restaurant.Categories, 1)
	assert.Len(t, restaurant.Categories[0].MenuItems, 3)

	_, err = svc.Detail(context.Background(), 9999)
	requireStatus(t, err, http.StatusNotFound)
}

func TestRegularItemsIsCapped(t *testing.T) {
	w := newWorld(t)
	svc := NewRestaurantService(w.db, w.log)
	for i := 0; i < 5; i++ {
		testutil.CreateMenuItem(t, w.db, w.mains, "Extra", 1, true)
	}

	items, err := svc.RegularItems(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, regularMenuSize)
}

func TestUpdateProfileRenewsSlug(t *testing.T) {
	w := newWorld(t)
	svc := NewRestaurantService(w.db, w.log)
	name, inactive := "Owner One's Bistro", false

	updated, err := svc.UpdateProfile(context.Background(), w.restaurant, UpdateRestaurantInput{Name: &name, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, "owner-ones-bistro", updated.Slug)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Testville", updated.City)

	empty := " "
	_, err = svc.UpdateProfile(context.Background(), w.restaurant, UpdateRestaurantInput{Name: &empty})
	requireStatus(t, err, http.StatusBadRequest)
}

func TestMenuManagement(t *testing.T) {
	w := newWorld(t)
	svc := NewRestaurantService(w.db, w.log)
	ctx := context.Background()

	desserts, err := svc.CreateCategory(ctx, w.restaurant, CategoryInput{Name: "Desserts"})
	require.NoError(t, err)

	item, err := svc.CreateItem(ctx, w.restaurant, MenuItemInput{CategoryID: desserts.ID, Name: "Tiramisu", Price: 6.5})
	require.NoError(t, err)
	assert.True(t, item.IsAvailable)
	assert.Equal(t, w.restaurant.ID, item.RestaurantID)

	// the rival's category is not ours to fill
	rivalMenu, err := svc.Menu(ctx, w.rival)
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, w.restaurant, MenuItemInput{CategoryID: rivalMenu[0].ID, Name: "Sneaky", Price: 1})
	requireStatus(t, err, http.StatusBadRequest)

	off := false
	toggled, err := svc.SetAvailability(ctx, w.restaurant, item.ID, AvailabilityInput{IsAvailable: &off})
	require.NoError(t, err)
	assert.False(t, toggled.IsAvailable)

	menu, err := svc.Menu(ctx, w.restaurant)
	require.NoError(t, err)
	require.Len(t, menu, 2)
	assert.False(t, menu[1].MenuItems[0].IsAvailable)

	require.NoError(t, svc.DeleteItem(ctx, w.restaurant, item.ID))
	_, err = svc.UpdateItem(ctx, w.restaurant, item.ID, UpdateMenuItemInput{})
	requireStatus(t, err, http.StatusNotFound)
}

func TestOwnerCannotEditForeignItem(t *testing.T) {
	w := newWorld(t)
	svc := NewRestaurantService(w.db, w.log)
	ctx := context.Background()
	price := 1.0

	_, err := svc.UpdateItem(ctx, w.restaurant, w.rivalDish.ID, UpdateMenuItemInput{Price: &price})
	requireStatus(t, err, http.StatusForbidden)
	requireStatus(t, svc.DeleteItem(ctx, w.restaurant, w.rivalDish.ID), http.StatusForbidden)

	negative := -3.0
	_, err = svc.UpdateItem(ctx, w.restaurant, w.burger.ID, UpdateMenuItemInput{Price: &negative})
	requireStatus(t, err, http.StatusBadRequest)
}
