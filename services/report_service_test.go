package services

import (
	"context"
	"testing"
	"time"

	"food-ordering-api/models"
	"food-ordering-api/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportService(w *world) *ReportService {
	return NewReportService(w.db).WithClock(func() time.Time { return testNow })
}

func TestAdminReportsAlwaysCoverSevenDays(t *testing.T) {
	w := newWorld(t)
	svc := newReportService(w)

	reports, err := svc.AdminReports(context.Background())
	require.NoError(t, err)
	require.Len(t, reports.DailyRevenue, 7)
	assert.Equal(t, "2026-03-08", reports.DailyRevenue[0].Date)
	assert.Equal(t, "2026-03-14", reports.DailyRevenue[6].Date)
	assert.Equal(t, "Mar 14", reports.DailyRevenue[6].Label)
	for _, day := range reports.DailyRevenue {
		assert.Zero(t, day.Revenue)
	}
	assert.Empty(t, reports.TopRestaurants)
}

func TestAdminReportsBucketCompletedRevenueByDay(t *testing.T) {
	w := newWorld(t)
	svc := newReportService(w)
	day := 24 * time.Hour

	testutil.CreateOrder(t, w.db, w.customer, w.restaurant, models.StatusCompleted, 10, testNow.Add(-time.Hour))
	testutil.CreateOrder(t, w.db, w.customer, w.restaurant, models.StatusCompleted, 5.5, testNow.Add(-14*time.Hour))
	testutil.CreateOrder(t, w.db, w.customer, w.restaurant, models.StatusCompleted, 7.25, testNow.Add(-2*day))
	testutil.CreateOrder(t, w.db, w.customer, w.restaurant, models.StatusCompleted, 100, testNow.Add(-8*day))
	testutil.CreateOrder(t, w.db, w.customer, w.restaurant, models.StatusPlaced, 3, testNow)
	testutil.CreateOrder(t, w.db, w.customer, w.rival, models.StatusCompleted, 20, testNow.Add(-3*day))

	reports, err := svc.AdminReports(context.Background())
	require.NoError(t, err)

	revenue := map[string]float64{}
	for _, d := range reports.DailyRevenue {
		revenue[d.Date] = d.Revenue
	}
	require.Len(t, reports.DailyRevenue, 7)
	assert.Equal(t, 15.5, revenue["2026-03-14"])
	assert.Equal(t, 7.25, revenue["2026-03-12"])
	assert.Equal(t, 20.0, revenue["2026-03-11"])
	assert.Zero(t, revenue["2026-03-13"])
	assert.Zero(t, revenue["2026-03-08"])

	require.Len(t, reports.TopRestaurants, 2)
	assert.Equal(t, 1, reports.TopRestaurants[0].Rank)
	assert.Equal(t, w.restaurant.ID, reports.TopRestaurants[0].RestaurantID)
	assert.Equal(t, 122.75, reports.TopRestaurants[0].Revenue)
	assert.Equal(t, "Rival Diner", reports.TopRestaurants[1].Name)
}

func TestAdminDashboard(t *testing.T) {
	w := newWorld(t)
	svc := newReportService(w)
	pendingOwner := testutil.CreateUser(t, w.db, "owner3@email.com", models.RoleOwner)
	testutil.CreateRestaurant(t, w.db, pendingOwner, "Awaiting Review", false)

	testutil.CreateOrder(t, w.db, w.customer, w.restaurant, models.StatusCompleted, 10.105, testNow)
	testutil.CreateOrder(t, w.db, w.customer, w.restaurant, models.StatusRejected, 50, testNow)

	dash, err := svc.AdminDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), dash.Stats.TotalOrders)
	assert.Equal(t, int64(2), dash.Stats.TotalCustomers)
	assert.Equal(t, int64(3), dash.Stats.TotalRestaurants)
	assert.InDelta(t, 10.1, dash.Stats.TotalRevenue, 0.011)
	require.Len(t, dash.PendingRestaurants, 1)
	assert.Equal(t, "owner3@email.com", dash.PendingRestaurants[0].OwnerEmail)
	assert.Equal(t, models.RestaurantPending, dash.PendingRestaurants[0].Status)
}

func TestRestaurantDashboard(t *testing.T) {
	w := newWorld(t)
	svc := newReportService(w)

	testutil.CreateOrder(t, w.db, w.customer, w.restaurant, models.StatusCompleted, 10, testNow.Add(-time.Hour))
	testutil.CreateOrder(t, w.db, w.customer, w.restaurant, models.StatusPreparing, 8.5, testNow.Add(-30*time.Minute))
	testutil.CreateOrder(t, w.db, w.otherCustomer, w.restaurant, models.StatusPlaced, 3, testNow)
	testutil.CreateOrder(t, w.db, w.customer, w.restaurant, models.StatusCompleted, 99, testNow.Add(-24*time.Hour))
	testutil.CreateOrder(t, w.db, w.customer, w.rival, models.StatusPlaced, 7, testNow)

	dash, err := svc.RestaurantDashboard(context.Background(), w.restaurant)
	require.NoError(t, err)
	assert.Equal(t, 21.5, dash.Stats.TodaysRevenue)
	assert.Equal(t, int64(3), dash.Stats.TodaysOrders)
	assert.Equal(t, int64(2), dash.Stats.PendingOrders)

	require.Len(t, dash.RecentOrders, 4)
	assert.Equal(t, w.otherCustomer.Name, dash.RecentOrders[0].CustomerName)
	assert.Equal(t, models.StatusPlaced, dash.RecentOrders[0].Status)
}

func TestRestaurantAnalytics(t *testing.T) {
	w := newWorld(t)
	orders := NewOrderService(w.db, RandomCodes(), w.log)
	ctx := context.Background()
	customer := principal(w.customer)

	place := func(lines ...OrderLineInput) *models.Order {
		order, err := orders.PlaceOrder(ctx, customer, PlaceOrderInput{
			RestaurantID: w.restaurant.ID, OrderType: models.OrderTakeaway, Items: lines,
		})
		require.NoError(t, err)
		return order
	}
	first := place(OrderLineInput{MenuItemID: w.springRolls.ID, Quantity: 2}, OrderLineInput{MenuItemID: w.burger.ID, Quantity: 1})
	second := place(OrderLineInput{MenuItemID: w.springRolls.ID, Quantity: 1})
	place(OrderLineInput{MenuItemID: w.burger.ID, Quantity: 3})

	owner := principal(w.owner)
	for _, o := range []*models.Order{first, second} {
		_, err := orders.UpdateStatus(ctx, owner, w.restaurant, o.ID, UpdateStatusInput{Status: models.StatusCompleted})
		require.NoError(t, err)
	}

	// real clock: the orders above were placed now
	svc := NewReportService(w.db)
	analytics, err := svc.RestaurantAnalytics(ctx, w.restaurant)
	require.NoError(t, err)

	assert.Equal(t, int64(2), analytics.Stats.TotalOrders)
	assert.Equal(t, 30.96, analytics.Stats.TotalRevenue)
	assert.Equal(t, 15.48, analytics.Stats.AvgOrderValue)
	require.Len(t, analytics.DailySales, 7)
	assert.Equal(t, 30.96, analytics.DailySales[6].Revenue)

	require.Len(t, analytics.PopularItems, 2)
	assert.Equal(t, "Spring Rolls", analytics.PopularItems[0].Name)
	assert.Equal(t, int64(2), analytics.PopularItems[0].Orders)
	assert.Equal(t, "House Burger", analytics.PopularItems[1].Name)
	assert.Equal(t, int64(2), analytics.PopularItems[1].Orders)
}
