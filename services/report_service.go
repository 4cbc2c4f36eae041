package services

import (
	"context"
	"time"

	"food-ordering-api/apperror"
	"food-ordering-api/models"
	"food-ordering-api/repository"

	"gorm.io/gorm"
)

const (
	reportDays = 7
	topN       = 5
	recentN    = 5
)

// ReportService computes the dashboards on demand. Days are UTC calendar days.
type ReportService struct {
	reports     *repository.ReportRepository
	orders      *repository.OrderRepository
	restaurants *repository.RestaurantRepository
	now         func() time.Time
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{
		reports:     repository.NewReportRepository(db),
		orders:      repository.NewOrderRepository(db),
		restaurants: repository.NewRestaurantRepository(db),
		now:         time.Now,
	}
}

// WithClock replaces the time source, used by tests
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

type DailyRevenue struct {
	Date    string  `json:"date"`
	Label   string  `json:"day"`
	Revenue float64 `json:"revenue"`
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dailyRevenue buckets completed orders of the trailing seven days, today
// included, oldest first. Days without orders are reported as zero.
func (s *ReportService) dailyRevenue(ctx context.Context, restaurantID uint) ([]DailyRevenue, error) {
	first := startOfDay(s.now()).AddDate(0, 0, -(reportDays - 1))
	rows, err := s.reports.OrderAmounts(ctx, repository.OrderScope{
		RestaurantID: restaurantID,
		Statuses:     []models.OrderStatus{models.StatusCompleted},
		Since:        first,
	})
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]float64, reportDays)
	for _, row := range rows {
		byDay[row.CreatedAt.UTC().Format(time.DateOnly)] += row.TotalAmount
	}

	days := make([]DailyRevenue, 0, reportDays)
	for i := 0; i < reportDays; i++ {
		day := first.AddDate(0, 0, i)
		key := day.Format(time.DateOnly)
		days = append(days, DailyRevenue{
			Date:    key,
			Label:   day.Format("Jan 02"),
			Revenue: round2(byDay[key]),
		})
	}
	return days, nil
}

// ----- Admin -----

type AdminStats struct {
	TotalRevenue     float64 `json:"total_revenue"`
	TotalOrders      int64   `json:"total_orders"`
	TotalCustomers   int64   `json:"total_customers"`
	TotalRestaurants int64   `json:"total_restaurants"`
}

type AdminDashboard struct {
	Stats              AdminStats          `json:"stats"`
	PendingRestaurants []RestaurantListing `json:"pending_restaurants"`
}

func (s *ReportService) AdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	var (
		out AdminDashboard
		err error
	)
	completed := repository.OrderScope{Statuses: []models.OrderStatus{models.StatusCompleted}}
	if out.Stats.TotalRevenue, err = s.reports.Revenue(ctx, completed); err != nil {
		return nil, apperror.Internal(err)
	}
	out.Stats.TotalRevenue = round2(out.Stats.TotalRevenue)
	if out.Stats.TotalOrders, err = s.reports.CountOrders(ctx, repository.OrderScope{}); err != nil {
		return nil, apperror.Internal(err)
	}
	if out.Stats.TotalCustomers, err = s.reports.CountUsersWithRole(ctx, models.RoleCustomer); err != nil {
		return nil, apperror.Internal(err)
	}
	if out.Stats.TotalRestaurants, err = s.restaurants.Count(ctx); err != nil {
		return nil, apperror.Internal(err)
	}

	pending, err := s.restaurants.ListPending(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	out.PendingRestaurants = make([]RestaurantListing, 0, len(pending))
	for i := range pending {
		out.PendingRestaurants = append(out.PendingRestaurants, ListingOf(&pending[i]))
	}
	return &out, nil
}

type RankedRestaurant struct {
	Rank int `json:"rank"`
	repository.RestaurantRevenue
}

type AdminReports struct {
	DailyRevenue   []DailyRevenue     `json:"daily_revenue"`
	TopRestaurants []RankedRestaurant `json:"top_restaurants"`
}

func (s *ReportService) AdminReports(ctx context.Context) (*AdminReports, error) {
	daily, err := s.dailyRevenue(ctx, 0)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	top, err := s.reports.TopRestaurants(ctx, topN)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	ranked := make([]RankedRestaurant, 0, len(top))
	for i, row := range top {
		row.Revenue = round2(row.Revenue)
		ranked = append(ranked, RankedRestaurant{Rank: i + 1, RestaurantRevenue: row})
	}
	return &AdminReports{DailyRevenue: daily, TopRestaurants: ranked}, nil
}

// ----- Owner -----

type RestaurantStats struct {
	TodaysRevenue float64 `json:"todays_revenue"`
	TodaysOrders  int64   `json:"todays_orders"`
	PendingOrders int64   `json:"pending_orders"`
}

type RecentOrder struct {
	ID           uint               `json:"id"`
	CustomerName string             `json:"customer_name"`
	Items        int                `json:"items"`
	Total        float64            `json:"total"`
	Status       models.OrderStatus `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
}

type RestaurantDashboard struct {
	Stats        RestaurantStats             `json:"stats"`
	RecentOrders []RecentOrder               `json:"recent_orders"`
	PopularItems []repository.ItemPopularity `json:"popular_items"`
}

// RestaurantDashboard summarises today's activity. Today's figures count
// every order placed today, whatever its status.
func (s *ReportService) RestaurantDashboard(ctx context.Context, restaurant *models.Restaurant) (*RestaurantDashboard, error) {
	today := startOfDay(s.now())
	todays, err := s.reports.OrderAmounts(ctx, repository.OrderScope{RestaurantID: restaurant.ID, Since: today})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	var out RestaurantDashboard
	for _, row := range todays {
		if startOfDay(row.CreatedAt).Equal(today) {
			out.Stats.TodaysRevenue += row.TotalAmount
			out.Stats.TodaysOrders++
		}
	}
	out.Stats.TodaysRevenue = round2(out.Stats.TodaysRevenue)

	out.Stats.PendingOrders, err = s.reports.CountOrders(ctx, repository.OrderScope{
		RestaurantID: restaurant.ID,
		Statuses:     []models.OrderStatus{models.StatusPlaced, models.StatusPreparing},
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	recent, err := s.orders.ListRecentForRestaurant(ctx, restaurant.ID, recentN)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	out.RecentOrders = make([]RecentOrder, 0, len(recent))
	for _, o := range recent {
		row := RecentOrder{ID: o.ID, Items: len(o.Items), Total: o.TotalAmount, Status: o.Status, CreatedAt: o.CreatedAt}
		if o.User != nil {
			row.CustomerName = o.User.Name
		}
		out.RecentOrders = append(out.RecentOrders, row)
	}

	if out.PopularItems, err = s.reports.PopularItems(ctx, restaurant.ID, topN); err != nil {
		return nil, apperror.Internal(err)
	}
	return &out, nil
}

type AnalyticsStats struct {
	TotalRevenue  float64 `json:"total_revenue"`
	TotalOrders   int64   `json:"total_orders"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

type RestaurantAnalytics struct {
	Stats        AnalyticsStats              `json:"stats"`
	DailySales   []DailyRevenue              `json:"daily_sales"`
	PopularItems []repository.ItemPopularity `json:"popular_items"`
}

// RestaurantAnalytics reports on completed orders only
func (s *ReportService) RestaurantAnalytics(ctx context.Context, restaurant *models.Restaurant) (*RestaurantAnalytics, error) {
	completed := repository.OrderScope{
		RestaurantID: restaurant.ID,
		Statuses:     []models.OrderStatus{models.StatusCompleted},
	}

	var (
		out RestaurantAnalytics
		err error
	)
	if out.Stats.TotalRevenue, err = s.reports.Revenue(ctx, completed); err != nil {
		return nil, apperror.Internal(err)
	}
	if out.Stats.TotalOrders, err = s.reports.CountOrders(ctx, completed); err != nil {
		return nil, apperror.Internal(err)
	}
	if out.Stats.TotalOrders > 0 {
		out.Stats.AvgOrderValue = round2(out.Stats.TotalRevenue / float64(out.Stats.TotalOrders))
	}
	out.Stats.TotalRevenue = round2(out.Stats.TotalRevenue)

	if out.DailySales, err = s.dailyRevenue(ctx, restaurant.ID); err != nil {
		return nil, apperror.Internal(err)
	}
	if out.PopularItems, err = s.reports.PopularItems(ctx, restaurant.ID, topN); err != nil {
		return nil, apperror.Internal(err)
	}
	return &out, nil
}
