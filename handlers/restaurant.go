package handlers

import (
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

// RestaurantHandler serves the owner endpoints. Every route runs behind
// middleware.OwnerRestaurant, so the restaurant always comes from the caller.
type RestaurantHandler struct {
	restaurants *services.RestaurantService
	orders      *services.OrderService
	coupons     *services.CouponService
	reports     *services.ReportService
}

func NewRestaurantHandler(restaurants *services.RestaurantService, orders *services.OrderService,
	coupons *services.CouponService, reports *services.ReportService) *RestaurantHandler {
	useJSONFieldNames()
	return &RestaurantHandler{restaurants: restaurants, orders: orders, coupons: coupons, reports: reports}
}

// GetProfile returns the owner's restaurant
func (h *RestaurantHandler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"restaurant": middleware.CurrentRestaurant(c)})
}

// UpdateProfile applies a partial update to the owner's restaurant
func (h *RestaurantHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateRestaurantInput
	if !bindJSON(c, &req) {
		return
	}
	restaurant, err := h.restaurants.UpdateProfile(c.Request.Context(), middleware.CurrentRestaurant(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": restaurant})
}

// ----- Menu -----

// GetMenu returns the categories of the owner's restaurant with their items
func (h *RestaurantHandler) GetMenu(c *gin.Context) {
	categories, err := h.restaurants.Menu(c.Request.Context(), middleware.CurrentRestaurant(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(categories), "categories": categories})
}

func (h *RestaurantHandler) CreateCategory(c *gin.Context) {
	var req services.CategoryInput
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.restaurants.CreateCategory(c.Request.Context(), middleware.CurrentRestaurant(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": category})
}

func (h *RestaurantHandler) AddMenuItem(c *gin.Context) {
	var req services.MenuItemInput
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.restaurants.CreateItem(c.Request.Context(), middleware.CurrentRestaurant(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added", "item": item})
}

func (h *RestaurantHandler) UpdateMenuItem(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateMenuItemInput
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.restaurants.UpdateItem(c.Request.Context(), middleware.CurrentRestaurant(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

func (h *RestaurantHandler) DeleteMenuItem(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.restaurants.DeleteItem(c.Request.Context(), middleware.CurrentRestaurant(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

// SetAvailability toggles whether an item can be ordered
func (h *RestaurantHandler) SetAvailability(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.AvailabilityInput
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.restaurants.SetAvailability(c.Request.Context(), middleware.CurrentRestaurant(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability updated", "item": item})
}

// ----- Promotions -----

func (h *RestaurantHandler) scope(c *gin.Context) *uint {
	id := middleware.CurrentRestaurant(c).ID
	return &id
}

func (h *RestaurantHandler) GetPromotions(c *gin.Context) {
	listCoupons(c, h.coupons, h.scope(c))
}

func (h *RestaurantHandler) CreatePromotion(c *gin.Context) {
	createCoupon(c, h.coupons, h.scope(c))
}

func (h *RestaurantHandler) UpdatePromotion(c *gin.Context) {
	updateCoupon(c, h.coupons, h.scope(c))
}

func (h *RestaurantHandler) DeletePromotion(c *gin.Context) {
	deleteCoupon(c, h.coupons, h.scope(c))
}

// ----- Reports -----

func (h *RestaurantHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.reports.RestaurantDashboard(c.Request.Context(), middleware.CurrentRestaurant(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *RestaurantHandler) GetAnalytics(c *gin.Context) {
	analytics, err := h.reports.RestaurantAnalytics(c.Request.Context(), middleware.CurrentRestaurant(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}
