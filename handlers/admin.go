package handlers

import (
	"fmt"
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	admin   *services.AdminService
	orders  *services.OrderService
	coupons *services.CouponService
	reports *services.ReportService
}

func NewAdminHandler(admin *services.AdminService, orders *services.OrderService,
	coupons *services.CouponService, reports *services.ReportService) *AdminHandler {
	useJSONFieldNames()
	return &AdminHandler{admin: admin, orders: orders, coupons: coupons, reports: reports}
}

// ----- Restaurants -----

// AdminGetAllRestaurants lists every restaurant with its owner and status
func (h *AdminHandler) AdminGetAllRestaurants(c *gin.Context) {
	restaurants, err := h.admin.Restaurants(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

func (h *AdminHandler) restaurantAction(c *gin.Context, verb string,
	act func(c *gin.Context, id uint) (*models.Restaurant, error)) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	restaurant, err := act(c, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    fmt.Sprintf("Restaurant '%s' has been %s.", restaurant.Name, verb),
		"restaurant": services.ListingOf(restaurant),
	})
}

func (h *AdminHandler) VerifyRestaurant(c *gin.Context) {
	h.restaurantAction(c, "verified", func(c *gin.Context, id uint) (*models.Restaurant, error) {
		return h.admin.Verify(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	})
}

func (h *AdminHandler) BlockRestaurant(c *gin.Context) {
	h.restaurantAction(c, "blocked", func(c *gin.Context, id uint) (*models.Restaurant, error) {
		return h.admin.Block(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	})
}

func (h *AdminHandler) UnblockRestaurant(c *gin.Context) {
	h.restaurantAction(c, "unblocked", func(c *gin.Context, id uint) (*models.Restaurant, error) {
		return h.admin.Unblock(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	})
}

// DeleteRestaurant removes a restaurant and its menu; orders are kept as history
func (h *AdminHandler) DeleteRestaurant(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	restaurant, err := h.admin.DeleteRestaurant(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Restaurant '%s' has been deleted.", restaurant.Name)})
}

// ----- Orders -----

// AdminGetAllOrders returns every order on the platform, newest first
func (h *AdminHandler) AdminGetAllOrders(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"count":          len(orders),
		"status_summary": summary,
		"orders":         orders,
	})
}

func (h *AdminHandler) RefundOrder(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.Refund(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Refund for order #%d has been initiated.", order.ID),
		"order":   order,
	})
}

// ----- Reviews -----

func (h *AdminHandler) GetReviews(c *gin.Context) {
	reviews, err := h.admin.Reviews(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}

func (h *AdminHandler) DeleteReview(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.admin.DeleteReview(c.Request.Context(), middleware.CurrentPrincipal(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

// ----- Platform coupons -----

func (h *AdminHandler) GetCoupons(c *gin.Context)   { listCoupons(c, h.coupons, nil) }
func (h *AdminHandler) CreateCoupon(c *gin.Context) { createCoupon(c, h.coupons, nil) }
func (h *AdminHandler) UpdateCoupon(c *gin.Context) { updateCoupon(c, h.coupons, nil) }
func (h *AdminHandler) DeleteCoupon(c *gin.Context) { deleteCoupon(c, h.coupons, nil) }

// ----- Users -----

// AdminGetAllUsers lists customers with their lifetime order count and spend
func (h *AdminHandler) AdminGetAllUsers(c *gin.Context) {
	customers, err := h.admin.Customers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(customers), "users": customers})
}

func (h *AdminHandler) BlockUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	user, err := h.admin.BlockUser(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("User %s has been blocked.", user.Email), "user": user})
}

func (h *AdminHandler) UnblockUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	user, err := h.admin.UnblockUser(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("User %s has been unblocked.", user.Email), "user": user})
}

// ----- Reports -----

func (h *AdminHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.reports.AdminDashboard(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *AdminHandler) GetReports(c *gin.Context) {
	reports, err := h.reports.AdminReports(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}
