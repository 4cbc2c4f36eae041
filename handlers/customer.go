package handlers

import (
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	orders    *services.OrderService
	customers *services.CustomerService
}

func NewCustomerHandler(orders *services.OrderService, customers *services.CustomerService) *CustomerHandler {
	useJSONFieldNames()
	return &CustomerHandler{orders: orders, customers: customers}
}

// PlaceOrder creates a new order (customer only)
func (h *CustomerHandler) PlaceOrder(c *gin.Context) {
	var req services.PlaceOrderInput
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.orders.PlaceOrder(c.Request.Context(), middleware.CurrentPrincipal(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully!", "order": order})
}

// GetMyOrders returns all orders of the logged-in customer, newest first
func (h *CustomerHandler) GetMyOrders(c *gin.Context) {
	orders, err := h.orders.ListForCustomer(c.Request.Context(), middleware.CurrentPrincipal(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns one of the caller's orders with items and history
func (h *CustomerHandler) GetOrderDetail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.GetForCustomer(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CancelOrder cancels an order the restaurant has not started
func (h *CustomerHandler) CancelOrder(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.Cancel(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order": order})
}

func (h *CustomerHandler) ReviewOrder(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.ReviewInput
	if !bindJSON(c, &req) {
		return
	}
	review, err := h.customers.Review(c.Request.Context(), middleware.CurrentPrincipal(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Thank you for your review!", "review": review})
}

func (h *CustomerHandler) GetFavorites(c *gin.Context) {
	favorites, err := h.customers.Favorites(c.Request.Context(), middleware.CurrentPrincipal(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(favorites), "restaurants": favorites})
}

func (h *CustomerHandler) AddFavorite(c *gin.Context) {
	id, ok := idParam(c, "restaurant_id")
	if !ok {
		return
	}
	if err := h.customers.AddFavorite(c.Request.Context(), middleware.CurrentPrincipal(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Favorite added."})
}

func (h *CustomerHandler) RemoveFavorite(c *gin.Context) {
	id, ok := idParam(c, "restaurant_id")
	if !ok {
		return
	}
	if err := h.customers.RemoveFavorite(c.Request.Context(), middleware.CurrentPrincipal(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Favorite removed."})
}

// GetRewards returns the point balance and the ledger, newest first
func (h *CustomerHandler) GetRewards(c *gin.Context) {
	rewards, err := h.customers.Rewards(c.Request.Context(), middleware.CurrentPrincipal(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rewards)
}
