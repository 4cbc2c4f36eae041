package handlers

import (
	"fmt"
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

// GetRestaurantOrders returns the active queue of the owner's restaurant, oldest first
func (h *RestaurantHandler) GetRestaurantOrders(c *gin.Context) {
	restaurant := middleware.CurrentRestaurant(c)
	orders, err := h.orders.ListActive(c.Request.Context(), restaurant)
	if err != nil {
		fail(c, err)
		return
	}

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant":    restaurant.Name,
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

// UpdateOrderStatus handles the restaurant's state transitions
func (h *RestaurantHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateStatusInput
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), middleware.CurrentPrincipal(c),
		middleware.CurrentRestaurant(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Order #%d status updated to %s", order.ID, order.Status),
		"order":   order,
	})
}
