package handlers

import (
	"net/http"

	"food-ordering-api/models"
	"food-ordering-api/services"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
)

type PublicHandler struct {
	restaurants *services.RestaurantService
}

func NewPublicHandler(restaurants *services.RestaurantService) *PublicHandler {
	return &PublicHandler{restaurants: restaurants}
}

// ListRestaurants returns the verified, active restaurants
func (h *PublicHandler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.restaurants.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

// Featured returns the browsable restaurants with their ratings
func (h *PublicHandler) Featured(c *gin.Context) {
	cards, err := h.restaurants.Featured(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(cards), "restaurants": cards})
}

// GetRestaurant returns a single restaurant with its menu by category
func (h *PublicHandler) GetRestaurant(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	restaurant, err := h.restaurants.Detail(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

func (h *PublicHandler) RegularItems(c *gin.Context) {
	items, err := h.restaurants.RegularItems(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "menu_items": items})
}

// GetOrderStatuses describes the order lifecycle
func (h *PublicHandler) GetOrderStatuses(c *gin.Context) {
	terminal := []models.OrderStatus{}
	for _, s := range []models.OrderStatus{
		models.StatusPlaced, models.StatusPreparing, models.StatusReady,
		models.StatusCompleted, models.StatusRejected, models.StatusCancelled,
	} {
		if statemachine.IsTerminal(s) {
			terminal = append(terminal, s)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"transitions":     statemachine.GetAllTransitions(),
		"initial_state":   models.StatusPlaced,
		"terminal_states": terminal,
		"description":     "Food Ordering Order Lifecycle",
	})
}
