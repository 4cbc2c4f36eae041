package middleware

import (
	"errors"

	"food-ordering-api/apperror"
	"food-ordering-api/models"
	"food-ordering-api/repository"

	"github.com/gin-gonic/gin"
)

const restaurantKey = "restaurant"

// OwnerRestaurant resolves the restaurant owned by the caller, so owner routes
// never take a restaurant id from the path.
func OwnerRestaurant(restaurants *repository.RestaurantRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := CurrentPrincipal(c)
		if p == nil {
			AbortWithError(c, apperror.Unauthenticated("Authentication required"))
			return
		}

		restaurant, err := restaurants.FindByOwner(c.Request.Context(), p.UserID)
		if errors.Is(err, repository.ErrNotFound) {
			AbortWithError(c, apperror.NotFound(
				"No restaurant profile found for this account. Please contact support if you believe this is an error."))
			return
		}
		if err != nil {
			AbortWithError(c, apperror.Internal(err))
			return
		}

		c.Set(restaurantKey, restaurant)
		c.Next()
	}
}

// CurrentRestaurant returns the restaurant resolved by OwnerRestaurant
func CurrentRestaurant(c *gin.Context) *models.Restaurant {
	val, ok := c.Get(restaurantKey)
	if !ok {
		return nil
	}
	r, _ := val.(*models.Restaurant)
	return r
}
