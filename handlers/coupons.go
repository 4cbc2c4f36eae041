package handlers

import (
	"net/http"

	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

// Coupon endpoints are shared by owners (scope = their restaurant) and
// admins (nil scope = platform coupons).

func listCoupons(c *gin.Context, coupons *services.CouponService, scope *uint) {
	list, err := coupons.List(c.Request.Context(), scope)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "coupons": list})
}

func createCoupon(c *gin.Context, coupons *services.CouponService, scope *uint) {
	var req services.CouponInput
	if !bindJSON(c, &req) {
		return
	}
	coupon, err := coupons.Create(c.Request.Context(), scope, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Coupon created", "coupon": coupon})
}

func updateCoupon(c *gin.Context, coupons *services.CouponService, scope *uint) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateCouponInput
	if !bindJSON(c, &req) {
		return
	}
	coupon, err := coupons.Update(c.Request.Context(), scope, id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Coupon updated", "coupon": coupon})
}

func deleteCoupon(c *gin.Context, coupons *services.CouponService, scope *uint) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := coupons.Delete(c.Request.Context(), scope, id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted"})
}
