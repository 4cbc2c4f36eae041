package handlers

import (
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	useJSONFieldNames()
	return &AuthHandler{auth: auth}
}

// Login returns a bearer token for valid credentials
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginInput
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login Successful",
		"token":   res.Token,
		"user":    res.User,
		"roles":   res.Roles,
	})
}

// Register creates a customer account
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterCustomerInput
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.auth.RegisterCustomer(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Customer account created successfully", "user": user})
}

// RegisterRestaurant creates an owner account and an unverified restaurant
func (h *AuthHandler) RegisterRestaurant(c *gin.Context) {
	var req services.RegisterRestaurantInput
	if !bindJSON(c, &req) {
		return
	}
	restaurant, err := h.auth.RegisterRestaurant(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant submitted for verification!", "restaurant": restaurant})
}

// Me returns the authenticated caller with their roles
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.Me(c.Request.Context(), middleware.CurrentPrincipal(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateProfileInput
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.auth.UpdateProfile(c.Request.Context(), middleware.CurrentPrincipal(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully!", "user": user})
}
