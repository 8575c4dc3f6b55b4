package controllers

import (
	"net/http"

	"bookstore-api/middleware"
	"bookstore-api/models"
	"bookstore-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthController struct {
	authService services.AuthService
}

func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register creates a new account.
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "error": err.Error()})
		return
	}

	profile, svcErr := ac.authService.Register(c.Request.Context(), &req)
	if svcErr != nil {
		abortWithError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Login authenticates and returns a signed token.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "error": err.Error()})
		return
	}

	token, svcErr := ac.authService.Login(c.Request.Context(), &req)
	if svcErr != nil {
		abortWithError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout is stateless; the client discards the token.
func (ac *AuthController) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// ListUsers returns every account (Admin only).
func (ac *AuthController) ListUsers(c *gin.Context) {
	users, svcErr := ac.authService.ListUsers(c.Request.Context(), middleware.IdentityFrom(c))
	if svcErr != nil {
		abortWithError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser returns the caller's own account record.
func (ac *AuthController) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	user, svcErr := ac.authService.GetUser(c.Request.Context(), middleware.IdentityFrom(c), userID)
	if svcErr != nil {
		abortWithError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, user)
}
