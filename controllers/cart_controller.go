package controllers

import (
	"net/http"

	"bookstore-api/metrics"
	"bookstore-api/middleware"
	"bookstore-api/models"
	"bookstore-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartController struct {
	cartService     services.CartService
	checkoutService services.CheckoutService
}

func NewCartController(cartService services.CartService, checkoutService services.CheckoutService) *CartController {
	return &CartController{cartService: cartService, checkoutService: checkoutService}
}

// GetCart returns the caller's cart lines with a computed total.
func (cc *CartController) GetCart(c *gin.Context) {
	cart, svcErr := cc.cartService.GetCart(c.Request.Context(), middleware.IdentityFrom(c))
	if svcErr != nil {
		abortWithError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddItem adds a line or merges the quantity into an existing one.
func (cc *CartController) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "error": err.Error()})
		return
	}

	if svcErr := cc.cartService.AddItem(c.Request.Context(), middleware.IdentityFrom(c), &req); svcErr != nil {
		abortWithError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item added to cart"})
}

func (cc *CartController) UpdateItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid cart item ID"})
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "error": err.Error()})
		return
	}

	if svcErr := cc.cartService.UpdateItem(c.Request.Context(), middleware.IdentityFrom(c), itemID, &req); svcErr != nil {
		abortWithError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart item updated successfully"})
}

func (cc *CartController) RemoveItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid cart item ID"})
		return
	}

	if svcErr := cc.cartService.RemoveItem(c.Request.Context(), middleware.IdentityFrom(c), itemID); svcErr != nil {
		abortWithError(c, svcErr)
		return
	}
	c.Status(http.StatusNoContent)
}

func (cc *CartController) ClearCart(c *gin.Context) {
	if svcErr := cc.cartService.ClearCart(c.Request.Context(), middleware.IdentityFrom(c)); svcErr != nil {
		abortWithError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared"})
}

// Checkout converts the cart into an order batch.
func (cc *CartController) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "error": err.Error()})
		return
	}

	result, svcErr := cc.checkoutService.Checkout(c.Request.Context(), middleware.IdentityFrom(c), &req)
	if svcErr != nil {
		switch svcErr.StatusCode {
		case http.StatusConflict:
			metrics.RecordCheckout("conflict")
		case http.StatusInternalServerError:
			metrics.RecordCheckout("error")
		default:
			metrics.RecordCheckout("rejected")
		}
		abortWithError(c, svcErr)
		return
	}

	metrics.RecordCheckout("success")
	c.JSON(http.StatusOK, result)
}
