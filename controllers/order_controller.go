package controllers

import (
	"net/http"

	"bookstore-api/middleware"
	"bookstore-api/models"
	"bookstore-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderController struct {
	orderService services.OrderService
}

func NewOrderController(orderService services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// GetOrders returns every order in the system. Admin only.
func (oc *OrderController) GetOrders(c *gin.Context) {
	orders, svcErr := oc.orderService.GetAllOrders(c.Request.Context(), middleware.IdentityFrom(c))
	if svcErr != nil {
		abortWithError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetUserOrders returns the caller's own orders.
func (oc *OrderController) GetUserOrders(c *gin.Context) {
	orders, svcErr := oc.orderService.GetUserOrders(c.Request.Context(), middleware.IdentityFrom(c))
	if svcErr != nil {
		abortWithError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateStatus moves an order to a new fulfilment status. Admin only.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "error": err.Error()})
		return
	}

	if svcErr := oc.orderService.UpdateStatus(c.Request.Context(), middleware.IdentityFrom(c), orderID, req.Status); svcErr != nil {
		abortWithError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated successfully."})
}
