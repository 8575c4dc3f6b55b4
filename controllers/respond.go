package controllers

import (
	"bookstore-api/services"

	"github.com/gin-gonic/gin"
)

// abortWithError renders a ServiceError using the wire contract: {message}
// plus an error detail for internal faults only.
func abortWithError(c *gin.Context, svcErr *services.ServiceError) {
	body := gin.H{"message": svcErr.Message}
	if svcErr.Detail != "" {
		body["error"] = svcErr.Detail
	}
	c.JSON(svcErr.StatusCode, body)
}
