package controllers

import (
	"net/http"

	"bookstore-api/middleware"
	"bookstore-api/models"
	"bookstore-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GenreController struct {
	catalogService services.CatalogService
}

func NewGenreController(catalogService services.CatalogService) *GenreController {
	return &GenreController{catalogService: catalogService}
}

func (gc *GenreController) ListGenres(c *gin.Context) {
	genres, svcErr := gc.catalogService.ListGenres(c.Request.Context())
	if svcErr != nil {
		abortWithError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, genres)
}

func (gc *GenreController) GetGenre(c *gin.Context) {
	genreID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid genre ID"})
		return
	}

	genre, svcErr := gc.catalogService.GetGenre(c.Request.Context(), genreID)
	if svcErr != nil {
		abortWithError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, genre)
}

func (gc *GenreController) CreateGenre(c *gin.Context) {
	var req models.GenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "error": err.Error()})
		return
	}

	genre, svcErr := gc.catalogService.CreateGenre(c.Request.Context(), middleware.IdentityFrom(c), &req)
	if svcErr != nil {
		abortWithError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, genre)
}

func (gc *GenreController) UpdateGenre(c *gin.Context) {
	genreID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid genre ID"})
		return
	}

	var req models.GenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "error": err.Error()})
		return
	}

	genre, svcErr := gc.catalogService.UpdateGenre(c.Request.Context(), middleware.IdentityFrom(c), genreID, &req)
	if svcErr != nil {
		abortWithError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, genre)
}

func (gc *GenreController) DeleteGenre(c *gin.Context) {
	genreID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid genre ID"})
		return
	}

	genre, svcErr := gc.catalogService.DeleteGenre(c.Request.Context(), middleware.IdentityFrom(c), genreID)
	if svcErr != nil {
		abortWithError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Genre deleted successfully!", "deletedGenre": genre})
}
