package controllers

import (
	"net/http"
	"strconv"

	"bookstore-api/middleware"
	"bookstore-api/models"
	"bookstore-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookController struct {
	catalogService services.CatalogService
}

func NewBookController(catalogService services.CatalogService) *BookController {
	return &BookController{catalogService: catalogService}
}

func (bc *BookController) ListBooks(c *gin.Context) {
	books, svcErr := bc.catalogService.ListBooks(c.Request.Context())
	if svcErr != nil {
		abortWithError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (bc *BookController) GetBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid book ID"})
		return
	}

	book, svcErr := bc.catalogService.GetBook(c.Request.Context(), bookID)
	if svcErr != nil {
		abortWithError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, book)
}

// SearchBooks matches title and author substrings.
func (bc *BookController) SearchBooks(c *gin.Context) {
	books, svcErr := bc.catalogService.SearchBooks(c.Request.Context(), c.Query("title"), c.Query("author"))
	if svcErr != nil {
		abortWithError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, books)
}

// FilterBooks narrows the listing by genre and price range.
func (bc *BookController) FilterBooks(c *gin.Context) {
	var filters models.BookFilters

	if raw := c.Query("genreId"); raw != "" {
		genreID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid genreId"})
			return
		}
		filters.GenreID = &genreID
	}
	if raw := c.Query("minPrice"); raw != "" {
		minPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid minPrice"})
			return
		}
		filters.MinPrice = &minPrice
	}
	if raw := c.Query("maxPrice"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid maxPrice"})
			return
		}
		filters.MaxPrice = &maxPrice
	}

	books, svcErr := bc.catalogService.FilterBooks(c.Request.Context(), filters)
	if svcErr != nil {
		abortWithError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (bc *BookController) CreateBook(c *gin.Context) {
	var req models.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "error": err.Error()})
		return
	}

	book, svcErr := bc.catalogService.CreateBook(c.Request.Context(), middleware.IdentityFrom(c), &req)
	if svcErr != nil {
		abortWithError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (bc *BookController) UpdateBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid book ID"})
		return
	}

	var req models.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "error": err.Error()})
		return
	}

	book, svcErr := bc.catalogService.UpdateBook(c.Request.Context(), middleware.IdentityFrom(c), bookID, &req)
	if svcErr != nil {
		abortWithError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (bc *BookController) DeleteBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid book ID"})
		return
	}

	book, svcErr := bc.catalogService.DeleteBook(c.Request.Context(), middleware.IdentityFrom(c), bookID)
	if svcErr != nil {
		abortWithError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, book)
}
