package routes

import (
	"bookstore-api/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes sets up registration, login and account lookup routes.
func RegisterAuthRoutes(r *gin.Engine, ac *controllers.AuthController) {
	authRoutes := r.Group("/auth")
	authRoutes.POST("/register", ac.Register)
	authRoutes.POST("/login", ac.Login)
	authRoutes.POST("/logout", ac.Logout)
	authRoutes.GET("/users", ac.ListUsers)
	authRoutes.GET("/users/:id", ac.GetUser)
}

// RegisterCatalogRoutes sets up book and genre routes. Reads are public,
// mutations are admin-gated inside the service layer.
func RegisterCatalogRoutes(r *gin.Engine, bc *controllers.BookController, gc *controllers.GenreController) {
	bookRoutes := r.Group("/books")
	bookRoutes.GET("", bc.ListBooks)
	bookRoutes.GET("/search", bc.SearchBooks)
	bookRoutes.GET("/filter", bc.FilterBooks)
	bookRoutes.GET("/:id", bc.GetBook)
	bookRoutes.POST("", bc.CreateBook)
	bookRoutes.PUT("/:id", bc.UpdateBook)
	bookRoutes.DELETE("/:id", bc.DeleteBook)

	genreRoutes := r.Group("/genres")
	genreRoutes.GET("", gc.ListGenres)
	genreRoutes.GET("/:id", gc.GetGenre)
	genreRoutes.POST("", gc.CreateGenre)
	genreRoutes.PUT("/:id", gc.UpdateGenre)
	genreRoutes.DELETE("/:id", gc.DeleteGenre)
}

// RegisterCartRoutes sets up cart and checkout routes.
func RegisterCartRoutes(r *gin.Engine, cc *controllers.CartController) {
	cartRoutes := r.Group("/cart")
	cartRoutes.GET("", cc.GetCart)
	cartRoutes.POST("", cc.AddItem)
	// Fixed paths must be registered before the :id parameter routes.
	cartRoutes.DELETE("/clear", cc.ClearCart)
	cartRoutes.POST("/checkout", cc.Checkout)
	cartRoutes.PUT("/:id", cc.UpdateItem)
	cartRoutes.DELETE("/:id", cc.RemoveItem)
}

// RegisterOrderRoutes sets up order listing and fulfilment routes.
func RegisterOrderRoutes(r *gin.Engine, oc *controllers.OrderController) {
	orderRoutes := r.Group("/order")
	orderRoutes.GET("/getUserOrders", oc.GetUserOrders)
	orderRoutes.GET("/getOrders", oc.GetOrders)
	orderRoutes.PUT("/updateStatus/:id", oc.UpdateStatus)
}
