package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"urbanpantry/internal/auth"
	"urbanpantry/internal/cache"
	"urbanpantry/internal/chatbot"
	"urbanpantry/internal/config"
	"urbanpantry/internal/handlers"
	"urbanpantry/internal/middleware"
	"urbanpantry/internal/repository"
)

// RegisterRoutes wires the repositories, handlers and middleware onto the
// router. Route shape mirrors the public storefront API under /api.
func RegisterRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config) {
	products := repository.NewProductRepository(db.Collection("products"))
	reviews := repository.NewReviewRepository(db.Collection("reviews"), db.Collection("products"))
	orders := repository.NewOrderRepository(db.Collection("orders"))
	users := repository.NewUserRepository(db.Collection("users"))
	looks := repository.NewLookRepository(db.Collection("looks"))
	wishlists := repository.NewWishlistRepository(db.Collection("wishlists"))
	testimonials := repository.NewTestimonialRepository(db.Collection("testimonials"))
	categories := repository.NewCategoryRepository(db.Collection("categories"))

	catalogCache := cache.New(5 * time.Minute)
	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	assistant := chatbot.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ChatbotTimeout)

	productHandler := handlers.NewProductHandler(products, reviews, users, catalogCache)
	orderHandler := handlers.NewOrderHandler(orders)
	userHandler := handlers.NewUserHandler(users, tokens)
	lookHandler := handlers.NewLookHandler(looks, products)
	wishlistHandler := handlers.NewWishlistHandler(wishlists, products)
	testimonialHandler := handlers.NewTestimonialHandler(testimonials)
	categoryHandler := handlers.NewCategoryHandler(categories)
	chatbotHandler := handlers.NewChatbotHandler(products, assistant, catalogCache)

	authed := middleware.RequireAuth(tokens)
	admin := middleware.RequireAdmin()

	api := router.Group("/api")
	{
		api.GET("/products", productHandler.ListProducts)
		api.GET("/products/search", productHandler.SearchProducts)
		api.GET("/products/:id", productHandler.GetProduct)
		api.GET("/products/:id/reviews", productHandler.ListReviews)
		api.POST("/products/:id/reviews", authed, productHandler.CreateReview)
		api.POST("/products", authed, admin, productHandler.CreateProduct)
		api.PUT("/products/:id", authed, admin, productHandler.UpdateProduct)
		api.DELETE("/products/:id", authed, admin, productHandler.DeleteProduct)

		api.POST("/orders", authed, orderHandler.CreateOrder)
		api.GET("/orders/myorders", authed, orderHandler.ListMyOrders)
		api.GET("/orders/:id", authed, orderHandler.GetOrder)
		api.GET("/orders", authed, admin, orderHandler.ListOrders)
		api.PUT("/orders/:id/status", authed, admin, orderHandler.UpdateStatus)

		api.POST("/users/register", userHandler.Register)
		api.POST("/users/login", userHandler.Login)

		api.GET("/wishlist", authed, wishlistHandler.GetWishlist)
		api.POST("/wishlist/add", authed, wishlistHandler.AddProduct)
		api.POST("/wishlist/remove", authed, wishlistHandler.RemoveProduct)

		api.GET("/looks", lookHandler.ListLooks)
		api.GET("/looks/:id", lookHandler.GetLook)
		api.POST("/looks", authed, admin, lookHandler.CreateLook)
		api.PUT("/looks/:id", authed, admin, lookHandler.UpdateLook)
		api.DELETE("/looks/:id", authed, admin, lookHandler.DeleteLook)

		api.GET("/testimonials", testimonialHandler.ListTestimonials)
		api.POST("/testimonials", authed, admin, testimonialHandler.CreateTestimonial)
		api.PUT("/testimonials/:id", authed, admin, testimonialHandler.UpdateTestimonial)
		api.DELETE("/testimonials/:id", authed, admin, testimonialHandler.DeleteTestimonial)

		api.GET("/categories", categoryHandler.ListCategories)

		api.POST("/chatbot/query", chatbotHandler.Query)
	}
}
