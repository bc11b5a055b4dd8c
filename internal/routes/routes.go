package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/yaqeen/internal/config"
	"github.com/example/yaqeen/internal/handlers"
	"github.com/example/yaqeen/internal/middleware"
	"github.com/example/yaqeen/internal/models"
	"github.com/example/yaqeen/internal/services"
)

// Register wires every API route onto the app.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, email *services.EmailService) {
	authHandler := handlers.NewAuthHandler(db, cfg, email)
	resetHandler := handlers.NewPasswordResetHandler(db, email)
	orderHandler := handlers.NewOrderHandler(db, email)
	productHandler := handlers.NewProductHandler(db)
	tagHandler := handlers.NewTagHandler(db)
	adminHandler := handlers.NewAdminHandler(db)
	userHandler := handlers.NewUserHandler(db)
	messageHandler := handlers.NewMessageHandler(db, email)

	requireAuth := middleware.Auth(cfg, db)
	optionalAuth := middleware.OptionalAuth(cfg, db)
	staffOnly := middleware.RequireRole(models.RoleAdmin, models.RoleSuperadmin)
	superadminOnly := middleware.RequireRole(models.RoleSuperadmin)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/verify", requireAuth, authHandler.Verify)
	auth.Post("/change-password", requireAuth, authHandler.ChangePassword)
	auth.Post("/forgot-password", resetHandler.ForgotPassword)
	auth.Post("/resend-otp", resetHandler.ResendOTP)
	auth.Post("/reset-password", resetHandler.ResetPassword)

	// Fixed-path order routes must come before the :orderNumber param route.
	orders := api.Group("/orders")
	orders.Post("/", optionalAuth, orderHandler.CreateOrder)
	orders.Get("/admin", requireAuth, staffOnly, orderHandler.ListAllOrders)
	orders.Get("/my/orders", requireAuth, orderHandler.MyOrders)
	orders.Get("/:orderNumber", requireAuth, orderHandler.GetOrder)
	orders.Put("/:orderNumber/status", requireAuth, staffOnly, orderHandler.UpdateOrderStatus)

	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/name/:name", productHandler.GetProductByName)
	products.Get("/category/:name", productHandler.ListByCategory)
	products.Get("/collection/:name", productHandler.ListByCollection)
	products.Get("/:id", productHandler.GetProduct)
	products.Post("/", requireAuth, staffOnly, productHandler.CreateProduct)
	products.Put("/:id", requireAuth, staffOnly, productHandler.UpdateProduct)
	products.Delete("/:id", requireAuth, staffOnly, productHandler.DeleteProduct)

	tags := api.Group("/tags")
	tags.Get("/categories", tagHandler.ListCategories)
	tags.Get("/collections", tagHandler.ListCollections)
	tags.Get("/name/:name", tagHandler.GetTag)
	tags.Post("/", requireAuth, staffOnly, tagHandler.CreateTag)
	tags.Post("/sale", requireAuth, staffOnly, tagHandler.SetTagSale)
	tags.Delete("/name/:name", requireAuth, staffOnly, tagHandler.DeleteTag)

	admins := api.Group("/admins", requireAuth, superadminOnly)
	admins.Get("/", adminHandler.ListAdmins)
	admins.Post("/", adminHandler.CreateAdmin)
	admins.Put("/:id", adminHandler.UpdateAdmin)
	admins.Delete("/:id", adminHandler.DeleteAdmin)

	users := api.Group("/users")
	users.Get("/me", requireAuth, userHandler.GetProfile)
	users.Put("/me", requireAuth, userHandler.UpdateProfile)
	users.Get("/", requireAuth, superadminOnly, userHandler.ListUsers)
	users.Delete("/:id", requireAuth, superadminOnly, userHandler.DeleteUser)

	messages := api.Group("/messages")
	messages.Post("/", messageHandler.CreateMessage)
	messages.Get("/", requireAuth, staffOnly, messageHandler.ListMessages)
	messages.Get("/:email", requireAuth, staffOnly, messageHandler.ListUserMessages)
}
