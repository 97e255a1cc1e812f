package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/albaz/internal/config"
	"github.com/example/albaz/internal/handlers"
	"github.com/example/albaz/internal/middleware"
	"github.com/example/albaz/internal/services"
	"github.com/example/albaz/internal/store"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, s *store.Store, cfg *config.Config) {
	aiService := services.NewAIService(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel)

	authHandler := handlers.NewAuthHandler(s)
	catalogHandler := handlers.NewCatalogHandler(s)
	commerceHandler := handlers.NewCommerceHandler(s)
	adminHandler := handlers.NewAdminHandler(s)
	aiHandler := handlers.NewAIHandler(s, aiService)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)

	// Public catalog and storefront state
	courses := api.Group("/courses")
	courses.Get("/", catalogHandler.ListCourses)
	courses.Get("/:id", catalogHandler.GetCourse)
	courses.Get("/:id/summary", aiHandler.SummarizeCourse)

	api.Get("/settings", adminHandler.GetSettings)
	api.Get("/notifications", adminHandler.ListNotifications)
	api.Post("/assistant/ask", aiHandler.Ask)

	// Session-scoped routes
	protected := api.Group("", middleware.RequireAuth(s))

	protected.Get("/profile", authHandler.GetProfile)
	protected.Put("/profile", authHandler.UpdateProfile)

	protected.Post("/enrollments", catalogHandler.Enroll)
	protected.Post("/courses/:id/lessons/:lessonId/complete", catalogHandler.CompleteLesson)
	protected.Get("/courses/:id/progress", catalogHandler.GetProgress)
	protected.Post("/courses/:id/reviews", catalogHandler.CreateReview)

	cart := protected.Group("/cart")
	cart.Get("/", commerceHandler.GetCart)
	cart.Post("/", commerceHandler.AddToCart)
	cart.Delete("/", commerceHandler.ClearCart)
	cart.Post("/coupon", commerceHandler.ApplyCoupon)
	cart.Delete("/coupon", commerceHandler.RemoveCoupon)
	cart.Delete("/:courseId", commerceHandler.RemoveFromCart)

	checkout := protected.Group("/checkout")
	checkout.Get("/", commerceHandler.GetCheckout)
	checkout.Post("/reset", commerceHandler.ResetCheckout)
	checkout.Get("/subscription", commerceHandler.SubscriptionHandoff)
	checkout.Post("/visa", commerceHandler.PayVisa)
	checkout.Post("/vodafone", commerceHandler.BeginVodafone)
	checkout.Post("/vodafone/contact", commerceHandler.SubmitVodafoneContact)
	checkout.Post("/vodafone/confirm", commerceHandler.ConfirmVodafoneTransfer)
	checkout.Post("/fawry", commerceHandler.PayFawry)
	checkout.Post("/fawry/confirm", commerceHandler.ConfirmFawryPaid)

	// Admin routes
	admin := api.Group("/admin", middleware.RequireAdmin(s))

	admin.Post("/courses", catalogHandler.CreateCourse)
	admin.Put("/courses/:id", catalogHandler.UpdateCourse)
	admin.Delete("/courses/:id", catalogHandler.DeleteCourse)

	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/users/export", adminHandler.ExportUsers)
	admin.Put("/users/:id", adminHandler.UpdateUser)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Post("/users/bulk-delete", adminHandler.BulkDeleteUsers)
	admin.Post("/users/:id/impersonate", adminHandler.Impersonate)
	admin.Post("/users/:id/enrollment", adminHandler.ManageEnrollment)

	admin.Get("/coupons", adminHandler.ListCoupons)
	admin.Post("/coupons", adminHandler.CreateCoupon)
	admin.Delete("/coupons/:id", adminHandler.DeleteCoupon)

	admin.Post("/notifications", adminHandler.CreateNotification)
	admin.Delete("/notifications/:id", adminHandler.DeleteNotification)

	admin.Put("/settings", adminHandler.UpdateSettings)
}
