package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"garagesale.backend/internal/domain/entities"
	"garagesale.backend/internal/interfaces/http/handlers"
	"garagesale.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	userHandler         *handlers.UserHandler
	itemHandler         *handlers.ItemHandler
	donationHandler     *handlers.DonationHandler
	photoProofHandler   *handlers.PhotoProofHandler
	verificationHandler *handlers.VerificationHandler
	messageHandler      *handlers.MessageHandler
	adminHandler        *handlers.AdminHandler
	authMiddleware      gin.HandlerFunc
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "garagesale-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public + protected)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.POST("/logout", d.authHandler.Logout)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
			auth.POST("/change-password", d.authMiddleware, d.authHandler.ChangePassword)
		}

		// User routes (protected)
		users := v1.Group("/users")
		users.Use(d.authMiddleware)
		{
			users.GET("/me", d.userHandler.GetMe)
			users.PUT("/me", d.userHandler.UpdateMe)
			// admins have their own dashboard
			users.GET("/stats/me", middleware.RequireRole(entities.UserRoleUser), d.userHandler.Stats)
			users.GET("/:id", d.userHandler.GetByID)
		}

		// Item routes (public browse, protected writes)
		items := v1.Group("/items")
		{
			items.GET("", d.itemHandler.List)
			items.GET("/categories", d.itemHandler.Categories)
			items.GET("/conditions", d.itemHandler.Conditions)
			items.GET("/my-items", d.authMiddleware, d.itemHandler.MyItems)
			items.GET("/:id", d.itemHandler.GetByID)
			items.POST("", d.authMiddleware, d.itemHandler.Create)
			items.PUT("/:id", d.authMiddleware, d.itemHandler.Update)
			items.DELETE("/:id", d.authMiddleware, d.itemHandler.Delete)
			items.POST("/:id/images", d.authMiddleware, d.itemHandler.UploadImage)
		}

		// Donation routes (protected)
		donations := v1.Group("/donations")
		donations.Use(d.authMiddleware)
		{
			donations.POST("/items/:itemId/request", middleware.IdempotencyMiddleware(), d.donationHandler.Request)
			donations.GET("/items/:itemId/requests-priority", d.donationHandler.RankedRequests)
			donations.GET("/my-requests", d.donationHandler.MyRequests)
			donations.GET("/my-donations", d.donationHandler.MyDonations)
			donations.GET("/:id", d.donationHandler.GetByID)
			donations.PUT("/:id/accept", d.donationHandler.Accept)
			donations.PUT("/:id/reject", d.donationHandler.Reject)
			donations.DELETE("/:id", d.donationHandler.Cancel)
		}

		// Photo proof routes (protected)
		proofs := v1.Group("/photo-proof")
		proofs.Use(d.authMiddleware)
		{
			proofs.POST("/upload/:donationId", d.photoProofHandler.Upload)
			proofs.GET("/:donationId", d.photoProofHandler.Get)
			proofs.PUT("/verify/:donationId", d.photoProofHandler.Verify)
		}

		// Verification routes (protected)
		verification := v1.Group("/verification")
		verification.Use(d.authMiddleware)
		{
			verification.POST("/submit", d.verificationHandler.Submit)
			verification.GET("/status", d.verificationHandler.Status)
		}

		// Message routes (protected)
		messages := v1.Group("/messages")
		messages.Use(d.authMiddleware)
		{
			messages.POST("", d.messageHandler.Send)
			messages.GET("/conversations", d.messageHandler.Conversations)
			messages.GET("/conversation/:userId", d.messageHandler.Thread)
			messages.GET("/with-item/:itemId", d.messageHandler.ItemThread)
			messages.GET("/unread-count", d.messageHandler.UnreadCount)
			messages.GET("/search", d.messageHandler.Search)
			messages.PUT("/:id/read", d.messageHandler.MarkRead)
			messages.DELETE("/:id", d.messageHandler.Delete)
		}

		// Admin routes (admin role required)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/dashboard", d.adminHandler.Dashboard)
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.PUT("/users/:id/status", d.adminHandler.SetUserStatus)
			admin.DELETE("/users/:id", d.adminHandler.DeleteUser)
			admin.GET("/verifications", d.adminHandler.ListVerifications)
			admin.PUT("/verifications/:userId/action", d.adminHandler.VerificationAction)
		}
	}
}
