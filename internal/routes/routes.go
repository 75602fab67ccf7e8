package routes

import (
	"beautymart_back_end/internal/handlers/product"
	ret "beautymart_back_end/internal/handlers/returns"
	"beautymart_back_end/internal/handlers/user"
	"beautymart_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// Auth
	auth := api.Group("/auth")
	{
		auth.POST("/register", user.Register)
		auth.POST("/login", middleware.LoginRateLimit(), user.Login)
		auth.POST("/refresh", user.RefreshAccessToken)
		auth.POST("/logout", middleware.AuthRequired(), user.Logout)
		auth.GET("/me", middleware.AuthRequired(), user.Me)

		// OAuth web (goth) + flux code mobile
		auth.GET("/google/url", user.GetGoogleAuthURL)
		auth.POST("/google/token", user.ExchangeGoogleCode)
		auth.GET("/:provider", user.BeginAuth)
		auth.GET("/:provider/callback", user.CallbackAuth)
	}

	// Commandes du client (lignes éligibles au retour)
	orders := api.Group("/orders", middleware.AuthRequired())
	{
		orders.GET("/me", user.GetMyOrders)
		orders.GET("/:id", user.GetOrderByID)
	}

	// Catalogue
	products := api.Group("/products")
	{
		products.GET("/search", product.SearchProducts)
		products.GET("/:id", product.GetProduct)

		admin := products.Group("", middleware.AuthRequired(), middleware.RequireAdmin())
		{
			admin.POST("", product.CreateProduct)
			admin.PUT("/:id", product.UpdateProduct)
			admin.DELETE("/:id", product.DeleteProduct)
		}
	}

	// Retours / échanges
	returns := api.Group("/returns", middleware.AuthRequired())
	{
		returns.POST("", middleware.SubmitReturnRateLimit(), ret.SubmitReturn)
		returns.GET("/me", ret.GetMyReturns)
		returns.GET("/:id", ret.GetReturnByID)
		returns.POST("/:id/photos", ret.UploadReturnPhotos)
		returns.GET("/:id/photos", ret.GetReturnPhotoURLs)
		returns.GET("/:id/label", ret.DownloadReturnLabel)

		admin := returns.Group("", middleware.RequireAdmin())
		{
			admin.GET("", ret.GetAllReturns)
			admin.GET("/search", ret.SearchAllReturns)
			admin.PATCH("/:id/status", ret.UpdateReturnStatus)
			admin.GET("/analytics", ret.GetReasonAnalytics)
			admin.GET("/queue/ws", ret.ReturnsQueueWebSocket)
		}
	}
}
