package routes

import (
	"net/http"

	"fashionstore/controllers"
	"fashionstore/middleware"
	"fashionstore/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth       *controllers.AuthController
	Orders     *controllers.OrderController
	Products   *controllers.ProductController
	Newsletter *controllers.NewsletterController
	Contact    *controllers.ContactController

	Tokens      middleware.TokenParser
	Revocations middleware.RevocationChecker
	Metrics     http.Handler
	Log         *zap.Logger
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics))
	}

	authenticated := middleware.Authenticate(h.Tokens, h.Revocations, h.Log)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	catalogStaff := middleware.RequireRoles(models.RoleAdmin, models.RoleProductManager)

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Auth.Register)
			authGroup.POST("/login", h.Auth.Login)
			authGroup.POST("/logout", authenticated, h.Auth.Logout)
		}

		api.POST("/orders", h.Orders.CreateOrder)
		orders := api.Group("/orders", authenticated, adminOnly)
		{
			orders.GET("", h.Orders.GetOrders)
			orders.GET("/:id", h.Orders.GetOrderByID)
			orders.PATCH("/:id/confirm", h.Orders.ConfirmOrder)
			orders.PATCH("/:id/cancel", h.Orders.CancelOrder)
			orders.PATCH("/:id/ship", h.Orders.ShipOrder)
			orders.PATCH("/:id/deliver", h.Orders.DeliverOrder)
		}

		api.GET("/products", h.Products.GetProducts)
		api.GET("/products/:id", h.Products.GetProductByID)
		products := api.Group("/products", authenticated, catalogStaff)
		{
			products.POST("", h.Products.CreateProduct)
			products.PUT("/:id", h.Products.UpdateProduct)
			products.DELETE("/:id", h.Products.DeleteProduct)
		}

		api.POST("/newsletter", h.Newsletter.Subscribe)
		api.GET("/newsletter", authenticated, adminOnly, h.Newsletter.GetSubscribers)

		api.POST("/contact", h.Contact.SubmitMessage)
		api.GET("/contact", authenticated, adminOnly, h.Contact.GetMessages)
	}
}
