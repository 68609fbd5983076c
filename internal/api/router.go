package api

import (
	"context"
	"time"

	"ecotrade/pkg/mq"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	Engine *gin.Engine
}

type Handlers struct {
	Auth              *AuthHandler
	Product           *ProductHandler
	StockNotification *StockNotificationHandler
	Wishlist          *WishlistHandler
	OTP               *OTPHandler
	Newsletter        *NewsletterHandler
	ServiceRequest    *ServiceRequestHandler
}

func NewRouter(h Handlers, jwtSecret string, db *pgxpool.Pool, publisher *mq.Publisher) *Router {
	r := gin.Default()
	r.Use(MetricsMiddleware())

	// Health endpoints
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})
	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}

		if publisher != nil && !publisher.IsConnected() {
			c.JSON(500, gin.H{"status": "mq_not_ready"})
			return
		}

		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/register", h.Auth.Register)
	r.POST("/login", h.Auth.Login)

	r.POST("/otp/send", h.OTP.SendOTP)
	r.POST("/otp/verify", h.OTP.VerifyOTP)
	r.POST("/otp/resend", h.OTP.ResendOTP)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/products/:id", h.Product.GetProduct)
		apiGroup.POST("/stock-notifications/request", h.StockNotification.RequestNotification)
		apiGroup.POST("/newsletter/subscribe", h.Newsletter.Subscribe)
		apiGroup.POST("/service-requests", h.ServiceRequest.Create)
		apiGroup.GET("/service-requests/:id", h.ServiceRequest.Get)
	}

	// Protected
	authGroup := r.Group("/api")
	authGroup.Use(AuthMiddleware(jwtSecret))
	{
		authGroup.GET("/wishlist", h.Wishlist.GetWishlist)
		authGroup.POST("/wishlist/add", h.Wishlist.AddToWishlist)
		authGroup.POST("/wishlist/toggle", h.Wishlist.ToggleWishlist)
		authGroup.DELETE("/wishlist/:productId", h.Wishlist.RemoveFromWishlist)

		authGroup.PUT("/products/:id/stock", h.Product.UpdateStock)
		authGroup.GET("/service-requests", h.ServiceRequest.List)
		authGroup.PATCH("/service-requests/:id/status", h.ServiceRequest.UpdateStatus)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(":" + port)
}
