package http

import (
	"github.com/gin-gonic/gin"
	"github.com/ombhayde/tensorg-payment-system/internal/adapter/http/middleware"
	"github.com/ombhayde/tensorg-payment-system/internal/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(ah *AuthHandler, ph *ProductHandler, ch *CheckoutHandler, wh *WebhookHandler, oh *OrderHandler, sess *middleware.Session) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics())

	l := logging.New("http")
	r.Use(middleware.Logging(l))
	r.Use(sess.Resolve())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/auth/google", ah.Login)
	r.GET("/auth/google/callback", ah.Callback)

	// Raw-body route: signature verification happens before any JSON parsing.
	r.POST("/webhook", wh.Handle)

	api := r.Group("/api")
	{
		api.GET("/user", ah.CurrentUser)
		api.POST("/logout", ah.Logout)
		api.GET("/products", ph.List)
		api.POST("/create-checkout-session", ch.Create)
		api.GET("/orders", sess.RequireAdmin(), oh.List)
	}

	return r
}
