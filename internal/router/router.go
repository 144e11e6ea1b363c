package router

import (
	"net/http"

	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/config"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/core"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/handler"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter configures the Gin engine and the route table.
func SetupRouter(cfg *config.Config, c *core.Core) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())

	// service banner
	r.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "Hyperlocal Community Barter API")
	})

	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ====== API ======
	api := r.Group("/api")

	authLimiter := middleware.NewIPRateLimiter(
		cfg.Security.AuthRatePerSecond, cfg.Security.AuthRateBurst)

	// signup/login do not require a session
	authHandler := handler.NewAuthHandler(c)
	api.POST("/signup", middleware.RateLimit(authLimiter), authHandler.Signup)
	api.POST("/login", middleware.RateLimit(authLimiter), authHandler.Login)

	// discovery is public
	listingHandler := handler.NewListingHandler(c)
	api.GET("/posts", listingHandler.List)

	// everything below requires a valid bearer token
	protected := api.Group("")
	protected.Use(middleware.Auth(c))

	protected.GET("/me", authHandler.Me)
	protected.POST("/logout", authHandler.Logout)
	protected.POST("/posts", listingHandler.Create)

	exportHandler := handler.NewExportHandler(c)
	protected.GET("/export/csv", exportHandler.CSV)
	protected.GET("/export/xlsx", exportHandler.XLSX)

	return r
}
