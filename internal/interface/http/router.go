package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/exchanger/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(logger),
		corsMiddleware(cfg.HTTP.CORSOrigins),
		errorHandlingMiddleware(logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, logger),
	)

	router.GET("/healthz", handler.Health)

	prefix := "/" + strings.Trim(cfg.HTTP.APIPrefix, "/")
	api := router.Group(prefix)
	{
		api.GET("/units", handler.ListUnits)
		api.GET("/units/convert", handler.ConvertUnits)
		api.POST("/units/convert", handler.ConvertUnits)

		currencyGroup := api.Group("/currency")
		currencyGroup.GET("/rates", handler.Rates)
		currencyGroup.GET("/convert", handler.ConvertCurrency)
		currencyGroup.GET("/currencies", handler.Currencies)
		currencyGroup.GET("/historical", handler.Historical)
		currencyGroup.GET("/test", handler.TestUpstream)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
