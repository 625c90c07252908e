package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	PortfolioHandler *PortfolioHandler
	AuthHandler      *AuthHandler
	ErrorMiddleware  gin.HandlerFunc
	RequestLogger    gin.HandlerFunc
	CORS             gin.HandlerFunc
	WriteLimiter     gin.HandlerFunc
	// WriteAuth guards create/update when set.
	WriteAuth gin.HandlerFunc
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	for _, mw := range []gin.HandlerFunc{cfg.RequestLogger, cfg.CORS, cfg.ErrorMiddleware} {
		if mw != nil {
			router.Use(mw)
		}
	}

	guarded := func(h gin.HandlerFunc) []gin.HandlerFunc {
		chain := make([]gin.HandlerFunc, 0, 3)
		if cfg.WriteLimiter != nil {
			chain = append(chain, cfg.WriteLimiter)
		}
		if cfg.WriteAuth != nil {
			chain = append(chain, cfg.WriteAuth)
		}
		return append(chain, h)
	}

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		api.GET("/portfolio", cfg.PortfolioHandler.GetPortfolio)
		api.POST("/portfolio", guarded(cfg.PortfolioHandler.CreatePortfolio)...)
		api.PUT("/portfolio/:id", guarded(cfg.PortfolioHandler.UpdatePortfolio)...)

		if cfg.AuthHandler != nil {
			admin := api.Group("/admin")
			admin.POST("/auth/login", cfg.AuthHandler.Login)
		}
	}

	return router
}
