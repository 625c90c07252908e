package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	ViewHandler   *ViewHandler
	RequestLogger gin.HandlerFunc
}

func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	tmpl, err := ParseTemplates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.RequestLogger != nil {
		router.Use(cfg.RequestLogger)
	}
	router.SetHTMLTemplate(tmpl)

	router.GET("/", cfg.ViewHandler.Home)
	router.GET("/admin", cfg.ViewHandler.Admin)
	router.POST("/admin", cfg.ViewHandler.SubmitAdmin)
	router.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	return router, nil
}
