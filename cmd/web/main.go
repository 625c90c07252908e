package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/adapters/apiclient"
	httpAdapter "github.com/khoahotran/portfolio/adapters/http"
	"github.com/khoahotran/portfolio/adapters/web"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("FATAL: cannot load config: " + err.Error())
	}

	log := logger.NewZapLogger(cfg.App.Env)
	defer log.Sync()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var opts []apiclient.Option
	if cfg.Web.APIToken != "" {
		opts = append(opts, apiclient.WithToken(cfg.Web.APIToken))
	}
	client := apiclient.New(cfg.Web.APIBaseURL, cfg.Web.Timeout, opts...)

	router, err := web.NewRouter(web.RouterConfig{
		ViewHandler:   web.NewViewHandler(client, log),
		RequestLogger: httpAdapter.RequestLogger(log),
	})
	if err != nil {
		log.Fatal("cannot parse templates", err)
	}

	log.Info("Web running", zap.String("port", cfg.Web.Port), zap.String("api", cfg.Web.APIBaseURL))
	if err := router.Run(":" + cfg.Web.Port); err != nil {
		log.Fatal("Cannot run web server", err)
	}
}
