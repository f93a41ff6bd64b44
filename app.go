// @title           Lookup API
// @version         1.0
// @description     Server-side lookup endpoints with multi-provider fallback: currency rates, domain WHOIS, hosting/geolocation, WordPress detection and domain authority.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https
package main

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sitemetrics/lookup_api/config"
	_ "github.com/sitemetrics/lookup_api/docs"
	"github.com/sitemetrics/lookup_api/handlers"
	"github.com/sitemetrics/lookup_api/pkg/dnsx"
	"github.com/sitemetrics/lookup_api/pkg/httpx"
	"github.com/sitemetrics/lookup_api/pkg/lookup/authority"
	"github.com/sitemetrics/lookup_api/pkg/lookup/currency"
	"github.com/sitemetrics/lookup_api/pkg/lookup/geo"
	"github.com/sitemetrics/lookup_api/pkg/lookup/whois"
	"github.com/sitemetrics/lookup_api/pkg/lookup/wordpress"
)

// App encapsulates all the components of the application.
type App struct {
	Router              *gin.Engine
	CurrencyHandlers    *handlers.CurrencyHandlers
	DomainIntelHandlers *handlers.DomainIntelHandlers
	WebAnalysisHandlers *handlers.WebAnalysisHandlers
	HealthHandler       *handlers.HealthHandler

	cfg  config.Config
	mmdb *geo.MMDB
}

// NewApp wires the shared HTTP client, the DNS layer, the per-family
// resolution services and the handler groups.
func NewApp(cfg config.Config, logger *slog.Logger) (*App, error) {
	client := httpx.New()
	resolver := dnsx.NewResolver(cfg.Providers.DoHEndpoints, client, logger)

	mmdb, err := geo.OpenMMDB(cfg.Geo.CityDBPath, cfg.Geo.ASNDBPath, logger)
	if err != nil {
		// The local database is a degraded tier, not a hard dependency.
		logger.Warn("local GeoIP databases unavailable", "error", err)
		mmdb = nil
	}

	currencySvc := currency.NewService(cfg.Providers, client, logger)
	whoisSvc := whois.NewService(cfg.Providers, client, resolver, logger)
	geoSvc := geo.NewService(cfg.Providers, client, mmdb, logger)
	authoritySvc := authority.NewService(cfg.Providers, client, logger)
	detector := wordpress.NewDetector(client, logger)

	app := &App{
		Router:              gin.Default(),
		CurrencyHandlers:    handlers.NewCurrencyHandlers(currencySvc, logger),
		DomainIntelHandlers: handlers.NewDomainIntelHandlers(whoisSvc, geoSvc, resolver, client, logger),
		WebAnalysisHandlers: handlers.NewWebAnalysisHandlers(detector, authoritySvc, logger),
		HealthHandler:       handlers.NewHealthHandler(),
		cfg:                 cfg,
		mmdb:                mmdb,
	}

	app.setupRoutes()
	return app, nil
}

// setupRoutes defines all the application routes.
func (app *App) setupRoutes() {
	app.Router.GET("/api/v1/health", app.HealthHandler.HealthCheckHandler)

	v1 := app.Router.Group("/api/v1")
	if app.cfg.RateLimit.Enabled {
		v1.Use(handlers.RateLimit(app.cfg.RateLimit.RPS, app.cfg.RateLimit.Burst))
	}
	{
		v1.GET("/convert", app.CurrencyHandlers.ConvertHandler)
		v1.GET("/whois", app.DomainIntelHandlers.WhoisHandler)
		v1.GET("/hosting", app.DomainIntelHandlers.HostingHandler)
		v1.GET("/wordpress", app.WebAnalysisHandlers.WordPressHandler)
		v1.GET("/authority", app.WebAnalysisHandlers.AuthorityHandler)
	}

	app.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
}

// Close releases resources held by the application.
func (app *App) Close() {
	app.mmdb.Close()
}
