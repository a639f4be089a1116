package router

import (
	"net/http"
	"net/url"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	docs "github.com/ledgerline/backend/api"
	"github.com/ledgerline/backend/internal/controllers/healthz"
	"github.com/ledgerline/backend/internal/controllers/root"
	v1 "github.com/ledgerline/backend/internal/controllers/v1"
	"github.com/ledgerline/backend/internal/controllers/version"
	"github.com/ledgerline/backend/internal/money"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time, see the ldflags of the release build.
var buildVersion = "0.0.0"

type options struct {
	corsOrigins []string
	pprof       bool
	formatter   *money.Formatter
	version     string
}

// Option configures the router.
type Option func(*options)

// WithCORSOrigins allows cross-origin requests from the given origins.
func WithCORSOrigins(origins []string) Option {
	return func(o *options) {
		o.corsOrigins = origins
	}
}

// WithPprof enables the pprof profiling endpoints.
func WithPprof(enabled bool) Option {
	return func(o *options) {
		o.pprof = enabled
	}
}

// WithFormatter sets the formatter used for amounts in responses.
func WithFormatter(f money.Formatter) Option {
	return func(o *options) {
		o.formatter = &f
	}
}

// WithVersion overrides the version reported by the API.
func WithVersion(version string) Option {
	return func(o *options) {
		o.version = version
	}
}

func newOptions(opts []Option) options {
	o := options{version: buildVersion}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Config creates the gin engine with all middlewares. The returned
// teardown function unregisters the Prometheus metrics and must be
// called when the engine is not used anymore.
func Config(url *url.URL, opts ...Option) (*gin.Engine, func(), error) {
	o := newOptions(opts)

	formatter := o.formatter
	if formatter == nil {
		f, err := money.NewFormatter("USD", "en-US")
		if err != nil {
			return nil, func() {}, err
		}
		formatter = &f
	}

	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.Use(FormatterMiddleware(*formatter))
	r.Use(MetricsMiddleware())
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error": "this HTTP method is not allowed for the endpoint you called",
		})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "there is no resource at this path",
		})
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	if len(o.corsOrigins) > 0 {
		log.Debug().Strs("CORS Allowed Origins", o.corsOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     o.corsOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", v1.PassphraseHeader},
			ExposeHeaders:    []string{"Content-Disposition", "X-Request-Id"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(_, _, _ string, _ int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", o.version).Msg("Router")

	docs.SwaggerInfo.Host = url.Host
	docs.SwaggerInfo.BasePath = url.Path
	docs.SwaggerInfo.Title = "Ledgerline"
	docs.SwaggerInfo.Version = o.version
	docs.SwaggerInfo.Description = "The backend for Ledgerline, a household budget for bills, incomes, insurance and savings goals."

	err := registerPrometheusMetrics()
	if err != nil {
		return nil, func() {}, err
	}

	return r, func() { unregisterPrometheusMetrics() }, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in
// Separating this from Config() allows us to attach it to different
// paths for different use cases, e.g. the standalone version.
func AttachRoutes(group *gin.RouterGroup, opts ...Option) {
	o := newOptions(opts)

	root.RegisterRoutes(group)
	version.RegisterRoutes(group.Group("/version"), o.version)
	healthz.RegisterRoutes(group.Group("/healthz"))

	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pprof performance profiles
	if o.pprof {
		pprof.RouteRegister(group, "debug/pprof")
	}

	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1.RegisterRoutes(group.Group("/v1"), o.version)
}
