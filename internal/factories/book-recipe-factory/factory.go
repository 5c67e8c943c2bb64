package bookRecipeFactory

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	loggingMiddleware "github.com/gmaschi/go-recipe-book-api/internal/controllers/middlewares/logging"
	problemMiddleware "github.com/gmaschi/go-recipe-book-api/internal/controllers/middlewares/problem"
	requestIdMiddleware "github.com/gmaschi/go-recipe-book-api/internal/controllers/middlewares/requestid"
	versionMiddleware "github.com/gmaschi/go-recipe-book-api/internal/controllers/middlewares/version"
	recipeController "github.com/gmaschi/go-recipe-book-api/internal/controllers/recipe"
	systemController "github.com/gmaschi/go-recipe-book-api/internal/controllers/system"
	"github.com/gmaschi/go-recipe-book-api/internal/services/cache"
	db "github.com/gmaschi/go-recipe-book-api/internal/services/datastore/postgresql/recipes/document"
	"github.com/gmaschi/go-recipe-book-api/pkg/config/env"
	"github.com/gmaschi/go-recipe-book-api/pkg/metrics"
	"github.com/gmaschi/go-recipe-book-api/pkg/tools/validators"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	apiRoot      = "/api"
	recipesPath  = "recipes"
	readTimeout  = 10 * time.Second
	writeTimeout = 30 * time.Second
)

type (
	Factory struct {
		config             env.Config
		store              db.Store
		cache              cache.Cache
		log                zerolog.Logger
		metrics            *metrics.Metrics
		bookRecipesHandler bookRecipesHandler
		Router             *gin.Engine
	}

	bookRecipesHandler struct {
		recipeController *recipeController.Controller
		systemController *systemController.Controller
	}

	Option func(*Factory)
)

// WithCache puts backend in front of recipe reads by id. Without it every
// read goes to the store.
func WithCache(backend cache.Cache) Option {
	return func(f *Factory) {
		f.cache = backend
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(f *Factory) {
		f.log = log
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(f *Factory) {
		if m != nil {
			f.metrics = m
		}
	}
}

func New(config env.Config, store db.Store, opts ...Option) (*Factory, error) {
	factory := &Factory{
		config: config,
		store:  store,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.metrics == nil {
		factory.metrics = metrics.New()
	}

	if err := validators.RegisterBindings(); err != nil {
		return nil, errors.Wrap(err, "register validators")
	}

	recipes := cache.NewRecipes(factory.cache,
		cache.WithTTL(config.CacheTTL),
		cache.WithLogger(factory.log),
		cache.WithObserver(factory.metrics),
	)
	system, err := systemController.New(store)
	if err != nil {
		return nil, err
	}
	factory.bookRecipesHandler = bookRecipesHandler{
		recipeController: recipeController.New(store, recipes),
		systemController: system,
	}

	router := gin.New()
	router.Use(
		requestIdMiddleware.RequestIDMiddleware(),
		loggingMiddleware.LoggingMiddleware(factory.log),
		factory.metrics.Middleware(),
		problemMiddleware.ProblemMiddleware(),
	)
	factory.setupRoutes(router)

	factory.Router = router
	return factory, nil
}

func (f *Factory) setupRoutes(router *gin.Engine) {
	router.NoRoute(func(ctx *gin.Context) {
		ctx.AbortWithStatus(http.StatusNotFound)
	})

	router.GET("/healthz", f.bookRecipesHandler.systemController.Health)
	router.GET("/metrics", gin.WrapH(f.metrics.Handler()))
	router.GET("/openapi/v1.json", f.bookRecipesHandler.systemController.OpenAPI)

	recipes := router.Group(apiRoot+"/:"+versionMiddleware.ParamKey+"/"+recipesPath, versionMiddleware.VersionMiddleware())
	{
		recipes.POST("", f.bookRecipesHandler.recipeController.Create)
		recipes.POST("/", f.bookRecipesHandler.recipeController.Create)
		recipes.GET("", f.bookRecipesHandler.recipeController.List)
		recipes.GET("/:id", f.bookRecipesHandler.recipeController.Recipe)
		recipes.PUT("/:id", f.bookRecipesHandler.recipeController.Update)
		recipes.DELETE("/:id", f.bookRecipesHandler.recipeController.Delete)
	}
}

// ServeHTTP maps unversioned recipe paths onto the versioned routes, using the
// version from the request headers, and reports the supported versions on
// every response.
func (f *Factory) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	versionMiddleware.ReportSupported(w.Header())
	f.Router.ServeHTTP(w, versionMiddleware.Rewrite(r, apiRoot, recipesPath))
}

// Start serves HTTP on address until ctx is cancelled, then drains in-flight
// requests for at most the configured shutdown timeout.
func (f *Factory) Start(ctx context.Context, address string) error {
	server := &http.Server{
		Addr:              address,
		Handler:           otelhttp.NewHandler(f, f.config.ServiceName),
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		f.log.Info().Str("address", address).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "http server")
	case <-ctx.Done():
	}

	f.log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.config.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown http server")
	}
	return nil
}
