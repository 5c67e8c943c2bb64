package systemController

import (
	"context"
	_ "embed"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	problemMiddleware "github.com/gmaschi/go-recipe-book-api/internal/controllers/middlewares/problem"
	"github.com/gmaschi/go-recipe-book-api/pkg/tools/parseErrors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const pingTimeout = 2 * time.Second

//go:embed openapi.yaml
var openAPISource []byte

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Controller struct {
	db      Pinger
	openAPI map[string]interface{}
}

func New(db Pinger) (*Controller, error) {
	var document map[string]interface{}
	if err := yaml.Unmarshal(openAPISource, &document); err != nil {
		return nil, errors.Wrap(err, "parse openapi document")
	}

	return &Controller{
		db:      db,
		openAPI: document,
	}, nil
}

// Health answers 200 while the document store is reachable.
func (c *Controller) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), pingTimeout)
	defer cancel()

	if err := c.db.Ping(pingCtx); err != nil {
		zerolog.Ctx(ctx.Request.Context()).Error().Err(err).Msg("health check failed")
		problemMiddleware.Render(ctx, parseErrors.ErrorResponse(http.StatusServiceUnavailable))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// OpenAPI serves the API description as JSON.
func (c *Controller) OpenAPI(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.openAPI)
}
