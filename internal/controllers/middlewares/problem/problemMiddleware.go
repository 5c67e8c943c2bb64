package problemMiddleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
	requestIdMiddleware "github.com/gmaschi/go-recipe-book-api/internal/controllers/middlewares/requestid"
	"github.com/gmaschi/go-recipe-book-api/pkg/tools/parseErrors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// ProblemMiddleware turns panics and errors attached with ctx.Error into a 500
// problem response. The error text is logged, never returned to the client.
func ProblemMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				zerolog.Ctx(ctx.Request.Context()).Error().
					Str("panic", fmt.Sprint(rec)).
					Bytes("stack", debug.Stack()).
					Msg("recovered from panic")
				renderInternalError(ctx)
			}
		}()

		ctx.Next()

		errs := ctx.Errors.ByType(gin.ErrorTypePrivate)
		if len(errs) == 0 {
			return
		}
		log := zerolog.Ctx(ctx.Request.Context())
		for _, err := range errs {
			log.Error().Err(err.Err).
				Str("method", ctx.Request.Method).
				Str("path", requestPath(ctx.Request)).
				Msg("request failed")
		}
		renderInternalError(ctx)
	}
}

// Render writes problem as application/problem+json and aborts the chain.
func Render(ctx *gin.Context, problem parseErrors.Problem) {
	problem.Instance = ctx.Request.Method + " " + requestPath(ctx.Request)
	problem.RequestID = requestIdMiddleware.FromContext(ctx)
	if sc := trace.SpanContextFromContext(ctx.Request.Context()); sc.HasTraceID() {
		problem.TraceID = sc.TraceID().String()
	}

	ctx.Header("Content-Type", parseErrors.ContentType)
	ctx.AbortWithStatusJSON(problem.Status, problem)
}

// ValidationFailed renders a 400 problem for a binding error read from source.
func ValidationFailed(ctx *gin.Context, err error, source string) {
	zerolog.Ctx(ctx.Request.Context()).Warn().Err(err).
		Str("source", source).
		Msg("validation failed")
	Render(ctx, parseErrors.ValidationResponse(err, source))
}

func renderInternalError(ctx *gin.Context) {
	if ctx.Writer.Written() {
		ctx.Abort()
		return
	}
	Render(ctx, parseErrors.ErrorResponse(http.StatusInternalServerError))
}

// requestPath is the path as sent by the client, before any version rewrite.
func requestPath(r *http.Request) string {
	if r.RequestURI != "" {
		path, _, _ := strings.Cut(r.RequestURI, "?")
		return path
	}
	return r.URL.Path
}
