package loggingMiddleware

import (
	"time"

	"github.com/gin-gonic/gin"
	requestIdMiddleware "github.com/gmaschi/go-recipe-book-api/internal/controllers/middlewares/requestid"
	"github.com/rs/zerolog"
)

// LoggingMiddleware stores a request-scoped logger in the request context,
// retrievable with zerolog.Ctx, and logs one line per completed request.
func LoggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		reqLog := log.With().
			Str("request_id", requestIdMiddleware.FromContext(ctx)).
			Logger()
		ctx.Request = ctx.Request.WithContext(reqLog.WithContext(ctx.Request.Context()))

		ctx.Next()

		status := ctx.Writer.Status()
		event := reqLog.Info()
		switch {
		case status >= 500:
			event = reqLog.Error()
		case status >= 400:
			event = reqLog.Warn()
		}

		event.
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Int("size", ctx.Writer.Size()).
			Msg("request completed")
	}
}
