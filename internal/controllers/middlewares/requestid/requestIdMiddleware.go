package requestIdMiddleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderKey     = "X-Request-ID"
	RequestIDKey  = "request_id"
	maxHeaderSize = 128
)

// RequestIDMiddleware propagates the caller's X-Request-ID or assigns a new one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(HeaderKey)
		if id == "" || len(id) > maxHeaderSize {
			id = uuid.NewString()
		}

		ctx.Request.Header.Set(HeaderKey, id)
		ctx.Writer.Header().Set(HeaderKey, id)
		ctx.Set(RequestIDKey, id)
		ctx.Next()
	}
}

func FromContext(ctx *gin.Context) string {
	return ctx.GetString(RequestIDKey)
}
