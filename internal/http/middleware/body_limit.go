package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LimitBodySize caps how much of the request body handlers may read.
func LimitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if maxBytes > 0 && ctx.Request.Body != nil {
			ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxBytes)
		}
		ctx.Next()
	}
}
