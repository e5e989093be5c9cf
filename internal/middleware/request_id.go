package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"clamood/console/internal/gateway"
)

const requestIDHeader = gateway.RequestIDHeader

// RequestID tags each console request and forwards the id to the API calls
// it makes. An incoming id is kept only if it is a UUID, so arbitrary header
// values never reach the API.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		if id, err := uuid.Parse(c.GetHeader(requestIDHeader)); err == nil {
			requestID = id.String()
		}

		c.Set(requestIDHeader, requestID)
		c.Request = c.Request.WithContext(gateway.WithRequestID(c.Request.Context(), requestID))
		c.Writer.Header().Set(requestIDHeader, requestID)

		c.Next()
	}
}
