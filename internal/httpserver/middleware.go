package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	usersvc "foodexpress/internal/service/user"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-Id"
	userIDKey       = "userID"
)

// requestLogger logs one line per request and tags it with a request id.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(requestIDHeader, reqID)

		c.Next()

		fields := []zap.Field{
			zap.String("request_id", reqID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if id, ok := c.Get(userIDKey); ok {
			fields = append(fields, zap.Any("user_id", id))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		logger.Info("http request", fields...)
	}
}

type tokenVerifier interface {
	Authenticate(token string) (int64, error)
}

// authMiddleware verifies the bearer token and stores the user id on the context.
func authMiddleware(verifier tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "token not provided"})
			return
		}
		scheme, token, _ := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !strings.EqualFold(scheme, "Bearer") || token == "" {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"msg": usersvc.ErrTokenInvalid.Error()})
			return
		}
		userID, err := verifier.Authenticate(token)
		if err != nil {
			status := http.StatusUnprocessableEntity
			if errors.Is(err, usersvc.ErrTokenExpired) {
				status = http.StatusUnauthorized
			}
			c.AbortWithStatusJSON(status, gin.H{"msg": err.Error()})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}
