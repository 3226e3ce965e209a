package handlers

import (
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		zap.L().Error("panic recovered", zap.String("route", route), zap.Any("panic", r))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	fields := []zap.Field{
		zap.String("route", route),
		zap.Int("status", status),
		zap.String("error", message),
	}
	if status >= http.StatusInternalServerError {
		zap.L().Error("returning error", fields...)
	} else {
		zap.L().Info("returning error", fields...)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// truncate cuts s to at most max runes.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
