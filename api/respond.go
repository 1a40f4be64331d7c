package api

import (
	"errors"
	"net/http"
	"time"

	"smash/pdf"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// statusFor maps pdf errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pdf.ErrFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, pdf.ErrNotPDF),
		errors.Is(err, pdf.ErrInvalidPreset),
		errors.Is(err, pdf.ErrInvalidMode),
		errors.Is(err, pdf.ErrInvalidPageRange),
		errors.Is(err, pdf.ErrEmptyPassword),
		errors.Is(err, pdf.ErrTooFewInputs),
		errors.Is(err, pdf.ErrOutputDirMissing),
		errors.Is(err, pdf.ErrOutputRequired),
		errors.Is(err, pdf.ErrOutputIsInput),
		errors.Is(err, pdf.ErrWrongPassword):
		return http.StatusBadRequest
	case errors.Is(err, pdf.ErrToolNotFound):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respond writes result as JSON, or err as {"error": msg}.
func respond(c *gin.Context, config *Config, result any, err error) {
	if err == nil {
		c.JSON(http.StatusOK, result)
		return
	}

	status := statusFor(err)
	errorMsg := err.Error()
	if len(errorMsg) > MaxErrorMessageLength {
		errorMsg = errorMsg[:MaxErrorMessageLength] + "..."
	}
	if status >= http.StatusInternalServerError {
		config.Logger.WithError(err).WithField("path", c.FullPath()).Error("PDF operation error")
	}
	c.JSON(status, gin.H{"error": errorMsg})
}

// requestLogger is gin's access log written through logrus.
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}).Info("request")
	}
}
