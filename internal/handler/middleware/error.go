package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"universe-api/internal/handler/httperr"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		// Search backward through the error stack
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]

			if err.IsType(gin.ErrorTypePublic) {
				if f, ok := err.Meta.(httperr.Failure); ok {
					c.JSON(f.Status, f)
					return
				}
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		f := httperr.New(http.StatusInternalServerError, "internal server error")
		c.JSON(f.Status, f)
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic", "error", err, "path", c.Request.URL.Path)

				f := httperr.New(http.StatusInternalServerError, "internal server error")
				c.JSON(f.Status, f)
				c.Abort()
			}
		}()
		c.Next()
	}
}
