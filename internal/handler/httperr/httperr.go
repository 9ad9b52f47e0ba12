package httperr

import (
	"github.com/gin-gonic/gin"
)

// Failure is the outward error body. It mirrors the use case envelope
// (success, errors, message) so transport-level failures read the same
// as rejected commands.
type Failure struct {
	Status  int      `json:"-"`
	Success bool     `json:"success"`
	Errors  []string `json:"errors,omitempty"`
	Message string   `json:"message"`
}

func New(status int, message string, errors ...string) Failure {
	return Failure{Status: status, Message: message, Errors: errors}
}

// Abort writes the failure and stops the handler chain. A non-nil cause
// is kept on the context for the request log.
func Abort(c *gin.Context, f Failure, cause error) {
	if cause != nil {
		_ = c.Error(gin.Error{
			Err:  cause,
			Type: gin.ErrorTypePublic,
			Meta: f,
		})
	}
	c.AbortWithStatusJSON(f.Status, f)
}
