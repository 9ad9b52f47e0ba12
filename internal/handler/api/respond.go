package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"universe-api/internal/usecase/shared"
)

// respond writes the use-case envelope with the status its kind implies.
// successStatus lets creation endpoints answer 201 instead of 200.
func respond(c *gin.Context, result *shared.Result, successStatus int) {
	switch result.Kind {
	case shared.KindSuccess:
		c.JSON(successStatus, result)
	case shared.KindInvalid:
		c.JSON(http.StatusBadRequest, result)
	case shared.KindNotFound:
		c.JSON(http.StatusNotFound, result)
	case shared.KindBusinessRule:
		c.JSON(http.StatusConflict, result)
	default:
		c.JSON(http.StatusInternalServerError, result)
	}
}
