package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reqdto "universe-api/internal/handler/dto/request"
	"universe-api/internal/usecase/commands"
)

type AuthHandler struct {
	authUseCase commands.AuthCommands
}

func NewAuthHandler(authUseCase commands.AuthCommands) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase}
}

// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Credentials"
// @Success 200 {object} shared.Result
// @Failure 400 {object} shared.Result
// @Failure 409 {object} shared.Result
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result := h.authUseCase.Login(c.Request.Context(), commands.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	respond(c, result, http.StatusOK)
}
