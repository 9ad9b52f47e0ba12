package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reqdto "universe-api/internal/handler/dto/request"
	"universe-api/internal/handler/middleware"
	"universe-api/internal/pkg/clock"
	"universe-api/internal/usecase/commands"
)

type ReportHandler struct {
	reportUseCase commands.ReportCommands
	clock         clock.Clock
}

func NewReportHandler(reportUseCase commands.ReportCommands, clock clock.Clock) *ReportHandler {
	return &ReportHandler{reportUseCase: reportUseCase, clock: clock}
}

// @Summary Generate analytics report
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.GenerateReportRequest true "Report request"
// @Success 201 {object} shared.Result
// @Failure 400 {object} shared.Result
// @Router /reports [post]
func (h *ReportHandler) Generate(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	start, end := req.ParseDates()
	result := h.reportUseCase.GenerateReport(c.Request.Context(), commands.GenerateReportCommand{
		Actor:     actor,
		Type:      req.Type,
		Format:    req.Format,
		StartDate: start,
		EndDate:   end,
		Filters:   req.Filters,
		IssuedAt:  h.clock.Now(),
	})
	respond(c, result, http.StatusCreated)
}
