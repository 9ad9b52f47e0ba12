package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	reqdto "universe-api/internal/handler/dto/request"
	"universe-api/internal/handler/middleware"
	"universe-api/internal/pkg/clock"
	"universe-api/internal/usecase/commands"
	"universe-api/internal/usecase/queries"
	"universe-api/internal/usecase/shared"
)

type CampaignHandler struct {
	campaignUseCase commands.CampaignCommands
	campaignQueries queries.CampaignQueries
	clock           clock.Clock
}

func NewCampaignHandler(campaignUseCase commands.CampaignCommands, campaignQueries queries.CampaignQueries, clock clock.Clock) *CampaignHandler {
	return &CampaignHandler{
		campaignUseCase: campaignUseCase,
		campaignQueries: campaignQueries,
		clock:           clock,
	}
}

// @Summary Send campaign
// @Description Start delivery now, schedule it, or run a test send
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Param request body reqdto.SendCampaignRequest true "Send request"
// @Success 200 {object} shared.Result
// @Failure 400 {object} shared.Result
// @Failure 409 {object} shared.Result
// @Router /campaigns/{id}/send [post]
func (h *CampaignHandler) Send(c *gin.Context) {
	actor, id, req, ok := h.bindLifecycle(c)
	if !ok {
		return
	}

	var body reqdto.SendCampaignRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result := h.campaignUseCase.Send(c.Request.Context(), commands.SendCampaignCommand{
		Actor:           actor,
		CampaignID:      id,
		SendImmediately: body.SendImmediately,
		ScheduledAt:     body.ScheduledAt,
		TestMode:        body.TestMode,
		TestEmails:      body.TestEmails,
		IssuedAt:        req.IssuedAt,
	})
	respond(c, result, http.StatusOK)
}

// @Summary Schedule campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Param request body reqdto.ScheduleCampaignRequest true "Schedule request"
// @Success 200 {object} shared.Result
// @Router /campaigns/{id}/schedule [post]
func (h *CampaignHandler) Schedule(c *gin.Context) {
	actor, id, req, ok := h.bindLifecycle(c)
	if !ok {
		return
	}

	var body reqdto.ScheduleCampaignRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result := h.campaignUseCase.Schedule(c.Request.Context(), commands.ScheduleCampaignCommand{
		Actor:       actor,
		CampaignID:  id,
		ScheduledAt: body.ScheduledAt,
		IssuedAt:    req.IssuedAt,
	})
	respond(c, result, http.StatusOK)
}

// @Summary Pause campaign
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 200 {object} shared.Result
// @Router /campaigns/{id}/pause [post]
func (h *CampaignHandler) Pause(c *gin.Context) {
	h.lifecycle(c, h.campaignUseCase.Pause)
}

// @Summary Resume campaign
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 200 {object} shared.Result
// @Router /campaigns/{id}/resume [post]
func (h *CampaignHandler) Resume(c *gin.Context) {
	h.lifecycle(c, h.campaignUseCase.Resume)
}

// @Summary Cancel campaign
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 200 {object} shared.Result
// @Router /campaigns/{id}/cancel [post]
func (h *CampaignHandler) Cancel(c *gin.Context) {
	h.lifecycle(c, h.campaignUseCase.Cancel)
}

// @Summary Mark campaign delivery as complete
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 200 {object} shared.Result
// @Router /campaigns/{id}/complete [post]
func (h *CampaignHandler) Complete(c *gin.Context) {
	h.lifecycle(c, h.campaignUseCase.Complete)
}

// @Summary Campaign execution status
// @Description Current status plus the capability flags for UI actions
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 200 {object} queries.ExecutionStatusView
// @Failure 404 {object} map[string]string
// @Router /campaigns/{id}/execution-status [get]
func (h *CampaignHandler) ExecutionStatus(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign id"})
		return
	}

	view, err := h.campaignQueries.ExecutionStatus(c.Request.Context(), actor, id)
	if err != nil {
		if errors.Is(err, queries.ErrViewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CampaignHandler) lifecycle(c *gin.Context, run func(ctx context.Context, cmd commands.LifecycleCampaignCommand) *shared.Result) {
	_, _, cmd, ok := h.bindLifecycle(c)
	if !ok {
		return
	}
	respond(c, run(c.Request.Context(), cmd), http.StatusOK)
}

func (h *CampaignHandler) bindLifecycle(c *gin.Context) (shared.Actor, int64, commands.LifecycleCampaignCommand, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return shared.Actor{}, 0, commands.LifecycleCampaignCommand{}, false
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign id"})
		return shared.Actor{}, 0, commands.LifecycleCampaignCommand{}, false
	}

	return actor, id, commands.LifecycleCampaignCommand{
		Actor:      actor,
		CampaignID: id,
		IssuedAt:   h.clock.Now(),
	}, true
}
