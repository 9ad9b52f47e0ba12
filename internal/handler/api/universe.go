package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"universe-api/internal/domain/universe"
	reqdto "universe-api/internal/handler/dto/request"
	"universe-api/internal/handler/middleware"
	"universe-api/internal/pkg/clock"
	"universe-api/internal/usecase/commands"
	"universe-api/internal/usecase/queries"
)

type UniverseHandler struct {
	universeUseCase commands.UniverseCommands
	universeQueries queries.UniverseQueries
	clock           clock.Clock
}

func NewUniverseHandler(universeUseCase commands.UniverseCommands, universeQueries queries.UniverseQueries, clock clock.Clock) *UniverseHandler {
	return &UniverseHandler{
		universeUseCase: universeUseCase,
		universeQueries: universeQueries,
		clock:           clock,
	}
}

// @Summary Create universe instance
// @Tags universe
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateInstanceRequest true "Instance request"
// @Success 201 {object} shared.Result
// @Failure 400 {object} shared.Result
// @Failure 409 {object} shared.Result
// @Router /universe/instances [post]
func (h *UniverseHandler) CreateInstance(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result := h.universeUseCase.CreateInstance(c.Request.Context(), commands.CreateInstanceCommand{
		Actor:         actor,
		Name:          req.Name,
		Slug:          req.Slug,
		Status:        req.Status,
		Type:          req.Type,
		Tags:          req.Tags,
		Metadata:      req.Metadata,
		TemplateID:    req.TemplateID,
		ParentID:      req.ParentID,
		Configuration: req.Configuration,
		Permissions:   req.Permissions,
		IsPublic:      req.IsPublic,
		CustomFields:  req.CustomFields,
		IssuedAt:      h.clock.Now(),
	})
	respond(c, result, http.StatusCreated)
}

// @Summary Create universe template
// @Tags universe
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateTemplateRequest true "Template request"
// @Success 201 {object} shared.Result
// @Router /universe/templates [post]
func (h *UniverseHandler) CreateTemplate(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result := h.universeUseCase.CreateTemplate(c.Request.Context(), commands.CreateTemplateCommand{
		Actor:         actor,
		Name:          req.Name,
		Slug:          req.Slug,
		Status:        req.Status,
		Type:          req.Type,
		Tags:          req.Tags,
		Metadata:      req.Metadata,
		Configuration: req.Configuration,
		Permissions:   req.Permissions,
		IsPublic:      req.IsPublic,
		CustomFields:  req.CustomFields,
		IssuedAt:      h.clock.Now(),
	})
	respond(c, result, http.StatusCreated)
}

// @Summary Update universe instance
// @Tags universe
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instance ID"
// @Param request body reqdto.UpdateInstanceRequest true "Update request"
// @Success 200 {object} shared.Result
// @Router /universe/instances/{id} [patch]
func (h *UniverseHandler) UpdateInstance(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid instance id"})
		return
	}

	var req reqdto.UpdateInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result := h.universeUseCase.UpdateInstance(c.Request.Context(), commands.UpdateInstanceCommand{
		Actor:         actor,
		TargetID:      id,
		Name:          req.Name,
		Status:        req.Status,
		Type:          req.Type,
		Tags:          req.Tags,
		Metadata:      req.Metadata,
		Configuration: req.Configuration,
		CustomFields:  req.CustomFields,
		IssuedAt:      h.clock.Now(),
	})
	respond(c, result, http.StatusOK)
}

// @Summary Archive universe instance
// @Tags universe
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instance ID"
// @Success 200 {object} shared.Result
// @Router /universe/instances/{id} [delete]
func (h *UniverseHandler) DeleteInstance(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid instance id"})
		return
	}

	result := h.universeUseCase.DeleteInstance(c.Request.Context(), commands.DeleteInstanceCommand{
		Actor:    actor,
		TargetID: id,
		IssuedAt: h.clock.Now(),
	})
	respond(c, result, http.StatusOK)
}

// @Summary Toggle instance sharing
// @Tags universe
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instance ID"
// @Param request body reqdto.ShareInstanceRequest true "Sharing request"
// @Success 200 {object} shared.Result
// @Router /universe/instances/{id}/share [post]
func (h *UniverseHandler) ShareInstance(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid instance id"})
		return
	}

	var req reqdto.ShareInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result := h.universeUseCase.ShareInstance(c.Request.Context(), commands.ShareInstanceCommand{
		Actor:      actor,
		TargetID:   id,
		Enable:     req.Enable,
		MakePublic: req.MakePublic,
		IssuedAt:   h.clock.Now(),
	})
	respond(c, result, http.StatusOK)
}

// @Summary Get universe instance
// @Tags universe
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instance ID"
// @Success 200 {object} queries.InstanceView
// @Failure 404 {object} map[string]string
// @Router /universe/instances/{id} [get]
func (h *UniverseHandler) GetInstance(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid instance id"})
		return
	}

	view, err := h.universeQueries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		if errors.Is(err, queries.ErrViewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Instance not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List instances for the current user
// @Tags universe
// @Produce json
// @Security BearerAuth
// @Param kind query string false "instance or template"
// @Success 200 {array} queries.InstanceListItem
// @Router /universe/instances [get]
func (h *UniverseHandler) ListInstances(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	kind := parseKind(c.Query("kind"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	items, err := h.universeQueries.ListByOwner(c.Request.Context(), actor, kind, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Get a resource through its share token
// @Tags universe
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} queries.InstanceView
// @Failure 404 {object} map[string]string
// @Router /universe/shared/{token} [get]
func (h *UniverseHandler) GetShared(c *gin.Context) {
	token, err := uuid.Parse(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Instance not found"})
		return
	}

	view, err := h.universeQueries.GetByShareToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, queries.ErrViewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Instance not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, view)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func parseKind(s string) universe.Kind {
	if s == string(universe.KindTemplate) {
		return universe.KindTemplate
	}
	return universe.KindInstance
}
