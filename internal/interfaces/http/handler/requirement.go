package handler

import (
	"strings"

	requirementapp "github.com/donorlink/backend/internal/application/requirement"
	"github.com/donorlink/backend/internal/domain/requirement"
	"github.com/donorlink/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// statusAll disables the status filter on the public list
const statusAll = "all"

// RequirementHandler handles requirement HTTP requests
type RequirementHandler struct {
	BaseHandler
	requirementService *requirementapp.Service
}

// NewRequirementHandler creates a new requirement handler
func NewRequirementHandler(requirementService *requirementapp.Service) *RequirementHandler {
	return &RequirementHandler{requirementService: requirementService}
}

// Create godoc
// @Summary      Post a requirement
// @Tags         requirements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body RequirementRequest true "Requirement"
// @Success      201 {object} RequirementEnvelope
// @Failure      400 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Router       /requirements [post]
func (h *RequirementHandler) Create(c *gin.Context) {
	actor, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	fields, ok := h.bindFields(c)
	if !ok {
		return
	}

	r, err := h.requirementService.Create(c.Request.Context(), actor, fields)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, RequirementEnvelope{Requirement: ToRequirementResponse(r)})
}

// List godoc
// @Summary      List requirements, most urgent first
// @Tags         requirements
// @Produce      json
// @Param        status   query string false "Status filter, default active, 'all' disables it"
// @Param        category query string false "Category filter"
// @Param        ngo_id   query string false "Owning NGO"
// @Success      200 {object} RequirementListEnvelope
// @Router       /requirements [get]
func (h *RequirementHandler) List(c *gin.Context) {
	filter := requirement.Filter{Category: strings.TrimSpace(c.Query("category"))}

	switch status := strings.TrimSpace(c.DefaultQuery("status", string(requirement.StatusActive))); status {
	case statusAll, "":
	default:
		s := requirement.Status(status)
		if !s.IsValid() {
			h.BadRequest(c, "Invalid status filter")
			return
		}
		filter.Status = &s
	}

	if raw := c.Query("ngo_id"); raw != "" {
		ngoID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid NGO ID format")
			return
		}
		filter.NGOID = &ngoID
	}

	items, err := h.requirementService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, RequirementListEnvelope{Requirements: ToRequirementResponses(items)})
}

// ListByNGO godoc
// @Summary      List an NGO's requirements in every status
// @Tags         requirements
// @Produce      json
// @Param        id path string true "NGO ID"
// @Success      200 {object} RequirementListEnvelope
// @Router       /requirements/ngo/{id} [get]
func (h *RequirementHandler) ListByNGO(c *gin.Context) {
	ngoID, ok := h.ParamUUID(c, "id", "NGO")
	if !ok {
		return
	}
	items, err := h.requirementService.ListByNGO(c.Request.Context(), ngoID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, RequirementListEnvelope{Requirements: ToRequirementResponses(items)})
}

// ListByCategory godoc
// @Summary      List active requirements in a category
// @Tags         requirements
// @Produce      json
// @Param        category path string true "Category"
// @Success      200 {object} RequirementListEnvelope
// @Router       /requirements/category/{category} [get]
func (h *RequirementHandler) ListByCategory(c *gin.Context) {
	items, err := h.requirementService.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, RequirementListEnvelope{Requirements: ToRequirementResponses(items)})
}

// Get godoc
// @Summary      Get a requirement
// @Tags         requirements
// @Produce      json
// @Param        id path string true "Requirement ID"
// @Success      200 {object} RequirementEnvelope
// @Failure      404 {object} dto.ErrorResponse
// @Router       /requirements/{id} [get]
func (h *RequirementHandler) Get(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id", "requirement")
	if !ok {
		return
	}
	r, err := h.requirementService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, RequirementEnvelope{Requirement: ToRequirementResponse(r)})
}

// Update godoc
// @Summary      Patch a requirement
// @Tags         requirements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Requirement ID"
// @Param        request body RequirementRequest true "Fields to change"
// @Success      200 {object} RequirementEnvelope
// @Failure      400 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /requirements/{id} [put]
func (h *RequirementHandler) Update(c *gin.Context) {
	actor, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParamUUID(c, "id", "requirement")
	if !ok {
		return
	}
	fields, ok := h.bindFields(c)
	if !ok {
		return
	}

	r, err := h.requirementService.Update(c.Request.Context(), id, actor, fields)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, RequirementEnvelope{Requirement: ToRequirementResponse(r)})
}

// Delete godoc
// @Summary      Delete a requirement
// @Tags         requirements
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Requirement ID"
// @Success      200 {object} dto.MessageResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /requirements/{id} [delete]
func (h *RequirementHandler) Delete(c *gin.Context) {
	actor, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParamUUID(c, "id", "requirement")
	if !ok {
		return
	}

	if err := h.requirementService.Delete(c.Request.Context(), id, actor); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageResponse{Message: "Requirement deleted successfully"})
}

func (h *RequirementHandler) bindFields(c *gin.Context) (requirement.Fields, bool) {
	var req RequirementRequest
	if !h.BindJSON(c, &req) {
		return requirement.Fields{}, false
	}
	fields, err := req.ToFields()
	if err != nil {
		h.HandleError(c, err)
		return requirement.Fields{}, false
	}
	return fields, true
}
