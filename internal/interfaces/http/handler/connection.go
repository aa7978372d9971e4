package handler

import (
	"context"

	"github.com/donorlink/backend/internal/application/connection"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ConnectionHandler handles donor to NGO links
type ConnectionHandler struct {
	BaseHandler
	connectionService *connection.Service
}

// NewConnectionHandler creates a new connection handler
func NewConnectionHandler(connectionService *connection.Service) *ConnectionHandler {
	return &ConnectionHandler{connectionService: connectionService}
}

// Connect godoc
// @Summary      Connect the calling donor with an NGO
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        ngoId path string true "NGO ID"
// @Success      200 {object} ConnectedNGOsResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /connections/{ngoId} [post]
func (h *ConnectionHandler) Connect(c *gin.Context) {
	h.mutate(c, h.connectionService.Connect)
}

// Disconnect godoc
// @Summary      Remove the link between the calling donor and an NGO
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        ngoId path string true "NGO ID"
// @Success      200 {object} ConnectedNGOsResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /connections/{ngoId} [delete]
func (h *ConnectionHandler) Disconnect(c *gin.Context) {
	h.mutate(c, h.connectionService.Disconnect)
}

// List godoc
// @Summary      List the caller's connections
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} ConnectionsResponse
// @Router       /connections [get]
func (h *ConnectionHandler) List(c *gin.Context) {
	actor, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	users, err := h.connectionService.ListForUser(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ConnectionsResponse{Connections: ToUserResponses(users)})
}

type connectionOp func(ctx context.Context, donorID, ngoID uuid.UUID) ([]uuid.UUID, error)

func (h *ConnectionHandler) mutate(c *gin.Context, op connectionOp) {
	actor, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	ngoID, ok := h.ParamUUID(c, "ngoId", "NGO")
	if !ok {
		return
	}

	ids, err := op(c.Request.Context(), actor, ngoID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	h.Success(c, ConnectedNGOsResponse{ConnectedNGOs: ids})
}
