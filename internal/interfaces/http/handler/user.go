package handler

import (
	"github.com/donorlink/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// UserHandler serves public account profiles
type UserHandler struct {
	BaseHandler
	userService *identity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *identity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListNGOs godoc
// @Summary      List NGO accounts
// @Tags         users
// @Produce      json
// @Success      200 {object} map[string][]UserResponse
// @Router       /users/ngos [get]
func (h *UserHandler) ListNGOs(c *gin.Context) {
	ngos, err := h.userService.ListNGOs(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"ngos": ToUserResponses(ngos)})
}

// GetUser godoc
// @Summary      Get an account profile
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} UserEnvelope
// @Failure      404 {object} dto.ErrorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id", "user")
	if !ok {
		return
	}
	user, err := h.userService.GetProfile(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, UserEnvelope{User: ToUserResponse(user)})
}
