package handler

import (
	"github.com/donorlink/backend/internal/application/identity"
	"github.com/donorlink/backend/internal/domain/account"
	"github.com/donorlink/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register godoc
// @Summary      Register a donor or NGO account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Account details"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.authService.Register(c.Request.Context(), identity.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		UserType: account.UserType(req.UserData.UserType),
		Profile:  req.UserData.Profile(),
		NGO:      req.UserData.NGODetails(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toAuthResponse(result))
}

// Login godoc
// @Summary      User login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toAuthResponse(result))
}

// Verify godoc
// @Summary      Verify the bearer token and return its account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} UserEnvelope
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /auth/verify [get]
func (h *AuthHandler) Verify(c *gin.Context) {
	user, err := h.authService.Verify(c.Request.Context(), middleware.GetJWTToken(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, UserEnvelope{User: ToUserResponse(user)})
}

func toAuthResponse(result *identity.AuthResult) AuthResponse {
	return AuthResponse{
		Token:     result.Token,
		TokenType: result.TokenType,
		ExpiresAt: result.ExpiresAt,
		User:      ToUserResponse(result.User),
	}
}
