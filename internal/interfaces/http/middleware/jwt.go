package middleware

import (
	"net/http"
	"strings"

	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/donorlink/backend/internal/infrastructure/auth"
	"github.com/donorlink/backend/internal/infrastructure/logger"
	"github.com/donorlink/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTUserTypeKey = "jwt_user_type"
	JWTTokenKey    = "jwt_token"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// Logger for middleware logging
	Logger *zap.Logger
}

// JWTAuthMiddleware creates JWT authentication middleware
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{JWTService: jwtService})
}

// JWTAuthMiddlewareWithConfig creates JWT authentication middleware with
// custom config. A missing token answers 401; a token that fails
// validation answers 403.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader(AuthHeaderKey))
		if tokenString == "" {
			abortAuth(c, shared.ErrUnauthorized)
			return
		}

		claims, err := cfg.JWTService.ValidateToken(tokenString)
		if err != nil {
			log.Warn("JWT authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path))
			abortAuth(c, shared.ErrInvalidToken)
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTUserTypeKey, claims.UserType)
		c.Set(JWTTokenKey, tokenString)
		// picked up by the request logger
		c.Set("user_id", claims.UserID)

		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))

		log.Debug("JWT authentication successful",
			zap.String("user_id", claims.UserID),
			zap.String("user_type", claims.UserType))

		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value
func bearerToken(header string) string {
	if !strings.HasPrefix(header, BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
}

func abortAuth(c *gin.Context, err *shared.DomainError) {
	status := http.StatusUnauthorized
	if err.Code == shared.CodeInvalidToken {
		status = http.StatusForbidden
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(err.Message))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetJWTToken retrieves the raw bearer token accepted by the middleware
func GetJWTToken(c *gin.Context) string {
	return c.GetString(JWTTokenKey)
}

// CurrentUserID parses the authenticated user id
func CurrentUserID(c *gin.Context) (uuid.UUID, error) {
	id := GetJWTUserID(c)
	if id == "" {
		return uuid.Nil, shared.ErrUnauthorized
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, shared.ErrInvalidToken
	}
	return parsed, nil
}
