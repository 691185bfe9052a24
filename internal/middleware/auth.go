package middleware

import (
	"strings"

	"fursa_backend/internal/auth"
	"fursa_backend/internal/logger"
	"fursa_backend/pkg/apperrors"
	"fursa_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(string(contextkeys.UserIDKey), claims.UserID)
	c.Set(string(contextkeys.RoleKey), claims.Role)
	c.Set(string(contextkeys.ClaimsKey), claims)
	c.Request = c.Request.WithContext(logger.WithUser(c.Request.Context(), claims.UserID, claims.Role))
}

// AuthMiddleware - 401 без валидного Bearer-токена
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Access denied. No token provided."))
			return
		}

		claims, err := tokens.ParseToken(tokenStr)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware разбирает токен, если он есть, и никогда не отклоняет запрос
func OptionalAuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, ok := bearerToken(c); ok {
			if claims, err := tokens.ParseToken(tokenStr); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// RequireRoles - ставится после AuthMiddleware
func RequireRoles(roles ...string) gin.HandlerFunc {
	roleSet := make(map[string]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
			return
		}
		if !roleSet[claims.Role] {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
			return
		}
		if !auth.CanPerformAction(claims, permission) {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

// RequireOwner - субъект токена должен совпадать с профилем из параметра пути
func RequireOwner(role, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
			return
		}
		if !auth.IsOwner(claims, role, c.Param(param)) {
			logger.CtxWarn(c.Request.Context(), "Ownership check failed",
				"path", c.Request.URL.Path,
				"target_id", c.Param(param),
			)
			apperrors.HandleError(c, apperrors.ErrNotOwner)
			return
		}
		c.Next()
	}
}

func GetClaims(c *gin.Context) *auth.Claims {
	val, ok := c.Get(string(contextkeys.ClaimsKey))
	if !ok {
		return nil
	}
	claims, _ := val.(*auth.Claims)
	return claims
}

// GetUserID извлекает ID субъекта токена из контекста
func GetUserID(c *gin.Context) string {
	return c.GetString(string(contextkeys.UserIDKey))
}
