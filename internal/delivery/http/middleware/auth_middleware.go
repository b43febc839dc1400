package middleware

import (
	"net/http"
	"strings"

	"vericv-backend/internal/delivery/http/response"
	"vericv-backend/internal/domain"
	"vericv-backend/pkg/auth"
	"vericv-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

const authCookieName = "auth_token"

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware verifies the session token and loads the user it names.
// Roles always come from the database, never from the token.
func AuthMiddleware(tokens *auth.TokenService, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			security.DefaultLogger().Log(c.Request.Context(), security.SecurityEvent{
				Event:     security.EventInvalidToken,
				IP:        c.ClientIP(),
				UserAgent: c.GetHeader("User-Agent"),
				RequestID: c.GetString(string(domain.KeyRequestID)),
			})
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		var user *domain.User
		if claims.UserID != nil {
			user, err = authUC.GetCurrentUser(c.Request.Context(), *claims.UserID)
		} else {
			user, err = authUC.GetUserByEmail(c.Request.Context(), claims.Email())
		}
		if err != nil || user == nil || !strings.EqualFold(user.Email, claims.Email()) {
			response.Error(c, http.StatusUnauthorized, "User not found", nil)
			c.Abort()
			return
		}
		if !user.IsActive {
			response.Error(c, http.StatusUnauthorized, "Account is disabled", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUserEmail), user.Email)
		c.Set(string(domain.KeyUserRoles), user.Roles)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated user has role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, _ := c.Get(string(domain.KeyUserRoles))
		list, _ := roles.([]string)
		for _, r := range list {
			if r == role {
				c.Next()
				return
			}
		}
		response.Error(c, http.StatusForbidden, "Insufficient permissions", nil)
		c.Abort()
	}
}

// CurrentActor returns the authenticated caller set by AuthMiddleware.
func CurrentActor(c *gin.Context) (domain.Actor, bool) {
	id, ok := c.Get(string(domain.KeyUserID))
	if !ok {
		return domain.Actor{}, false
	}
	userID, ok := id.(int64)
	if !ok {
		return domain.Actor{}, false
	}
	roles, _ := c.Get(string(domain.KeyUserRoles))
	list, _ := roles.([]string)
	return domain.Actor{UserID: userID, Roles: list}, true
}
