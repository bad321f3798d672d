package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	sharedHttp "github.com/davicafu/gymlab/internal/shared/infra/inbound/http"
	"github.com/davicafu/gymlab/internal/user/application"
	"github.com/davicafu/gymlab/pkg/utils"
)

// authRoleKey guarda el rol del token en el contexto de gin.
const authRoleKey = "authRole"

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// RequireAuth exige un token válido y no revocado. Responde 401 en otro caso.
func RequireAuth(auth *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.SendUnauthorized(c, "missing bearer token")
			return
		}
		claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			utils.SendUnauthorized(c, err.Error())
			return
		}
		c.Set(sharedHttp.AuthUserIDKey, claims.UserID)
		c.Set(authRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole responde 403 si el rol del token no está entre roles.
// Debe ir después de RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(authRoleKey)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		utils.SendForbidden(c, "forbidden for role "+role)
	}
}
