package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// AuthUserIDKey es la clave del contexto de gin donde el middleware de
// autenticación deja el id del usuario del token.
const AuthUserIDKey = "authUserID"

// Actor devuelve quién hace el cambio: paramLoggedIdUser si viene en el body,
// si no el usuario autenticado.
func Actor(c *gin.Context, paramLoggedIdUser int64) int64 {
	if paramLoggedIdUser > 0 {
		return paramLoggedIdUser
	}
	return c.GetInt64(AuthUserIDKey)
}

// ParseID lee el parámetro :id de la ruta.
func ParseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// DeleteRequest es el body de DELETE /{entity}/delete/:id.
type DeleteRequest struct {
	ParamLoggedIdUser int64 `json:"paramLoggedIdUser"`
}
