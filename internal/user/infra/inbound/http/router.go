package http

import "github.com/gin-gonic/gin"

// RegisterAuthRoutes monta /auth/login (público) y /auth/logout.
func RegisterAuthRoutes(r gin.IRoutes, handler *AuthHandler) {
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/logout", handler.Logout)
}

// RegisterUserRoutes monta /user/*. Se espera r ya protegido por RequireAuth
// y RequireRole(admin).
func RegisterUserRoutes(r gin.IRoutes, handler *UserHandler) {
	r.GET("/user/list", handler.ListUsers)
	r.GET("/user/get/:id", handler.GetUser)
	r.POST("/user/add", handler.AddUser)
	r.PUT("/user/update", handler.UpdateUser)
	r.DELETE("/user/delete/:id", handler.DeleteUser)
}
