package http

import "github.com/gin-gonic/gin"

func RegisterClientRoutes(r gin.IRoutes, handler *ClientHandler) {
	r.GET("/client/list", handler.ListClients)
	r.GET("/client/get/:id", handler.GetClient)
	r.POST("/client/add", handler.AddClient)
	r.PUT("/client/update", handler.UpdateClient)
	r.DELETE("/client/delete/:id", handler.DeleteClient)
}
