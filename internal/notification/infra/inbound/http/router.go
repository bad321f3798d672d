package http

import "github.com/gin-gonic/gin"

func RegisterTemplateRoutes(r gin.IRoutes, handler *TemplateHandler) {
	r.GET("/template/list", handler.ListTemplates)
	r.GET("/template/get/:id", handler.GetTemplate)
	r.POST("/template/add", handler.AddTemplate)
	r.PUT("/template/update", handler.UpdateTemplate)
	r.DELETE("/template/delete/:id", handler.DeleteTemplate)
}

func RegisterNotificationRoutes(r gin.IRoutes, handler *NotificationHandler) {
	r.GET("/notification/list", handler.ListNotifications)
	r.POST("/notification/send", handler.Send)
}
