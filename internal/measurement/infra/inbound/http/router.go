package http

import "github.com/gin-gonic/gin"

func RegisterMeasurementRoutes(r gin.IRoutes, handler *MeasurementHandler) {
	r.GET("/measurement/list", handler.ListMeasurements)
	r.GET("/measurement/get/:id", handler.GetMeasurement)
	r.POST("/measurement/add", handler.AddMeasurement)
	r.PUT("/measurement/update", handler.UpdateMeasurement)
	r.DELETE("/measurement/delete/:id", handler.DeleteMeasurement)
}
