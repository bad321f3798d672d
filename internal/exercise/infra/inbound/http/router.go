package http

import "github.com/gin-gonic/gin"

func RegisterExerciseRoutes(r gin.IRoutes, handler *ExerciseHandler) {
	r.GET("/exercise/list", handler.ListExercises)
	r.GET("/exercise/get/:id", handler.GetExercise)
	r.POST("/exercise/add", handler.AddExercise)
	r.PUT("/exercise/update", handler.UpdateExercise)
	r.DELETE("/exercise/delete/:id", handler.DeleteExercise)
}
