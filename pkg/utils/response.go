package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope es el formato común de todas las respuestas del backend:
// { "data": ..., "message": "..." }.
type Envelope struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// SendSuccess envía una respuesta exitosa con un payload de datos.
func SendSuccess(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, Envelope{Data: data, Message: message})
}

// SendError envía una respuesta de error con el mismo sobre y data nula.
func SendError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Envelope{Data: nil, Message: message})
}

// --- Helpers específicos para errores comunes ---

func SendBadRequest(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message)
}

func SendUnauthorized(c *gin.Context, message string) {
	SendError(c, http.StatusUnauthorized, message)
}

func SendForbidden(c *gin.Context, message string) {
	SendError(c, http.StatusForbidden, message)
}

func SendNotFound(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, message)
}

func SendInternalServerError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, message)
}

// SendList envía un listado paginado: data = { <itemsKey>: [...], totalRecords: n }.
func SendList(c *gin.Context, itemsKey string, items interface{}, totalRecords int) {
	SendSuccess(c, http.StatusOK, gin.H{itemsKey: items, "totalRecords": totalRecords}, "OK")
}
