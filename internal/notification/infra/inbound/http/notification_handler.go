package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/gymlab/internal/notification/application"
	"github.com/davicafu/gymlab/internal/notification/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedHttp "github.com/davicafu/gymlab/internal/shared/infra/inbound/http"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
	"github.com/davicafu/gymlab/pkg/utils"
)

type NotificationHandler struct {
	service *application.NotificationService
}

func NewNotificationHandler(service *application.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

type sendRequest struct {
	TemplateID        int64 `json:"templateId" binding:"required"`
	ClientID          int64 `json:"clientId" binding:"required"`
	ParamLoggedIdUser int64 `json:"paramLoggedIdUser"`
}

// Send endpoint POST /notification/send
func (h *NotificationHandler) Send(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	n, err := h.service.Send(c.Request.Context(), req.TemplateID, req.ClientID, sharedHttp.Actor(c, req.ParamLoggedIdUser))
	if err != nil {
		// El intento fallido queda registrado; el proveedor es un fallo del servidor.
		if n != nil {
			utils.SendError(c, http.StatusBadGateway, err.Error())
			return
		}
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusCreated, n, "Notification "+n.Status)
}

// ListNotifications endpoint GET /notification/list
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	q := sharedHttp.ParseListQuery(c, domain.NotificationSortColumns, sharedQuery.Sort{Field: "created_at", Desc: true})
	criteria := sharedDomain.And(
		sharedHttp.IntFilter(c, "filterByClientId", "client_id", 0),
		sharedHttp.TextFilter(c, "filterByChannel", "channel"),
		sharedHttp.TextFilter(c, "filterByDeliveryStatus", "status"),
	)

	page, err := h.service.ListNotifications(c.Request.Context(), criteria, q)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}
	utils.SendList(c, "notifications", page.Items, page.TotalRecords)
}
