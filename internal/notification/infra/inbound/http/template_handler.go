package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	clientDomain "github.com/davicafu/gymlab/internal/client/domain"
	"github.com/davicafu/gymlab/internal/notification/application"
	"github.com/davicafu/gymlab/internal/notification/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedHttp "github.com/davicafu/gymlab/internal/shared/infra/inbound/http"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
	"github.com/davicafu/gymlab/pkg/utils"
)

type TemplateHandler struct {
	service *application.TemplateService
}

func NewTemplateHandler(service *application.TemplateService) *TemplateHandler {
	return &TemplateHandler{service: service}
}

type templateRequest struct {
	ID                int64  `json:"id"`
	Name              string `json:"name" binding:"required"`
	Channel           string `json:"channel"`
	Subject           string `json:"subject"`
	Body              string `json:"body" binding:"required"`
	ParamLoggedIdUser int64  `json:"paramLoggedIdUser"`
}

func (r templateRequest) toDomain() *domain.Template {
	return &domain.Template{ID: r.ID, Name: r.Name, Channel: r.Channel, Subject: r.Subject, Body: r.Body}
}

// ListTemplates endpoint GET /template/list
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	q := sharedHttp.ParseListQuery(c, domain.SortColumns, sharedQuery.Sort{Field: "name"})
	criteria := sharedDomain.And(
		sharedHttp.StatusFilter(c, ""),
		sharedHttp.SearchFilter(q, domain.SearchColumns, domain.SearchByName),
		sharedHttp.TextFilter(c, "filterByChannel", "channel"),
	)

	page, err := h.service.ListTemplates(c.Request.Context(), criteria, q)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}
	utils.SendList(c, "templates", page.Items, page.TotalRecords)
}

// GetTemplate endpoint GET /template/get/:id
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		utils.SendBadRequest(c, "invalid template id")
		return
	}
	t, err := h.service.GetTemplate(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, t, "OK")
}

// AddTemplate endpoint POST /template/add
func (h *TemplateHandler) AddTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	created, err := h.service.CreateTemplate(c.Request.Context(), req.toDomain(), sharedHttp.Actor(c, req.ParamLoggedIdUser))
	if err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusCreated, created, "Template created")
}

// UpdateTemplate endpoint PUT /template/update
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	if req.ID <= 0 {
		utils.SendBadRequest(c, "invalid template id")
		return
	}
	updated, err := h.service.UpdateTemplate(c.Request.Context(), req.toDomain(), sharedHttp.Actor(c, req.ParamLoggedIdUser))
	if err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, updated, "Template updated")
}

// DeleteTemplate endpoint DELETE /template/delete/:id
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		utils.SendBadRequest(c, "invalid template id")
		return
	}
	var req sharedHttp.DeleteRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.service.DeleteTemplate(c.Request.Context(), id, sharedHttp.Actor(c, req.ParamLoggedIdUser)); err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, nil, "Template deleted")
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrTemplateNotFound), errors.Is(err, clientDomain.ErrClientNotFound):
		utils.SendNotFound(c, err.Error())
	case errors.Is(err, domain.ErrInvalidTemplate), errors.Is(err, domain.ErrTemplateAlreadyExists),
		errors.Is(err, domain.ErrNoRecipient):
		utils.SendBadRequest(c, err.Error())
	default:
		utils.SendInternalServerError(c, err.Error())
	}
}
