package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/gymlab/internal/client/application"
	"github.com/davicafu/gymlab/internal/client/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedHttp "github.com/davicafu/gymlab/internal/shared/infra/inbound/http"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
	sharedUtils "github.com/davicafu/gymlab/internal/shared/infra/utils"
	"github.com/davicafu/gymlab/pkg/utils"
)

// ClientHandler encapsula los endpoints HTTP de socios.
type ClientHandler struct {
	service *application.ClientService
}

func NewClientHandler(service *application.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

type clientRequest struct {
	ID                int64  `json:"id"`
	Names             string `json:"names" binding:"required"`
	LastNames         string `json:"lastNames" binding:"required"`
	IDNumber          string `json:"idNumber" binding:"required"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Gender            string `json:"gender" binding:"required"`
	BirthDate         string `json:"birthDate" binding:"required"` // YYYY-MM-DD
	MembershipEndsAt  string `json:"membershipEndsAt"`             // YYYY-MM-DD, vacío = sin membresía
	ParamLoggedIdUser int64  `json:"paramLoggedIdUser"`
}

func (r clientRequest) toDomain() (*domain.Client, error) {
	birth, err := time.Parse(sharedUtils.DateLayout, r.BirthDate)
	if err != nil {
		return nil, errors.New("invalid birthDate format, use YYYY-MM-DD")
	}
	c := &domain.Client{
		ID:        r.ID,
		Names:     r.Names,
		LastNames: r.LastNames,
		IDNumber:  r.IDNumber,
		Email:     r.Email,
		Phone:     r.Phone,
		Gender:    r.Gender,
		BirthDate: birth,
	}
	if r.MembershipEndsAt != "" {
		ends, err := time.Parse(sharedUtils.DateLayout, r.MembershipEndsAt)
		if err != nil {
			return nil, errors.New("invalid membershipEndsAt format, use YYYY-MM-DD")
		}
		ends = sharedUtils.EndOfDay(ends)
		c.MembershipEndsAt = &ends
	}
	return c, nil
}

// ---------------- Handlers ----------------

// ListClients endpoint GET /client/list
func (h *ClientHandler) ListClients(c *gin.Context) {
	q := sharedHttp.ParseListQuery(c, domain.SortColumns, sharedQuery.Sort{Field: "id", Desc: true})

	criteria := sharedDomain.And(
		sharedHttp.StatusFilter(c, ""),
		sharedHttp.SearchFilter(q, domain.SearchColumns, domain.SearchByNames),
		sharedHttp.TextFilter(c, "filterByGender", "gender"),
		membershipFilter(c, h.service.Now()),
		sharedHttp.DateRangeFilter(c, "filterByBirthDateRange", "birth_date"),
		sharedHttp.DateRangeFilter(c, "filterByRegistrationDateRange", "created_at"),
	)

	page, err := h.service.ListClients(c.Request.Context(), criteria, q)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}
	utils.SendList(c, "clients", page.Items, page.TotalRecords)
}

func membershipFilter(c *gin.Context, now time.Time) sharedDomain.Criteria {
	active, err := strconv.ParseBool(c.Query("filterByMembershipActive"))
	if err != nil {
		return nil
	}
	return domain.MembershipActiveCriteria{Active: active, Now: now}
}

// GetClient endpoint GET /client/get/:id
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		utils.SendBadRequest(c, "invalid client id")
		return
	}

	client, err := h.service.GetClient(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, client, "OK")
}

// AddClient endpoint POST /client/add
func (h *ClientHandler) AddClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	client, err := req.toDomain()
	if err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	created, err := h.service.CreateClient(c.Request.Context(), client, sharedHttp.Actor(c, req.ParamLoggedIdUser))
	if err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusCreated, created, "Client created")
}

// UpdateClient endpoint PUT /client/update
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	if req.ID <= 0 {
		utils.SendBadRequest(c, "invalid client id")
		return
	}
	client, err := req.toDomain()
	if err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	updated, err := h.service.UpdateClient(c.Request.Context(), client, sharedHttp.Actor(c, req.ParamLoggedIdUser))
	if err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, updated, "Client updated")
}

// DeleteClient endpoint DELETE /client/delete/:id
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		utils.SendBadRequest(c, "invalid client id")
		return
	}
	var req sharedHttp.DeleteRequest
	_ = c.ShouldBindJSON(&req) // el body es opcional

	if err := h.service.DeleteClient(c.Request.Context(), id, sharedHttp.Actor(c, req.ParamLoggedIdUser)); err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, nil, "Client deleted")
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrClientNotFound):
		utils.SendNotFound(c, err.Error())
	case errors.Is(err, domain.ErrInvalidClient), errors.Is(err, domain.ErrClientAlreadyExists):
		utils.SendBadRequest(c, err.Error())
	default:
		utils.SendInternalServerError(c, err.Error())
	}
}
