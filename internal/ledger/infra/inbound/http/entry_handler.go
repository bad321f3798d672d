package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/gymlab/internal/ledger/application"
	"github.com/davicafu/gymlab/internal/ledger/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedHttp "github.com/davicafu/gymlab/internal/shared/infra/inbound/http"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
	sharedUtils "github.com/davicafu/gymlab/internal/shared/infra/utils"
	"github.com/davicafu/gymlab/pkg/utils"
)

// EntryHandler atiende /income/* o /expense/* según su kind.
type EntryHandler struct {
	service *application.LedgerService
	kind    domain.Kind
}

func NewEntryHandler(service *application.LedgerService, kind domain.Kind) *EntryHandler {
	return &EntryHandler{service: service, kind: kind}
}

type entryRequest struct {
	ID                int64   `json:"id"`
	Date              string  `json:"date" binding:"required"` // YYYY-MM-DD
	Amount            float64 `json:"amount" binding:"required"`
	Description       string  `json:"description" binding:"required"`
	Reference         string  `json:"reference"`
	Category          string  `json:"category"`
	PaymentMethod     int     `json:"paymentMethod" binding:"required"`
	ClientID          int64   `json:"clientId"`
	ParamLoggedIdUser int64   `json:"paramLoggedIdUser"`
}

func (r entryRequest) toDomain(kind domain.Kind) (*domain.Entry, error) {
	date, err := time.Parse(sharedUtils.DateLayout, r.Date)
	if err != nil {
		return nil, errors.New("invalid date format, use YYYY-MM-DD")
	}
	return &domain.Entry{
		ID:            r.ID,
		Kind:          kind,
		Date:          date,
		Amount:        r.Amount,
		Description:   r.Description,
		Reference:     r.Reference,
		Category:      r.Category,
		PaymentMethod: r.PaymentMethod,
		ClientID:      r.ClientID,
	}, nil
}

// List endpoint GET /{income|expense}/list
func (h *EntryHandler) List(c *gin.Context) {
	q := sharedHttp.ParseListQuery(c, domain.SortColumns, sharedQuery.Sort{Field: "date", Desc: true})

	filters := []sharedDomain.Criteria{
		sharedHttp.StatusFilter(c, ""),
		sharedHttp.SearchFilter(q, domain.SearchColumns, domain.SearchByDescription),
		sharedHttp.TextFilter(c, "filterByCategory", "category"),
		sharedHttp.IntFilter(c, "filterByPaymentMethod", "payment_method", 0),
		sharedHttp.NumberRangeFilter(c, "filterByAmountRange", "amount"),
		sharedHttp.DateRangeFilter(c, "filterByDateRange", "date"),
	}
	if h.kind == domain.KindIncome {
		filters = append(filters, sharedHttp.IntFilter(c, "filterByClientId", "client_id", 0))
	}

	page, err := h.service.ListEntries(c.Request.Context(), h.kind, sharedDomain.And(filters...), q)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}
	utils.SendList(c, h.kind.Table(), page.Items, page.TotalRecords)
}

// Get endpoint GET /{income|expense}/get/:id
func (h *EntryHandler) Get(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		utils.SendBadRequest(c, "invalid id")
		return
	}
	e, err := h.service.GetEntry(c.Request.Context(), h.kind, id)
	if err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, e, "OK")
}

// Add endpoint POST /{income|expense}/add
func (h *EntryHandler) Add(c *gin.Context) {
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	e, err := req.toDomain(h.kind)
	if err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	created, err := h.service.CreateEntry(c.Request.Context(), e, sharedHttp.Actor(c, req.ParamLoggedIdUser))
	if err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusCreated, created, "Entry created")
}

// Update endpoint PUT /{income|expense}/update
func (h *EntryHandler) Update(c *gin.Context) {
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	if req.ID <= 0 {
		utils.SendBadRequest(c, "invalid id")
		return
	}
	e, err := req.toDomain(h.kind)
	if err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	updated, err := h.service.UpdateEntry(c.Request.Context(), e, sharedHttp.Actor(c, req.ParamLoggedIdUser))
	if err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, updated, "Entry updated")
}

// Delete endpoint DELETE /{income|expense}/delete/:id
func (h *EntryHandler) Delete(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		utils.SendBadRequest(c, "invalid id")
		return
	}
	var req sharedHttp.DeleteRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.service.DeleteEntry(c.Request.Context(), h.kind, id, sharedHttp.Actor(c, req.ParamLoggedIdUser)); err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, nil, "Entry deleted")
}

// ---------------- Reporte ----------------

// ReportHandler expone el balance mensual.
type ReportHandler struct {
	service *application.LedgerService
}

func NewReportHandler(service *application.LedgerService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Balance endpoint GET /report/balance?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ReportHandler) Balance(c *gin.Context) {
	from, errFrom := time.Parse(sharedUtils.DateLayout, c.Query("from"))
	to, errTo := time.Parse(sharedUtils.DateLayout, c.Query("to"))
	if errFrom != nil || errTo != nil {
		utils.SendBadRequest(c, "from and to are required, use YYYY-MM-DD")
		return
	}

	balance, err := h.service.Balance(c.Request.Context(), from, sharedUtils.EndOfDay(to))
	if err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"months": balance}, "OK")
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEntryNotFound):
		utils.SendNotFound(c, err.Error())
	case errors.Is(err, domain.ErrInvalidEntry), errors.Is(err, domain.ErrInvalidPeriod):
		utils.SendBadRequest(c, err.Error())
	default:
		utils.SendInternalServerError(c, err.Error())
	}
}
