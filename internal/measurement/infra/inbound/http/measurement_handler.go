package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/gymlab/internal/measurement/application"
	"github.com/davicafu/gymlab/internal/measurement/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedHttp "github.com/davicafu/gymlab/internal/shared/infra/inbound/http"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
	sharedUtils "github.com/davicafu/gymlab/internal/shared/infra/utils"
	"github.com/davicafu/gymlab/pkg/utils"
)

type MeasurementHandler struct {
	service *application.MeasurementService
}

func NewMeasurementHandler(service *application.MeasurementService) *MeasurementHandler {
	return &MeasurementHandler{service: service}
}

type measurementRequest struct {
	ID                int64   `json:"id"`
	ClientID          int64   `json:"clientId" binding:"required"`
	Date              string  `json:"date" binding:"required"` // YYYY-MM-DD
	Weight            float64 `json:"weight" binding:"required"`
	Height            float64 `json:"height"`
	BodyFat           float64 `json:"bodyFat"`
	Waist             float64 `json:"waist"`
	Notes             string  `json:"notes"`
	ParamLoggedIdUser int64   `json:"paramLoggedIdUser"`
}

func (r measurementRequest) toDomain() (*domain.Measurement, error) {
	date, err := time.Parse(sharedUtils.DateLayout, r.Date)
	if err != nil {
		return nil, errors.New("invalid date format, use YYYY-MM-DD")
	}
	return &domain.Measurement{
		ID: r.ID, ClientID: r.ClientID, Date: date, Weight: r.Weight, Height: r.Height,
		BodyFat: r.BodyFat, Waist: r.Waist, Notes: r.Notes,
	}, nil
}

type measurementResponse struct {
	domain.Measurement
	BMI float64 `json:"bmi"`
}

func toResponse(m domain.Measurement) measurementResponse {
	return measurementResponse{Measurement: m, BMI: m.BMI()}
}

// ListMeasurements endpoint GET /measurement/list
func (h *MeasurementHandler) ListMeasurements(c *gin.Context) {
	q := sharedHttp.ParseListQuery(c, domain.SortColumns, sharedQuery.Sort{Field: "m.date", Desc: true})
	criteria := sharedDomain.And(
		sharedHttp.StatusFilter(c, "m.deleted_at"),
		sharedHttp.SearchFilter(q, domain.SearchColumns, domain.SearchByClientNames),
		sharedHttp.IntFilter(c, "filterByClientId", "m.client_id", 0),
		sharedHttp.DateRangeFilter(c, "filterByDateRange", "m.date"),
		sharedHttp.NumberRangeFilter(c, "filterByWeightRange", "m.weight"),
	)

	page, err := h.service.ListMeasurements(c.Request.Context(), criteria, q)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}
	items := make([]measurementResponse, 0, len(page.Items))
	for _, m := range page.Items {
		items = append(items, toResponse(m))
	}
	utils.SendList(c, "measurements", items, page.TotalRecords)
}

// GetMeasurement endpoint GET /measurement/get/:id
func (h *MeasurementHandler) GetMeasurement(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		utils.SendBadRequest(c, "invalid measurement id")
		return
	}
	m, err := h.service.GetMeasurement(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, toResponse(*m), "OK")
}

// AddMeasurement endpoint POST /measurement/add
func (h *MeasurementHandler) AddMeasurement(c *gin.Context) {
	var req measurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	m, err := req.toDomain()
	if err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	created, err := h.service.CreateMeasurement(c.Request.Context(), m, sharedHttp.Actor(c, req.ParamLoggedIdUser))
	if err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusCreated, toResponse(*created), "Measurement created")
}

// UpdateMeasurement endpoint PUT /measurement/update
func (h *MeasurementHandler) UpdateMeasurement(c *gin.Context) {
	var req measurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	if req.ID <= 0 {
		utils.SendBadRequest(c, "invalid measurement id")
		return
	}
	m, err := req.toDomain()
	if err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	updated, err := h.service.UpdateMeasurement(c.Request.Context(), m, sharedHttp.Actor(c, req.ParamLoggedIdUser))
	if err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, toResponse(*updated), "Measurement updated")
}

// DeleteMeasurement endpoint DELETE /measurement/delete/:id
func (h *MeasurementHandler) DeleteMeasurement(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		utils.SendBadRequest(c, "invalid measurement id")
		return
	}
	var req sharedHttp.DeleteRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.service.DeleteMeasurement(c.Request.Context(), id, sharedHttp.Actor(c, req.ParamLoggedIdUser)); err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, nil, "Measurement deleted")
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrMeasurementNotFound):
		utils.SendNotFound(c, err.Error())
	case errors.Is(err, domain.ErrInvalidMeasurement), errors.Is(err, domain.ErrUnknownClient):
		utils.SendBadRequest(c, err.Error())
	default:
		utils.SendInternalServerError(c, err.Error())
	}
}
