package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/gymlab/internal/asset/application"
	"github.com/davicafu/gymlab/internal/asset/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedHttp "github.com/davicafu/gymlab/internal/shared/infra/inbound/http"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
	sharedUtils "github.com/davicafu/gymlab/internal/shared/infra/utils"
	"github.com/davicafu/gymlab/pkg/utils"
)

type AssetHandler struct {
	service *application.AssetService
}

func NewAssetHandler(service *application.AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

type assetRequest struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name" binding:"required"`
	Code              string  `json:"code" binding:"required"`
	Location          string  `json:"location"`
	Condition         string  `json:"condition"`
	PurchaseDate      string  `json:"purchaseDate" binding:"required"` // YYYY-MM-DD
	Value             float64 `json:"value"`
	Notes             string  `json:"notes"`
	ParamLoggedIdUser int64   `json:"paramLoggedIdUser"`
}

func (r assetRequest) toDomain() (*domain.Asset, error) {
	purchased, err := time.Parse(sharedUtils.DateLayout, r.PurchaseDate)
	if err != nil {
		return nil, errors.New("invalid purchaseDate format, use YYYY-MM-DD")
	}
	return &domain.Asset{
		ID: r.ID, Name: r.Name, Code: r.Code, Location: r.Location, Condition: r.Condition,
		PurchaseDate: purchased, Value: r.Value, Notes: r.Notes,
	}, nil
}

// ListAssets endpoint GET /asset/list
func (h *AssetHandler) ListAssets(c *gin.Context) {
	q := sharedHttp.ParseListQuery(c, domain.SortColumns, sharedQuery.Sort{Field: "name"})
	criteria := sharedDomain.And(
		sharedHttp.StatusFilter(c, ""),
		sharedHttp.SearchFilter(q, domain.SearchColumns, domain.SearchByName),
		sharedHttp.TextFilter(c, "filterByCondition", "condition"),
		sharedHttp.DateRangeFilter(c, "filterByPurchaseDateRange", "purchase_date"),
		sharedHttp.NumberRangeFilter(c, "filterByValueRange", "value"),
	)

	page, err := h.service.ListAssets(c.Request.Context(), criteria, q)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}
	utils.SendList(c, "assets", page.Items, page.TotalRecords)
}

// GetAsset endpoint GET /asset/get/:id
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		utils.SendBadRequest(c, "invalid asset id")
		return
	}
	a, err := h.service.GetAsset(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, a, "OK")
}

// AddAsset endpoint POST /asset/add
func (h *AssetHandler) AddAsset(c *gin.Context) {
	var req assetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	a, err := req.toDomain()
	if err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	created, err := h.service.CreateAsset(c.Request.Context(), a, sharedHttp.Actor(c, req.ParamLoggedIdUser))
	if err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusCreated, created, "Asset created")
}

// UpdateAsset endpoint PUT /asset/update
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	var req assetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	if req.ID <= 0 {
		utils.SendBadRequest(c, "invalid asset id")
		return
	}
	a, err := req.toDomain()
	if err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	updated, err := h.service.UpdateAsset(c.Request.Context(), a, sharedHttp.Actor(c, req.ParamLoggedIdUser))
	if err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, updated, "Asset updated")
}

// DeleteAsset endpoint DELETE /asset/delete/:id
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		utils.SendBadRequest(c, "invalid asset id")
		return
	}
	var req sharedHttp.DeleteRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.service.DeleteAsset(c.Request.Context(), id, sharedHttp.Actor(c, req.ParamLoggedIdUser)); err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, nil, "Asset deleted")
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAssetNotFound):
		utils.SendNotFound(c, err.Error())
	case errors.Is(err, domain.ErrInvalidAsset), errors.Is(err, domain.ErrAssetAlreadyExists):
		utils.SendBadRequest(c, err.Error())
	default:
		utils.SendInternalServerError(c, err.Error())
	}
}
