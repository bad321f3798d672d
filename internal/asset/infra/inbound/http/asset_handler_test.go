package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/gymlab/internal/asset/application"
	"github.com/davicafu/gymlab/internal/asset/domain"
	assetRepo "github.com/davicafu/gymlab/internal/asset/infra/outbound/db/sqlite"
	"github.com/davicafu/gymlab/internal/mocks"
	sharedSQLite "github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlite"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := sharedSQLite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sharedSQLite.InitOutbox(db))
	require.NoError(t, assetRepo.InitSQLite(db))

	router := gin.New()
	RegisterAssetRoutes(router, NewAssetHandler(
		application.NewAssetService(assetRepo.NewAssetRepoSQLite(db), mocks.NewDummyCache(), zap.NewNop())))
	return router
}

func do(t *testing.T, router *gin.Engine, method, path string, body interface{}) (int, json.RawMessage) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env.Data
}

type assetList struct {
	Assets       []domain.Asset `json:"assets"`
	TotalRecords int            `json:"totalRecords"`
}

func TestAssetHandler_ListFilters(t *testing.T) {
	router := setupRouter(t)

	for _, body := range []gin.H{
		{"name": "Cinta", "code": "CR-01", "purchaseDate": "2023-01-10", "value": 1800},
		{"name": "Bicicleta", "code": "BI-01", "condition": "maintenance", "purchaseDate": "2023-06-01", "value": 600},
		{"name": "Rack", "code": "RK-01", "purchaseDate": "2024-02-15", "value": 900},
	} {
		code, _ := do(t, router, http.MethodPost, "/asset/add", body)
		require.Equal(t, http.StatusCreated, code)
	}

	_, raw := do(t, router, http.MethodGet, "/asset/list?filterByCondition=good&orderBy=value&directionOrderBy=DESC", nil)
	var list assetList
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Equal(t, 2, list.TotalRecords)
	assert.Equal(t, "CR-01", list.Assets[0].Code)

	_, raw = do(t, router, http.MethodGet, "/asset/list?filterByValueRangeMin=500&filterByValueRangeMax=1000&filterByPurchaseDateRangeMin=2023-01-01&filterByPurchaseDateRangeMax=2023-12-31", nil)
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Equal(t, 1, list.TotalRecords)
	assert.Equal(t, "BI-01", list.Assets[0].Code)

	// Solo un extremo: el rango no se aplica.
	_, raw = do(t, router, http.MethodGet, "/asset/list?filterByValueRangeMin=1000", nil)
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Equal(t, 3, list.TotalRecords)
}

func TestAssetHandler_DuplicateCode(t *testing.T) {
	router := setupRouter(t)
	body := gin.H{"name": "Cinta", "code": "CR-01", "purchaseDate": "2023-01-10"}

	code, _ := do(t, router, http.MethodPost, "/asset/add", body)
	require.Equal(t, http.StatusCreated, code)
	code, _ = do(t, router, http.MethodPost, "/asset/add", body)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, router, http.MethodGet, "/asset/get/99", nil)
	assert.Equal(t, http.StatusNotFound, code)
}
