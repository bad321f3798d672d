package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	clientRepo "github.com/davicafu/gymlab/internal/client/infra/outbound/db/sqlite"
	"github.com/davicafu/gymlab/internal/measurement/application"
	measurementRepo "github.com/davicafu/gymlab/internal/measurement/infra/outbound/db/sqlite"
	sharedSQLite "github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlite"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := sharedSQLite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sharedSQLite.InitOutbox(db))
	require.NoError(t, clientRepo.InitSQLite(db))
	require.NoError(t, measurementRepo.InitSQLite(db))

	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO clients (names, last_names, id_number, gender, birth_date, created_at, updated_at)
		VALUES ('Ana', 'Ruiz', 'A-1', 'F', ?, ?, ?)`, now, now, now)
	require.NoError(t, err)

	router := gin.New()
	RegisterMeasurementRoutes(router, NewMeasurementHandler(
		application.NewMeasurementService(measurementRepo.NewMeasurementRepoSQLite(db), zap.NewNop())))
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

func TestMeasurementHandler_AddListDelete(t *testing.T) {
	router := setupRouter(t)

	code, raw := do(t, router, http.MethodPost, "/measurement/add", gin.H{"clientId": 1, "date": "2024-03-01", "weight": 70, "height": 175})
	require.Equal(t, http.StatusCreated, code)
	var created struct {
		ID         int64   `json:"id"`
		ClientName string  `json:"clientName"`
		BMI        float64 `json:"bmi"`
	}
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "Ana Ruiz", created.ClientName)
	assert.Equal(t, 22.9, created.BMI)

	code, _ = do(t, router, http.MethodPost, "/measurement/add", gin.H{"clientId": 40, "date": "2024-03-01", "weight": 70})
	assert.Equal(t, http.StatusBadRequest, code)

	_, raw = do(t, router, http.MethodGet, "/measurement/list?filterByWeightRangeMin=60&filterByWeightRangeMax=75&filterByDateRangeMin=2024-03-01&filterByDateRangeMax=2024-03-01", nil)
	var data struct {
		Measurements []json.RawMessage `json:"measurements"`
		TotalRecords int               `json:"totalRecords"`
	}
	require.NoError(t, json.Unmarshal(raw, &data))
	assert.Equal(t, 1, data.TotalRecords)

	code, _ = do(t, router, http.MethodDelete, "/measurement/delete/1", gin.H{"paramLoggedIdUser": 3})
	require.Equal(t, http.StatusOK, code)

	_, raw = do(t, router, http.MethodGet, "/measurement/list?filterByStatus=Inactivos", nil)
	require.NoError(t, json.Unmarshal(raw, &data))
	assert.Equal(t, 1, data.TotalRecords)

	_, raw = do(t, router, http.MethodGet, "/measurement/list", nil)
	require.NoError(t, json.Unmarshal(raw, &data))
	assert.Equal(t, 0, data.TotalRecords)
}
