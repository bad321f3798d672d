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

	"github.com/davicafu/gymlab/internal/ledger/application"
	"github.com/davicafu/gymlab/internal/ledger/domain"
	"github.com/davicafu/gymlab/internal/ledger/infra/outbound/db/sqlrepo"
	"github.com/davicafu/gymlab/internal/mocks"
	sharedSQLite "github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlite"
	"github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlq"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sharedSQLite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sharedSQLite.InitOutbox(db))
	require.NoError(t, sqlrepo.InitSQLite(db))

	service := application.NewLedgerService(sqlrepo.NewEntryRepo(db, sqlq.SQLite), nil, mocks.NewDummyCache(), zap.NewNop())
	router := gin.New()
	RegisterLedgerRoutes(router,
		NewEntryHandler(service, domain.KindIncome),
		NewEntryHandler(service, domain.KindExpense),
		NewReportHandler(service))
	return router
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func do(t *testing.T, router *gin.Engine, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestEntryHandler_IncomeFilters(t *testing.T) {
	router := setupRouter(t)
	add := func(date string, amount float64, method int, clientID int64) {
		code, env := do(t, router, http.MethodPost, "/income/add", gin.H{
			"date": date, "amount": amount, "description": "Mensualidad", "category": "cuotas",
			"paymentMethod": method, "clientId": clientID, "paramLoggedIdUser": 1,
		})
		require.Equal(t, http.StatusCreated, code, env.Message)
	}
	add("2024-01-05", 30, domain.PaymentCash, 1)
	add("2024-01-20", 45, domain.PaymentCard, 2)
	add("2024-02-03", 30, domain.PaymentCard, 1)

	code, env := do(t, router, http.MethodGet, "/income/list?filterByPaymentMethod=2&filterByDateRangeMin=2024-01-01&filterByDateRangeMax=2024-01-31", nil)
	require.Equal(t, http.StatusOK, code)
	var data struct {
		Incomes []struct {
			Amount float64 `json:"amount"`
		} `json:"incomes"`
		TotalRecords int `json:"totalRecords"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 1, data.TotalRecords)
	require.Len(t, data.Incomes, 1)
	assert.Equal(t, 45.0, data.Incomes[0].Amount)

	// Sin filtros y con el método "0" se listan todos.
	_, env = do(t, router, http.MethodGet, "/income/list?filterByPaymentMethod=0&filterByClientId=1", nil)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 2, data.TotalRecords)
}

func TestEntryHandler_ExpenseRejectsClient(t *testing.T) {
	router := setupRouter(t)
	code, _ := do(t, router, http.MethodPost, "/expense/add", gin.H{
		"date": "2024-01-05", "amount": 100, "description": "Luz", "paymentMethod": domain.PaymentTransfer, "clientId": 3,
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, router, http.MethodGet, "/expense/get/99", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestReportHandler_Balance(t *testing.T) {
	router := setupRouter(t)
	_, _ = do(t, router, http.MethodPost, "/income/add", gin.H{"date": "2024-03-02", "amount": 100, "description": "Cuota", "paymentMethod": 1})
	_, _ = do(t, router, http.MethodPost, "/expense/add", gin.H{"date": "2024-03-10", "amount": 40, "description": "Agua", "paymentMethod": 3})

	code, env := do(t, router, http.MethodGet, "/report/balance?from=2024-01-01&to=2024-12-31", nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	var data struct {
		Months []domain.MonthlyBalance `json:"months"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Months, 1)
	assert.Equal(t, "2024-03", data.Months[0].Month)
	assert.Equal(t, 60.0, data.Months[0].Balance)

	code, _ = do(t, router, http.MethodGet, "/report/balance?from=2024-12-31&to=2024-01-01", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, router, http.MethodGet, "/report/balance", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
