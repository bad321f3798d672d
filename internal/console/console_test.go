package console

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/gymlab/internal/apiclient"
	"github.com/davicafu/gymlab/internal/client/application"
	clientHttp "github.com/davicafu/gymlab/internal/client/infra/inbound/http"
	clientRepo "github.com/davicafu/gymlab/internal/client/infra/outbound/db/sqlite"
	lq "github.com/davicafu/gymlab/internal/listquery"
	"github.com/davicafu/gymlab/internal/mocks"
	sharedSQLite "github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlite"
)

// newBackend levanta el módulo de clientes real sobre SQLite en memoria.
func newBackend(t *testing.T) *apiclient.Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sharedSQLite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sharedSQLite.InitOutbox(db))
	require.NoError(t, clientRepo.InitSQLite(db))

	service := application.NewClientService(clientRepo.NewClientRepoSQLite(db), mocks.NewDummyCache(), zap.NewNop())
	router := gin.New()
	clientHttp.RegisterClientRoutes(router, clientHttp.NewClientHandler(service))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	store := apiclient.NewMemoryStore()
	require.NoError(t, store.Save(apiclient.NewSession("token", apiclient.AuthUser{ID: 1, Username: "admin"})))
	return apiclient.New(srv.URL, store)
}

func seedClients(t *testing.T, api *apiclient.Client, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		_, err := api.Post(context.Background(), "/client/add", map[string]interface{}{
			"names": fmt.Sprintf("Socio %02d", i), "lastNames": "Test", "idNumber": fmt.Sprintf("ID-%02d", i),
			"gender": "F", "birthDate": "1990-01-01", "paramLoggedIdUser": 1,
		}, nil)
		require.NoError(t, err)
	}
}

func TestConsole_ListAndDeleteLastItemCorrectsPage(t *testing.T) {
	ctx := context.Background()
	api := newBackend(t)
	seedClients(t, api, 11)

	ctl := lq.New(Clients(), api)
	ctl.ChangeSize(5)
	ctl.ChangeOrderBy("names") // DESC → ASC
	ctl.ChangePage(3)

	res := ctl.Settle(ctx)
	require.True(t, res.OK, "%v", res.Err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 11, res.TotalRecords)
	assert.Equal(t, "Socio 11", res.Items[0].Names)

	ctl.SetActiveEditingID(res.Items[0].ID)
	_, after, err := Delete(ctx, api, ctl, res.Items[0].ID)
	require.NoError(t, err)

	assert.True(t, after.OK)
	assert.Equal(t, 10, after.TotalRecords)
	assert.Equal(t, 2, ctl.Snapshot().Page)
	assert.Len(t, ctl.Items(), 5)
	assert.Zero(t, ctl.ActiveEditingID())
}

func TestConsole_SearchAndStatusFilter(t *testing.T) {
	ctx := context.Background()
	api := newBackend(t)
	seedClients(t, api, 3)

	ctl := lq.New(Clients(), api)
	ctl.ChangeSearchType(2)
	ctl.ChangeSearchTerm("ID-02")
	res := ctl.Fetch(ctx)
	require.True(t, res.OK, "%v", res.Err)
	require.Len(t, res.Items, 1)

	_, _, err := Delete(ctx, api, ctl, res.Items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, ctl.Items())

	ctl.ChangeFilters(func(f *ClientFilters) { f.Status = lq.StatusInactive })
	res = ctl.Fetch(ctx)
	require.True(t, res.OK)
	assert.Len(t, res.Items, 1)

	ctl.ClearAllFilters()
	res = ctl.Fetch(ctx)
	require.True(t, res.OK)
	assert.Equal(t, 2, res.TotalRecords)
}

func TestConsole_BackendErrorsAreClassified(t *testing.T) {
	api := newBackend(t)

	_, err := api.Delete(context.Background(), apiclient.DeletePath("/client", 999), nil)
	var se *apiclient.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 404, se.Status)
}
