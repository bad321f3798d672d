package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHandler captura la petición y devuelve una respuesta fija.
type testHandler struct {
	method string
	path   string
	query  string
	auth   string
	body   string

	statusCode   int
	responseBody string
}

func (h *testHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.method = r.Method
	h.path = r.URL.Path
	h.query = r.URL.RawQuery
	h.auth = r.Header.Get("Authorization")
	data, _ := io.ReadAll(r.Body)
	h.body = string(data)

	w.Header().Set("Content-Type", "application/json")
	if h.statusCode != 0 {
		w.WriteHeader(h.statusCode)
	}
	_, _ = w.Write([]byte(h.responseBody))
}

func newTestClient(t *testing.T, h http.Handler, store SessionStore) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", store)
}

func TestClient_GetDecodesEnvelopeAndSendsBearer(t *testing.T) {
	h := &testHandler{responseBody: `{"data":{"clients":[{"id":1}],"totalRecords":1},"message":"OK"}`}
	store := NewMemoryStore()
	require.NoError(t, store.Save(Session{Token: "abc"}))
	c := newTestClient(t, h, store)

	var out struct {
		TotalRecords int `json:"totalRecords"`
	}
	require.NoError(t, c.Get(context.Background(), "/client/list", "size=10&page=1", &out))
	assert.Equal(t, 1, out.TotalRecords)
	assert.Equal(t, http.MethodGet, h.method)
	assert.Equal(t, "/client/list", h.path)
	assert.Equal(t, "size=10&page=1", h.query)
	assert.Equal(t, "Bearer abc", h.auth)
}

func TestClient_StatusTaxonomy(t *testing.T) {
	cases := []struct {
		status int
		body   string
		kind   Kind
		title  string
		msg    string
	}{
		{400, `{"data":null,"message":"invalid client"}`, KindClient, "Request error", "invalid client"},
		{408, ``, KindClient, "Request error", genericMessage},
		{502, `{"data":null,"message":""}`, KindServer, "Server error", genericMessage},
		{404, `{"data":null,"message":"not found"}`, KindOther, "Unexpected error", "not found"},
	}
	for _, tc := range cases {
		c := newTestClient(t, &testHandler{statusCode: tc.status, responseBody: tc.body}, NewMemoryStore())
		err := c.Get(context.Background(), "/x/list", "", nil)

		var se *StatusError
		require.ErrorAs(t, err, &se, "status %d", tc.status)
		assert.Equal(t, tc.kind, se.Kind)
		assert.Equal(t, tc.title, se.Title())
		assert.Equal(t, tc.msg, se.Message)
	}
}

func TestClient_AuthFailures(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		c := newTestClient(t, &testHandler{statusCode: status, responseBody: `{"data":null,"message":"nope"}`}, NewMemoryStore())
		assert.ErrorIs(t, c.Get(context.Background(), "/x/list", "", nil), ErrUnauthorized)
	}
}

func TestClient_TransportAndParseFailures(t *testing.T) {
	c := newTestClient(t, &testHandler{responseBody: `<html>`}, NewMemoryStore())
	assert.ErrorIs(t, c.Get(context.Background(), "/x/list", "", nil), ErrTransport)

	dead := New("http://127.0.0.1:1", NewMemoryStore())
	err := dead.Get(context.Background(), "/x/list", "", nil)
	assert.ErrorIs(t, err, ErrTransport)
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestClient_LoginLogout(t *testing.T) {
	mux := http.NewServeMux()
	var loggedOutWith string
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"data":null,"message":"invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":{"token":"tok","user":{"id":4,"username":"ana","role":"admin"}},"message":"ok"}`))
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		loggedOutWith = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data":null,"message":"bye"}`))
	})
	store := NewMemoryStore()
	c := newTestClient(t, mux, store)
	ctx := context.Background()

	_, err := c.Login(ctx, "ana", "bad")
	assert.ErrorIs(t, err, ErrUnauthorized)

	u, err := c.Login(ctx, "ana", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Role)
	assert.Equal(t, int64(4), c.LoggedUserID())

	require.NoError(t, c.Logout(ctx))
	assert.Equal(t, "Bearer tok", loggedOutWith)
	s, _ := store.Load()
	assert.Empty(t, s.Token)

	// Sin sesión no llama al backend y sigue siendo válido.
	require.NoError(t, c.Logout(ctx))
}

func TestFileStore_RoundTripAndClear(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "gymlab", "session.toml"))

	s, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, s.Token)

	require.NoError(t, store.Save(NewSession("tok", AuthUser{ID: 2, Username: "luis"})))
	s, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", s.Token)
	u, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "luis", u.Username)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	s, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, Session{}, s)
}
