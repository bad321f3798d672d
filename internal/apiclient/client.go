package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Envelope es el formato de todas las respuestas del backend.
type Envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client habla con el backend REST. Cada petición lee el token del SessionStore.
type Client struct {
	baseURL    string
	store      SessionStore
	httpClient *http.Client
	log        *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, store SessionStore, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		store:      store,
		httpClient: &http.Client{},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Store() SessionStore {
	return c.store
}

// Get hace GET {base}{path}?{rawQuery} y decodifica data en out.
func (c *Client) Get(ctx context.Context, path, rawQuery string, out interface{}) error {
	if rawQuery != "" {
		path += "?" + rawQuery
	}
	_, err := c.do(ctx, http.MethodGet, path, nil, out)
	return err
}

// Post, Put y Delete devuelven el message del sobre.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) (string, error) {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) (string, error) {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, body interface{}) (string, error) {
	return c.do(ctx, http.MethodDelete, path, body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) (string, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	session, err := c.store.Load()
	if err != nil {
		return "", fmt.Errorf("loading session: %w", err)
	}
	if session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", transportError("performing request", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError("reading response", err)
	}
	c.log.Debug("api call", zap.String("method", method), zap.String("path", path), zap.Int("status", resp.StatusCode))

	var env Envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= 400 {
		return env.Message, statusError(resp.StatusCode, env.Message)
	}
	if decodeErr != nil {
		return "", transportError("decoding response", decodeErr)
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return env.Message, transportError("decoding data", err)
		}
	}
	return env.Message, nil
}

// ---------------- Autenticación ----------------

// Login valida las credenciales y guarda token y usuario en el store.
func (c *Client) Login(ctx context.Context, username, password string) (AuthUser, error) {
	var data struct {
		Token string   `json:"token"`
		User  AuthUser `json:"user"`
	}
	if _, err := c.Post(ctx, "/auth/login", map[string]string{"username": username, "password": password}, &data); err != nil {
		return AuthUser{}, err
	}
	if err := c.store.Save(NewSession(data.Token, data.User)); err != nil {
		return AuthUser{}, err
	}
	return data.User, nil
}

// Logout revoca el token en el backend (si se puede) y limpia la sesión local.
func (c *Client) Logout(ctx context.Context) error {
	session, err := c.store.Load()
	if err != nil {
		return err
	}
	if session.Token != "" {
		if _, err := c.Post(ctx, "/auth/logout", nil, nil); err != nil {
			c.log.Warn("Logout request failed, clearing local session anyway", zap.Error(err))
		}
	}
	return c.store.Clear()
}

// LoggedUserID es el paramLoggedIdUser que viaja en las mutaciones.
func (c *Client) LoggedUserID() int64 {
	session, err := c.store.Load()
	if err != nil {
		return 0
	}
	u, _ := session.User()
	return u.ID
}

// DeletePath forma {entity}/delete/{id}.
func DeletePath(endpoint string, id int64) string {
	return endpoint + "/delete/" + strconv.FormatInt(id, 10)
}
