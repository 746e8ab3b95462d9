// Package client is the cart and checkout core of the travel-booking front
// end. It talks to the REST API under /api/v1 and keeps the local cart view,
// selection and transaction state consistent with the backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"travel-booking/models"
)

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Error   string                `json:"error"`
	Data    json.RawMessage       `json:"data"`
	Meta    models.PaginationMeta `json:"meta"`
}

type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New returns a client for the API rooted at baseURL (for example
// "https://api.example.com/api/v1").
func New(baseURL string, session *Session, opts ...Option) *Client {
	if session == nil {
		session = NewSession()
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    http.DefaultClient,
		session: session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) requireAuth() error {
	if !c.session.LoggedIn() {
		return &Error{Kind: KindAuth, Message: "Please login first"}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	_, err := c.doEnvelope(ctx, method, path, body, out)
	return err
}

func (c *Client) doEnvelope(ctx context.Context, method, path string, body, out any) (*envelope, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindFetch, Message: "Failed to encode request", Err: err}
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, &Error{Kind: KindFetch, Message: "Failed to build request", Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) upload(ctx context.Context, path, field, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return &Error{Kind: KindFetch, Message: "Failed to build upload", Err: err}
	}
	if _, err := io.Copy(part, file); err != nil {
		return &Error{Kind: KindFetch, Message: "Failed to read file", Err: err}
	}
	if err := w.Close(); err != nil {
		return &Error{Kind: KindFetch, Message: "Failed to build upload", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return &Error{Kind: KindFetch, Message: "Failed to build request", Err: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, err = c.send(req, out)
	return err
}

// send performs one request. A 401 clears the session before the AuthError
// is returned.
func (c *Client) send(req *http.Request, out any) (*envelope, error) {
	req.Header.Set("Accept", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, &Error{Kind: KindFetch, Message: "Request cancelled", Err: err}
		}
		return nil, &Error{Kind: KindFetch, Message: "Network error", Err: err}
	}
	defer res.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(res.Body).Decode(&env)

	if res.StatusCode >= 400 || (decodeErr == nil && !env.Success) {
		if res.StatusCode == http.StatusUnauthorized {
			c.session.Clear()
		}
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(res.StatusCode)
		}
		return nil, &Error{Kind: kindForStatus(res.StatusCode), Message: msg, Status: res.StatusCode}
	}
	if decodeErr != nil {
		return nil, &Error{Kind: KindFetch, Message: "Invalid response from server", Status: res.StatusCode, Err: decodeErr}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, &Error{Kind: KindFetch, Message: "Invalid response from server", Status: res.StatusCode, Err: err}
		}
	}
	return &env, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	var res models.LoginResponse
	err := c.do(ctx, http.MethodPost, "/login", models.LoginRequest{Email: email, Password: password}, &res)
	if err != nil {
		return models.User{}, err
	}
	c.session.Set(res.Token, res.User)
	return res.User, nil
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	var res models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/register", req, &res); err != nil {
		return models.User{}, err
	}
	c.session.Set(res.Token, res.User)
	return res.User, nil
}

// Logout always clears the local session, even when the backend call fails.
func (c *Client) Logout(ctx context.Context) {
	if c.session.LoggedIn() {
		_ = c.do(ctx, http.MethodGet, "/logout", nil, nil)
	}
	c.session.Clear()
}

func (c *Client) PaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	if err := c.do(ctx, http.MethodGet, "/payment-methods", nil, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

func escapeID(id string) string {
	return url.PathEscape(strings.TrimSpace(id))
}
