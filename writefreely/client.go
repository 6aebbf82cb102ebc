package writefreely

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client represents a session against a WriteFreely instance. It holds the
// instance base URL and, once authenticated, an access token.
//
// A Client is an immutable value: state-changing calls such as Authenticate
// and Logout return a new Client rather than mutating the receiver. Entities
// fetched through a Client keep a reference to the exact Client that produced
// them, so handles created before a login or logout are unaffected by it.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Auth selects an authentication method for Client.Authenticate.
type Auth interface {
	auth()
}

// TokenAuth authenticates with an existing access token. No network round
// trip is performed; the token is stored as-is.
type TokenAuth string

func (TokenAuth) auth() {}

// LoginAuth authenticates with a username and password, exchanging them for
// an access token via the login endpoint.
type LoginAuth struct {
	Username string
	Password string
}

func (LoginAuth) auth() {}

// NewClient creates a new unauthenticated client for the given instance URL.
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, &URLError{Base: baseURL}
	}
	baseURL = strings.TrimRight(baseURL, "/")

	client := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// clone returns a copy of the client for snapshot semantics.
func (c *Client) clone() *Client {
	cp := *c
	return &cp
}

// BaseURL returns the instance base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Token returns the current access token, if any.
func (c *Client) Token() (string, bool) {
	return c.token, c.token != ""
}

// IsAuthenticated reports whether the client carries an access token.
func (c *Client) IsAuthenticated() bool {
	return c.token != ""
}

type loginRequest struct {
	Alias string `json:"alias"`
	Pass  string `json:"pass"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// Authenticate authenticates against the instance and returns a new Client
// carrying the resulting token. The receiver is left unchanged.
//
// With TokenAuth the token is stored directly. With LoginAuth the credentials
// are exchanged via POST /auth/login; a rejected pair yields
// ErrAuthentication, any other request failure is returned as-is.
func (c *Client) Authenticate(ctx context.Context, auth Auth) (*Client, error) {
	switch auth := auth.(type) {
	case TokenAuth:
		next := c.clone()
		next.token = string(auth)
		return next, nil
	case LoginAuth:
		login, err := apiPost[loginResponse](ctx, c, "/auth/login", loginRequest{
			Alias: auth.Username,
			Pass:  auth.Password,
		})
		if err != nil {
			var reqErr *RequestError
			if errors.As(err, &reqErr) && reqErr.IsUnauthorized() {
				return nil, ErrAuthentication
			}
			return nil, err
		}

		next := c.clone()
		next.token = login.AccessToken
		return next, nil
	default:
		return nil, ErrUsage
	}
}

// Logout invalidates the current session on the server and returns a new
// Client without a token. Calling it on an unauthenticated client fails with
// ErrLoggedOut and performs no network call.
func (c *Client) Logout(ctx context.Context) (*Client, error) {
	if !c.IsAuthenticated() {
		return nil, ErrLoggedOut
	}

	if err := c.apiDelete(ctx, "/auth/me", nil); err != nil {
		return nil, err
	}

	next := c.clone()
	next.token = ""
	return next, nil
}

// User returns a handler for user-scoped methods. The handler prefetches the
// authenticated user's info; a failed prefetch is logged and swallowed so the
// handler always constructs.
func (c *Client) User(ctx context.Context) (*UserHandler, error) {
	if !c.IsAuthenticated() {
		return nil, ErrLoggedOut
	}
	return newUserHandler(ctx, c), nil
}

// Posts returns a handler for post methods that do not reference a fetched entity.
func (c *Client) Posts() *PostHandler {
	return &PostHandler{client: c}
}

// Collections returns a handler for collection methods that do not reference a fetched entity.
func (c *Client) Collections() *CollectionHandler {
	return &CollectionHandler{client: c}
}
