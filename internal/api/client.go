package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"campus-borrow/internal/models"
	"campus-borrow/internal/session"
)

// requestTimeout is the fixed connection-level timeout for every call.
// There is no retry or backoff policy.
const requestTimeout = 10 * time.Second

// Client calls the campus borrowing backend over HTTP. Every outbound
// request carries the cached bearer token when one is present; without a
// token the request goes out uncredentialed and the server rejects it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *session.Store
}

// New returns a client rooted at baseURL, e.g. "http://host:8000/api".
func New(baseURL string, store *session.Store) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
		store:      store,
	}
}

// LoginResult is the useful part of a successful POST /login response.
// User is kept as the raw blob the server returned.
type LoginResult struct {
	Token   string
	Message string
	User    json.RawMessage
}

type loginEnvelope struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
	Data        struct {
		Token string `json:"token"`
	} `json:"data"`
	User    json.RawMessage `json:"user"`
	Message string          `json:"message"`
}

// tokenPaths lists where backends have been seen to put the token, in
// priority order. First non-empty wins.
var tokenPaths = []func(loginEnvelope) string{
	func(e loginEnvelope) string { return e.Token },
	func(e loginEnvelope) string { return e.AccessToken },
	func(e loginEnvelope) string { return e.Data.Token },
}

// Login exchanges email+password for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var env loginEnvelope
	err := c.do(ctx, http.MethodPost, "/login", map[string]string{
		"email":    email,
		"password": password,
	}, &env)
	if err != nil {
		return nil, err
	}

	var token string
	for _, path := range tokenPaths {
		if token = path(env); token != "" {
			break
		}
	}
	if token == "" {
		return nil, fmt.Errorf("no token returned from server")
	}

	return &LoginResult{Token: token, Message: env.Message, User: env.User}, nil
}

// Items lists borrowable items.
func (c *Client) Items(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := c.do(ctx, http.MethodGet, "/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Rooms lists bookable rooms.
func (c *Client) Rooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := c.do(ctx, http.MethodGet, "/rooms", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// CreateRequest submits an item borrow request.
func (c *Client) CreateRequest(ctx context.Context, form models.BorrowForm) error {
	return c.do(ctx, http.MethodPost, "/requests", form, nil)
}

// CreateRoomRequest submits a room reservation.
func (c *Client) CreateRoomRequest(ctx context.Context, form models.BookingForm) error {
	return c.do(ctx, http.MethodPost, "/room-requests", form, nil)
}

// Requests lists all item borrow requests. The server does not filter by
// caller; reconciliation happens client-side.
func (c *Client) Requests(ctx context.Context) ([]models.BorrowRequest, error) {
	var reqs []models.BorrowRequest
	if err := c.do(ctx, http.MethodGet, "/requests", nil, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// RoomRequests lists all room reservations, unfiltered like Requests.
func (c *Client) RoomRequests(ctx context.Context) ([]models.RoomRequest, error) {
	var reqs []models.RoomRequest
	if err := c.do(ctx, http.MethodGet, "/room-requests", nil, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// CancelRequest cancels an item borrow request by id.
func (c *Client) CancelRequest(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/requests/"+id, nil, nil)
}

// CancelRoomRequest cancels a room reservation by id.
func (c *Client) CancelRoomRequest(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/room-requests/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: encode: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.store.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", method, path, err)
	}
	return nil
}
