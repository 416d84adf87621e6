// Package api is the HTTP client for the debt backend. It owns the wire
// contract: naive datetime formatting on the way out, defensive coercion on
// the way in, and the 401 invalidation rule. Callers see domain types and
// sentinel errors, never raw responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"utangku/internal/core"
	"utangku/internal/log"
)

// maxErrorBody caps how much of a failed response is retained for messages.
const maxErrorBody = 4 << 10

// Credentials is the slice of the session store the client needs. Token is
// read at call time for every authenticated request.
type Credentials interface {
	Token() (string, error)
	Set(token string) error
	Invalidate()
}

// Profile is the user's account settings as held by the backend.
type Profile struct {
	FullName    string
	Email       string
	DateOfBirth string
	Address     string
	City        string
	PostalCode  string
	Country     string
}

// ProfileUpdate carries settings changes. Only non-empty fields are
// transmitted; the backend treats absence as "leave unchanged".
type ProfileUpdate struct {
	FullName    string
	Email       string
	Password    string
	DateOfBirth string
	Address     string
	City        string
	PostalCode  string
	Country     string
}

// Config holds client configuration.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Sessions Credentials
	Logger   *log.Logger
}

// Client talks to the backend REST API.
type Client struct {
	http     *http.Client
	baseURL  string
	sessions Credentials
	logger   *log.Logger
}

func New(config Config) *Client {
	logger := config.Logger
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentAPI})
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: &log.Transport{Logger: logger},
		},
		baseURL:  strings.TrimRight(config.BaseURL, "/"),
		sessions: config.Sessions,
		logger:   logger,
	}
}

// SignIn exchanges credentials for a token and stores it.
func (c *Client) SignIn(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/api/signin", map[string]string{
		"email":    email,
		"password": password,
	})
}

// SignUp registers a new account and stores the returned token.
func (c *Client) SignUp(ctx context.Context, name, email, password string) error {
	return c.authenticate(ctx, "/api/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, payload map[string]string) error {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, path, nil, payload, false, &resp); err != nil {
		return err
	}
	if resp.Token == "" {
		return fmt.Errorf("%w: no token in response", ErrProtocol)
	}
	return c.sessions.Set(resp.Token)
}

// ListDebts fetches every record owned by the signed-in user.
func (c *Client) ListDebts(ctx context.Context) ([]core.Debt, error) {
	var wire []debtWire
	if err := c.do(ctx, http.MethodGet, "/api/debts", nil, nil, true, &wire); err != nil {
		return nil, err
	}
	return debtsFromWire(wire), nil
}

// CreateDebt submits a new record and returns the server's version of it,
// including the assigned ID.
func (c *Client) CreateDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}
	var wire debtWire
	if err := c.do(ctx, http.MethodPost, "/api/debts", nil, debtPayload(d), true, &wire); err != nil {
		return core.Debt{}, err
	}
	return wire.toDebt(), nil
}

// UpdateDebt replaces the client-settable fields of an existing record.
func (c *Client) UpdateDebt(ctx context.Context, id int64, d core.Debt) (core.Debt, error) {
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}
	var wire debtWire
	if err := c.do(ctx, http.MethodPut, debtPath(id), nil, debtPayload(d), true, &wire); err != nil {
		return core.Debt{}, err
	}
	return wire.toDebt(), nil
}

// DeleteDebt removes a record. The backend answers 204 on success.
func (c *Client) DeleteDebt(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, debtPath(id), nil, nil, true, nil)
}

// ToggleDebt flips the settled flag server-side and returns the new state.
func (c *Client) ToggleDebt(ctx context.Context, id int64) (core.Debt, error) {
	var wire debtWire
	if err := c.do(ctx, http.MethodPut, debtPath(id)+"/toggle", nil, nil, true, &wire); err != nil {
		return core.Debt{}, err
	}
	return wire.toDebt(), nil
}

// Stats fetches the three-figure summary (owed, lent, net).
func (c *Client) Stats(ctx context.Context) (core.Stats, error) {
	var wire statsWire
	if err := c.do(ctx, http.MethodGet, "/api/debts/stats", nil, nil, true, &wire); err != nil {
		return core.Stats{}, err
	}
	return wire.toStats(), nil
}

// Recent fetches the latest records for the dashboard widget.
func (c *Client) Recent(ctx context.Context) ([]core.Debt, error) {
	var wire []debtWire
	if err := c.do(ctx, http.MethodGet, "/api/debts/recent", nil, nil, true, &wire); err != nil {
		return nil, err
	}
	return debtsFromWire(wire), nil
}

// YearlyActivity fetches per-year owed/lent totals. The backend names the
// window parameter "months" even though its unit is years.
func (c *Client) YearlyActivity(ctx context.Context, years int) ([]core.ActivityPoint, error) {
	query := url.Values{"months": {strconv.Itoa(years)}}
	return c.activity(ctx, "/api/debts/yearly-activity", query)
}

// WeeklyActivity fetches per-week owed/lent totals.
func (c *Client) WeeklyActivity(ctx context.Context) ([]core.ActivityPoint, error) {
	return c.activity(ctx, "/api/debts/weekly-activity", nil)
}

func (c *Client) activity(ctx context.Context, path string, query url.Values) ([]core.ActivityPoint, error) {
	var wire []activityWire
	if err := c.do(ctx, http.MethodGet, path, query, nil, true, &wire); err != nil {
		return nil, err
	}
	points := make([]core.ActivityPoint, len(wire))
	for i, w := range wire {
		points[i] = w.toPoint()
	}
	return points, nil
}

// BalanceHistory fetches the monthly running balance over the given window.
func (c *Client) BalanceHistory(ctx context.Context, months int) ([]core.BalancePoint, error) {
	query := url.Values{"months": {strconv.Itoa(months)}}
	var wire []balanceWire
	if err := c.do(ctx, http.MethodGet, "/api/debts/balance-history", query, nil, true, &wire); err != nil {
		return nil, err
	}
	points := make([]core.BalancePoint, len(wire))
	for i, w := range wire {
		points[i] = w.toPoint()
	}
	return points, nil
}

// UserSettings fetches the account profile.
func (c *Client) UserSettings(ctx context.Context) (Profile, error) {
	var wire profileWire
	if err := c.do(ctx, http.MethodGet, "/api/user/settings", nil, nil, true, &wire); err != nil {
		return Profile{}, err
	}
	return wire.toProfile(), nil
}

// UpdateUserSettings sends changed profile fields and returns the stored
// profile.
func (c *Client) UpdateUserSettings(ctx context.Context, update ProfileUpdate) (Profile, error) {
	payload := map[string]string{}
	set := func(key, value string) {
		if v := strings.TrimSpace(value); v != "" {
			payload[key] = v
		}
	}
	set("full_name", update.FullName)
	set("email", update.Email)
	set("password", update.Password)
	set("date_of_birth", update.DateOfBirth)
	set("address", update.Address)
	set("city", update.City)
	set("postal_code", update.PostalCode)
	set("country", update.Country)

	var wire profileWire
	if err := c.do(ctx, http.MethodPut, "/api/user/settings", nil, payload, true, &wire); err != nil {
		return Profile{}, err
	}
	return wire.toProfile(), nil
}

// do runs one exchange. Authenticated calls fail before any network traffic
// when no token is held; a 401 invalidates the session exactly once.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, authed bool, out any) error {
	var token string
	if authed {
		var err error
		token, err = c.sessions.Token()
		if err != nil {
			return ErrUnauthenticated
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.sessions.Invalidate()
		return ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &RequestError{StatusCode: resp.StatusCode, Body: string(data)}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	return nil
}

// debtPayload is the create/update body: client-settable fields only, date
// rendered as a naive datetime.
func debtPayload(d core.Debt) map[string]any {
	return map[string]any{
		"name":   d.Name,
		"type":   string(d.Kind),
		"method": d.Method,
		"date":   core.FormatAPIDate(d.Date),
		"amount": d.Amount.Rupiah,
	}
}

func debtPath(id int64) string {
	return "/api/debts/" + strconv.FormatInt(id, 10)
}

func debtsFromWire(wire []debtWire) []core.Debt {
	debts := make([]core.Debt, len(wire))
	for i, w := range wire {
		debts[i] = w.toDebt()
	}
	return debts
}

// IsAuthError reports whether the error calls for a sign-in prompt.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrSessionExpired)
}
