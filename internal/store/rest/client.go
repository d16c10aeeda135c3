// Package rest is the HTTP client for the external booking collection. The
// collection exposes teams and their nested bookings under /api/bookingData;
// bookings are addressed positionally, so the server's list order is the
// contract.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"hisab/internal/core"
	"hisab/internal/store"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the collection at baseURL (no trailing slash
// required). A zero timeout falls back to a 10s default.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) ListTeams(ctx context.Context) ([]core.Team, error) {
	var teams []core.Team
	if err := c.do(ctx, http.MethodGet, c.teamsURL(), nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (c *Client) CreateTeam(ctx context.Context, teamName string) error {
	body := map[string]string{"teamName": teamName}
	return c.do(ctx, http.MethodPost, c.teamsURL(), body, nil)
}

func (c *Client) DeleteTeam(ctx context.Context, teamName string) error {
	return c.do(ctx, http.MethodDelete, c.teamURL(teamName), nil, nil)
}

func (c *Client) AddBooking(ctx context.Context, teamName string, b core.Booking) error {
	return c.do(ctx, http.MethodPost, c.teamURL(teamName)+"/bookings", b, nil)
}

func (c *Client) UpdateBooking(ctx context.Context, teamName string, index int, b core.Booking) error {
	return c.do(ctx, http.MethodPut, c.bookingURL(teamName, index), b, nil)
}

func (c *Client) DeleteBooking(ctx context.Context, teamName string, index int) error {
	return c.do(ctx, http.MethodDelete, c.bookingURL(teamName, index), nil, nil)
}

func (c *Client) teamsURL() string {
	return c.baseURL + "/api/bookingData"
}

func (c *Client) teamURL(teamName string) string {
	return c.teamsURL() + "/" + url.PathEscape(teamName)
}

func (c *Client) bookingURL(teamName string, index int) string {
	return fmt.Sprintf("%s/bookings/%d", c.teamURL(teamName), index)
}

func (c *Client) do(ctx context.Context, method, rawURL string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("booking store: %w", err)
	}
	defer resp.Body.Close()

	if err := mapStatus(resp.StatusCode); err != nil {
		io.Copy(io.Discard, resp.Body)
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// mapStatus translates the collection's status codes into the store
// sentinels so callers never branch on HTTP details.
func mapStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return store.ErrTeamNotFound
	case code == http.StatusConflict:
		return store.ErrTeamExists
	case code == http.StatusRequestedRangeNotSatisfiable, code == http.StatusUnprocessableEntity:
		return store.ErrIndexOutOfRange
	default:
		return fmt.Errorf("booking store: unexpected status %d", code)
	}
}
