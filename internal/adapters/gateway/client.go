// Package gateway is the REST+JSON binding of the remote record-keeping
// API. Transport policy lives here: request timeout, the API key header,
// and a single retry on server errors. The core never retries.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vaneapp/vane/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// errStatusNotFound marks a 404 so each operation can map it onto its own
// domain sentinel.
var errStatusNotFound = errors.New("resource not found")

var _ domain.Gateway = (*Client)(nil)

type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
	}

	retried := false
	for {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return &domain.TransportError{Op: op, Err: err}
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("x-api-key", c.apiKey)
		}

		resp, err := c.httpc.Do(req)
		if err != nil {
			return &domain.TransportError{Op: op, Err: err}
		}

		// One retry on server-side failure, then give up.
		if resp.StatusCode >= http.StatusInternalServerError && !retried {
			retried = true
			resp.Body.Close()
			continue
		}

		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return errStatusNotFound
		case resp.StatusCode >= http.StatusBadRequest:
			return &domain.TransportError{
				Op:  op,
				Err: fmt.Errorf("server returned %s", resp.Status),
			}
		}

		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &domain.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
		return nil
	}
}

func (c *Client) ListHabits(ctx context.Context) ([]*domain.Habit, error) {
	var habits []*domain.Habit
	if err := c.do(ctx, "list habits", http.MethodGet, "/habits", nil, &habits); err != nil {
		return nil, err
	}
	return habits, nil
}

func (c *Client) CreateHabit(ctx context.Context, habit *domain.Habit) (*domain.Habit, error) {
	var created domain.Habit
	if err := c.do(ctx, "create habit", http.MethodPost, "/habits", habit, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpsertHabit(ctx context.Context, id string, habit *domain.Habit) (*domain.Habit, error) {
	var saved domain.Habit
	err := c.do(ctx, "upsert habit", http.MethodPut, "/habits/"+id, habit, &saved)
	if errors.Is(err, errStatusNotFound) {
		return nil, domain.ErrHabitNotFound
	}
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) DeleteHabit(ctx context.Context, id string) error {
	err := c.do(ctx, "delete habit", http.MethodDelete, "/habits/"+id, nil, nil)
	if errors.Is(err, errStatusNotFound) {
		return domain.ErrHabitNotFound
	}
	return err
}

func (c *Client) GetEntry(ctx context.Context, date string) (*domain.Entry, error) {
	var entry domain.Entry
	err := c.do(ctx, "get entry", http.MethodGet, "/entries/"+date, nil, &entry)
	if errors.Is(err, errStatusNotFound) {
		return nil, domain.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *Client) UpsertEntry(ctx context.Context, date string, entry *domain.Entry) (*domain.Entry, error) {
	var saved domain.Entry
	if err := c.do(ctx, "upsert entry", http.MethodPut, "/entries/"+date, entry, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) ListEntriesForMonth(ctx context.Context, year, month int) ([]*domain.Entry, error) {
	var entries []*domain.Entry
	path := fmt.Sprintf("/entries/month/%d/%d", year, month)
	if err := c.do(ctx, "list month entries", http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) GetMonthlyStats(ctx context.Context, year, month int) (*domain.MonthlyStats, error) {
	var stats domain.MonthlyStats
	path := fmt.Sprintf("/stats/monthly/%d/%d", year, month)
	if err := c.do(ctx, "monthly stats", http.MethodGet, path, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
