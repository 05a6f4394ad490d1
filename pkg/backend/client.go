package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"printshop/internal/models"
)

// Client talks to the hosted order collection API.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Filter mirrors the query parameters accepted by GET /orders.
type Filter struct {
	ID     string
	Code   string
	Phone  string
	Search string
	Status string
}

// APIError is a non-2xx answer; Message comes from the {"error": ...} body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (f Filter) values() url.Values {
	v := url.Values{}
	for key, value := range map[string]string{
		"id": f.ID, "code": f.Code, "phone": f.Phone, "search": f.Search, "status": f.Status,
	} {
		if value != "" {
			v.Set(key, value)
		}
	}
	return v
}

// ListOrders fetches the order collection.
func (c *Client) ListOrders(ctx context.Context, filter Filter) ([]models.Order, error) {
	path := "/orders"
	if q := filter.values().Encode(); q != "" {
		path += "?" + q
	}
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		return nil, fmt.Errorf("unexpected payload: expected an order array")
	}
	return orders, nil
}

// CreateOrder posts a new order and returns the stored record.
func (c *Client) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	var created models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// PatchOrder updates the order whose id or order code equals key.
func (c *Client) PatchOrder(ctx context.Context, key string, patch models.OrderPatch) (*models.Order, error) {
	var updated models.Order
	if err := c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(key), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ListExpenses fetches every recorded expense.
func (c *Client) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := c.do(ctx, http.MethodGet, "/expenses", nil, &expenses); err != nil {
		return nil, err
	}
	if expenses == nil {
		return nil, fmt.Errorf("unexpected payload: expected an expense array")
	}
	return expenses, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request data: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		req.Header.Set("X-API-Key", c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
