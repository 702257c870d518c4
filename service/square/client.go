package square

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	ProductionBaseURL = "https://connect.squareup.com"
	SandboxBaseURL    = "https://connect.squareupsandbox.com"

	// APIVersion pins the response shapes this client decodes.
	APIVersion = "2024-01-18"

	ordersPageLimit = 500
)

type Options struct {
	AccessToken string
	Environment string // "sandbox" or "production"
	BaseURL     string // overrides Environment when set
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// Client reads locations, catalog items and orders from the Square API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.AccessToken) == "" {
		return nil, ErrNotConfigured
	}
	base := opts.BaseURL
	if base == "" {
		switch strings.ToLower(opts.Environment) {
		case "sandbox":
			base = SandboxBaseURL
		case "", "production":
			base = ProductionBaseURL
		default:
			return nil, fmt.Errorf("unknown square environment %q", opts.Environment)
		}
	}
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: strings.TrimRight(base, "/"), token: opts.AccessToken, http: hc}, nil
}

// Locations returns every location of the account. An empty slice is not an error.
func (c *Client) Locations(ctx context.Context) ([]Location, error) {
	var resp listLocationsResponse
	if err := c.do(ctx, "list locations", http.MethodGet, "/v2/locations", nil, &resp, func() []ErrorDetail { return resp.Errors }); err != nil {
		return nil, err
	}
	return resp.Locations, nil
}

// CatalogItems lazily lists ITEM catalog objects across all pages.
// A failed page yields its error and ends the sequence.
func (c *Client) CatalogItems(ctx context.Context) iter.Seq2[CatalogItem, error] {
	return paginate(ctx, func(ctx context.Context, cursor string) ([]CatalogItem, string, error) {
		q := url.Values{"types": {"ITEM"}}
		if cursor != "" {
			q.Set("cursor", cursor)
		}
		var resp listCatalogResponse
		if err := c.do(ctx, "list catalog", http.MethodGet, "/v2/catalog/list?"+q.Encode(), nil, &resp, func() []ErrorDetail { return resp.Errors }); err != nil {
			return nil, "", err
		}
		items := make([]CatalogItem, 0, len(resp.Objects))
		for _, obj := range resp.Objects {
			if obj.Type != "ITEM" || obj.IsDeleted || obj.ID == "" {
				continue
			}
			name := obj.ID
			if obj.ItemData != nil && obj.ItemData.Name != "" {
				name = obj.ItemData.Name
			}
			items = append(items, CatalogItem{ID: obj.ID, Name: name})
		}
		return items, resp.Cursor, nil
	})
}

// SearchOrders lazily lists orders of locationID created in [start, end).
// Orders the API returns outside that window are dropped so adjacent windows never overlap.
func (c *Client) SearchOrders(ctx context.Context, locationID string, start, end time.Time) iter.Seq2[Order, error] {
	start, end = start.UTC(), end.UTC()
	return paginate(ctx, func(ctx context.Context, cursor string) ([]Order, string, error) {
		var body searchOrdersRequest
		body.LocationIDs = []string{locationID}
		body.Cursor = cursor
		body.Limit = ordersPageLimit
		body.Query.Filter.DateTimeFilter.CreatedAt = timeRange{
			StartAt: start.Format(time.RFC3339Nano),
			EndAt:   end.Format(time.RFC3339Nano),
		}
		body.Query.Sort.SortField = "CREATED_AT"
		body.Query.Sort.SortOrder = "ASC"

		var resp searchOrdersResponse
		if err := c.do(ctx, "search orders", http.MethodPost, "/v2/orders/search", body, &resp, func() []ErrorDetail { return resp.Errors }); err != nil {
			return nil, "", err
		}
		orders := make([]Order, 0, len(resp.Orders))
		for _, o := range resp.Orders {
			order, err := convertOrder(o)
			if err != nil {
				return nil, "", &APIError{Op: "search orders", Err: err}
			}
			if order.CreatedAt.Before(start) || !order.CreatedAt.Before(end) {
				continue
			}
			orders = append(orders, order)
		}
		return orders, resp.Cursor, nil
	})
}

func convertOrder(o apiOrder) (Order, error) {
	created, err := time.Parse(time.RFC3339Nano, o.CreatedAt)
	if err != nil {
		return Order{}, fmt.Errorf("order %s: created_at %q: %w", o.ID, o.CreatedAt, err)
	}
	order := Order{ID: o.ID, LocationID: o.LocationID, CreatedAt: created.UTC()}
	for _, li := range o.LineItems {
		item := LineItem{
			CatalogObjectID: li.CatalogObjectID,
			Name:            li.Name,
			RawQuantity:     li.Quantity,
		}
		// An unparsable quantity stays 0 and is reported by the caller.
		if q, err := decimal.NewFromString(strings.TrimSpace(li.Quantity)); err == nil {
			item.Quantity = q.InexactFloat64()
		}
		if li.TotalMoney != nil {
			item.TotalMoneyMinor = li.TotalMoney.Amount
			item.Currency = li.TotalMoney.Currency
		}
		order.LineItems = append(order.LineItems, item)
	}
	return order, nil
}

// do sends one request and decodes the JSON response into out. errs is read
// after decoding so 2xx responses carrying an errors payload still fail.
func (c *Client) do(ctx context.Context, op, method, path string, in, out interface{}, errs func() []ErrorDetail) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("square %s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("square %s: build request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Square-Version", APIVersion)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return &APIError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Op: op, StatusCode: resp.StatusCode}
		var payload struct {
			Errors []ErrorDetail `json:"errors"`
		}
		if json.Unmarshal(raw, &payload) == nil {
			apiErr.Errors = payload.Errors
		}
		return apiErr
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if details := errs(); len(details) > 0 {
		return &APIError{Op: op, StatusCode: resp.StatusCode, Errors: details}
	}
	return nil
}
