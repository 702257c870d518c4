package square

import "time"

type Location struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
}

// CatalogItem is an ITEM catalog object reduced to what the ledger needs.
type CatalogItem struct {
	ID   string
	Name string
}

type Order struct {
	ID         string
	LocationID string
	CreatedAt  time.Time
	LineItems  []LineItem
}

// LineItem is one sold entry of an order. Quantity is parsed from the API's
// decimal string; TotalMoneyMinor is in the currency's smallest unit.
type LineItem struct {
	CatalogObjectID string
	Name            string
	Quantity        float64
	RawQuantity     string
	TotalMoneyMinor int64
	Currency        string
}

// wire types

type money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type apiLineItem struct {
	CatalogObjectID string `json:"catalog_object_id"`
	Name            string `json:"name"`
	Quantity        string `json:"quantity"`
	TotalMoney      *money `json:"total_money"`
}

type apiOrder struct {
	ID         string        `json:"id"`
	LocationID string        `json:"location_id"`
	CreatedAt  string        `json:"created_at"`
	LineItems  []apiLineItem `json:"line_items"`
}

type apiCatalogObject struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	IsDeleted bool   `json:"is_deleted"`
	ItemData  *struct {
		Name string `json:"name"`
	} `json:"item_data"`
}

type listLocationsResponse struct {
	Locations []Location    `json:"locations"`
	Errors    []ErrorDetail `json:"errors"`
}

type listCatalogResponse struct {
	Objects []apiCatalogObject `json:"objects"`
	Cursor  string             `json:"cursor"`
	Errors  []ErrorDetail      `json:"errors"`
}

type searchOrdersResponse struct {
	Orders []apiOrder    `json:"orders"`
	Cursor string        `json:"cursor"`
	Errors []ErrorDetail `json:"errors"`
}

type timeRange struct {
	StartAt string `json:"start_at"`
	EndAt   string `json:"end_at"`
}

type searchOrdersRequest struct {
	LocationIDs []string `json:"location_ids"`
	Cursor      string   `json:"cursor,omitempty"`
	Limit       int      `json:"limit,omitempty"`
	Query       struct {
		Filter struct {
			DateTimeFilter struct {
				CreatedAt timeRange `json:"created_at"`
			} `json:"date_time_filter"`
		} `json:"filter"`
		Sort struct {
			SortField string `json:"sort_field"`
			SortOrder string `json:"sort_order"`
		} `json:"sort"`
	} `json:"query"`
}
