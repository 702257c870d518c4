package models

// --- Inventory ---

type Subcomponent struct {
	SubcomponentID   string  `json:"subcomponentId"`
	Name             string  `json:"name"`
	Stock            float64 `json:"stock"`
	QuantityRequired float64 `json:"quantityRequired"`
}

type ReorderAdvice struct {
	ItemID            string   `json:"itemId"`
	Name              string   `json:"name"`
	Stock             float64  `json:"stock"`
	ReorderThreshold  float64  `json:"reorderThreshold"`
	SuggestedQuantity *float64 `json:"suggestedQuantity"`
	Supplier          *string  `json:"supplier"`
}

// --- Sync ---

type SyncStatus struct {
	LastAssessed string   `json:"lastAssessed"`
	LastRun      *SyncRun `json:"lastRun"`
}

type SyncRun struct {
	ID             string  `json:"id"`
	Kind           string  `json:"kind"`
	Status         string  `json:"status"`
	StartedAt      string  `json:"startedAt"`
	FinishedAt     *string `json:"finishedAt"`
	WindowStart    *string `json:"windowStart"`
	WindowEnd      *string `json:"windowEnd"`
	NewItems       int32   `json:"newItems"`
	Orders         int32   `json:"orders"`
	SalesProcessed int32   `json:"salesProcessed"`
	Skipped        int32   `json:"skipped"`
	Warnings       *string `json:"warnings"`
	Error          *string `json:"error"`
}

// --- Reports ---

type DailySales struct {
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
	Revenue  string  `json:"revenue"`
	Lines    int32   `json:"lines"`
}
