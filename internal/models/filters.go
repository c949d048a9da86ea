package models

// PredictionFilter represents filter parameters for querying satellite predictions
type PredictionFilter struct {
	Quality       string  `form:"quality"` // high, medium, low
	PreyType      string  `form:"preyType"`
	Location      string  `form:"location"`
	MinConfidence float64 `form:"minConfidence"` // 0-1
	Page          int     `form:"page"`
	PageSize      int     `form:"pageSize"`
}

// TagEventFilter represents filter parameters for querying tag telemetry
type TagEventFilter struct {
	Species  string `form:"species"`
	Accuracy string `form:"accuracy"` // correct, incorrect
	PreyType string `form:"preyType"`
	SharkID  string `form:"sharkId"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// CombinedFilter represents filter parameters for querying the combined display table
type CombinedFilter struct {
	MarkerType string `form:"markerType"` // prediction, validation
	Page       int    `form:"page"`
	PageSize   int    `form:"pageSize"`
}

// PageResponse represents a paginated response of table rows
type PageResponse[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}
