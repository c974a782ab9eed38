package handlers

import "github.com/vzahanych/photo-app/internal/store"

// ConditionsRequest is the query of GET /api/conditions.
type ConditionsRequest struct {
	Location string `form:"location" binding:"required,max=255"`
	Date     string `form:"date" binding:"omitempty,isodate"`
}

// SunTimesRequest is the query of GET /api/sun-times. Coordinates are pointers
// so that the equator and the prime meridian still count as present.
type SunTimesRequest struct {
	Lat  *float64 `form:"lat" binding:"required,latitude"`
	Lon  *float64 `form:"lon" binding:"required,longitude"`
	Date string   `form:"date" binding:"omitempty,isodate"`
}

type TripWeatherRequest struct {
	Date string `form:"date" binding:"omitempty,isodate"`
}

type ListQuery struct {
	Skip  int `form:"skip" binding:"min=0"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=1000"`
}

func (q ListQuery) options() store.ListOptions {
	return store.ListOptions{Skip: q.Skip, Limit: q.Limit}
}

type FilmStockCreate struct {
	Model      string      `json:"model" binding:"required,max=100"`
	Format     *string     `json:"format" binding:"omitempty,max=50"`
	Quantity   int         `json:"quantity" binding:"min=0"`
	ExpiryDate *store.Date `json:"expiry_date"`
}

type GalleryCreate struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
}

type TripCreate struct {
	Name        string      `json:"name" binding:"required,max=255"`
	Destination *string     `json:"destination" binding:"omitempty,max=255"`
	StartDate   *store.Date `json:"start_date"`
	EndDate     *store.Date `json:"end_date"`
	Description *string     `json:"description"`
}

// ErrorResponse represents an error response with validation
type ErrorResponse struct {
	Error   string `json:"error" validate:"required,min=1,max=500"`
	Code    string `json:"code,omitempty" validate:"omitempty,min=1,max=50"`
	Details string `json:"details,omitempty" validate:"omitempty,max=1000"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CoverResponse struct {
	Message       string `json:"message"`
	CoverImageURL string `json:"cover_image_url"`
}

type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// HealthResponse represents health check response with validation
type HealthResponse struct {
	Status    string            `json:"status" validate:"required,oneof=ok alive ready unavailable"`
	Uptime    string            `json:"uptime" validate:"required"`
	Timestamp string            `json:"timestamp,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Checks    map[string]string `json:"checks,omitempty"`
}
