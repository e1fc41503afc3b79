package model

import "time"

// EntityUpsertRequest is the admin payload for creating or updating any of
// the five content collections. Kind-specific fields are pointers so each
// model's Apply only touches what the client sent.
type EntityUpsertRequest struct {
	Title       string   `json:"title" binding:"required,min=2,max=200"`
	Description string   `json:"description" binding:"max=5000"`
	Location    string   `json:"location" binding:"max=100"`
	Address     string   `json:"address" binding:"max=255"`
	ImageURLs   []string `json:"image_urls" binding:"omitempty,dive,url"`

	// Hotel
	PricePerNight *int64 `json:"price_per_night" binding:"omitempty,min=0"`
	Stars         *int   `json:"stars" binding:"omitempty,min=1,max=5"`

	// Event
	Venue    *string    `json:"venue" binding:"omitempty,max=255"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`

	// Treasure
	Era *string `json:"era" binding:"omitempty,max=100"`

	// Region
	Code *string `json:"code" binding:"omitempty,max=20"`

	// PopularPlace
	Category *string `json:"category" binding:"omitempty,max=50"`
}

// EntityListQuery holds the shared list filters.
type EntityListQuery struct {
	Location string `form:"location"`
	Search   string `form:"search"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit    int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}
