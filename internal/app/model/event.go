package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Event is a festival, concert or other dated happening.
type Event struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string         `gorm:"type:varchar(200);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Location    string         `gorm:"type:varchar(100);index" json:"location"`
	Venue       string         `gorm:"type:varchar(255)" json:"venue"`
	StartsAt    *time.Time     `json:"starts_at,omitempty"`
	EndsAt      *time.Time     `json:"ends_at,omitempty"`
	ImageURLs   pq.StringArray `gorm:"type:text[]" json:"image_urls,omitempty"`

	EngagementStats `gorm:"embedded"`

	Reviews []Review `gorm:"polymorphic:Entity;polymorphicValue:event" json:"reviews,omitempty"`
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) GetID() uint             { return e.ID }
func (e *Event) EntityKind() EntityKind  { return KindEvent }
func (e *Event) Stats() *EngagementStats { return &e.EngagementStats }

func (e *Event) Apply(req *EntityUpsertRequest) {
	e.Title = req.Title
	e.Description = req.Description
	e.Location = req.Location
	if req.Venue != nil {
		e.Venue = *req.Venue
	}
	if req.StartsAt != nil {
		e.StartsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		e.EndsAt = req.EndsAt
	}
	if req.ImageURLs != nil {
		e.ImageURLs = req.ImageURLs
	}
}
