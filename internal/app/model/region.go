package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Region is a destination area (province, city or district page). Regions
// carry a visitor comment wall and a photo wall in addition to reviews.
type Region struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string         `gorm:"type:varchar(200);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Code        string         `gorm:"type:varchar(20);index" json:"code"` // administrative code
	ImageURLs   pq.StringArray `gorm:"type:text[]" json:"image_urls,omitempty"`

	EngagementStats `gorm:"embedded"`

	Reviews  []Review        `gorm:"polymorphic:Entity;polymorphicValue:region" json:"reviews,omitempty"`
	Comments []EntityComment `gorm:"polymorphic:Entity;polymorphicValue:region" json:"comments,omitempty"`
	Photos   []EntityPhoto   `gorm:"polymorphic:Entity;polymorphicValue:region" json:"photos,omitempty"`
}

func (Region) TableName() string {
	return "regions"
}

func (r *Region) GetID() uint             { return r.ID }
func (r *Region) EntityKind() EntityKind  { return KindRegion }
func (r *Region) Stats() *EngagementStats { return &r.EngagementStats }

func (r *Region) Apply(req *EntityUpsertRequest) {
	r.Title = req.Title
	r.Description = req.Description
	if req.Code != nil {
		r.Code = *req.Code
	}
	if req.ImageURLs != nil {
		r.ImageURLs = req.ImageURLs
	}
}
