package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// PopularPlace is a curated point of interest (viewpoints, markets, cafes)
// surfaced on the discovery pages.
type PopularPlace struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string         `gorm:"type:varchar(200);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"type:varchar(50);index" json:"category"`
	Location    string         `gorm:"type:varchar(100);index" json:"location"`
	Address     string         `gorm:"type:varchar(255)" json:"address"`
	ImageURLs   pq.StringArray `gorm:"type:text[]" json:"image_urls,omitempty"`

	EngagementStats `gorm:"embedded"`

	Reviews []Review `gorm:"polymorphic:Entity;polymorphicValue:popular_place" json:"reviews,omitempty"`
}

func (PopularPlace) TableName() string {
	return "popular_places"
}

func (p *PopularPlace) GetID() uint             { return p.ID }
func (p *PopularPlace) EntityKind() EntityKind  { return KindPopularPlace }
func (p *PopularPlace) Stats() *EngagementStats { return &p.EngagementStats }

func (p *PopularPlace) Apply(req *EntityUpsertRequest) {
	p.Title = req.Title
	p.Description = req.Description
	p.Location = req.Location
	p.Address = req.Address
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.ImageURLs != nil {
		p.ImageURLs = req.ImageURLs
	}
}
