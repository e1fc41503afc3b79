package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Treasure is a cultural heritage site (palaces, temples, monuments).
// Treasures carry a visitor comment wall and a photo wall in addition to
// reviews.
type Treasure struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string         `gorm:"type:varchar(200);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Era         string         `gorm:"type:varchar(100)" json:"era"`
	Location    string         `gorm:"type:varchar(100);index" json:"location"`
	Address     string         `gorm:"type:varchar(255)" json:"address"`
	ImageURLs   pq.StringArray `gorm:"type:text[]" json:"image_urls,omitempty"`

	EngagementStats `gorm:"embedded"`

	Reviews  []Review        `gorm:"polymorphic:Entity;polymorphicValue:treasure" json:"reviews,omitempty"`
	Comments []EntityComment `gorm:"polymorphic:Entity;polymorphicValue:treasure" json:"comments,omitempty"`
	Photos   []EntityPhoto   `gorm:"polymorphic:Entity;polymorphicValue:treasure" json:"photos,omitempty"`
}

func (Treasure) TableName() string {
	return "treasures"
}

func (t *Treasure) GetID() uint             { return t.ID }
func (t *Treasure) EntityKind() EntityKind  { return KindTreasure }
func (t *Treasure) Stats() *EngagementStats { return &t.EngagementStats }

func (t *Treasure) Apply(req *EntityUpsertRequest) {
	t.Title = req.Title
	t.Description = req.Description
	t.Location = req.Location
	t.Address = req.Address
	if req.Era != nil {
		t.Era = *req.Era
	}
	if req.ImageURLs != nil {
		t.ImageURLs = req.ImageURLs
	}
}
