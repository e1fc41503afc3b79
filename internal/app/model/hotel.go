package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Hotel is an accommodation listing managed by the CMS.
type Hotel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title         string         `gorm:"type:varchar(200);not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Location      string         `gorm:"type:varchar(100);index" json:"location"`
	Address       string         `gorm:"type:varchar(255)" json:"address"`
	PricePerNight int64          `json:"price_per_night"` // in the platform currency's minor unit
	Stars         int            `json:"stars"`
	ImageURLs     pq.StringArray `gorm:"type:text[]" json:"image_urls,omitempty"`

	EngagementStats `gorm:"embedded"`

	Reviews []Review `gorm:"polymorphic:Entity;polymorphicValue:hotel" json:"reviews,omitempty"`
}

func (Hotel) TableName() string {
	return "hotels"
}

func (h *Hotel) GetID() uint             { return h.ID }
func (h *Hotel) EntityKind() EntityKind  { return KindHotel }
func (h *Hotel) Stats() *EngagementStats { return &h.EngagementStats }

func (h *Hotel) Apply(req *EntityUpsertRequest) {
	h.Title = req.Title
	h.Description = req.Description
	h.Location = req.Location
	h.Address = req.Address
	if req.PricePerNight != nil {
		h.PricePerNight = *req.PricePerNight
	}
	if req.Stars != nil {
		h.Stars = *req.Stars
	}
	if req.ImageURLs != nil {
		h.ImageURLs = req.ImageURLs
	}
}
