package model

import (
	"time"

	"gorm.io/gorm"
)

// Review is a rated write-up attached to one of the five content
// collections. A user may hold at most one live review per entity; the
// composite unique index enforces that at the database level.
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	EntityType EntityKind `gorm:"type:varchar(20);not null;uniqueIndex:idx_entity_user_review;index:idx_review_entity" json:"entity_type"`
	EntityID   uint       `gorm:"not null;uniqueIndex:idx_entity_user_review;index:idx_review_entity" json:"entity_id"`
	UserID     uint       `gorm:"not null;uniqueIndex:idx_entity_user_review" json:"user_id"`
	User       User       `gorm:"foreignKey:UserID" json:"user,omitempty"`

	AuthorName string `gorm:"type:varchar(100)" json:"author_name"`
	Rating     int    `gorm:"not null" json:"rating"` // 1..5
	Content    string `gorm:"type:varchar(1000);not null" json:"content"`
	LikeCount  int    `gorm:"default:0;not null" json:"like_count"`

	Replies []ReviewReply `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"replies,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewReply is a single-level response to a review. Replies cannot be
// nested further.
type ReviewReply struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ReviewID uint `gorm:"not null;index" json:"review_id"`
	UserID   uint `gorm:"not null;index" json:"user_id"`
	User     User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	AuthorName string `gorm:"type:varchar(100)" json:"author_name"`
	Content    string `gorm:"type:varchar(1000);not null" json:"content"`
	LikeCount  int    `gorm:"default:0;not null" json:"like_count"`
}

func (ReviewReply) TableName() string {
	return "review_replies"
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Content string `json:"content" binding:"required,max=1000"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Content *string `json:"content" binding:"omitempty,max=1000"`
}

type CreateReplyRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

// ReviewListQuery holds pagination for per-entity review listings.
type ReviewListQuery struct {
	Page  int `form:"page,default=1" binding:"omitempty,min=1"`
	Limit int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

// BeforeSave fills the denormalized author name when the user is loaded.
func (r *Review) BeforeSave(tx *gorm.DB) error {
	if r.AuthorName == "" && r.User.Name != "" {
		r.AuthorName = r.User.Name
	}
	return nil
}
