package model

import "time"

// EntityComment is a short visitor note on a region or cultural site wall.
// Unlike reviews, comments carry no rating and a user may leave several.
type EntityComment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	EntityType EntityKind `gorm:"type:varchar(20);not null;index:idx_comment_entity" json:"entity_type"`
	EntityID   uint       `gorm:"not null;index:idx_comment_entity" json:"entity_id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	User       User       `gorm:"foreignKey:UserID" json:"user,omitempty"`

	AuthorName string `gorm:"type:varchar(100)" json:"author_name"`
	Content    string `gorm:"type:varchar(500);not null" json:"content"`
	LikeCount  int    `gorm:"default:0;not null" json:"like_count"`
}

func (EntityComment) TableName() string {
	return "entity_comments"
}

// EntityPhoto is a visitor-uploaded photo on a region or cultural site wall.
type EntityPhoto struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	EntityType EntityKind `gorm:"type:varchar(20);not null;index:idx_photo_entity" json:"entity_type"`
	EntityID   uint       `gorm:"not null;index:idx_photo_entity" json:"entity_id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	User       User       `gorm:"foreignKey:UserID" json:"user,omitempty"`

	URL       string `gorm:"type:varchar(500);not null" json:"url"`
	Caption   string `gorm:"type:varchar(200)" json:"caption"`
	LikeCount int    `gorm:"default:0;not null" json:"like_count"`
}

func (EntityPhoto) TableName() string {
	return "entity_photos"
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=500"`
}

type CreatePhotoRequest struct {
	URL     string `json:"url" binding:"required,url,max=500"`
	Caption string `json:"caption" binding:"max=200"`
}
