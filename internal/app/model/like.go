package model

import "time"

// LikeTargetKind names the sub-objects that can be liked. Entities
// themselves are favorited, not liked.
type LikeTargetKind string

const (
	LikeTargetReview  LikeTargetKind = "review"
	LikeTargetReply   LikeTargetKind = "reply"
	LikeTargetComment LikeTargetKind = "comment"
	LikeTargetPhoto   LikeTargetKind = "photo"
)

func (k LikeTargetKind) Valid() bool {
	switch k {
	case LikeTargetReview, LikeTargetReply, LikeTargetComment, LikeTargetPhoto:
		return true
	}
	return false
}

// LikeTarget identifies one likeable sub-object in a toggle request.
type LikeTarget struct {
	Kind LikeTargetKind `json:"target_kind" binding:"required"`
	ID   uint           `json:"target_id" binding:"required"`
}

// EngagementLike records one user's like on one sub-object. The composite
// unique index makes the toggle idempotent under concurrent requests.
type EngagementLike struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	TargetKind LikeTargetKind `gorm:"type:varchar(20);not null;uniqueIndex:idx_target_user_like" json:"target_kind"`
	TargetID   uint           `gorm:"not null;uniqueIndex:idx_target_user_like" json:"target_id"`
	UserID     uint           `gorm:"not null;uniqueIndex:idx_target_user_like" json:"user_id"`
}

func (EngagementLike) TableName() string {
	return "engagement_likes"
}

// Favorite records one user's bookmark of one entity. Membership here is
// the source of truth for the entity's favorites_count.
type Favorite struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	EntityType EntityKind `gorm:"type:varchar(20);not null;uniqueIndex:idx_entity_user_favorite" json:"entity_type"`
	EntityID   uint       `gorm:"not null;uniqueIndex:idx_entity_user_favorite" json:"entity_id"`
	UserID     uint       `gorm:"not null;uniqueIndex:idx_entity_user_favorite;index" json:"user_id"`
}

func (Favorite) TableName() string {
	return "favorites"
}
