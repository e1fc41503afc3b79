package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanMutate(t *testing.T) {
	tests := []struct {
		name     string
		role     UserRole
		actorID  uint
		authorID uint
		want     bool
	}{
		{
			name:     "author can mutate own content",
			role:     RoleUser,
			actorID:  7,
			authorID: 7,
			want:     true,
		},
		{
			name:     "other user cannot mutate",
			role:     RoleUser,
			actorID:  7,
			authorID: 8,
			want:     false,
		},
		{
			name:     "admin can mutate others' content",
			role:     RoleAdmin,
			actorID:  1,
			authorID: 8,
			want:     true,
		},
		{
			name:     "admin can mutate own content",
			role:     RoleAdmin,
			actorID:  1,
			authorID: 1,
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanMutate(tt.role, tt.actorID, tt.authorID))
		})
	}
}

func TestEntityKindValid(t *testing.T) {
	for _, kind := range AllEntityKinds {
		assert.True(t, kind.Valid())
		assert.NotEmpty(t, kind.TableName())
		assert.NotEmpty(t, kind.Slug())
	}
	assert.False(t, EntityKind("restaurant").Valid())
}

func TestHasCommentWall(t *testing.T) {
	assert.True(t, KindRegion.HasCommentWall())
	assert.True(t, KindTreasure.HasCommentWall())
	assert.False(t, KindHotel.HasCommentWall())
	assert.False(t, KindEvent.HasCommentWall())
	assert.False(t, KindPopularPlace.HasCommentWall())
}
