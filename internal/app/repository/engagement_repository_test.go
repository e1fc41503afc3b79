package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/model"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/db"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, testDB *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		Name:         "Test User",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func seedHotel(t *testing.T, testDB *gorm.DB, title string) *model.Hotel {
	t.Helper()
	hotel := &model.Hotel{
		Title:    title,
		Location: "Jeju",
	}
	require.NoError(t, testDB.Create(hotel).Error)
	return hotel
}

func hotelStats(t *testing.T, testDB *gorm.DB, id uint) *model.Hotel {
	t.Helper()
	var hotel model.Hotel
	require.NoError(t, testDB.First(&hotel, id).Error)
	return &hotel
}

func TestFavoriteRepository_Toggle(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	repo := NewFavoriteRepository(testDB)
	user := seedUser(t, testDB, "fav@example.com")
	hotel := seedHotel(t, testDB, "Sea View Hotel")

	// toggle on
	favorited, count, err := repo.Toggle(model.KindHotel, hotel.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, favorited)
	assert.Equal(t, 1, count)

	stored := hotelStats(t, testDB, hotel.ID)
	assert.Equal(t, 1, stored.FavoritesCount)
	assert.Equal(t, int64(1), stored.Version)

	isFav, err := repo.IsFavorited(model.KindHotel, hotel.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, isFav)

	// toggle off restores the previous state
	favorited, count, err = repo.Toggle(model.KindHotel, hotel.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, favorited)
	assert.Equal(t, 0, count)

	stored = hotelStats(t, testDB, hotel.ID)
	assert.Equal(t, 0, stored.FavoritesCount)
	assert.Equal(t, int64(2), stored.Version)
}

func TestFavoriteRepository_Toggle_EntityMissing(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	repo := NewFavoriteRepository(testDB)
	user := seedUser(t, testDB, "fav@example.com")

	_, _, err = repo.Toggle(model.KindHotel, 999, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFavoriteRepository_CountMatchesMembership(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	repo := NewFavoriteRepository(testDB)
	hotel := seedHotel(t, testDB, "Harbor Hotel")

	userA := seedUser(t, testDB, "a@example.com")
	userB := seedUser(t, testDB, "b@example.com")

	_, _, err = repo.Toggle(model.KindHotel, hotel.ID, userA.ID)
	require.NoError(t, err)
	_, count, err := repo.Toggle(model.KindHotel, hotel.ID, userB.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var rows int64
	require.NoError(t, testDB.Model(&model.Favorite{}).
		Where("entity_type = ? AND entity_id = ?", model.KindHotel, hotel.ID).
		Count(&rows).Error)
	assert.Equal(t, int64(2), rows)

	stored := hotelStats(t, testDB, hotel.ID)
	assert.Equal(t, 2, stored.FavoritesCount)
}

func TestFavoriteRepository_ListByUser(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	repo := NewFavoriteRepository(testDB)
	user := seedUser(t, testDB, "list@example.com")
	hotel := seedHotel(t, testDB, "List Hotel")

	event := &model.Event{Title: "Fire Festival", Location: "Jeju"}
	require.NoError(t, testDB.Create(event).Error)

	_, _, err = repo.Toggle(model.KindHotel, hotel.ID, user.ID)
	require.NoError(t, err)
	_, _, err = repo.Toggle(model.KindEvent, event.ID, user.ID)
	require.NoError(t, err)

	favorites, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, favorites, 2)
}

func TestCommitStats_VersionConflict(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	hotel := seedHotel(t, testDB, "Race Hotel")

	snap, err := loadStats(testDB, model.KindHotel, hotel.ID)
	require.NoError(t, err)

	// first commit wins
	first := *snap
	first.FavoritesCount = 1
	require.NoError(t, commitStats(testDB, model.KindHotel, hotel.ID, &first))

	// a second commit from the same read must fail
	stale := *snap
	stale.FavoritesCount = 5
	err = commitStats(testDB, model.KindHotel, hotel.ID, &stale)
	assert.ErrorIs(t, err, ErrVersionConflict)

	// the losing write left no trace
	stored := hotelStats(t, testDB, hotel.ID)
	assert.Equal(t, 1, stored.FavoritesCount)
	assert.Equal(t, int64(1), stored.Version)
}

func TestLikeRepository_Toggle(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	likeRepo := NewLikeRepository(testDB)
	author := seedUser(t, testDB, "author@example.com")
	hotel := seedHotel(t, testDB, "Like Hotel")

	review := &model.Review{
		EntityType: model.KindHotel,
		EntityID:   hotel.ID,
		UserID:     author.ID,
		Rating:     4,
		Content:    "Lovely stay",
	}
	require.NoError(t, testDB.Create(review).Error)

	target := model.LikeTarget{Kind: model.LikeTargetReview, ID: review.ID}

	userA := seedUser(t, testDB, "like-a@example.com")
	userB := seedUser(t, testDB, "like-b@example.com")

	liked, count, err := likeRepo.Toggle(target, userA.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, count)

	// two distinct users yield two likes
	liked, count, err = likeRepo.Toggle(target, userB.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 2, count)

	userIDs, err := likeRepo.UserIDs(target)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{userA.ID, userB.ID}, userIDs)

	// like_count always equals the membership rows
	var rows int64
	require.NoError(t, testDB.Model(&model.EngagementLike{}).
		Where("target_kind = ? AND target_id = ?", target.Kind, target.ID).
		Count(&rows).Error)
	assert.Equal(t, int64(2), rows)

	// toggling again removes the like
	liked, count, err = likeRepo.Toggle(target, userA.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 1, count)

	isLiked, err := likeRepo.IsLiked(target, userA.ID)
	require.NoError(t, err)
	assert.False(t, isLiked)
}

func TestLikeRepository_Toggle_TargetMissing(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	likeRepo := NewLikeRepository(testDB)
	user := seedUser(t, testDB, "like@example.com")

	_, _, err = likeRepo.Toggle(model.LikeTarget{Kind: model.LikeTargetReview, ID: 42}, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
