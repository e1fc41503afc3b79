package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/model"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/repository"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/db"
	"gorm.io/gorm"
)

func setupEngagementTest(t *testing.T) (*gorm.DB, EngagementService) {
	t.Helper()
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	svc := NewEngagementService(
		repository.NewEntityRepository(testDB),
		repository.NewReviewRepository(testDB),
		repository.NewFavoriteRepository(testDB),
		repository.NewLikeRepository(testDB),
		repository.NewCommentRepository(testDB),
		repository.NewUserRepository(testDB),
	)
	return testDB, svc
}

func createTestUser(t *testing.T, testDB *gorm.DB, email string, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		Name:         "Test User",
		Role:         role,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func createTestHotel(t *testing.T, testDB *gorm.DB, title string) *model.Hotel {
	t.Helper()
	hotel := &model.Hotel{Title: title, Location: "Jeju"}
	require.NoError(t, testDB.Create(hotel).Error)
	return hotel
}

func createTestRegion(t *testing.T, testDB *gorm.DB, title string) *model.Region {
	t.Helper()
	region := &model.Region{Title: title}
	require.NoError(t, testDB.Create(region).Error)
	return region
}

func TestEngagementService_ToggleFavorite(t *testing.T) {
	testDB, svc := setupEngagementTest(t)
	defer db.CleanupTestDB(testDB)

	user := createTestUser(t, testDB, "fav@example.com", model.RoleUser)
	hotel := createTestHotel(t, testDB, "Toggle Hotel")

	result, err := svc.ToggleFavorite(model.KindHotel, hotel.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, ToggleAdded, result.Action)
	assert.Equal(t, 1, result.FavoritesCount)

	// a second toggle undoes the first
	result, err = svc.ToggleFavorite(model.KindHotel, hotel.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, ToggleRemoved, result.Action)
	assert.Equal(t, 0, result.FavoritesCount)

	favorites, err := svc.ListUserFavorites(user.ID)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestEngagementService_ToggleFavorite_Errors(t *testing.T) {
	testDB, svc := setupEngagementTest(t)
	defer db.CleanupTestDB(testDB)

	user := createTestUser(t, testDB, "fav@example.com", model.RoleUser)

	_, err := svc.ToggleFavorite(model.KindHotel, 999, user.ID)
	assert.ErrorIs(t, err, ErrEntityNotFound)

	_, err = svc.ToggleFavorite(model.EntityKind("museum"), 1, user.ID)
	assert.ErrorIs(t, err, ErrInvalidEntityKind)
}

func TestEngagementService_AddReview(t *testing.T) {
	testDB, svc := setupEngagementTest(t)
	defer db.CleanupTestDB(testDB)

	user := createTestUser(t, testDB, "reviewer@example.com", model.RoleUser)
	hotel := createTestHotel(t, testDB, "Review Hotel")

	review, err := svc.AddReview(model.KindHotel, hotel.ID, user.ID, &model.CreateReviewRequest{
		Rating:  4,
		Content: "Clean rooms, friendly staff",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, user.Name, review.AuthorName)

	// one review per user per entity
	_, err = svc.AddReview(model.KindHotel, hotel.ID, user.ID, &model.CreateReviewRequest{
		Rating:  5,
		Content: "Trying again",
	})
	assert.ErrorIs(t, err, ErrDuplicateReview)
}

func TestEngagementService_AddReview_Validation(t *testing.T) {
	testDB, svc := setupEngagementTest(t)
	defer db.CleanupTestDB(testDB)

	user := createTestUser(t, testDB, "reviewer@example.com", model.RoleUser)
	hotel := createTestHotel(t, testDB, "Validation Hotel")

	tests := []struct {
		name    string
		req     *model.CreateReviewRequest
		wantErr error
	}{
		{
			name:    "Rating too low",
			req:     &model.CreateReviewRequest{Rating: 0, Content: "No stars"},
			wantErr: ErrInvalidRating,
		},
		{
			name:    "Rating too high",
			req:     &model.CreateReviewRequest{Rating: 6, Content: "Six stars"},
			wantErr: ErrInvalidRating,
		},
		{
			name:    "Empty content",
			req:     &model.CreateReviewRequest{Rating: 3, Content: ""},
			wantErr: ErrContentRequired,
		},
		{
			name:    "Content too long",
			req:     &model.CreateReviewRequest{Rating: 3, Content: strings.Repeat("a", 1001)},
			wantErr: ErrContentTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddReview(model.KindHotel, hotel.ID, user.ID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := svc.AddReview(model.KindHotel, 999, user.ID, &model.CreateReviewRequest{
		Rating:  3,
		Content: "Ghost hotel",
	})
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestEngagementService_UpdateReview_Authorization(t *testing.T) {
	testDB, svc := setupEngagementTest(t)
	defer db.CleanupTestDB(testDB)

	author := createTestUser(t, testDB, "author@example.com", model.RoleUser)
	stranger := createTestUser(t, testDB, "stranger@example.com", model.RoleUser)
	admin := createTestUser(t, testDB, "admin@example.com", model.RoleAdmin)
	hotel := createTestHotel(t, testDB, "Authz Hotel")

	review, err := svc.AddReview(model.KindHotel, hotel.ID, author.ID, &model.CreateReviewRequest{
		Rating:  3,
		Content: "Average",
	})
	require.NoError(t, err)

	newRating := 5

	// another user cannot edit someone else's review
	_, err = svc.UpdateReview(review.ID, stranger.ID, stranger.Role, &model.UpdateReviewRequest{Rating: &newRating})
	assert.ErrorIs(t, err, ErrForbidden)

	// the author can
	updated, err := svc.UpdateReview(review.ID, author.ID, author.Role, &model.UpdateReviewRequest{Rating: &newRating})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)

	// and so can an admin
	newContent := "Moderated content"
	updated, err = svc.UpdateReview(review.ID, admin.ID, admin.Role, &model.UpdateReviewRequest{Content: &newContent})
	require.NoError(t, err)
	assert.Equal(t, "Moderated content", updated.Content)
}

func TestEngagementService_DeleteReview(t *testing.T) {
	testDB, svc := setupEngagementTest(t)
	defer db.CleanupTestDB(testDB)

	author := createTestUser(t, testDB, "author@example.com", model.RoleUser)
	stranger := createTestUser(t, testDB, "stranger@example.com", model.RoleUser)
	hotel := createTestHotel(t, testDB, "Delete Hotel")

	review, err := svc.AddReview(model.KindHotel, hotel.ID, author.ID, &model.CreateReviewRequest{
		Rating:  2,
		Content: "Disappointing",
	})
	require.NoError(t, err)

	reply, err := svc.AddReply(review.ID, stranger.ID, &model.CreateReplyRequest{Content: "Same experience"})
	require.NoError(t, err)

	err = svc.DeleteReview(review.ID, stranger.ID, stranger.Role)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.DeleteReview(review.ID, author.ID, author.Role))

	err = svc.DeleteReview(review.ID, author.ID, author.Role)
	assert.ErrorIs(t, err, ErrReviewNotFound)

	// replies go down with the review
	err = svc.DeleteReply(reply.ID, stranger.ID, stranger.Role)
	assert.ErrorIs(t, err, ErrReplyNotFound)

	// and new replies cannot attach to it either
	_, err = svc.AddReply(review.ID, stranger.ID, &model.CreateReplyRequest{Content: "Too late"})
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestEngagementService_ReviewAggregates(t *testing.T) {
	testDB, svc := setupEngagementTest(t)
	defer db.CleanupTestDB(testDB)

	userA := createTestUser(t, testDB, "agg-a@example.com", model.RoleUser)
	userB := createTestUser(t, testDB, "agg-b@example.com", model.RoleUser)
	hotel := createTestHotel(t, testDB, "Average Hotel")

	_, err := svc.AddReview(model.KindHotel, hotel.ID, userA.ID, &model.CreateReviewRequest{
		Rating:  4,
		Content: "Good",
	})
	require.NoError(t, err)
	reviewB, err := svc.AddReview(model.KindHotel, hotel.ID, userB.ID, &model.CreateReviewRequest{
		Rating:  5,
		Content: "Great",
	})
	require.NoError(t, err)

	var stored model.Hotel
	require.NoError(t, testDB.First(&stored, hotel.ID).Error)
	assert.Equal(t, 2, stored.TotalReviews)
	assert.Equal(t, 4.5, stored.AverageRating)

	require.NoError(t, svc.DeleteReview(reviewB.ID, userB.ID, userB.Role))

	require.NoError(t, testDB.First(&stored, hotel.ID).Error)
	assert.Equal(t, 1, stored.TotalReviews)
	assert.Equal(t, 4.0, stored.AverageRating)
}

func TestEngagementService_ToggleLike(t *testing.T) {
	testDB, svc := setupEngagementTest(t)
	defer db.CleanupTestDB(testDB)

	author := createTestUser(t, testDB, "author@example.com", model.RoleUser)
	liker := createTestUser(t, testDB, "liker@example.com", model.RoleUser)
	hotel := createTestHotel(t, testDB, "Like Hotel")

	review, err := svc.AddReview(model.KindHotel, hotel.ID, author.ID, &model.CreateReviewRequest{
		Rating:  4,
		Content: "Likeable",
	})
	require.NoError(t, err)

	target := model.LikeTarget{Kind: model.LikeTargetReview, ID: review.ID}

	result, err := svc.ToggleLike(target, liker.ID)
	require.NoError(t, err)
	assert.Equal(t, ToggleAdded, result.Action)
	assert.Equal(t, 1, result.Likes)

	result, err = svc.ToggleLike(target, liker.ID)
	require.NoError(t, err)
	assert.Equal(t, ToggleRemoved, result.Action)
	assert.Equal(t, 0, result.Likes)

	_, err = svc.ToggleLike(model.LikeTarget{Kind: model.LikeTargetReview, ID: 999}, liker.ID)
	assert.ErrorIs(t, err, ErrLikeTargetNotFound)

	_, err = svc.ToggleLike(model.LikeTarget{Kind: "bookmark", ID: review.ID}, liker.ID)
	assert.ErrorIs(t, err, ErrInvalidLikeTarget)
}

func TestEngagementService_CommentWall(t *testing.T) {
	testDB, svc := setupEngagementTest(t)
	defer db.CleanupTestDB(testDB)

	user := createTestUser(t, testDB, "wall@example.com", model.RoleUser)
	region := createTestRegion(t, testDB, "Seongsan")
	hotel := createTestHotel(t, testDB, "Wall Hotel")

	comment, err := svc.AddComment(model.KindRegion, region.ID, user.ID, &model.CreateCommentRequest{
		Content: "Sunrise was worth the climb",
	})
	require.NoError(t, err)
	assert.Equal(t, user.Name, comment.AuthorName)

	comments, total, err := svc.ListComments(model.KindRegion, region.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, comments, 1)

	// hotels have no wall
	_, err = svc.AddComment(model.KindHotel, hotel.ID, user.ID, &model.CreateCommentRequest{
		Content: "Not allowed here",
	})
	assert.ErrorIs(t, err, ErrWallUnsupported)

	_, _, err = svc.ListComments(model.KindHotel, hotel.ID, 1, 20)
	assert.ErrorIs(t, err, ErrWallUnsupported)

	_, err = svc.AddComment(model.KindRegion, region.ID, user.ID, &model.CreateCommentRequest{
		Content: strings.Repeat("a", 501),
	})
	assert.ErrorIs(t, err, ErrContentTooLong)

	require.NoError(t, svc.DeleteComment(comment.ID, user.ID, user.Role))

	err = svc.DeleteComment(comment.ID, user.ID, user.Role)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestEngagementService_PhotoWall(t *testing.T) {
	testDB, svc := setupEngagementTest(t)
	defer db.CleanupTestDB(testDB)

	user := createTestUser(t, testDB, "photo@example.com", model.RoleUser)
	stranger := createTestUser(t, testDB, "stranger@example.com", model.RoleUser)
	region := createTestRegion(t, testDB, "Udo")

	photo, err := svc.AddPhoto(model.KindRegion, region.ID, user.ID, &model.CreatePhotoRequest{
		URL:     "https://cdn.example.com/udo.jpg",
		Caption: "Lighthouse",
	})
	require.NoError(t, err)

	photos, total, err := svc.ListPhotos(model.KindRegion, region.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, photos, 1)

	err = svc.DeletePhoto(photo.ID, stranger.ID, stranger.Role)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.DeletePhoto(photo.ID, user.ID, user.Role))

	err = svc.DeletePhoto(photo.ID, user.ID, user.Role)
	assert.ErrorIs(t, err, ErrPhotoNotFound)
}

func TestEngagementService_ListReviews(t *testing.T) {
	testDB, svc := setupEngagementTest(t)
	defer db.CleanupTestDB(testDB)

	hotel := createTestHotel(t, testDB, "List Hotel")
	for i, email := range []string{"r1@example.com", "r2@example.com", "r3@example.com"} {
		user := createTestUser(t, testDB, email, model.RoleUser)
		_, err := svc.AddReview(model.KindHotel, hotel.ID, user.ID, &model.CreateReviewRequest{
			Rating:  i + 3,
			Content: "Listed review",
		})
		require.NoError(t, err)
	}

	reviews, total, err := svc.ListReviews(model.KindHotel, hotel.ID, &model.ReviewListQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, reviews, 2)

	_, _, err = svc.ListReviews(model.KindHotel, 999, &model.ReviewListQuery{Page: 1, Limit: 2})
	assert.ErrorIs(t, err, ErrEntityNotFound)
}
