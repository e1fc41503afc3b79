package service

import (
	"errors"

	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/model"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/repository"
	"github.com/wolfeagle1193/tukki-api-sub000/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrEntityNotFound     = errors.New("entity not found")
	ErrInvalidEntityKind  = errors.New("unknown entity kind")
	ErrReviewNotFound     = errors.New("review not found")
	ErrReplyNotFound      = errors.New("reply not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrPhotoNotFound      = errors.New("photo not found")
	ErrLikeTargetNotFound = errors.New("like target not found")
	ErrInvalidLikeTarget  = errors.New("unknown like target kind")
	ErrDuplicateReview    = errors.New("user has already reviewed this entity")
	ErrConcurrentUpdate   = errors.New("conflicting concurrent update, please retry")
	ErrForbidden          = errors.New("not allowed to modify this content")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrContentRequired    = errors.New("content is required")
	ErrContentTooLong     = errors.New("content exceeds maximum length")
	ErrWallUnsupported    = errors.New("comments and photos are only available on regions and treasures")
)

const (
	maxReviewContentLen  = 1000
	maxCommentContentLen = 500

	// conflictRetries bounds re-reads when a stats commit loses the race.
	conflictRetries = 3
)

const (
	// toggle outcomes
	ToggleAdded   = "added"
	ToggleRemoved = "removed"
)

// FavoriteResult reports the outcome of a favorite toggle.
type FavoriteResult struct {
	Action         string `json:"action"` // "added" or "removed"
	FavoritesCount int    `json:"favorites_count"`
}

// LikeResult reports the outcome of a like toggle.
type LikeResult struct {
	Action string `json:"action"` // "added" or "removed"
	Likes  int    `json:"likes"`
}

func toggleAction(added bool) string {
	if added {
		return ToggleAdded
	}
	return ToggleRemoved
}

// EngagementService is the single entry point for social interactions on
// the five content collections: favorites, likes, reviews with replies, and
// the comment and photo walls. All mutations validate input, enforce the
// author-or-admin rule, and retry bounded times on concurrent aggregate
// updates.
type EngagementService interface {
	ToggleFavorite(kind model.EntityKind, entityID, userID uint) (*FavoriteResult, error)
	ListUserFavorites(userID uint) ([]model.Favorite, error)

	ToggleLike(target model.LikeTarget, userID uint) (*LikeResult, error)

	AddReview(kind model.EntityKind, entityID, userID uint, req *model.CreateReviewRequest) (*model.Review, error)
	UpdateReview(reviewID, actorID uint, role model.UserRole, req *model.UpdateReviewRequest) (*model.Review, error)
	DeleteReview(reviewID, actorID uint, role model.UserRole) error
	ListReviews(kind model.EntityKind, entityID uint, q *model.ReviewListQuery) ([]model.Review, int64, error)

	AddReply(reviewID, userID uint, req *model.CreateReplyRequest) (*model.ReviewReply, error)
	DeleteReply(replyID, actorID uint, role model.UserRole) error

	AddComment(kind model.EntityKind, entityID, userID uint, req *model.CreateCommentRequest) (*model.EntityComment, error)
	ListComments(kind model.EntityKind, entityID uint, page, limit int) ([]model.EntityComment, int64, error)
	DeleteComment(commentID, actorID uint, role model.UserRole) error

	AddPhoto(kind model.EntityKind, entityID, userID uint, req *model.CreatePhotoRequest) (*model.EntityPhoto, error)
	ListPhotos(kind model.EntityKind, entityID uint, page, limit int) ([]model.EntityPhoto, int64, error)
	DeletePhoto(photoID, actorID uint, role model.UserRole) error
}

type engagementService struct {
	entityRepo   repository.EntityRepository
	reviewRepo   repository.ReviewRepository
	favoriteRepo repository.FavoriteRepository
	likeRepo     repository.LikeRepository
	commentRepo  repository.CommentRepository
	userRepo     repository.UserRepository
}

func NewEngagementService(
	entityRepo repository.EntityRepository,
	reviewRepo repository.ReviewRepository,
	favoriteRepo repository.FavoriteRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
) EngagementService {
	return &engagementService{
		entityRepo:   entityRepo,
		reviewRepo:   reviewRepo,
		favoriteRepo: favoriteRepo,
		likeRepo:     likeRepo,
		commentRepo:  commentRepo,
		userRepo:     userRepo,
	}
}

// withRetry runs op again after a version conflict, up to conflictRetries
// attempts in total. Any other error passes through unchanged.
func (s *engagementService) withRetry(op func() error) error {
	var err error
	for attempt := 1; attempt <= conflictRetries; attempt++ {
		err = op()
		if !errors.Is(err, repository.ErrVersionConflict) {
			return err
		}
		logger.Warn("Engagement update lost version race, retrying", map[string]interface{}{
			"attempt": attempt,
		})
	}
	return ErrConcurrentUpdate
}

func (s *engagementService) ToggleFavorite(kind model.EntityKind, entityID, userID uint) (*FavoriteResult, error) {
	if !kind.Valid() {
		return nil, ErrInvalidEntityKind
	}

	var result FavoriteResult
	err := s.withRetry(func() error {
		favorited, count, err := s.favoriteRepo.Toggle(kind, entityID, userID)
		if err != nil {
			return err
		}
		result = FavoriteResult{Action: toggleAction(favorited), FavoritesCount: count}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}

	logger.Info("Favorite toggled", map[string]interface{}{
		"kind":            kind,
		"entity_id":       entityID,
		"user_id":         userID,
		"action":          result.Action,
		"favorites_count": result.FavoritesCount,
	})
	return &result, nil
}

func (s *engagementService) ListUserFavorites(userID uint) ([]model.Favorite, error) {
	return s.favoriteRepo.ListByUser(userID)
}

func (s *engagementService) ToggleLike(target model.LikeTarget, userID uint) (*LikeResult, error) {
	if !target.Kind.Valid() {
		return nil, ErrInvalidLikeTarget
	}

	var result LikeResult
	err := s.withRetry(func() error {
		liked, count, err := s.likeRepo.Toggle(target, userID)
		if err != nil {
			return err
		}
		result = LikeResult{Action: toggleAction(liked), Likes: count}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLikeTargetNotFound
		}
		return nil, err
	}

	logger.Info("Like toggled", map[string]interface{}{
		"target_kind": target.Kind,
		"target_id":   target.ID,
		"user_id":     userID,
		"action":      result.Action,
	})
	return &result, nil
}

func (s *engagementService) AddReview(kind model.EntityKind, entityID, userID uint, req *model.CreateReviewRequest) (*model.Review, error) {
	if !kind.Valid() {
		return nil, ErrInvalidEntityKind
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if req.Content == "" {
		return nil, ErrContentRequired
	}
	if len(req.Content) > maxReviewContentLen {
		return nil, ErrContentTooLong
	}

	exists, err := s.entityRepo.Exists(kind, entityID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrEntityNotFound
	}

	if _, err := s.reviewRepo.FindByEntityAndUser(kind, entityID, userID); err == nil {
		logger.Warn("Duplicate review rejected", map[string]interface{}{
			"kind":      kind,
			"entity_id": entityID,
			"user_id":   userID,
		})
		return nil, ErrDuplicateReview
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	review := &model.Review{
		EntityType: kind,
		EntityID:   entityID,
		UserID:     userID,
		AuthorName: user.Name,
		Rating:     req.Rating,
		Content:    req.Content,
	}

	err = s.withRetry(func() error {
		return s.reviewRepo.Create(review)
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			// lost the insert race to the same user's other request
			return nil, ErrDuplicateReview
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id": review.ID,
		"kind":      kind,
		"entity_id": entityID,
		"user_id":   userID,
		"rating":    review.Rating,
	})
	return s.reviewRepo.GetByID(review.ID)
}

func (s *engagementService) UpdateReview(reviewID, actorID uint, role model.UserRole, req *model.UpdateReviewRequest) (*model.Review, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	if !model.CanMutate(role, actorID, review.UserID) {
		logger.Warn("Review update forbidden", map[string]interface{}{
			"review_id": reviewID,
			"actor_id":  actorID,
			"author_id": review.UserID,
		})
		return nil, ErrForbidden
	}

	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, ErrInvalidRating
		}
		review.Rating = *req.Rating
	}
	if req.Content != nil {
		if *req.Content == "" {
			return nil, ErrContentRequired
		}
		if len(*req.Content) > maxReviewContentLen {
			return nil, ErrContentTooLong
		}
		review.Content = *req.Content
	}

	err = s.withRetry(func() error {
		return s.reviewRepo.Update(review)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}

	logger.Info("Review updated", map[string]interface{}{
		"review_id": review.ID,
		"actor_id":  actorID,
	})
	return s.reviewRepo.GetByID(review.ID)
}

func (s *engagementService) DeleteReview(reviewID, actorID uint, role model.UserRole) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if !model.CanMutate(role, actorID, review.UserID) {
		logger.Warn("Review delete forbidden", map[string]interface{}{
			"review_id": reviewID,
			"actor_id":  actorID,
			"author_id": review.UserID,
		})
		return ErrForbidden
	}

	err = s.withRetry(func() error {
		return s.reviewRepo.Delete(review)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	logger.Info("Review deleted", map[string]interface{}{
		"review_id": reviewID,
		"actor_id":  actorID,
	})
	return nil
}

func (s *engagementService) ListReviews(kind model.EntityKind, entityID uint, q *model.ReviewListQuery) ([]model.Review, int64, error) {
	if !kind.Valid() {
		return nil, 0, ErrInvalidEntityKind
	}

	exists, err := s.entityRepo.Exists(kind, entityID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, ErrEntityNotFound
	}

	return s.reviewRepo.ListByEntity(kind, entityID, q)
}

func (s *engagementService) AddReply(reviewID, userID uint, req *model.CreateReplyRequest) (*model.ReviewReply, error) {
	if req.Content == "" {
		return nil, ErrContentRequired
	}
	if len(req.Content) > maxReviewContentLen {
		return nil, ErrContentTooLong
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	reply := &model.ReviewReply{
		ReviewID:   reviewID,
		UserID:     userID,
		AuthorName: user.Name,
		Content:    req.Content,
	}

	if err := s.reviewRepo.CreateReply(reply); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	logger.Info("Reply created", map[string]interface{}{
		"reply_id":  reply.ID,
		"review_id": reviewID,
		"user_id":   userID,
	})
	return s.reviewRepo.GetReplyByID(reply.ID)
}

func (s *engagementService) DeleteReply(replyID, actorID uint, role model.UserRole) error {
	reply, err := s.reviewRepo.GetReplyByID(replyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReplyNotFound
		}
		return err
	}

	if !model.CanMutate(role, actorID, reply.UserID) {
		return ErrForbidden
	}

	if err := s.reviewRepo.DeleteReply(reply); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReplyNotFound
		}
		return err
	}

	logger.Info("Reply deleted", map[string]interface{}{
		"reply_id": replyID,
		"actor_id": actorID,
	})
	return nil
}

func (s *engagementService) AddComment(kind model.EntityKind, entityID, userID uint, req *model.CreateCommentRequest) (*model.EntityComment, error) {
	if !kind.Valid() {
		return nil, ErrInvalidEntityKind
	}
	if !kind.HasCommentWall() {
		return nil, ErrWallUnsupported
	}
	if req.Content == "" {
		return nil, ErrContentRequired
	}
	if len(req.Content) > maxCommentContentLen {
		return nil, ErrContentTooLong
	}

	exists, err := s.entityRepo.Exists(kind, entityID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrEntityNotFound
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	comment := &model.EntityComment{
		EntityType: kind,
		EntityID:   entityID,
		UserID:     userID,
		AuthorName: user.Name,
		Content:    req.Content,
	}

	if err := s.commentRepo.CreateComment(comment); err != nil {
		return nil, err
	}

	logger.Info("Comment created", map[string]interface{}{
		"comment_id": comment.ID,
		"kind":       kind,
		"entity_id":  entityID,
		"user_id":    userID,
	})
	return comment, nil
}

func (s *engagementService) ListComments(kind model.EntityKind, entityID uint, page, limit int) ([]model.EntityComment, int64, error) {
	if !kind.Valid() {
		return nil, 0, ErrInvalidEntityKind
	}
	if !kind.HasCommentWall() {
		return nil, 0, ErrWallUnsupported
	}

	exists, err := s.entityRepo.Exists(kind, entityID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, ErrEntityNotFound
	}

	offset := (page - 1) * limit
	return s.commentRepo.ListCommentsByEntity(kind, entityID, offset, limit)
}

func (s *engagementService) DeleteComment(commentID, actorID uint, role model.UserRole) error {
	comment, err := s.commentRepo.GetCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if !model.CanMutate(role, actorID, comment.UserID) {
		return ErrForbidden
	}

	if err := s.commentRepo.DeleteComment(comment); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	logger.Info("Comment deleted", map[string]interface{}{
		"comment_id": commentID,
		"actor_id":   actorID,
	})
	return nil
}

func (s *engagementService) AddPhoto(kind model.EntityKind, entityID, userID uint, req *model.CreatePhotoRequest) (*model.EntityPhoto, error) {
	if !kind.Valid() {
		return nil, ErrInvalidEntityKind
	}
	if !kind.HasCommentWall() {
		return nil, ErrWallUnsupported
	}
	if req.URL == "" {
		return nil, ErrContentRequired
	}

	exists, err := s.entityRepo.Exists(kind, entityID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrEntityNotFound
	}

	photo := &model.EntityPhoto{
		EntityType: kind,
		EntityID:   entityID,
		UserID:     userID,
		URL:        req.URL,
		Caption:    req.Caption,
	}

	if err := s.commentRepo.CreatePhoto(photo); err != nil {
		return nil, err
	}

	logger.Info("Photo created", map[string]interface{}{
		"photo_id":  photo.ID,
		"kind":      kind,
		"entity_id": entityID,
		"user_id":   userID,
	})
	return photo, nil
}

func (s *engagementService) ListPhotos(kind model.EntityKind, entityID uint, page, limit int) ([]model.EntityPhoto, int64, error) {
	if !kind.Valid() {
		return nil, 0, ErrInvalidEntityKind
	}
	if !kind.HasCommentWall() {
		return nil, 0, ErrWallUnsupported
	}

	exists, err := s.entityRepo.Exists(kind, entityID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, ErrEntityNotFound
	}

	offset := (page - 1) * limit
	return s.commentRepo.ListPhotosByEntity(kind, entityID, offset, limit)
}

func (s *engagementService) DeletePhoto(photoID, actorID uint, role model.UserRole) error {
	photo, err := s.commentRepo.GetPhotoByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPhotoNotFound
		}
		return err
	}

	if !model.CanMutate(role, actorID, photo.UserID) {
		return ErrForbidden
	}

	if err := s.commentRepo.DeletePhoto(photo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPhotoNotFound
		}
		return err
	}

	logger.Info("Photo deleted", map[string]interface{}{
		"photo_id": photoID,
		"actor_id": actorID,
	})
	return nil
}
