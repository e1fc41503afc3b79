package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/model"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/service"
	apperrors "github.com/wolfeagle1193/tukki-api-sub000/internal/errors"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/middleware"
	"github.com/wolfeagle1193/tukki-api-sub000/pkg/logger"
)

// EngagementController serves favorites, likes, reviews with replies, and
// the comment and photo walls, for every content collection.
type EngagementController struct {
	engagementService service.EngagementService
}

func NewEngagementController(engagementService service.EngagementService) *EngagementController {
	return &EngagementController{
		engagementService: engagementService,
	}
}

// respondEngagementError maps the engagement sentinels onto the API error
// taxonomy. Anything unmapped is treated as internal.
func respondEngagementError(c *gin.Context, log *logger.Logger, err error, context string) {
	switch {
	case errors.Is(err, service.ErrEntityNotFound):
		apperrors.NotFound(c, apperrors.EntityNotFound, "Not found")
	case errors.Is(err, service.ErrInvalidEntityKind):
		apperrors.BadRequest(c, apperrors.EntityInvalidKind, "Unknown content collection")
	case errors.Is(err, service.ErrReviewNotFound):
		apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
	case errors.Is(err, service.ErrReplyNotFound):
		apperrors.NotFound(c, apperrors.ReplyNotFound, "Reply not found")
	case errors.Is(err, service.ErrCommentNotFound):
		apperrors.NotFound(c, apperrors.CommentNotFound, "Comment not found")
	case errors.Is(err, service.ErrPhotoNotFound):
		apperrors.NotFound(c, apperrors.PhotoNotFound, "Photo not found")
	case errors.Is(err, service.ErrLikeTargetNotFound):
		apperrors.NotFound(c, apperrors.EngagementTargetNotFound, "Like target not found")
	case errors.Is(err, service.ErrInvalidLikeTarget):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown like target kind")
	case errors.Is(err, service.ErrDuplicateReview):
		apperrors.Conflict(c, apperrors.ReviewAlreadyExists, "You have already reviewed this place")
	case errors.Is(err, service.ErrConcurrentUpdate):
		apperrors.Conflict(c, apperrors.EngagementConflict, "The content was updated concurrently, please try again")
	case errors.Is(err, service.ErrForbidden):
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "Only the author or an admin can modify this")
	case errors.Is(err, service.ErrInvalidRating):
		apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "Rating must be between 1 and 5")
	case errors.Is(err, service.ErrContentRequired):
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Content is required")
	case errors.Is(err, service.ErrContentTooLong):
		apperrors.BadRequest(c, apperrors.ValidationTooLong, "Content exceeds the maximum length")
	case errors.Is(err, service.ErrWallUnsupported):
		apperrors.BadRequest(c, apperrors.CommentUnsupported, "Comments and photos are only available on regions and cultural sites")
	default:
		log.Error("Engagement operation failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, context)
	}
}

// ToggleFavorite handles POST /api/v1/{kind}/:id/favorite
func (ctrl *EngagementController) ToggleFavorite(kind model.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := middleware.GetLoggerFromContext(c)

		userID, exists := middleware.GetUserID(c)
		if !exists {
			apperrors.Unauthorized(c, "Authentication required")
			return
		}

		entityID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		result, err := ctrl.engagementService.ToggleFavorite(kind, entityID, userID)
		if err != nil {
			respondEngagementError(c, log, err, string(kind))
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// ListMyFavorites handles GET /api/v1/users/me/favorites
func (ctrl *EngagementController) ListMyFavorites(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	favorites, err := ctrl.engagementService.ListUserFavorites(userID)
	if err != nil {
		log.Error("Failed to list favorites", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favorites": favorites,
		"total":     len(favorites),
	})
}

// ToggleLike handles POST /api/v1/{kind}/:id/likes
func (ctrl *EngagementController) ToggleLike(kind model.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := middleware.GetLoggerFromContext(c)

		userID, exists := middleware.GetUserID(c)
		if !exists {
			apperrors.Unauthorized(c, "Authentication required")
			return
		}

		if _, ok := parseIDParam(c, "id"); !ok {
			return
		}

		var target model.LikeTarget
		if err := c.ShouldBindJSON(&target); err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "target_kind and target_id are required")
			return
		}

		result, err := ctrl.engagementService.ToggleLike(target, userID)
		if err != nil {
			respondEngagementError(c, log, err, string(target.Kind))
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// ListReviews handles GET /api/v1/{kind}/:id/reviews
func (ctrl *EngagementController) ListReviews(kind model.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := middleware.GetLoggerFromContext(c)

		entityID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var q model.ReviewListQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid query parameters")
			return
		}
		if q.Page < 1 {
			q.Page = 1
		}
		if q.Limit < 1 || q.Limit > 100 {
			q.Limit = 20
		}

		reviews, total, err := ctrl.engagementService.ListReviews(kind, entityID, &q)
		if err != nil {
			respondEngagementError(c, log, err, "review")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"reviews": reviews,
			"total":   total,
			"page":    q.Page,
			"limit":   q.Limit,
		})
	}
}

// AddReview handles POST /api/v1/{kind}/:id/reviews
func (ctrl *EngagementController) AddReview(kind model.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := middleware.GetLoggerFromContext(c)

		userID, exists := middleware.GetUserID(c)
		if !exists {
			apperrors.Unauthorized(c, "Authentication required")
			return
		}

		entityID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var req model.CreateReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Warn("Invalid review request", map[string]interface{}{
				"error": err.Error(),
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Rating (1-5) and content are required")
			return
		}

		review, err := ctrl.engagementService.AddReview(kind, entityID, userID, &req)
		if err != nil {
			respondEngagementError(c, log, err, "review")
			return
		}

		c.JSON(http.StatusCreated, review)
	}
}

// UpdateReview handles PUT /api/v1/{kind}/:id/reviews/:review_id
func (ctrl *EngagementController) UpdateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}
	role, _ := middleware.GetUserRole(c)

	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	var req model.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid review details")
		return
	}

	review, err := ctrl.engagementService.UpdateReview(reviewID, userID, role, &req)
	if err != nil {
		respondEngagementError(c, log, err, "review")
		return
	}

	c.JSON(http.StatusOK, review)
}

// DeleteReview handles DELETE /api/v1/{kind}/:id/reviews/:review_id
func (ctrl *EngagementController) DeleteReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}
	role, _ := middleware.GetUserRole(c)

	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	if err := ctrl.engagementService.DeleteReview(reviewID, userID, role); err != nil {
		respondEngagementError(c, log, err, "review")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review deleted successfully",
	})
}

// AddReply handles POST /api/v1/{kind}/:id/reviews/:review_id/replies
func (ctrl *EngagementController) AddReply(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	var req model.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Content is required")
		return
	}

	reply, err := ctrl.engagementService.AddReply(reviewID, userID, &req)
	if err != nil {
		respondEngagementError(c, log, err, "reply")
		return
	}

	c.JSON(http.StatusCreated, reply)
}

// DeleteReply handles DELETE /api/v1/{kind}/:id/reviews/:review_id/replies/:reply_id
func (ctrl *EngagementController) DeleteReply(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}
	role, _ := middleware.GetUserRole(c)

	replyID, ok := parseIDParam(c, "reply_id")
	if !ok {
		return
	}

	if err := ctrl.engagementService.DeleteReply(replyID, userID, role); err != nil {
		respondEngagementError(c, log, err, "reply")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reply deleted successfully",
	})
}

// ListComments handles GET /api/v1/{kind}/:id/comments
func (ctrl *EngagementController) ListComments(kind model.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := middleware.GetLoggerFromContext(c)

		entityID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		page, limit := paginationParams(c)
		comments, total, err := ctrl.engagementService.ListComments(kind, entityID, page, limit)
		if err != nil {
			respondEngagementError(c, log, err, "comment")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"comments": comments,
			"total":    total,
			"page":     page,
			"limit":    limit,
		})
	}
}

// AddComment handles POST /api/v1/{kind}/:id/comments
func (ctrl *EngagementController) AddComment(kind model.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := middleware.GetLoggerFromContext(c)

		userID, exists := middleware.GetUserID(c)
		if !exists {
			apperrors.Unauthorized(c, "Authentication required")
			return
		}

		entityID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var req model.CreateCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Content is required")
			return
		}

		comment, err := ctrl.engagementService.AddComment(kind, entityID, userID, &req)
		if err != nil {
			respondEngagementError(c, log, err, "comment")
			return
		}

		c.JSON(http.StatusCreated, comment)
	}
}

// DeleteComment handles DELETE /api/v1/{kind}/:id/comments/:comment_id
func (ctrl *EngagementController) DeleteComment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}
	role, _ := middleware.GetUserRole(c)

	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	if err := ctrl.engagementService.DeleteComment(commentID, userID, role); err != nil {
		respondEngagementError(c, log, err, "comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment deleted successfully",
	})
}

// ListPhotos handles GET /api/v1/{kind}/:id/photos
func (ctrl *EngagementController) ListPhotos(kind model.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := middleware.GetLoggerFromContext(c)

		entityID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		page, limit := paginationParams(c)
		photos, total, err := ctrl.engagementService.ListPhotos(kind, entityID, page, limit)
		if err != nil {
			respondEngagementError(c, log, err, "photo")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"photos": photos,
			"total":  total,
			"page":   page,
			"limit":  limit,
		})
	}
}

// AddPhoto handles POST /api/v1/{kind}/:id/photos
func (ctrl *EngagementController) AddPhoto(kind model.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := middleware.GetLoggerFromContext(c)

		userID, exists := middleware.GetUserID(c)
		if !exists {
			apperrors.Unauthorized(c, "Authentication required")
			return
		}

		entityID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var req model.CreatePhotoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A valid photo URL is required")
			return
		}

		photo, err := ctrl.engagementService.AddPhoto(kind, entityID, userID, &req)
		if err != nil {
			respondEngagementError(c, log, err, "photo")
			return
		}

		c.JSON(http.StatusCreated, photo)
	}
}

// DeletePhoto handles DELETE /api/v1/{kind}/:id/photos/:photo_id
func (ctrl *EngagementController) DeletePhoto(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}
	role, _ := middleware.GetUserRole(c)

	photoID, ok := parseIDParam(c, "photo_id")
	if !ok {
		return
	}

	if err := ctrl.engagementService.DeletePhoto(photoID, userID, role); err != nil {
		respondEngagementError(c, log, err, "photo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Photo deleted successfully",
	})
}

// paginationParams reads page/limit query params with the shared defaults.
func paginationParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
