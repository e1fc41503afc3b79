package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/wolfeagle1193/tukki-api-sub000/internal/errors"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/middleware"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/storage"
)

// allowedImageTypes lists content types accepted for photo uploads.
var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

// allowedUploadFolders keeps clients from writing outside the known prefixes.
var allowedUploadFolders = map[string]bool{
	"entity-photos":  true,
	"profile-images": true,
	"cms-assets":     true,
}

type UploadController struct {
	s3Storage *storage.S3Storage
}

func NewUploadController(s3Storage *storage.S3Storage) *UploadController {
	return &UploadController{
		s3Storage: s3Storage,
	}
}

type PresignedURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Folder      string `json:"folder"`
}

// GetPresignedURL issues a pre-signed S3 PUT URL for a direct upload
// POST /api/v1/upload/presigned-url
func (ctrl *UploadController) GetPresignedURL(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "filename and content_type are required")
		return
	}

	if err := ctrl.s3Storage.ValidateContentType(req.ContentType, allowedImageTypes); err != nil {
		log.Warn("Rejected upload content type", map[string]interface{}{
			"content_type": req.ContentType,
		})
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only JPEG, PNG, GIF and WebP images are allowed")
		return
	}

	folder := req.Folder
	if folder == "" {
		folder = "entity-photos"
	}
	if !allowedUploadFolders[folder] {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown upload folder")
		return
	}

	resp, err := ctrl.s3Storage.GeneratePresignedURL(req.Filename, req.ContentType, folder)
	if err != nil {
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"filename": req.Filename,
			"folder":   folder,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to prepare upload")
		return
	}

	c.JSON(http.StatusOK, resp)
}
