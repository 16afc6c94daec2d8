package controller

import (
	"net/http"

	apperrors "github.com/beautique/beautique-backend/internal/errors"
	"github.com/beautique/beautique-backend/internal/middleware"
	"github.com/beautique/beautique-backend/internal/storage"
	"github.com/gin-gonic/gin"
)

const (
	maxUploadSize = 10 * 1024 * 1024 // 10MB
	uploadFolder  = "products"
)

var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
}

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(s3 *storage.S3Storage) *UploadController {
	return &UploadController{
		storage: s3,
	}
}

type PresignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	FileSize    int64  `json:"file_size" binding:"required,gt=0"`
}

// PresignUpload issues a pre-signed S3 PUT URL for a product image
// POST /api/v1/admin/uploads/presign
func (ctrl *UploadController) PresignUpload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	if err := ctrl.storage.ValidateContentType(req.ContentType, allowedImageTypes); err != nil {
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.UploadInvalidFileType, "Only JPEG, PNG and WebP images are allowed")
		return
	}
	if err := ctrl.storage.ValidateFileSize(req.FileSize, maxUploadSize); err != nil {
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.UploadFileTooLarge, "Image must be 10MB or smaller")
		return
	}

	presigned, err := ctrl.storage.GeneratePresignedURL(req.Filename, req.ContentType, uploadFolder)
	if err != nil {
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"filename": req.Filename,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to prepare upload")
		return
	}

	log.Info("Presigned upload URL issued", map[string]interface{}{
		"key": presigned.Key,
	})

	c.JSON(http.StatusOK, presigned)
}
