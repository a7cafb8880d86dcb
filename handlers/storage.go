package handlers

import (
	"net/http"

	"shopspotlight/services/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxUploadBytes caps a single image upload at 5 MB.
const maxUploadBytes = 5 << 20

// StorageHandler handles image uploads for profile photos and shop images.
type StorageHandler struct {
	Svc storage.StorageService
}

// Upload stores a multipart image into the named bucket under the caller's
// own prefix and returns the public URL.
func (h *StorageHandler) Upload(c *gin.Context) {
	logger := getLogger(c)

	bucket := c.Param("bucket")
	if !storage.AllowedBucket(bucket) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bucket; allowed values are 'profile-photos' and 'shop-images'"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds the 5 MB limit"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file", "detail": err.Error()})
		return
	}
	defer f.Close()

	url, err := h.Svc.Upload(c.Request.Context(), bucket, actorID(c), fileHeader.Filename, f)
	if err != nil {
		logger.Error("Upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload file"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
