package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"citypulse/media"
	"citypulse/processor"
)

// Upload receives one media file and runs the full incident pipeline on it.
func Upload(c *gin.Context, p *processor.Processor) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	mimeType := file.Header.Get("Content-Type")
	dst := filepath.Join(os.TempDir(), "upload-"+uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}

	result, err := p.ProcessUpload(c.Request.Context(), dst, file.Filename, mimeType)
	if err != nil {
		media.RemoveFile(dst)
		if errors.Is(err, media.ErrUnsupportedMedia) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Upload or processing failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
