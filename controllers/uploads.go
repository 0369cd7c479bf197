package controllers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"smartclaim-api/config"
	"smartclaim-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type uploadedFile struct {
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
	FileSize int64  `json:"file_size"`
	MimeType string `json:"mime_type"`
}

// UploadAttachments stores receipt files in object storage and returns their
// metadata for a subsequent CreateClaim call. Uploading first keeps the claim
// transaction free of storage calls: a claim row never references a file
// that failed to upload.
func UploadAttachments(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}

	userID := c.GetString("userID")
	uploaded := make([]uploadedFile, 0, len(files))

	for _, header := range files {
		mimeType := header.Header.Get("Content-Type")
		if !models.AllowedAttachmentType(mimeType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only JPG, PNG or PDF attachments are allowed"})
			return
		}
		if header.Size > models.MaxAttachmentSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Attachment exceeds the maximum file size"})
			return
		}

		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
			return
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
			return
		}

		// Owner-prefixed random key so concurrent uploads never collide.
		ext := strings.ToLower(filepath.Ext(header.Filename))
		key := fmt.Sprintf("%s/%d-%s%s", userID, time.Now().UnixMilli(), uuid.NewString()[:8], ext)

		url, err := config.Storage.Store(key, mimeType, content)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded file"})
			return
		}

		uploaded = append(uploaded, uploadedFile{
			FileName: header.Filename,
			FileURL:  url,
			FileSize: header.Size,
			MimeType: mimeType,
		})
	}

	c.JSON(http.StatusCreated, gin.H{"files": uploaded})
}
