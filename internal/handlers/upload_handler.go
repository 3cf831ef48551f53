package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/01moynul/marketpro-admin/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadSettings says where product images go and how they are addressed.
type UploadSettings struct {
	Dir      string
	BaseURL  string
	MaxBytes int64
}

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadImage handles POST /api/uploads/images. The stored file gets a uuid
// name; the returned URL is what goes into a product's image field.
func (h *Handlers) UploadImage(c *gin.Context) {
	if h.Uploads.MaxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Uploads.MaxBytes)
	}

	// 1. Get the file from the request
	file, err := c.FormFile("file")
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		jsonError(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("File is larger than %d bytes", tooBig.Limit))
		return
	}
	if err != nil {
		jsonError(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExts[ext] {
		jsonError(c, http.StatusBadRequest, "Only jpg, png, gif and webp images are accepted")
		return
	}

	// 2. Create the upload directory if it doesn't exist
	if err := os.MkdirAll(h.Uploads.Dir, 0o755); err != nil {
		logging.FromContext(c.Request.Context()).Error("create upload dir", "dir", h.Uploads.Dir, "error", err)
		jsonError(c, http.StatusInternalServerError, "Failed to save file")
		return
	}

	// 3. Save under a unique name
	name := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(h.Uploads.Dir, name)); err != nil {
		logging.FromContext(c.Request.Context()).Error("save upload", "error", err)
		jsonError(c, http.StatusInternalServerError, "Failed to save file")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url": fmt.Sprintf("%s/uploads/%s", h.Uploads.BaseURL, name),
	})
}
