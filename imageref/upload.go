package imageref

import (
	"errors"
	"fmt"
	"math/rand"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/jewelry-api/apperr"
)

var allowedImageTypes = []string{"jpeg", "jpg", "png", "gif", "webp"}

// Uploader stores product images on local disk under Dir/products.
type Uploader struct {
	Dir      string
	MaxBytes int64
}

func NewUploader(dir string, maxBytes int64) *Uploader {
	return &Uploader{Dir: dir, MaxBytes: maxBytes}
}

// Save stores the multipart file in field and returns its generated name.
// Requests without a file yield "" and no error.
func (u *Uploader) Save(c *gin.Context, field string) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
	if mediaType != "multipart/form-data" {
		return "", nil
	}

	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", apperr.Validation("Could not read the uploaded image.")
	}

	if u.MaxBytes > 0 && fh.Size > u.MaxBytes {
		return "", apperr.Validation(fmt.Sprintf("Image must not exceed %d bytes.", u.MaxBytes))
	}

	ext := filepath.Ext(fh.Filename)
	if !allowedType(strings.TrimPrefix(strings.ToLower(ext), ".")) || !allowedMIME(fh.Header.Get("Content-Type")) {
		return "", apperr.Validation("Only image files (jpeg, jpg, png, gif, webp) are allowed.")
	}

	dir := filepath.Join(u.Dir, "products")
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", apperr.Internal("Failed to create upload folder.", err)
	}

	name := GenerateFilename(ext, time.Now())
	if err := c.SaveUploadedFile(fh, filepath.Join(dir, name)); err != nil {
		return "", apperr.Internal("Failed to save image.", err)
	}
	return name, nil
}

// GenerateFilename builds product-<unix millis>-<random><ext>.
func GenerateFilename(ext string, now time.Time) string {
	return fmt.Sprintf("product-%d-%d%s", now.UnixMilli(), rand.Intn(1e9), ext)
}

func allowedType(t string) bool {
	for _, a := range allowedImageTypes {
		if t == a {
			return true
		}
	}
	return false
}

func allowedMIME(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	kind, sub, ok := strings.Cut(mediaType, "/")
	return ok && kind == "image" && allowedType(sub)
}
