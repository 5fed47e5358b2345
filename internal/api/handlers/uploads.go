package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shoply/jobboard/internal/storage"
	"github.com/shoply/jobboard/internal/utils"
)

const (
	maxImageSize = 5 << 20
	maxCVSize    = 10 << 20
)

var imageExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// saveImage validates and stores one image upload under the given
// namespace ("profile_photos", "shop_logos", "job_images") and returns the
// stored path. The content is sniffed, not trusted from the filename alone.
func saveImage(c *gin.Context, fh *multipart.FileHeader, uploader storage.Uploader, namespace, field string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := imageExts[ext]; !ok {
		return "", utils.FieldErrors{field: {"Upload a valid image (jpg, jpeg, png, webp)."}}
	}
	if fh.Size <= 0 || fh.Size > maxImageSize {
		return "", utils.FieldErrors{field: {"Image too large (max 5MB)."}}
	}

	r, contentType, err := sniffedReader(fh)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", utils.FieldErrors{field: {"Upload a valid image (jpg, jpeg, png, webp)."}}
	}

	objectName := namespace + "/" + uuid.NewString() + ext
	path, err := uploader.Upload(c.Request.Context(), objectName, imageExts[ext], r)
	if err != nil {
		return "", utils.E(utils.CodeUnavailable, "Uploads.saveImage", "failed to store upload", err)
	}
	return path, nil
}

// saveCV stores a PDF CV on the raw backend, segregated from public media.
func saveCV(c *gin.Context, fh *multipart.FileHeader, uploader storage.Uploader) (string, error) {
	if strings.ToLower(filepath.Ext(fh.Filename)) != ".pdf" {
		return "", utils.FieldErrors{"cv": {"Only .pdf is allowed."}}
	}
	if fh.Size <= 0 || fh.Size > maxCVSize {
		return "", utils.FieldErrors{"cv": {"File too large (max 10MB)."}}
	}

	r, contentType, err := sniffedReader(fh)
	if err != nil {
		return "", err
	}
	if contentType != "application/pdf" {
		return "", utils.FieldErrors{"cv": {"Invalid content type (must be pdf)."}}
	}

	objectName := "cvs/" + uuid.NewString() + ".pdf"
	path, err := uploader.Upload(c.Request.Context(), objectName, "application/pdf", r)
	if err != nil {
		return "", utils.E(utils.CodeUnavailable, "Uploads.saveCV", "failed to store upload", err)
	}
	return path, nil
}

// sniffedReader reads the upload in full (callers bound the size first),
// closes the underlying file and returns the content type detected from
// the leading bytes.
func sniffedReader(fh *multipart.FileHeader) (io.Reader, string, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, "Uploads.sniffedReader", "failed to open upload", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, "Uploads.sniffedReader", "failed to read upload", err)
	}

	return bytes.NewReader(data), http.DetectContentType(data), nil
}
