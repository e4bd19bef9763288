package helpers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"estatery-api-io/api/internal/apperr"
	"estatery-api-io/api/pkg/models"

	"github.com/gin-gonic/gin"
)

const (
	MAX_IMAGE_SIZE = 2 << 20
	MAX_FORM_SIZE  = models.MaxListingImages*MAX_IMAGE_SIZE + 1<<20
)

// OpenedFiles holds uploaded files that must be closed after use.
type OpenedFiles struct {
	Files   []models.File
	closers []multipart.File
}

func (o *OpenedFiles) Close() {
	for _, f := range o.closers {
		f.Close()
	}
}

// OpenImages validates and opens the images under field, keeping form order.
func OpenImages(c *gin.Context, field string, min, max int) (*OpenedFiles, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MAX_FORM_SIZE)
	if err := c.Request.ParseMultipartForm(MAX_FORM_SIZE); err != nil {
		return nil, apperr.Validation(fmt.Sprintf("failed to parse multipart form: %v", err))
	}

	headers := c.Request.MultipartForm.File[field]
	if len(headers) < min || len(headers) > max {
		if min == max {
			return nil, apperr.Validation(fmt.Sprintf("exactly %d %s file is required", min, field))
		}
		return nil, apperr.Validation(fmt.Sprintf("You can upload between %d and %d images per listing", min, max))
	}

	for i, fh := range headers {
		if err := validateImageHeader(fh); err != nil {
			return nil, apperr.Validation(fmt.Sprintf("image %d: %v", i+1, err))
		}
	}

	opened := &OpenedFiles{}
	for i, fh := range headers {
		file, err := fh.Open()
		if err != nil {
			opened.Close()
			return nil, apperr.Validation(fmt.Sprintf("error opening file %d: %v", i+1, err))
		}
		opened.closers = append(opened.closers, file)
		opened.Files = append(opened.Files, models.File{File: file})
	}

	return opened, nil
}

func validateImageHeader(fh *multipart.FileHeader) error {
	if fh.Size > MAX_IMAGE_SIZE {
		return fmt.Errorf("%s is larger than 2 MB", fh.Filename)
	}

	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("%s is not an image", fh.Filename)
	}
	return nil
}
