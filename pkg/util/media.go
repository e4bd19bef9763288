package util

import (
	"context"
	"strings"
	"time"

	"estatery-api-io/api/pkg/models"

	"github.com/cloudinary/cloudinary-go"
	"github.com/cloudinary/cloudinary-go/api/uploader"
	"github.com/go-playground/validator/v10"
)

const mediaRequestTimeout = 40 * time.Second

var validate = validator.New()

// MediaUploader uploads and destroys images on Cloudinary.
type MediaUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewMediaUploader(cloudName, apiKey, apiSecret, folder string) (*MediaUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}

	return &MediaUploader{cld: cld, folder: folder}, nil
}

func (m *MediaUploader) FileUpload(ctx context.Context, file models.File) (uploader.UploadResult, error) {
	if err := validate.Struct(file); err != nil {
		return uploader.UploadResult{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, mediaRequestTimeout)
	defer cancel()

	uploadRes, err := m.cld.Upload.Upload(ctx, file.File, uploader.UploadParams{Folder: m.folder})
	if err != nil {
		return uploader.UploadResult{}, err
	}

	return *uploadRes, nil
}

func (m *MediaUploader) DestroyMedia(ctx context.Context, publicID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, mediaRequestTimeout)
	defer cancel()

	deleteResult, err := m.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return "", err
	}
	return deleteResult.Result, nil
}

// PublicIDFromURL extracts the Cloudinary public ID from a delivery URL.
// Example: https://res.cloudinary.com/demo/image/upload/v1234567890/folder/publicid.jpg -> folder/publicid
func PublicIDFromURL(imageURL string) string {
	parts := strings.Split(imageURL, "/")

	uploadIndex := -1
	for i, part := range parts {
		if part == "upload" {
			uploadIndex = i
			break
		}
	}

	// the segment after "upload" is the version
	if uploadIndex == -1 || uploadIndex+2 >= len(parts) {
		return ""
	}

	publicIDParts := append([]string{}, parts[uploadIndex+2:]...)
	lastPart := publicIDParts[len(publicIDParts)-1]
	if extIndex := strings.LastIndex(lastPart, "."); extIndex > 0 {
		publicIDParts[len(publicIDParts)-1] = lastPart[:extIndex]
	}

	return strings.Join(publicIDParts, "/")
}
