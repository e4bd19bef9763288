package models

import (
	"mime/multipart"
)

type File struct {
	File multipart.File `json:"file,omitempty" validate:"required"`
}

// UploadedImage is an image stored in object storage.
type UploadedImage struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}
