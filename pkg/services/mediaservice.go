package services

import (
	"context"
	"fmt"
	"sync"

	"estatery-api-io/api/internal/apperr"
	"estatery-api-io/api/pkg/models"
	"estatery-api-io/api/pkg/util"
)

type mediaService struct {
	storage ObjectStorage
}

func NewMediaService(storage ObjectStorage) MediaService {
	return &mediaService{storage: storage}
}

// UploadImages uploads files concurrently. The result keeps the input order.
// If any upload fails, the images already stored are destroyed.
func (s *mediaService) UploadImages(ctx context.Context, files []models.File) ([]models.UploadedImage, error) {
	if len(files) < models.MinListingImages || len(files) > models.MaxListingImages {
		return nil, apperr.Validation(fmt.Sprintf("You can upload between %d and %d images per listing", models.MinListingImages, models.MaxListingImages))
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		uploaded = make([]models.UploadedImage, len(files))
		errs     []error
	)

	for i, file := range files {
		wg.Add(1)
		go func(index int, f models.File) {
			defer wg.Done()

			image, err := s.storage.Upload(ctx, f)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("failed to upload image %d: %w", index, err))
				mu.Unlock()
				return
			}
			uploaded[index] = image
		}(i, file)
	}

	wg.Wait()

	if len(errs) > 0 {
		for _, image := range uploaded {
			if image.PublicID == "" {
				continue
			}
			if err := s.storage.Destroy(ctx, image.PublicID); err != nil {
				util.Log.WithField("public_id", image.PublicID).WithError(err).Warn("failed to roll back uploaded image")
			}
		}
		return nil, apperr.Upstream(errs[0])
	}

	return uploaded, nil
}

func (s *mediaService) UploadImage(ctx context.Context, file models.File) (models.UploadedImage, error) {
	image, err := s.storage.Upload(ctx, file)
	if err != nil {
		return models.UploadedImage{}, apperr.Upstream(err)
	}
	return image, nil
}

// DestroyImageURLs removes stored images by delivery URL. Failures are logged only.
func (s *mediaService) DestroyImageURLs(ctx context.Context, urls []string) {
	for _, u := range urls {
		publicID := util.PublicIDFromURL(u)
		if publicID == "" {
			continue
		}
		if err := s.storage.Destroy(ctx, publicID); err != nil {
			util.Log.WithField("public_id", publicID).WithError(err).Warn("failed to destroy image")
		}
	}
}

type cloudinaryStorage struct {
	uploader *util.MediaUploader
}

// NewCloudinaryStorage adapts the Cloudinary uploader to ObjectStorage.
func NewCloudinaryStorage(uploader *util.MediaUploader) ObjectStorage {
	return &cloudinaryStorage{uploader: uploader}
}

func (s *cloudinaryStorage) Upload(ctx context.Context, file models.File) (models.UploadedImage, error) {
	res, err := s.uploader.FileUpload(ctx, file)
	if err != nil {
		return models.UploadedImage{}, err
	}
	return models.UploadedImage{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (s *cloudinaryStorage) Destroy(ctx context.Context, publicID string) error {
	_, err := s.uploader.DestroyMedia(ctx, publicID)
	return err
}
