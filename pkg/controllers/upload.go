package controllers

import (
	"net/http"

	"estatery-api-io/api/internal/helpers"
	"estatery-api-io/api/pkg/models"
	"estatery-api-io/api/pkg/services"
	"estatery-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	mediaService services.MediaService
}

func InitUploadController(mediaService services.MediaService) *UploadController {
	return &UploadController{mediaService: mediaService}
}

// UploadImages handles POST /api/upload/images. URLs come back in form order; the first is the cover.
func (uc *UploadController) UploadImages() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		opened, err := helpers.OpenImages(c, "images", models.MinListingImages, models.MaxListingImages)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}
		defer opened.Close()

		images, err := uc.mediaService.UploadImages(ctx, opened.Files)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		urls := make([]string, len(images))
		for i, image := range images {
			urls[i] = image.URL
		}

		util.HandleSuccess(c, http.StatusCreated, "Images uploaded successfully", gin.H{
			"imageUrls": urls,
			"images":    images,
		})
	}
}

// UploadAvatar handles POST /api/upload/avatar
func (uc *UploadController) UploadAvatar() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		opened, err := helpers.OpenImages(c, "avatar", 1, 1)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}
		defer opened.Close()

		image, err := uc.mediaService.UploadImage(ctx, opened.Files[0])
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusCreated, "Avatar uploaded successfully", image)
	}
}
