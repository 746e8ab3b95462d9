package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"travel-booking/libs"
	"travel-booking/models"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	storage libs.ImageStorage
	maxSize int64
}

func NewUploadController(storage libs.ImageStorage, maxSize int64) *UploadController {
	return &UploadController{storage: storage, maxSize: maxSize}
}

// UploadImage godoc
// @Summary Upload image
// @Description Stores an image and returns its public URL. Nothing else is modified.
// @Tags Upload
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /upload-image [post]
func (ctrl *UploadController) UploadImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Image file is required",
			Error:   err.Error(),
		})
		return
	}

	if err := libs.ValidateImageFile(header, ctrl.maxSize); err != nil {
		msg := "Invalid image"
		switch {
		case errors.Is(err, libs.ErrFileTooLarge):
			msg = fmt.Sprintf("File too large (max %dMB)", ctrl.maxSize/(1024*1024))
		case errors.Is(err, libs.ErrInvalidFileType):
			msg = "Invalid file type. Allowed: jpg, jpeg, png, gif, webp"
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: msg, Error: err.Error()})
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	url, err := ctrl.storage.Upload(c.Request.Context(), file, header.Filename, "images")
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Image uploaded successfully", models.UploadImageResponse{ImageURL: url})
}
