package controllers

import (
	"net/http"

	"travel-booking/models"

	"github.com/gin-gonic/gin"
)

// @Summary Get all banners
// @Tags Banners
// @Produce json
// @Success 200 {object} models.Response
// @Router /banners [get]
func (ctrl *CatalogController) GetBanners(c *gin.Context) {
	items, err := ctrl.catalog.GetBanners(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Banners retrieved successfully", items)
}

// @Summary Get banner by ID
// @Tags Banners
// @Produce json
// @Param id path string true "Banner ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /banner/{id} [get]
func (ctrl *CatalogController) GetBanner(c *gin.Context) {
	item, err := ctrl.catalog.GetBanner(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Banner retrieved successfully", item)
}

// @Summary Create banner
// @Tags Admin - Banners
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.BannerRequest true "Banner"
// @Success 201 {object} models.Response
// @Router /create-banner [post]
func (ctrl *CatalogController) CreateBanner(c *gin.Context) {
	var req models.BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := ctrl.catalog.CreateBanner(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Banner created successfully", item)
}

// @Summary Update banner
// @Tags Admin - Banners
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Banner ID"
// @Param request body models.BannerRequest true "Banner"
// @Success 200 {object} models.Response
// @Router /update-banner/{id} [post]
func (ctrl *CatalogController) UpdateBanner(c *gin.Context) {
	var req models.BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := ctrl.catalog.UpdateBanner(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Banner updated successfully", item)
}

// @Summary Delete banner
// @Tags Admin - Banners
// @Security BearerAuth
// @Produce json
// @Param id path string true "Banner ID"
// @Success 200 {object} models.Response
// @Router /delete-banner/{id} [delete]
func (ctrl *CatalogController) DeleteBanner(c *gin.Context) {
	if err := ctrl.catalog.DeleteBanner(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Banner deleted successfully", nil)
}
