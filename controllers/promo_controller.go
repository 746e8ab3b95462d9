package controllers

import (
	"net/http"

	"travel-booking/models"

	"github.com/gin-gonic/gin"
)

// @Summary Get all promos
// @Tags Promos
// @Produce json
// @Success 200 {object} models.Response
// @Router /promos [get]
func (ctrl *CatalogController) GetPromos(c *gin.Context) {
	items, err := ctrl.catalog.GetPromos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Promos retrieved successfully", items)
}

// @Summary Get promo by ID
// @Tags Promos
// @Produce json
// @Param id path string true "Promo ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /promo/{id} [get]
func (ctrl *CatalogController) GetPromo(c *gin.Context) {
	item, err := ctrl.catalog.GetPromo(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Promo retrieved successfully", item)
}

// @Summary Create promo
// @Tags Admin - Promos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.PromoRequest true "Promo"
// @Success 201 {object} models.Response
// @Router /create-promo [post]
func (ctrl *CatalogController) CreatePromo(c *gin.Context) {
	var req models.PromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := ctrl.catalog.CreatePromo(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Promo created successfully", item)
}

// @Summary Update promo
// @Tags Admin - Promos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Promo ID"
// @Param request body models.PromoRequest true "Promo"
// @Success 200 {object} models.Response
// @Router /update-promo/{id} [post]
func (ctrl *CatalogController) UpdatePromo(c *gin.Context) {
	var req models.PromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := ctrl.catalog.UpdatePromo(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Promo updated successfully", item)
}

// @Summary Delete promo
// @Tags Admin - Promos
// @Security BearerAuth
// @Produce json
// @Param id path string true "Promo ID"
// @Success 200 {object} models.Response
// @Router /delete-promo/{id} [delete]
func (ctrl *CatalogController) DeletePromo(c *gin.Context) {
	if err := ctrl.catalog.DeletePromo(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Promo deleted successfully", nil)
}
