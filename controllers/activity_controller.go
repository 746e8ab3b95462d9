package controllers

import (
	"net/http"

	"travel-booking/models"
	"travel-booking/services"

	"github.com/gin-gonic/gin"
)

// CatalogController serves activities, categories, promos, banners and
// payment methods. Reads are public; writes sit behind AdminMiddleware.
type CatalogController struct {
	catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// GetActivities godoc
// @Summary Get all activities
// @Tags Activities
// @Produce json
// @Success 200 {object} models.Response
// @Router /activities [get]
func (ctrl *CatalogController) GetActivities(c *gin.Context) {
	activities, err := ctrl.catalog.GetActivities(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Activities retrieved successfully", activities)
}

// GetActivity godoc
// @Summary Get activity by ID
// @Tags Activities
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /activity/{id} [get]
func (ctrl *CatalogController) GetActivity(c *gin.Context) {
	activity, err := ctrl.catalog.GetActivity(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Activity retrieved successfully", activity)
}

// GetActivitiesByCategory godoc
// @Summary Get activities of a category
// @Tags Activities
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} models.Response
// @Router /activities-by-category/{id} [get]
func (ctrl *CatalogController) GetActivitiesByCategory(c *gin.Context) {
	activities, err := ctrl.catalog.GetActivitiesByCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Activities retrieved successfully", activities)
}

// CreateActivity godoc
// @Summary Create activity
// @Tags Admin - Activities
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ActivityRequest true "Activity"
// @Success 201 {object} models.Response
// @Router /create-activity [post]
func (ctrl *CatalogController) CreateActivity(c *gin.Context) {
	var req models.ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	activity, err := ctrl.catalog.CreateActivity(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Activity created successfully", activity)
}

// @Summary Update activity
// @Tags Admin - Activities
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param request body models.ActivityRequest true "Activity"
// @Success 200 {object} models.Response
// @Router /update-activity/{id} [post]
func (ctrl *CatalogController) UpdateActivity(c *gin.Context) {
	var req models.ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	activity, err := ctrl.catalog.UpdateActivity(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Activity updated successfully", activity)
}

// @Summary Delete activity
// @Tags Admin - Activities
// @Security BearerAuth
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} models.Response
// @Router /delete-activity/{id} [delete]
func (ctrl *CatalogController) DeleteActivity(c *gin.Context) {
	if err := ctrl.catalog.DeleteActivity(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Activity deleted successfully", nil)
}

// GetPaymentMethods godoc
// @Summary Get payment methods
// @Tags Payment Methods
// @Produce json
// @Success 200 {object} models.Response
// @Router /payment-methods [get]
func (ctrl *CatalogController) GetPaymentMethods(c *gin.Context) {
	methods, err := ctrl.catalog.GetPaymentMethods(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Payment methods retrieved successfully", methods)
}
