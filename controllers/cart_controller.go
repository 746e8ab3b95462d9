package controllers

import (
	"net/http"

	"travel-booking/models"
	"travel-booking/services"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// AddCart godoc
// @Summary Add activity to cart
// @Description Adds one unit; adding an activity already in the cart increments its quantity
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AddCartRequest true "Activity"
// @Success 201 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /add-cart [post]
func (ctrl *CartController) AddCart(c *gin.Context) {
	var req models.AddCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	id, err := ctrl.carts.AddToCart(c.Request.Context(), currentUserID(c), req.ActivityID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Added to cart", gin.H{"id": id})
}

// GetCarts godoc
// @Summary Get cart items
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /carts [get]
func (ctrl *CartController) GetCarts(c *gin.Context) {
	items, err := ctrl.carts.GetCart(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Cart retrieved successfully", items)
}

// UpdateCart godoc
// @Summary Update cart item quantity
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Cart item ID"
// @Param request body models.UpdateCartRequest true "Quantity"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /update-cart/{id} [post]
func (ctrl *CartController) UpdateCart(c *gin.Context) {
	var req models.UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := ctrl.carts.UpdateQuantity(c.Request.Context(), currentUserID(c), c.Param("id"), req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Cart updated successfully", nil)
}

// DeleteCart godoc
// @Summary Remove cart item
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param id path string true "Cart item ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /delete-cart/{id} [delete]
func (ctrl *CartController) DeleteCart(c *gin.Context) {
	if err := ctrl.carts.DeleteItem(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Cart item deleted successfully", nil)
}
