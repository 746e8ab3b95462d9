package controllers

import (
	"net/http"
	"strings"

	"travel-booking/models"
	"travel-booking/services"
	"travel-booking/utils"

	"github.com/gin-gonic/gin"
)

type TransactionController struct {
	txs *services.TransactionService
}

func NewTransactionController(txs *services.TransactionService) *TransactionController {
	return &TransactionController{txs: txs}
}

// CreateTransaction godoc
// @Summary Create transaction
// @Description Checks out the given cart items with a payment method. The items leave the cart.
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateTransactionRequest true "Checkout"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /create-transaction [post]
func (ctrl *TransactionController) CreateTransaction(c *gin.Context) {
	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tx, err := ctrl.txs.CreateTransaction(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Transaction created successfully", models.CreateTransactionResponse{
		ID:          tx.ID,
		InvoiceID:   tx.InvoiceID,
		TotalAmount: tx.TotalAmount,
		Status:      tx.Status,
	})
}

// GetTransaction godoc
// @Summary Get transaction by ID
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /transaction/{id} [get]
func (ctrl *TransactionController) GetTransaction(c *gin.Context) {
	tx, err := ctrl.txs.GetTransaction(c.Request.Context(), c.Param("id"), currentUserID(c), currentRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Transaction retrieved successfully", tx)
}

// GetMyTransactions godoc
// @Summary Get my transactions
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /my-transactions [get]
func (ctrl *TransactionController) GetMyTransactions(c *gin.Context) {
	txs, err := ctrl.txs.GetMyTransactions(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Transactions retrieved successfully", txs)
}

// GetAllTransactions godoc
// @Summary Get all transactions
// @Description Get all transactions with pagination (Admin)
// @Tags Admin - Transactions
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param status query string false "Filter by status"
// @Param search query string false "Search by invoice or payment method"
// @Success 200 {object} models.HATEOASResponse
// @Router /all-transactions [get]
func (ctrl *TransactionController) GetAllTransactions(c *gin.Context) {
	page, limit, offset := utils.GetPaginationParams(c, 10)

	filter := models.TransactionFilter{
		Status: strings.TrimSpace(c.Query("status")),
		Search: strings.TrimSpace(c.Query("search")),
		Limit:  limit,
		Offset: offset,
	}

	txs, total, err := ctrl.txs.GetAllTransactions(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildPaginatedResponse(c, "Transactions retrieved successfully", txs, page, limit, total))
}

// UpdateProofPayment godoc
// @Summary Attach proof of payment
// @Description Records an uploaded image URL on the caller's transaction. Re-attaching the same URL succeeds.
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body models.UpdateProofPaymentRequest true "Proof URL"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /update-transaction-proof-payment/{id} [post]
func (ctrl *TransactionController) UpdateProofPayment(c *gin.Context) {
	var req models.UpdateProofPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tx, err := ctrl.txs.AttachProofOfPayment(c.Request.Context(), c.Param("id"), currentUserID(c), req.ProofPaymentURL)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Proof of payment updated successfully", tx)
}

// UpdateTransactionStatus godoc
// @Summary Update transaction status
// @Description pending may move to success or failed; success and failed are final
// @Tags Admin - Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body models.UpdateTransactionStatusRequest true "Status"
// @Success 200 {object} models.Response
// @Failure 409 {object} models.ErrorResponse
// @Router /update-transaction-status/{id} [post]
func (ctrl *TransactionController) UpdateTransactionStatus(c *gin.Context) {
	var req models.UpdateTransactionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tx, err := ctrl.txs.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Transaction status updated successfully", tx)
}

// @Summary Delete transaction
// @Tags Admin - Transactions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} models.Response
// @Router /delete-transaction/{id} [delete]
func (ctrl *TransactionController) DeleteTransaction(c *gin.Context) {
	if err := ctrl.txs.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Transaction deleted successfully", nil)
}
