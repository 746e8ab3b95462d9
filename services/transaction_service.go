package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"travel-booking/libs"
	"travel-booking/models"
	"travel-booking/repositories"

	"github.com/google/uuid"
)

type TransactionStore interface {
	Checkout(ctx context.Context, userID string, cartIDs []string, paymentMethodID string, build repositories.CheckoutBuilder) (*models.Transaction, error)
	FindByID(ctx context.Context, id string) (*models.Transaction, error)
	FindByUser(ctx context.Context, userID string) ([]models.Transaction, error)
	FindAll(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, int, error)
	UpdateProofPayment(ctx context.Context, id, url string) error
	UpdateStatusFromPending(ctx context.Context, id string, status models.TransactionStatus) error
	ExpirePending(ctx context.Context, now time.Time) ([]string, error)
	Delete(ctx context.Context, id string) error
}

type Mailer interface {
	SendInvoiceEmail(toEmail, invoiceID string, total int64, lines []libs.InvoiceLine) error
}

type TransactionService struct {
	txs    TransactionStore
	users  UserStore
	mailer Mailer
	ttl    time.Duration
	now    func() time.Time
}

// NewTransactionService builds the service. mailer may be nil, in which case
// no invoice e-mail is sent.
func NewTransactionService(txs TransactionStore, users UserStore, mailer Mailer, ttl time.Duration) *TransactionService {
	return &TransactionService{
		txs:    txs,
		users:  users,
		mailer: mailer,
		ttl:    ttl,
		now:    time.Now,
	}
}

func NewInvoiceID(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("INV/%s/%s", t.Format("20060102"), suffix)
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// CreateTransaction turns the selected cart items into a pending transaction.
// The consumed cart items are removed in the same database transaction.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, req models.CreateTransactionRequest) (*models.Transaction, error) {
	cartIDs := uniqueIDs(req.CartIDs)
	if len(cartIDs) == 0 {
		return nil, fmt.Errorf("%w: cartIds must not be empty", ErrValidation)
	}
	if strings.TrimSpace(req.PaymentMethodID) == "" {
		return nil, fmt.Errorf("%w: paymentMethodId is required", ErrValidation)
	}

	orderDate := s.now()
	tx, err := s.txs.Checkout(ctx, userID, cartIDs, req.PaymentMethodID,
		func(items []models.CartItem, pm models.PaymentMethod) (*models.Transaction, error) {
			lines := make([]models.TransactionItem, 0, len(items))
			for _, ci := range items {
				lines = append(lines, models.NewTransactionItem(uuid.NewString(), ci))
			}
			return &models.Transaction{
				ID:               uuid.NewString(),
				UserID:           userID,
				PaymentMethodID:  pm.ID,
				InvoiceID:        NewInvoiceID(orderDate),
				Status:           models.StatusPending,
				TotalAmount:      models.SumItems(lines),
				OrderDate:        orderDate,
				ExpiredDate:      orderDate.Add(s.ttl),
				TransactionItems: lines,
			}, nil
		})
	switch {
	case errors.Is(err, repositories.ErrCartItemNotFound):
		return nil, fmt.Errorf("%w: cart item not found", ErrNotFound)
	case errors.Is(err, repositories.ErrPaymentMethodNotFound):
		return nil, fmt.Errorf("%w: payment method not found", ErrNotFound)
	case err != nil:
		return nil, err
	}

	slog.Info("transaction created", "transaction_id", tx.ID, "invoice_id", tx.InvoiceID, "total", tx.TotalAmount)
	s.sendInvoice(userID, tx)
	return tx, nil
}

func (s *TransactionService) sendInvoice(userID string, tx *models.Transaction) {
	if s.mailer == nil {
		return
	}
	lines := make([]libs.InvoiceLine, 0, len(tx.TransactionItems))
	for _, it := range tx.TransactionItems {
		lines = append(lines, libs.InvoiceLine{Title: it.Title, Quantity: it.Quantity, Subtotal: it.LineTotal()})
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			slog.Warn("invoice email skipped", "transaction_id", tx.ID, "error", err)
			return
		}
		if err := s.mailer.SendInvoiceEmail(user.Email, tx.InvoiceID, tx.TotalAmount, lines); err != nil {
			slog.Warn("invoice email failed", "transaction_id", tx.ID, "error", err)
		}
	}()
}

// GetTransaction returns the transaction to its owner or to an admin. Anyone
// else gets not found.
func (s *TransactionService) GetTransaction(ctx context.Context, id, userID, role string) (*models.Transaction, error) {
	tx, err := s.txs.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "transaction")
	}
	if tx.UserID != userID && role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: transaction not found", ErrNotFound)
	}
	return tx, nil
}

func (s *TransactionService) GetMyTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.txs.FindByUser(ctx, userID)
}

func (s *TransactionService) GetAllTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, int, error) {
	if filter.Status != "" {
		if _, err := models.ParseTransactionStatus(filter.Status); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	return s.txs.FindAll(ctx, filter)
}

// AttachProofOfPayment records the uploaded proof URL on the caller's
// transaction. Attaching the URL already stored is a successful no-op.
func (s *TransactionService) AttachProofOfPayment(ctx context.Context, id, userID, url string) (*models.Transaction, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("%w: proofPaymentUrl is required", ErrValidation)
	}

	tx, err := s.GetTransaction(ctx, id, userID, models.RoleUser)
	if err != nil {
		return nil, err
	}
	if tx.ProofPaymentURL != nil && *tx.ProofPaymentURL == url {
		return tx, nil
	}

	if err := s.txs.UpdateProofPayment(ctx, id, url); err != nil {
		return nil, notFoundAs(err, "transaction")
	}
	tx.ProofPaymentURL = &url
	return tx, nil
}

// UpdateStatus moves a pending transaction to success or failed. Terminal
// transactions are never written.
func (s *TransactionService) UpdateStatus(ctx context.Context, id, status string) (*models.Transaction, error) {
	next, err := models.ParseTransactionStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	tx, err := s.txs.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "transaction")
	}

	if err := tx.Status.CanTransitionTo(next); err != nil {
		return nil, fmt.Errorf("%w: transaction is already %s", ErrPreconditionFailed, tx.Status)
	}
	if next == tx.Status {
		return tx, nil
	}

	if err := s.txs.UpdateStatusFromPending(ctx, id, next); err != nil {
		if errors.Is(err, repositories.ErrStatusChanged) {
			return nil, fmt.Errorf("%w: transaction is no longer pending", ErrPreconditionFailed)
		}
		return nil, err
	}

	slog.Info("transaction status updated", "transaction_id", id, "from", tx.Status, "to", next)
	tx.Status = next
	return tx, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.txs.Delete(ctx, id); err != nil {
		return notFoundAs(err, "transaction")
	}
	return nil
}

// ExpireOverdue fails every pending transaction past its expired date.
func (s *TransactionService) ExpireOverdue(ctx context.Context) (int, error) {
	ids, err := s.txs.ExpirePending(ctx, s.now())
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		slog.Info("transaction expired", "transaction_id", id)
	}
	return len(ids), nil
}

// RunExpirySweeper calls ExpireOverdue every interval until ctx is done.
func (s *TransactionService) RunExpirySweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.ExpireOverdue(ctx); err != nil && ctx.Err() == nil {
				slog.Error("expiry sweep failed", "error", err)
			}
		}
	}
}
