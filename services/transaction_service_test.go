package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"travel-booking/models"
	"travel-booking/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)

func newTestTransactionService(txs *fakeTransactionStore, mailer Mailer) *TransactionService {
	users := &fakeUserStore{FindByIDFn: func(ctx context.Context, id string) (*models.User, error) {
		return &models.User{ID: id, Email: id + "@example.com"}, nil
	}}
	s := NewTransactionService(txs, users, mailer, 24*time.Hour)
	s.now = func() time.Time { return fixedNow }
	return s
}

func cartLine(id string, price, discount int64, qty int) models.CartItem {
	return models.CartItem{
		ID:         id,
		ActivityID: "act-" + id,
		Quantity:   qty,
		Activity:   models.ActivitySnapshot{ID: "act-" + id, Title: "Trip " + id, Price: price, PriceDiscount: discount},
	}
}

func checkoutWith(items []models.CartItem) func(context.Context, string, []string, string, repositories.CheckoutBuilder) (*models.Transaction, error) {
	return func(ctx context.Context, userID string, cartIDs []string, pmID string, build repositories.CheckoutBuilder) (*models.Transaction, error) {
		return build(items, models.PaymentMethod{ID: pmID, Name: "BCA"})
	}
}

func TestCreateTransaction_TotalsEffectivePrices(t *testing.T) {
	txs := &fakeTransactionStore{CheckoutFn: checkoutWith([]models.CartItem{
		cartLine("c1", 100, 0, 2),
		cartLine("c2", 80, 50, 1),
	})}
	s := newTestTransactionService(txs, nil)

	tx, err := s.CreateTransaction(context.Background(), "u1", models.CreateTransactionRequest{
		CartIDs:         []string{"c1", "c2"},
		PaymentMethodID: "pm1",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(250), tx.TotalAmount)
	assert.Equal(t, models.StatusPending, tx.Status)
	assert.Equal(t, "u1", tx.UserID)
	assert.Equal(t, "pm1", tx.PaymentMethodID)
	assert.Equal(t, fixedNow, tx.OrderDate)
	assert.Equal(t, fixedNow.Add(24*time.Hour), tx.ExpiredDate)
	assert.Regexp(t, regexp.MustCompile(`^INV/20240309/[0-9A-F]{8}$`), tx.InvoiceID)
	require.Len(t, tx.TransactionItems, 2)
	assert.Equal(t, "Trip c1", tx.TransactionItems[0].Title)
	assert.Equal(t, int64(50), tx.TransactionItems[1].LineTotal())
}

func TestCreateTransaction_ValidationSendsNothing(t *testing.T) {
	txs := &fakeTransactionStore{CheckoutFn: func(context.Context, string, []string, string, repositories.CheckoutBuilder) (*models.Transaction, error) {
		t.Fatal("checkout must not run")
		return nil, nil
	}}
	s := newTestTransactionService(txs, nil)

	_, err := s.CreateTransaction(context.Background(), "u1", models.CreateTransactionRequest{PaymentMethodID: "pm1"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.CreateTransaction(context.Background(), "u1", models.CreateTransactionRequest{CartIDs: []string{" ", ""}, PaymentMethodID: "pm1"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.CreateTransaction(context.Background(), "u1", models.CreateTransactionRequest{CartIDs: []string{"c1"}})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "paymentMethodId is required", Message(err))
}

func TestCreateTransaction_DeduplicatesCartIDs(t *testing.T) {
	var got []string
	txs := &fakeTransactionStore{CheckoutFn: func(ctx context.Context, userID string, cartIDs []string, pmID string, build repositories.CheckoutBuilder) (*models.Transaction, error) {
		got = cartIDs
		return build([]models.CartItem{cartLine("c1", 10, 0, 1)}, models.PaymentMethod{ID: pmID})
	}}
	s := newTestTransactionService(txs, nil)

	_, err := s.CreateTransaction(context.Background(), "u1", models.CreateTransactionRequest{
		CartIDs: []string{"c1", "c1"}, PaymentMethodID: "pm1",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, got)
}

func TestCreateTransaction_MapsMissingRows(t *testing.T) {
	for _, repoErr := range []error{repositories.ErrCartItemNotFound, repositories.ErrPaymentMethodNotFound} {
		txs := &fakeTransactionStore{CheckoutFn: func(context.Context, string, []string, string, repositories.CheckoutBuilder) (*models.Transaction, error) {
			return nil, repoErr
		}}
		s := newTestTransactionService(txs, nil)

		_, err := s.CreateTransaction(context.Background(), "u1", models.CreateTransactionRequest{
			CartIDs: []string{"c1"}, PaymentMethodID: "pm1",
		})
		assert.ErrorIs(t, err, ErrNotFound)
	}
}

func TestCreateTransaction_SendsInvoiceEmail(t *testing.T) {
	mailer := &fakeMailer{sent: make(chan string, 1)}
	txs := &fakeTransactionStore{CheckoutFn: checkoutWith([]models.CartItem{cartLine("c1", 100, 0, 1)})}
	s := newTestTransactionService(txs, mailer)

	tx, err := s.CreateTransaction(context.Background(), "u1", models.CreateTransactionRequest{
		CartIDs: []string{"c1"}, PaymentMethodID: "pm1",
	})
	require.NoError(t, err)

	select {
	case msg := <-mailer.sent:
		assert.Equal(t, "u1@example.com "+tx.InvoiceID, msg)
	case <-time.After(2 * time.Second):
		t.Fatal("invoice email not sent")
	}
}

func pendingTx(id, owner string) *models.Transaction {
	return &models.Transaction{ID: id, UserID: owner, Status: models.StatusPending}
}

func TestUpdateStatus_TerminalIsRejectedWithoutWrite(t *testing.T) {
	for _, current := range []models.TransactionStatus{models.StatusSuccess, models.StatusFailed} {
		for _, next := range []string{"pending", "success", "failed"} {
			txs := &fakeTransactionStore{
				FindByIDFn: func(ctx context.Context, id string) (*models.Transaction, error) {
					return &models.Transaction{ID: id, Status: current}, nil
				},
				UpdateStatusFromPendingFn: func(context.Context, string, models.TransactionStatus) error {
					t.Fatalf("write attempted for %s -> %s", current, next)
					return nil
				},
			}
			s := newTestTransactionService(txs, nil)

			_, err := s.UpdateStatus(context.Background(), "t1", next)
			assert.ErrorIs(t, err, ErrPreconditionFailed, "%s -> %s", current, next)
		}
	}
}

func TestUpdateStatus_PendingTransitions(t *testing.T) {
	var written []models.TransactionStatus
	txs := &fakeTransactionStore{
		FindByIDFn: func(ctx context.Context, id string) (*models.Transaction, error) {
			return pendingTx(id, "u1"), nil
		},
		UpdateStatusFromPendingFn: func(ctx context.Context, id string, status models.TransactionStatus) error {
			written = append(written, status)
			return nil
		},
	}
	s := newTestTransactionService(txs, nil)

	tx, err := s.UpdateStatus(context.Background(), "t1", "success")
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuccess, tx.Status)

	tx, err = s.UpdateStatus(context.Background(), "t1", "pending")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, tx.Status)

	assert.Equal(t, []models.TransactionStatus{models.StatusSuccess}, written)
}

func TestUpdateStatus_Errors(t *testing.T) {
	s := newTestTransactionService(&fakeTransactionStore{
		FindByIDFn: func(ctx context.Context, id string) (*models.Transaction, error) {
			return nil, repositories.ErrNotFound
		},
	}, nil)

	_, err := s.UpdateStatus(context.Background(), "t1", "refunded")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.UpdateStatus(context.Background(), "missing", "success")
	assert.ErrorIs(t, err, ErrNotFound)

	raced := newTestTransactionService(&fakeTransactionStore{
		FindByIDFn: func(ctx context.Context, id string) (*models.Transaction, error) {
			return pendingTx(id, "u1"), nil
		},
		UpdateStatusFromPendingFn: func(context.Context, string, models.TransactionStatus) error {
			return repositories.ErrStatusChanged
		},
	}, nil)
	_, err = raced.UpdateStatus(context.Background(), "t1", "failed")
	assert.ErrorIs(t, err, ErrPreconditionFailed)
}

func TestGetTransaction_OwnerOrAdminOnly(t *testing.T) {
	s := newTestTransactionService(&fakeTransactionStore{
		FindByIDFn: func(ctx context.Context, id string) (*models.Transaction, error) {
			return pendingTx(id, "owner"), nil
		},
	}, nil)

	_, err := s.GetTransaction(context.Background(), "t1", "owner", models.RoleUser)
	assert.NoError(t, err)

	_, err = s.GetTransaction(context.Background(), "t1", "admin-id", models.RoleAdmin)
	assert.NoError(t, err)

	_, err = s.GetTransaction(context.Background(), "t1", "stranger", models.RoleUser)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAttachProofOfPayment(t *testing.T) {
	stored := ""
	writes := 0
	txs := &fakeTransactionStore{
		FindByIDFn: func(ctx context.Context, id string) (*models.Transaction, error) {
			tx := pendingTx(id, "owner")
			if stored != "" {
				url := stored
				tx.ProofPaymentURL = &url
			}
			return tx, nil
		},
		UpdateProofPaymentFn: func(ctx context.Context, id, url string) error {
			writes++
			stored = url
			return nil
		},
	}
	s := newTestTransactionService(txs, nil)
	ctx := context.Background()

	tx, err := s.AttachProofOfPayment(ctx, "t1", "owner", "https://img/proof.png")
	require.NoError(t, err)
	require.NotNil(t, tx.ProofPaymentURL)
	assert.Equal(t, "https://img/proof.png", *tx.ProofPaymentURL)

	_, err = s.AttachProofOfPayment(ctx, "t1", "owner", "https://img/proof.png")
	require.NoError(t, err)
	assert.Equal(t, 1, writes)

	_, err = s.AttachProofOfPayment(ctx, "t1", "stranger", "https://img/other.png")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.AttachProofOfPayment(ctx, "t1", "owner", "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 1, writes)
}

func TestExpireOverdue_UsesClock(t *testing.T) {
	var gotNow time.Time
	s := newTestTransactionService(&fakeTransactionStore{
		ExpirePendingFn: func(ctx context.Context, now time.Time) ([]string, error) {
			gotNow = now
			return []string{"t1", "t2"}, nil
		},
	}, nil)

	n, err := s.ExpireOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, fixedNow, gotNow)
}

func TestRunExpirySweeper_StopsOnCancel(t *testing.T) {
	calls := make(chan struct{}, 10)
	s := newTestTransactionService(&fakeTransactionStore{
		ExpirePendingFn: func(ctx context.Context, now time.Time) ([]string, error) {
			calls <- struct{}{}
			return nil, errors.New("db down")
		},
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.RunExpirySweeper(ctx, 5*time.Millisecond)
		close(done)
	}()

	select {
	case <-calls:
	case <-time.After(time.Second):
		t.Fatal("sweeper never ran")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestDeleteTransaction_MissingIsNotFound(t *testing.T) {
	deleted := ""
	txs := &fakeTransactionStore{DeleteFn: func(ctx context.Context, id string) error {
		if id == "gone" {
			return repositories.ErrNotFound
		}
		deleted = id
		return nil
	}}
	s := newTestTransactionService(txs, nil)

	require.NoError(t, s.DeleteTransaction(context.Background(), "t1"))
	assert.Equal(t, "t1", deleted)

	err := s.DeleteTransaction(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "transaction not found", Message(err))
}
