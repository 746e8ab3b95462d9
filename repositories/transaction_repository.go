package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"travel-booking/models"

	"github.com/jackc/pgx/v5"
)

var (
	ErrCartItemNotFound      = fmt.Errorf("cart item: %w", ErrNotFound)
	ErrPaymentMethodNotFound = fmt.Errorf("payment method: %w", ErrNotFound)
	// ErrStatusChanged means the row left pending between read and write.
	ErrStatusChanged = errors.New("transaction status changed concurrently")
)

// CheckoutBuilder turns the locked cart rows into the transaction to insert.
// It runs inside the database transaction; returning an error aborts it.
type CheckoutBuilder func(items []models.CartItem, pm models.PaymentMethod) (*models.Transaction, error)

type TransactionRepository struct {
	db DB
}

func NewTransactionRepository(db DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionSelect = `
	SELECT t.id, t.user_id, t.payment_method_id, t.invoice_id, t.status, t.total_amount,
		t.proof_payment_url, t.order_date, t.expired_date, t.created_at, t.updated_at,
		pm.id, pm.name, pm.type, pm.description, pm.virtual_account_number, pm.virtual_account_name, pm.image_url
	FROM transactions t
	JOIN payment_methods pm ON pm.id = t.payment_method_id
`

func scanTransaction(row interface{ Scan(...any) error }) (*models.Transaction, error) {
	var (
		t      models.Transaction
		pm     models.PaymentMethod
		status string
	)
	err := row.Scan(
		&t.ID, &t.UserID, &t.PaymentMethodID, &t.InvoiceID, &status, &t.TotalAmount,
		&t.ProofPaymentURL, &t.OrderDate, &t.ExpiredDate, &t.CreatedAt, &t.UpdatedAt,
		&pm.ID, &pm.Name, &pm.Type, &pm.Description, &pm.VirtualAccountNumber, &pm.VirtualAccountName, &pm.ImageURL,
	)
	if err != nil {
		return nil, notFound(err)
	}
	t.Status = models.TransactionStatus(status)
	t.PaymentMethod = &pm
	t.TransactionItems = []models.TransactionItem{}
	return &t, nil
}

// Checkout locks the caller's selected cart rows, lets build compute the
// transaction, then stores it with its item snapshot and removes the consumed
// cart rows, all in one database transaction.
func (r *TransactionRepository) Checkout(ctx context.Context, userID string, cartIDs []string, paymentMethodID string, build CheckoutBuilder) (*models.Transaction, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	items, err := lockCartItems(ctx, tx, userID, cartIDs)
	if isInvalidID(err) {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(items) != len(cartIDs) {
		return nil, ErrCartItemNotFound
	}

	var pm models.PaymentMethod
	err = tx.QueryRow(ctx,
		`SELECT `+paymentMethodColumns+` FROM payment_methods WHERE id = $1`, paymentMethodID,
	).Scan(&pm.ID, &pm.Name, &pm.Type, &pm.Description, &pm.VirtualAccountNumber, &pm.VirtualAccountName, &pm.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, fmt.Errorf("select payment method: %w", err)
	}

	t, err := build(items, pm)
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO transactions (id, user_id, payment_method_id, invoice_id, status, total_amount,
			order_date, expired_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $7, $7)
		RETURNING created_at, updated_at`,
		t.ID, t.UserID, t.PaymentMethodID, t.InvoiceID, string(t.Status), t.TotalAmount,
		t.OrderDate, t.ExpiredDate,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	for pos, it := range t.TransactionItems {
		_, err = tx.Exec(ctx, `
			INSERT INTO transaction_items (id, transaction_id, activity_id, title, price, price_discount,
				quantity, image_urls, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			it.ID, t.ID, it.ActivityID, it.Title, it.Price, it.PriceDiscount, it.Quantity, it.ImageURLs, pos)
		if err != nil {
			return nil, fmt.Errorf("insert transaction item: %w", err)
		}
	}

	if _, err = tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND id = ANY($2)`, userID, cartIDs); err != nil {
		return nil, fmt.Errorf("clear cart items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	t.PaymentMethod = &pm
	return t, nil
}

func lockCartItems(ctx context.Context, tx pgx.Tx, userID string, cartIDs []string) ([]models.CartItem, error) {
	rows, err := tx.Query(ctx,
		cartSelect+` WHERE ci.user_id = $1 AND ci.id = ANY($2) ORDER BY ci.created_at, ci.id FOR UPDATE OF ci`,
		userID, cartIDs)
	if err != nil {
		return nil, fmt.Errorf("lock cart items: %w", err)
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		ci, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, *ci)
	}
	return items, rows.Err()
}

func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*models.Transaction, error) {
	t, err := scanTransaction(r.db.QueryRow(ctx, transactionSelect+` WHERE t.id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, []*models.Transaction{t}); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TransactionRepository) FindByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	return r.list(ctx, transactionSelect+` WHERE t.user_id = $1 ORDER BY t.order_date DESC`, userID)
}

func (r *TransactionRepository) FindAll(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, int, error) {
	where := []string{}
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("t.status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("(t.invoice_id ILIKE $%d OR pm.name ILIKE $%d)", len(args), len(args)))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM transactions t JOIN payment_methods pm ON pm.id = t.payment_method_id` + whereClause
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := transactionSelect + whereClause +
		fmt.Sprintf(" ORDER BY t.order_date DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	txs, err := r.list(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

func (r *TransactionRepository) list(ctx context.Context, query string, args ...any) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}

	ptrs := []*models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		ptrs = append(ptrs, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, ptrs); err != nil {
		return nil, err
	}

	out := make([]models.Transaction, 0, len(ptrs))
	for _, t := range ptrs {
		out = append(out, *t)
	}
	return out, nil
}

func (r *TransactionRepository) attachItems(ctx context.Context, txs []*models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	byID := make(map[string]*models.Transaction, len(txs))
	ids := make([]string, 0, len(txs))
	for _, t := range txs {
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	rows, err := r.db.Query(ctx, `
		SELECT transaction_id, id, activity_id, title, price, price_discount, quantity, image_urls
		FROM transaction_items
		WHERE transaction_id = ANY($1)
		ORDER BY transaction_id, position`, ids)
	if err != nil {
		return fmt.Errorf("select transaction items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			txID string
			it   models.TransactionItem
		)
		if err := rows.Scan(&txID, &it.ID, &it.ActivityID, &it.Title, &it.Price, &it.PriceDiscount,
			&it.Quantity, &it.ImageURLs); err != nil {
			return fmt.Errorf("scan transaction item: %w", err)
		}
		if t, ok := byID[txID]; ok {
			t.TransactionItems = append(t.TransactionItems, it)
		}
	}
	return rows.Err()
}

func (r *TransactionRepository) UpdateProofPayment(ctx context.Context, id, url string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE transactions SET proof_payment_url = $1, updated_at = $2 WHERE id = $3`,
		url, time.Now(), id)
	if err != nil {
		return fmt.Errorf("update proof payment: %w", notFound(err))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatusFromPending only writes while the row is still pending.
func (r *TransactionRepository) UpdateStatusFromPending(ctx context.Context, id string, status models.TransactionStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE transactions SET status = $1, updated_at = $2 WHERE id = $3 AND status = 'pending'`,
		string(status), time.Now(), id)
	if err != nil {
		return fmt.Errorf("update transaction status: %w", notFound(err))
	}
	if tag.RowsAffected() == 0 {
		return ErrStatusChanged
	}
	return nil
}

// ExpirePending fails every pending transaction whose expired_date is before now.
func (r *TransactionRepository) ExpirePending(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE transactions SET status = 'failed', updated_at = $1
		WHERE status = 'pending' AND expired_date < $1
		RETURNING id`, now)
	if err != nil {
		return nil, fmt.Errorf("expire transactions: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM transaction_items WHERE transaction_id = $1`, id); err != nil {
		return fmt.Errorf("delete transaction items: %w", notFound(err))
	}

	tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", notFound(err))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}
