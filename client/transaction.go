package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"travel-booking/models"
)

// TransactionManager creates transactions and follows them through their
// status lifecycle. Fetched transactions are cached by id.
type TransactionManager struct {
	api *Client

	mu    sync.Mutex
	known map[string]models.Transaction
}

func NewTransactionManager(api *Client) *TransactionManager {
	return &TransactionManager{api: api, known: map[string]models.Transaction{}}
}

func (m *TransactionManager) remember(txs ...models.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range txs {
		m.known[t.ID] = t
	}
}

// Cached returns the last fetched copy of a transaction.
func (m *TransactionManager) Cached(id string) (models.Transaction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.known[id]
	return t, ok
}

// Create checks out the given cart items. The backend removes them from the
// cart on success.
func (m *TransactionManager) Create(ctx context.Context, cartIDs []string, paymentMethodID string) (models.CreateTransactionResponse, error) {
	var out models.CreateTransactionResponse
	if len(cartIDs) == 0 {
		return out, validationError("Please select items to checkout")
	}
	if strings.TrimSpace(paymentMethodID) == "" {
		return out, validationError("Please select a payment method")
	}
	if err := m.api.requireAuth(); err != nil {
		return out, err
	}

	req := models.CreateTransactionRequest{CartIDs: cartIDs, PaymentMethodID: paymentMethodID}
	if err := m.api.do(ctx, http.MethodPost, "/create-transaction", req, &out); err != nil {
		return models.CreateTransactionResponse{}, err
	}
	return out, nil
}

func (m *TransactionManager) Fetch(ctx context.Context, id string) (*models.Transaction, error) {
	if err := m.api.requireAuth(); err != nil {
		return nil, err
	}
	var tx models.Transaction
	if err := m.api.do(ctx, http.MethodGet, "/transaction/"+escapeID(id), nil, &tx); err != nil {
		return nil, err
	}
	m.remember(tx)
	return &tx, nil
}

func (m *TransactionManager) ListMine(ctx context.Context) ([]models.Transaction, error) {
	if err := m.api.requireAuth(); err != nil {
		return nil, err
	}
	var txs []models.Transaction
	if err := m.api.do(ctx, http.MethodGet, "/my-transactions", nil, &txs); err != nil {
		return nil, err
	}
	m.remember(txs...)
	return txs, nil
}

// UploadProofOfPayment stores the image and returns its URL. It does not
// touch any transaction; pass the URL to UpdateProofPayment for that.
func (m *TransactionManager) UploadProofOfPayment(ctx context.Context, filename string, image io.Reader) (string, error) {
	if err := m.api.requireAuth(); err != nil {
		return "", err
	}
	if image == nil || strings.TrimSpace(filename) == "" {
		return "", validationError("Please choose an image")
	}
	var out models.UploadImageResponse
	if err := m.api.upload(ctx, "/upload-image", "image", filename, image, &out); err != nil {
		return "", err
	}
	return out.ImageURL, nil
}

func (m *TransactionManager) UpdateProofPayment(ctx context.Context, id, imageURL string) (*models.Transaction, error) {
	if strings.TrimSpace(imageURL) == "" {
		return nil, validationError("Please upload a proof of payment first")
	}
	if err := m.api.requireAuth(); err != nil {
		return nil, err
	}
	var tx models.Transaction
	path := "/update-transaction-proof-payment/" + escapeID(id)
	if err := m.api.do(ctx, http.MethodPost, path, models.UpdateProofPaymentRequest{ProofPaymentURL: imageURL}, &tx); err != nil {
		return nil, err
	}
	m.remember(tx)
	return &tx, nil
}

// SubmitProofOfPayment uploads the image, attaches it to the transaction and
// returns the refreshed transaction. If the attach fails the uploaded image
// is left unreferenced.
func (m *TransactionManager) SubmitProofOfPayment(ctx context.Context, id, filename string, image io.Reader) (*models.Transaction, error) {
	imageURL, err := m.UploadProofOfPayment(ctx, filename, image)
	if err != nil {
		return nil, err
	}
	if _, err := m.UpdateProofPayment(ctx, id, imageURL); err != nil {
		return nil, err
	}
	return m.Fetch(ctx, id)
}

// UpdateStatus asks the backend to move a transaction (admin only). A
// transaction already known to be settled is refused without a request.
func (m *TransactionManager) UpdateStatus(ctx context.Context, id string, status models.TransactionStatus) (*models.Transaction, error) {
	next, err := models.ParseTransactionStatus(string(status))
	if err != nil {
		return nil, validationError(err.Error())
	}
	if cached, ok := m.Cached(id); ok {
		if err := cached.Status.CanTransitionTo(next); err != nil {
			return nil, &Error{Kind: KindPrecondition, Message: "Transaction is already " + cached.Status.String()}
		}
	}
	if err := m.api.requireAuth(); err != nil {
		return nil, err
	}

	var tx models.Transaction
	path := "/update-transaction-status/" + escapeID(id)
	if err := m.api.do(ctx, http.MethodPost, path, models.UpdateTransactionStatusRequest{Status: next.String()}, &tx); err != nil {
		return nil, err
	}
	m.remember(tx)
	return &tx, nil
}

func (m *TransactionManager) Delete(ctx context.Context, id string) error {
	if err := m.api.requireAuth(); err != nil {
		return err
	}
	if err := m.api.do(ctx, http.MethodDelete, "/delete-transaction/"+escapeID(id), nil, nil); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.known, id)
	m.mu.Unlock()
	return nil
}

type ListOptions struct {
	Page   int
	Limit  int
	Status models.TransactionStatus
	Search string
}

type TransactionPage struct {
	Transactions []models.Transaction
	Meta         models.PaginationMeta
}

// List pages through every user's transactions (admin only).
func (m *TransactionManager) List(ctx context.Context, opts ListOptions) (TransactionPage, error) {
	if err := m.api.requireAuth(); err != nil {
		return TransactionPage{}, err
	}

	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Status != "" {
		q.Set("status", opts.Status.String())
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	path := "/all-transactions"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var txs []models.Transaction
	env, err := m.api.doEnvelope(ctx, http.MethodGet, path, nil, &txs)
	if err != nil {
		return TransactionPage{}, err
	}
	m.remember(txs...)
	return TransactionPage{Transactions: txs, Meta: env.Meta}, nil
}
