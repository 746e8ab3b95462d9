package client

import (
	"context"
	"log/slog"
	"strings"
)

type CheckoutResult struct {
	TransactionID string
	InvoiceID     string
	TotalAmount   int64
	RedirectPath  string
}

// Checkout turns the cart selection into a transaction.
type Checkout struct {
	cart *CartManager
	txs  *TransactionManager
}

func NewCheckout(cart *CartManager, txs *TransactionManager) *Checkout {
	return &Checkout{cart: cart, txs: txs}
}

// Submit validates the selection and payment method locally, then creates the
// transaction. On success the cart is reloaded, since the backend consumed
// the selected lines, and the result carries the payment page path.
func (c *Checkout) Submit(ctx context.Context, paymentMethodID string) (CheckoutResult, error) {
	ids := c.cart.SelectedIDs()
	if len(ids) == 0 {
		return CheckoutResult{}, validationError("Please select items to checkout")
	}
	if strings.TrimSpace(paymentMethodID) == "" {
		return CheckoutResult{}, validationError("Please select a payment method")
	}

	created, err := c.txs.Create(ctx, ids, paymentMethodID)
	if err != nil {
		return CheckoutResult{}, err
	}

	if _, err := c.cart.ListItems(ctx); err != nil {
		slog.Warn("cart reload after checkout failed", "error", err)
		c.cart.mu.Lock()
		c.cart.removeLocked(ids...)
		c.cart.mu.Unlock()
	}

	return CheckoutResult{
		TransactionID: created.ID,
		InvoiceID:     created.InvoiceID,
		TotalAmount:   created.TotalAmount,
		RedirectPath:  "/payments/" + created.ID,
	}, nil
}
