package models

import (
	"errors"
	"fmt"
	"time"
)

type TransactionStatus string

const (
	StatusPending TransactionStatus = "pending"
	StatusSuccess TransactionStatus = "success"
	StatusFailed  TransactionStatus = "failed"
)

var (
	ErrUnknownStatus     = errors.New("unknown transaction status")
	ErrIllegalTransition = errors.New("illegal transaction status transition")
)

func ParseTransactionStatus(s string) (TransactionStatus, error) {
	switch st := TransactionStatus(s); st {
	case StatusPending, StatusSuccess, StatusFailed:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

func (s TransactionStatus) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// CanTransitionTo reports whether a transaction in status s may be moved to
// next. Terminal statuses never move; pending may stay pending.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) error {
	if s.IsTerminal() {
		return fmt.Errorf("%w: %s is final", ErrIllegalTransition, s)
	}
	switch next {
	case StatusPending, StatusSuccess, StatusFailed:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownStatus, string(next))
}

func (s TransactionStatus) String() string {
	return string(s)
}

type Transaction struct {
	ID               string            `json:"id"`
	UserID           string            `json:"userId"`
	PaymentMethodID  string            `json:"paymentMethodId"`
	InvoiceID        string            `json:"invoiceId"`
	Status           TransactionStatus `json:"status"`
	TotalAmount      int64             `json:"totalAmount"`
	ProofPaymentURL  *string           `json:"proofPaymentUrl"`
	OrderDate        time.Time         `json:"orderDate"`
	ExpiredDate      time.Time         `json:"expiredDate"`
	PaymentMethod    *PaymentMethod    `json:"payment_method,omitempty"`
	TransactionItems []TransactionItem `json:"transaction_items"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// TransactionItem is frozen at checkout. It is built from a cart line and
// only ever read back from transaction_items afterwards.
type TransactionItem struct {
	ID            string   `json:"id"`
	ActivityID    string   `json:"activityId"`
	Title         string   `json:"title"`
	Price         int64    `json:"price"`
	PriceDiscount int64    `json:"price_discount"`
	Quantity      int      `json:"quantity"`
	ImageURLs     []string `json:"imageUrls"`
}

func NewTransactionItem(id string, c CartItem) TransactionItem {
	urls := make([]string, len(c.Activity.ImageURLs))
	copy(urls, c.Activity.ImageURLs)
	return TransactionItem{
		ID:            id,
		ActivityID:    c.ActivityID,
		Title:         c.Activity.Title,
		Price:         c.Activity.Price,
		PriceDiscount: c.Activity.PriceDiscount,
		Quantity:      c.Quantity,
		ImageURLs:     urls,
	}
}

func (i TransactionItem) LineTotal() int64 {
	return EffectivePrice(i.Price, i.PriceDiscount) * int64(i.Quantity)
}

// SumItems totals the snapshot lines.
func SumItems(items []TransactionItem) int64 {
	var total int64
	for _, it := range items {
		total += it.LineTotal()
	}
	return total
}

type TransactionFilter struct {
	Status string
	Search string
	Limit  int
	Offset int
}
