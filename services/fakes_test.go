package services

import (
	"context"
	"time"

	"travel-booking/libs"
	"travel-booking/models"
	"travel-booking/repositories"
)

type fakeUserStore struct {
	CreateFn        func(ctx context.Context, user *models.User) error
	FindByEmailFn   func(ctx context.Context, email string) (*models.User, error)
	FindByIDFn      func(ctx context.Context, id string) (*models.User, error)
	FindAllFn       func(ctx context.Context, limit, offset int) ([]models.User, int, error)
	UpdateProfileFn func(ctx context.Context, user *models.User) error
	UpdateRoleFn    func(ctx context.Context, id, role string) error
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	return f.CreateFn(ctx, user)
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.FindByEmailFn(ctx, email)
}

func (f *fakeUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	return f.FindByIDFn(ctx, id)
}

func (f *fakeUserStore) FindAll(ctx context.Context, limit, offset int) ([]models.User, int, error) {
	return f.FindAllFn(ctx, limit, offset)
}

func (f *fakeUserStore) UpdateProfile(ctx context.Context, user *models.User) error {
	return f.UpdateProfileFn(ctx, user)
}

func (f *fakeUserStore) UpdateRole(ctx context.Context, id, role string) error {
	return f.UpdateRoleFn(ctx, id, role)
}

type fakeCartStore struct {
	FindByUserFn     func(ctx context.Context, userID string) ([]models.CartItem, error)
	AddFn            func(ctx context.Context, userID, activityID string) (string, error)
	UpdateQuantityFn func(ctx context.Context, userID, id string, quantity int) error
	DeleteFn         func(ctx context.Context, userID, id string) error
}

func (f *fakeCartStore) FindByUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	return f.FindByUserFn(ctx, userID)
}

func (f *fakeCartStore) Add(ctx context.Context, userID, activityID string) (string, error) {
	return f.AddFn(ctx, userID, activityID)
}

func (f *fakeCartStore) UpdateQuantity(ctx context.Context, userID, id string, quantity int) error {
	return f.UpdateQuantityFn(ctx, userID, id, quantity)
}

func (f *fakeCartStore) Delete(ctx context.Context, userID, id string) error {
	return f.DeleteFn(ctx, userID, id)
}

type fakeActivityStore struct {
	FindAllFn        func(ctx context.Context) ([]models.Activity, error)
	FindByCategoryFn func(ctx context.Context, categoryID string) ([]models.Activity, error)
	FindByIDFn       func(ctx context.Context, id string) (*models.Activity, error)
	CreateFn         func(ctx context.Context, a *models.Activity) error
	UpdateFn         func(ctx context.Context, a *models.Activity) error
	DeleteFn         func(ctx context.Context, id string) error
}

func (f *fakeActivityStore) FindAll(ctx context.Context) ([]models.Activity, error) {
	return f.FindAllFn(ctx)
}

func (f *fakeActivityStore) FindByCategory(ctx context.Context, categoryID string) ([]models.Activity, error) {
	return f.FindByCategoryFn(ctx, categoryID)
}

func (f *fakeActivityStore) FindByID(ctx context.Context, id string) (*models.Activity, error) {
	return f.FindByIDFn(ctx, id)
}

func (f *fakeActivityStore) Create(ctx context.Context, a *models.Activity) error {
	return f.CreateFn(ctx, a)
}

func (f *fakeActivityStore) Update(ctx context.Context, a *models.Activity) error {
	return f.UpdateFn(ctx, a)
}

func (f *fakeActivityStore) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

type fakeTransactionStore struct {
	CheckoutFn                func(ctx context.Context, userID string, cartIDs []string, paymentMethodID string, build repositories.CheckoutBuilder) (*models.Transaction, error)
	FindByIDFn                func(ctx context.Context, id string) (*models.Transaction, error)
	FindByUserFn              func(ctx context.Context, userID string) ([]models.Transaction, error)
	FindAllFn                 func(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, int, error)
	UpdateProofPaymentFn      func(ctx context.Context, id, url string) error
	UpdateStatusFromPendingFn func(ctx context.Context, id string, status models.TransactionStatus) error
	ExpirePendingFn           func(ctx context.Context, now time.Time) ([]string, error)
	DeleteFn                  func(ctx context.Context, id string) error
}

func (f *fakeTransactionStore) Checkout(ctx context.Context, userID string, cartIDs []string, paymentMethodID string, build repositories.CheckoutBuilder) (*models.Transaction, error) {
	return f.CheckoutFn(ctx, userID, cartIDs, paymentMethodID, build)
}

func (f *fakeTransactionStore) FindByID(ctx context.Context, id string) (*models.Transaction, error) {
	return f.FindByIDFn(ctx, id)
}

func (f *fakeTransactionStore) FindByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	return f.FindByUserFn(ctx, userID)
}

func (f *fakeTransactionStore) FindAll(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, int, error) {
	return f.FindAllFn(ctx, filter)
}

func (f *fakeTransactionStore) UpdateProofPayment(ctx context.Context, id, url string) error {
	return f.UpdateProofPaymentFn(ctx, id, url)
}

func (f *fakeTransactionStore) UpdateStatusFromPending(ctx context.Context, id string, status models.TransactionStatus) error {
	return f.UpdateStatusFromPendingFn(ctx, id, status)
}

func (f *fakeTransactionStore) ExpirePending(ctx context.Context, now time.Time) ([]string, error) {
	return f.ExpirePendingFn(ctx, now)
}

func (f *fakeTransactionStore) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

type fakeMailer struct {
	sent chan string
}

func (m *fakeMailer) SendInvoiceEmail(toEmail, invoiceID string, total int64, lines []libs.InvoiceLine) error {
	m.sent <- toEmail + " " + invoiceID
	return nil
}
