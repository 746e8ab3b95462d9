// Package testutil provides in-memory stores and a ready-made API server for
// tests that exercise the HTTP surface without Postgres.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"travel-booking/models"
	"travel-booking/repositories"
	"travel-booking/services"

	"github.com/google/uuid"
)

// MemStore keeps every record in maps guarded by one mutex. It satisfies all
// the store interfaces the services depend on.
type MemStore struct {
	mu sync.Mutex

	users          map[string]models.User
	activities     map[string]models.Activity
	categories     map[string]models.Category
	promos         map[string]models.Promo
	banners        map[string]models.Banner
	paymentMethods map[string]models.PaymentMethod
	carts          map[string]models.CartItem
	transactions   map[string]models.Transaction

	seq int
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:          map[string]models.User{},
		activities:     map[string]models.Activity{},
		categories:     map[string]models.Category{},
		promos:         map[string]models.Promo{},
		banners:        map[string]models.Banner{},
		paymentMethods: map[string]models.PaymentMethod{},
		carts:          map[string]models.CartItem{},
		transactions:   map[string]models.Transaction{},
	}
}

// tick returns strictly increasing timestamps so ordering by time is stable.
func (m *MemStore) tick() time.Time {
	m.seq++
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.seq) * time.Second)
}

func (m *MemStore) Users() services.UserStore                   { return memUsers{m} }
func (m *MemStore) Activities() services.ActivityStore          { return memActivities{m} }
func (m *MemStore) Categories() services.CategoryStore          { return memCategories{m} }
func (m *MemStore) Promos() services.PromoStore                 { return memPromos{m} }
func (m *MemStore) Banners() services.BannerStore               { return memBanners{m} }
func (m *MemStore) PaymentMethods() services.PaymentMethodStore { return memPaymentMethods{m} }
func (m *MemStore) Carts() services.CartStore                   { return memCarts{m} }
func (m *MemStore) Transactions() services.TransactionStore     { return memTransactions{m} }

func (m *MemStore) PutActivity(a models.Activity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activities[a.ID] = a
}

func (m *MemStore) PutPaymentMethod(pm models.PaymentMethod) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paymentMethods[pm.ID] = pm
}

// Transaction returns a copy of the stored transaction.
func (m *MemStore) Transaction(id string) (models.Transaction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transactions[id]
	return t, ok
}

// Users

type memUsers struct{ m *MemStore }

func (s memUsers) Create(ctx context.Context, u *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	now := s.m.tick()
	u.CreatedAt, u.UpdatedAt = now, now
	s.m.users[u.ID] = *u
	return nil
}

func (s memUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s memUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (s memUsers) FindAll(ctx context.Context, limit, offset int) ([]models.User, int, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	all := make([]models.User, 0, len(s.m.users))
	for _, u := range s.m.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), len(all), nil
}

func (s memUsers) UpdateProfile(ctx context.Context, u *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.users[u.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.m.users[u.ID] = *u
	return nil
}

func (s memUsers) UpdateRole(ctx context.Context, id, role string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.Role = role
	s.m.users[id] = u
	return nil
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// Catalog

type memActivities struct{ m *MemStore }

func (s memActivities) list(keep func(models.Activity) bool) []models.Activity {
	out := []models.Activity{}
	for _, a := range s.m.activities {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s memActivities) FindAll(ctx context.Context) ([]models.Activity, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.list(func(models.Activity) bool { return true }), nil
}

func (s memActivities) FindByCategory(ctx context.Context, categoryID string) ([]models.Activity, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.list(func(a models.Activity) bool { return a.CategoryID == categoryID }), nil
}

func (s memActivities) FindByID(ctx context.Context, id string) (*models.Activity, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	a, ok := s.m.activities[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &a, nil
}

func (s memActivities) Create(ctx context.Context, a *models.Activity) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.activities[a.ID] = *a
	return nil
}

func (s memActivities) Update(ctx context.Context, a *models.Activity) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.activities[a.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.m.activities[a.ID] = *a
	return nil
}

func (s memActivities) Delete(ctx context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.activities[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.m.activities, id)
	return nil
}

type memCategories struct{ m *MemStore }

func (s memCategories) FindAll(ctx context.Context) ([]models.Category, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return values(s.m.categories, func(c models.Category) string { return c.ID }), nil
}

func (s memCategories) FindByID(ctx context.Context, id string) (*models.Category, error) {
	return find(&s.m.mu, s.m.categories, id)
}

func (s memCategories) Create(ctx context.Context, c *models.Category) error {
	return put(&s.m.mu, s.m.categories, c.ID, *c, false)
}

func (s memCategories) Update(ctx context.Context, c *models.Category) error {
	return put(&s.m.mu, s.m.categories, c.ID, *c, true)
}

func (s memCategories) Delete(ctx context.Context, id string) error {
	return remove(&s.m.mu, s.m.categories, id)
}

type memPromos struct{ m *MemStore }

func (s memPromos) FindAll(ctx context.Context) ([]models.Promo, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return values(s.m.promos, func(p models.Promo) string { return p.ID }), nil
}

func (s memPromos) FindByID(ctx context.Context, id string) (*models.Promo, error) {
	return find(&s.m.mu, s.m.promos, id)
}

func (s memPromos) Create(ctx context.Context, p *models.Promo) error {
	return put(&s.m.mu, s.m.promos, p.ID, *p, false)
}

func (s memPromos) Update(ctx context.Context, p *models.Promo) error {
	return put(&s.m.mu, s.m.promos, p.ID, *p, true)
}

func (s memPromos) Delete(ctx context.Context, id string) error {
	return remove(&s.m.mu, s.m.promos, id)
}

type memBanners struct{ m *MemStore }

func (s memBanners) FindAll(ctx context.Context) ([]models.Banner, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return values(s.m.banners, func(b models.Banner) string { return b.ID }), nil
}

func (s memBanners) FindByID(ctx context.Context, id string) (*models.Banner, error) {
	return find(&s.m.mu, s.m.banners, id)
}

func (s memBanners) Create(ctx context.Context, b *models.Banner) error {
	return put(&s.m.mu, s.m.banners, b.ID, *b, false)
}

func (s memBanners) Update(ctx context.Context, b *models.Banner) error {
	return put(&s.m.mu, s.m.banners, b.ID, *b, true)
}

func (s memBanners) Delete(ctx context.Context, id string) error {
	return remove(&s.m.mu, s.m.banners, id)
}

type memPaymentMethods struct{ m *MemStore }

func (s memPaymentMethods) FindAll(ctx context.Context) ([]models.PaymentMethod, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return values(s.m.paymentMethods, func(pm models.PaymentMethod) string { return pm.Name }), nil
}

func values[T any](m map[string]T, key func(T) string) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return key(out[i]) < key(out[j]) })
	return out
}

func find[T any](mu *sync.Mutex, m map[string]T, id string) (*T, error) {
	mu.Lock()
	defer mu.Unlock()
	v, ok := m[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &v, nil
}

func put[T any](mu *sync.Mutex, m map[string]T, id string, v T, mustExist bool) error {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := m[id]; mustExist && !ok {
		return repositories.ErrNotFound
	}
	m[id] = v
	return nil
}

func remove[T any](mu *sync.Mutex, m map[string]T, id string) error {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := m[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m, id)
	return nil
}

// Cart

type memCarts struct{ m *MemStore }

func (s memCarts) snapshot(ci models.CartItem) models.CartItem {
	if a, ok := s.m.activities[ci.ActivityID]; ok {
		ci.Activity = a.Snapshot()
	}
	return ci
}

func (s memCarts) FindByUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := []models.CartItem{}
	for _, ci := range s.m.carts {
		if ci.UserID == userID {
			out = append(out, s.snapshot(ci))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s memCarts) Add(ctx context.Context, userID, activityID string) (string, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for id, ci := range s.m.carts {
		if ci.UserID == userID && ci.ActivityID == activityID {
			ci.Quantity++
			ci.UpdatedAt = s.m.tick()
			s.m.carts[id] = ci
			return id, nil
		}
	}
	now := s.m.tick()
	id := uuid.NewString()
	s.m.carts[id] = models.CartItem{
		ID: id, UserID: userID, ActivityID: activityID, Quantity: 1, CreatedAt: now, UpdatedAt: now,
	}
	return id, nil
}

func (s memCarts) UpdateQuantity(ctx context.Context, userID, id string, quantity int) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	ci, ok := s.m.carts[id]
	if !ok || ci.UserID != userID {
		return repositories.ErrNotFound
	}
	ci.Quantity = quantity
	s.m.carts[id] = ci
	return nil
}

func (s memCarts) Delete(ctx context.Context, userID, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	ci, ok := s.m.carts[id]
	if !ok || ci.UserID != userID {
		return repositories.ErrNotFound
	}
	delete(s.m.carts, id)
	return nil
}

// Transactions

type memTransactions struct{ m *MemStore }

func (s memTransactions) Checkout(ctx context.Context, userID string, cartIDs []string, paymentMethodID string, build repositories.CheckoutBuilder) (*models.Transaction, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	carts := memCarts{s.m}
	items := make([]models.CartItem, 0, len(cartIDs))
	for _, id := range cartIDs {
		ci, ok := s.m.carts[id]
		if !ok || ci.UserID != userID {
			return nil, repositories.ErrCartItemNotFound
		}
		items = append(items, carts.snapshot(ci))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })

	pm, ok := s.m.paymentMethods[paymentMethodID]
	if !ok {
		return nil, repositories.ErrPaymentMethodNotFound
	}

	t, err := build(items, pm)
	if err != nil {
		return nil, err
	}
	t.CreatedAt, t.UpdatedAt = t.OrderDate, t.OrderDate
	t.PaymentMethod = &pm
	s.m.transactions[t.ID] = *t

	for _, id := range cartIDs {
		delete(s.m.carts, id)
	}
	return t, nil
}

func (s memTransactions) FindByID(ctx context.Context, id string) (*models.Transaction, error) {
	return find(&s.m.mu, s.m.transactions, id)
}

func (s memTransactions) sorted(keep func(models.Transaction) bool) []models.Transaction {
	out := []models.Transaction{}
	for _, t := range s.m.transactions {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out
}

func (s memTransactions) FindByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.sorted(func(t models.Transaction) bool { return t.UserID == userID }), nil
}

func (s memTransactions) FindAll(ctx context.Context, f models.TransactionFilter) ([]models.Transaction, int, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	all := s.sorted(func(t models.Transaction) bool {
		if f.Status != "" && string(t.Status) != f.Status {
			return false
		}
		return f.Search == "" || strings.Contains(strings.ToLower(t.InvoiceID), strings.ToLower(f.Search))
	})
	return page(all, f.Limit, f.Offset), len(all), nil
}

func (s memTransactions) UpdateProofPayment(ctx context.Context, id, url string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	t, ok := s.m.transactions[id]
	if !ok {
		return repositories.ErrNotFound
	}
	t.ProofPaymentURL = &url
	s.m.transactions[id] = t
	return nil
}

func (s memTransactions) UpdateStatusFromPending(ctx context.Context, id string, status models.TransactionStatus) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	t, ok := s.m.transactions[id]
	if !ok || t.Status != models.StatusPending {
		return repositories.ErrStatusChanged
	}
	t.Status = status
	s.m.transactions[id] = t
	return nil
}

func (s memTransactions) ExpirePending(ctx context.Context, now time.Time) ([]string, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	ids := []string{}
	for id, t := range s.m.transactions {
		if t.Status == models.StatusPending && t.ExpiredDate.Before(now) {
			t.Status = models.StatusFailed
			s.m.transactions[id] = t
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s memTransactions) Delete(ctx context.Context, id string) error {
	return remove(&s.m.mu, s.m.transactions, id)
}
