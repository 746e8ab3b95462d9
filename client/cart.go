package client

import (
	"context"
	"net/http"
	"sync"

	"travel-booking/models"
)

// CartEntry is one cart line plus its checkout selection flag. Keeping the
// flag on the entry means a selection can never name an item that is not in
// the cart.
type CartEntry struct {
	Item     models.CartItem
	Selected bool
}

// CartManager mirrors the user's cart and the set of lines chosen for
// checkout. Local state only changes after the backend confirms a write.
type CartManager struct {
	api *Client

	mu      sync.Mutex
	entries []CartEntry
}

func NewCartManager(api *Client) *CartManager {
	return &CartManager{api: api}
}

// ListItems reloads the cart from the backend. Lines still present keep their
// selection flag; lines that disappeared drop out of the selection with them.
// On failure the previous view is kept.
func (m *CartManager) ListItems(ctx context.Context) ([]models.CartItem, error) {
	if err := m.api.requireAuth(); err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := m.api.do(ctx, http.MethodGet, "/carts", nil, &items); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	selected := make(map[string]bool, len(m.entries))
	for _, e := range m.entries {
		if e.Selected {
			selected[e.Item.ID] = true
		}
	}
	entries := make([]CartEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, CartEntry{Item: it, Selected: selected[it.ID]})
	}
	m.entries = entries

	return cloneItems(entries), nil
}

// AddActivity puts one unit of the activity in the cart and reloads it.
func (m *CartManager) AddActivity(ctx context.Context, activityID string) error {
	if err := m.api.requireAuth(); err != nil {
		return err
	}
	if activityID == "" {
		return validationError("Please choose an activity")
	}
	if err := m.api.do(ctx, http.MethodPost, "/add-cart", models.AddCartRequest{ActivityID: activityID}, nil); err != nil {
		return err
	}
	_, err := m.ListItems(ctx)
	return err
}

// ChangeQuantity sets the quantity of one line. Quantities below one are
// rejected without contacting the backend.
func (m *CartManager) ChangeQuantity(ctx context.Context, id string, quantity int) error {
	if quantity < 1 {
		return validationError("Quantity must be at least 1")
	}
	if err := m.api.requireAuth(); err != nil {
		return err
	}

	path := "/update-cart/" + escapeID(id)
	if err := m.api.do(ctx, http.MethodPost, path, models.UpdateCartRequest{Quantity: quantity}, nil); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.entries {
		if m.entries[i].Item.ID == id {
			m.entries[i].Item.Quantity = quantity
		}
	}
	return nil
}

// DeleteItem removes the line from the cart and from the selection.
func (m *CartManager) DeleteItem(ctx context.Context, id string) error {
	if err := m.api.requireAuth(); err != nil {
		return err
	}
	if err := m.api.do(ctx, http.MethodDelete, "/delete-cart/"+escapeID(id), nil, nil); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(id)
	return nil
}

func (m *CartManager) removeLocked(ids ...string) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := m.entries[:0]
	for _, e := range m.entries {
		if !drop[e.Item.ID] {
			kept = append(kept, e)
		}
	}
	m.entries = kept
}

// ToggleSelection flips the selection of one line. Unknown ids are ignored.
func (m *CartManager) ToggleSelection(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.entries {
		if m.entries[i].Item.ID == id {
			m.entries[i].Selected = !m.entries[i].Selected
			return
		}
	}
}

func (m *CartManager) SelectAll(checked bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.entries {
		m.entries[i].Selected = checked
	}
}

func (m *CartManager) Items() []models.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneItems(m.entries)
}

func (m *CartManager) Entries() []CartEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]CartEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *CartManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// SelectedIDs returns the selected line ids in cart order.
func (m *CartManager) SelectedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := []string{}
	for _, e := range m.entries {
		if e.Selected {
			ids = append(ids, e.Item.ID)
		}
	}
	return ids
}

func (m *CartManager) AllSelected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.entries) == 0 {
		return false
	}
	for _, e := range m.entries {
		if !e.Selected {
			return false
		}
	}
	return true
}

// SelectedTotal sums effective unit price times quantity over the selection.
func (m *CartManager) SelectedTotal() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, e := range m.entries {
		if e.Selected {
			total += e.Item.LineTotal()
		}
	}
	return total
}

func cloneItems(entries []CartEntry) []models.CartItem {
	out := make([]models.CartItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Item)
	}
	return out
}
