package services

import (
	"context"
	"testing"

	"travel-booking/models"
	"travel-booking/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartUpdateQuantity_RejectsBelowOneBeforeWrite(t *testing.T) {
	carts := &fakeCartStore{UpdateQuantityFn: func(context.Context, string, string, int) error {
		t.Fatal("write attempted")
		return nil
	}}
	s := NewCartService(carts, &fakeActivityStore{})

	for _, q := range []int{0, -1, -10} {
		err := s.UpdateQuantity(context.Background(), "u1", "c1", q)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, "quantity must be at least 1", Message(err))
	}
}

func TestCartUpdateQuantity_NotOwnedIsNotFound(t *testing.T) {
	carts := &fakeCartStore{UpdateQuantityFn: func(context.Context, string, string, int) error {
		return repositories.ErrNotFound
	}}
	s := NewCartService(carts, &fakeActivityStore{})

	err := s.UpdateQuantity(context.Background(), "u1", "c1", 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddToCart(t *testing.T) {
	var added []string
	carts := &fakeCartStore{AddFn: func(ctx context.Context, userID, activityID string) (string, error) {
		added = append(added, activityID)
		return "c1", nil
	}}
	activities := &fakeActivityStore{FindByIDFn: func(ctx context.Context, id string) (*models.Activity, error) {
		if id == "a1" {
			return &models.Activity{ID: id}, nil
		}
		return nil, repositories.ErrNotFound
	}}
	s := NewCartService(carts, activities)

	id, err := s.AddToCart(context.Background(), "u1", "a1")
	require.NoError(t, err)
	assert.Equal(t, "c1", id)

	_, err = s.AddToCart(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.AddToCart(context.Background(), "u1", "")
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, []string{"a1"}, added)
}

func TestDeleteItem_NotFound(t *testing.T) {
	carts := &fakeCartStore{DeleteFn: func(context.Context, string, string) error {
		return repositories.ErrNotFound
	}}
	s := NewCartService(carts, &fakeActivityStore{})

	assert.ErrorIs(t, s.DeleteItem(context.Background(), "u1", "c1"), ErrNotFound)
}
