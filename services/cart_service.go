package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"travel-booking/models"
	"travel-booking/repositories"
)

type CartStore interface {
	FindByUser(ctx context.Context, userID string) ([]models.CartItem, error)
	Add(ctx context.Context, userID, activityID string) (string, error)
	UpdateQuantity(ctx context.Context, userID, id string, quantity int) error
	Delete(ctx context.Context, userID, id string) error
}

type CartService struct {
	carts      CartStore
	activities ActivityStore
}

func NewCartService(carts CartStore, activities ActivityStore) *CartService {
	return &CartService{carts: carts, activities: activities}
}

func (s *CartService) GetCart(ctx context.Context, userID string) ([]models.CartItem, error) {
	return s.carts.FindByUser(ctx, userID)
}

// AddToCart puts one unit of the activity in the cart, or one more unit when
// it is already there. It returns the cart item id.
func (s *CartService) AddToCart(ctx context.Context, userID, activityID string) (string, error) {
	if strings.TrimSpace(activityID) == "" {
		return "", fmt.Errorf("%w: activityId is required", ErrValidation)
	}
	if _, err := s.activities.FindByID(ctx, activityID); err != nil {
		return "", notFoundAs(err, "activity")
	}
	return s.carts.Add(ctx, userID, activityID)
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, id string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	err := s.carts.UpdateQuantity(ctx, userID, id, quantity)
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: cart item not found", ErrNotFound)
	}
	return err
}

func (s *CartService) DeleteItem(ctx context.Context, userID, id string) error {
	err := s.carts.Delete(ctx, userID, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: cart item not found", ErrNotFound)
	}
	return err
}
