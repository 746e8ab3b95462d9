package repositories

import (
	"context"
	"fmt"
	"time"

	"travel-booking/models"

	"github.com/google/uuid"
)

type CartRepository struct {
	db DB
}

func NewCartRepository(db DB) *CartRepository {
	return &CartRepository{db: db}
}

const cartSelect = `
	SELECT ci.id, ci.user_id, ci.activity_id, ci.quantity, ci.created_at, ci.updated_at,
		a.title, a.price, a.price_discount, a.image_urls, a.city, a.province
	FROM cart_items ci
	JOIN activities a ON a.id = ci.activity_id
`

func scanCartItem(row interface{ Scan(...any) error }) (*models.CartItem, error) {
	var ci models.CartItem
	err := row.Scan(
		&ci.ID, &ci.UserID, &ci.ActivityID, &ci.Quantity, &ci.CreatedAt, &ci.UpdatedAt,
		&ci.Activity.Title, &ci.Activity.Price, &ci.Activity.PriceDiscount, &ci.Activity.ImageURLs,
		&ci.Activity.City, &ci.Activity.Province,
	)
	if err != nil {
		return nil, notFound(err)
	}
	ci.Activity.ID = ci.ActivityID
	return &ci, nil
}

func (r *CartRepository) FindByUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	rows, err := r.db.Query(ctx, cartSelect+` WHERE ci.user_id = $1 ORDER BY ci.created_at, ci.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("select cart items: %w", err)
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		ci, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, *ci)
	}
	return items, rows.Err()
}

// Add inserts one unit of the activity or bumps the quantity of the existing row.
func (r *CartRepository) Add(ctx context.Context, userID, activityID string) (string, error) {
	var id string
	err := r.db.QueryRow(ctx, `
		INSERT INTO cart_items (id, user_id, activity_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, 1, $4, $4)
		ON CONFLICT (user_id, activity_id)
		DO UPDATE SET quantity = cart_items.quantity + 1, updated_at = EXCLUDED.updated_at
		RETURNING id`,
		uuid.NewString(), userID, activityID, time.Now(),
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("upsert cart item: %w", err)
	}
	return id, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, userID, id string, quantity int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE cart_items SET quantity = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`,
		quantity, time.Now(), id, userID)
	if err != nil {
		return fmt.Errorf("update cart item: %w", notFound(err))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", notFound(err))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
