package repositories

import (
	"context"
	"fmt"
	"time"

	"travel-booking/models"
)

type ActivityRepository struct {
	db DB
}

func NewActivityRepository(db DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

const activityColumns = `id, category_id, title, description, image_urls, price, price_discount,
	rating, total_reviews, facilities, address, province, city, location_maps, created_at, updated_at`

func scanActivity(row interface{ Scan(...any) error }) (*models.Activity, error) {
	var a models.Activity
	err := row.Scan(
		&a.ID, &a.CategoryID, &a.Title, &a.Description, &a.ImageURLs, &a.Price, &a.PriceDiscount,
		&a.Rating, &a.TotalReviews, &a.Facilities, &a.Address, &a.Province, &a.City, &a.LocationMaps,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *ActivityRepository) list(ctx context.Context, query string, args ...any) ([]models.Activity, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select activities: %w", err)
	}
	defer rows.Close()

	activities := []models.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

func (r *ActivityRepository) FindAll(ctx context.Context) ([]models.Activity, error) {
	return r.list(ctx, `SELECT `+activityColumns+` FROM activities ORDER BY created_at DESC`)
}

func (r *ActivityRepository) FindByCategory(ctx context.Context, categoryID string) ([]models.Activity, error) {
	activities, err := r.list(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE category_id = $1 ORDER BY created_at DESC`,
		categoryID)
	if isInvalidID(err) {
		return []models.Activity{}, nil
	}
	return activities, err
}

func (r *ActivityRepository) FindByID(ctx context.Context, id string) (*models.Activity, error) {
	return scanActivity(r.db.QueryRow(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = $1`, id))
}

func (r *ActivityRepository) Create(ctx context.Context, a *models.Activity) error {
	query := `
		INSERT INTO activities (id, category_id, title, description, image_urls, price, price_discount,
			rating, total_reviews, facilities, address, province, city, location_maps, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		a.ID, a.CategoryID, a.Title, a.Description, a.ImageURLs, a.Price, a.PriceDiscount,
		a.Rating, a.TotalReviews, a.Facilities, a.Address, a.Province, a.City, a.LocationMaps, time.Now(),
	).Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *ActivityRepository) Update(ctx context.Context, a *models.Activity) error {
	query := `
		UPDATE activities SET category_id = $1, title = $2, description = $3, image_urls = $4, price = $5,
			price_discount = $6, rating = $7, total_reviews = $8, facilities = $9, address = $10,
			province = $11, city = $12, location_maps = $13, updated_at = $14
		WHERE id = $15
	`
	tag, err := r.db.Exec(ctx, query,
		a.CategoryID, a.Title, a.Description, a.ImageURLs, a.Price,
		a.PriceDiscount, a.Rating, a.TotalReviews, a.Facilities, a.Address,
		a.Province, a.City, a.LocationMaps, time.Now(), a.ID,
	)
	if err != nil {
		return notFound(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return notFound(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
