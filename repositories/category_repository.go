package repositories

import (
	"context"
	"fmt"
	"time"

	"travel-booking/models"
)

type CategoryRepository struct {
	db DB
}

func NewCategoryRepository(db DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, image_url, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.ImageURL, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*models.Category, error) {
	var cat models.Category
	err := r.db.QueryRow(ctx,
		`SELECT id, name, image_url, created_at, updated_at FROM categories WHERE id = $1`, id,
	).Scan(&cat.ID, &cat.Name, &cat.ImageURL, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &cat, nil
}

func (r *CategoryRepository) Create(ctx context.Context, cat *models.Category) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO categories (id, name, image_url, created_at, updated_at) VALUES ($1, $2, $3, $4, $4)
		RETURNING created_at, updated_at`,
		cat.ID, cat.Name, cat.ImageURL, time.Now(),
	).Scan(&cat.CreatedAt, &cat.UpdatedAt)
}

func (r *CategoryRepository) Update(ctx context.Context, cat *models.Category) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE categories SET name = $1, image_url = $2, updated_at = $3 WHERE id = $4`,
		cat.Name, cat.ImageURL, time.Now(), cat.ID)
	if err != nil {
		return notFound(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return notFound(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
