package repositories

import (
	"context"
	"fmt"
	"time"

	"travel-booking/models"
)

type BannerRepository struct {
	db DB
}

func NewBannerRepository(db DB) *BannerRepository {
	return &BannerRepository{db: db}
}

func (r *BannerRepository) FindAll(ctx context.Context) ([]models.Banner, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, image_url, created_at, updated_at FROM banners ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select banners: %w", err)
	}
	defer rows.Close()

	banners := []models.Banner{}
	for rows.Next() {
		var b models.Banner
		if err := rows.Scan(&b.ID, &b.Name, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan banner: %w", err)
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}

func (r *BannerRepository) FindByID(ctx context.Context, id string) (*models.Banner, error) {
	var b models.Banner
	err := r.db.QueryRow(ctx,
		`SELECT id, name, image_url, created_at, updated_at FROM banners WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *BannerRepository) Create(ctx context.Context, b *models.Banner) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO banners (id, name, image_url, created_at, updated_at) VALUES ($1, $2, $3, $4, $4)
		RETURNING created_at, updated_at`,
		b.ID, b.Name, b.ImageURL, time.Now(),
	).Scan(&b.CreatedAt, &b.UpdatedAt)
}

func (r *BannerRepository) Update(ctx context.Context, b *models.Banner) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE banners SET name = $1, image_url = $2, updated_at = $3 WHERE id = $4`,
		b.Name, b.ImageURL, time.Now(), b.ID)
	if err != nil {
		return notFound(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BannerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return notFound(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
