package repositories

import (
	"context"
	"fmt"
	"time"

	"travel-booking/models"
)

type PromoRepository struct {
	db DB
}

func NewPromoRepository(db DB) *PromoRepository {
	return &PromoRepository{db: db}
}

const promoColumns = `id, title, description, image_url, terms_condition, promo_code,
	promo_discount_price, minimum_claim_price, created_at, updated_at`

func scanPromo(row interface{ Scan(...any) error }) (*models.Promo, error) {
	var p models.Promo
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.TermsCondition, &p.PromoCode,
		&p.PromoDiscountPrice, &p.MinimumClaimPrice, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *PromoRepository) FindAll(ctx context.Context) ([]models.Promo, error) {
	rows, err := r.db.Query(ctx, `SELECT `+promoColumns+` FROM promos ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select promos: %w", err)
	}
	defer rows.Close()

	promos := []models.Promo{}
	for rows.Next() {
		p, err := scanPromo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan promo: %w", err)
		}
		promos = append(promos, *p)
	}
	return promos, rows.Err()
}

func (r *PromoRepository) FindByID(ctx context.Context, id string) (*models.Promo, error) {
	return scanPromo(r.db.QueryRow(ctx, `SELECT `+promoColumns+` FROM promos WHERE id = $1`, id))
}

func (r *PromoRepository) Create(ctx context.Context, p *models.Promo) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO promos (id, title, description, image_url, terms_condition, promo_code,
			promo_discount_price, minimum_claim_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING created_at, updated_at`,
		p.ID, p.Title, p.Description, p.ImageURL, p.TermsCondition, p.PromoCode,
		p.PromoDiscountPrice, p.MinimumClaimPrice, time.Now(),
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *PromoRepository) Update(ctx context.Context, p *models.Promo) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE promos SET title = $1, description = $2, image_url = $3, terms_condition = $4,
			promo_code = $5, promo_discount_price = $6, minimum_claim_price = $7, updated_at = $8
		WHERE id = $9`,
		p.Title, p.Description, p.ImageURL, p.TermsCondition,
		p.PromoCode, p.PromoDiscountPrice, p.MinimumClaimPrice, time.Now(), p.ID)
	if err != nil {
		return notFound(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PromoRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM promos WHERE id = $1`, id)
	if err != nil {
		return notFound(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
