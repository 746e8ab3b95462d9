package repositories

import (
	"context"
	"fmt"

	"travel-booking/models"
)

type PaymentMethodRepository struct {
	db DB
}

func NewPaymentMethodRepository(db DB) *PaymentMethodRepository {
	return &PaymentMethodRepository{db: db}
}

const paymentMethodColumns = `id, name, type, description, virtual_account_number, virtual_account_name, image_url`

func (r *PaymentMethodRepository) FindAll(ctx context.Context) ([]models.PaymentMethod, error) {
	rows, err := r.db.Query(ctx, `SELECT `+paymentMethodColumns+` FROM payment_methods ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select payment methods: %w", err)
	}
	defer rows.Close()

	methods := []models.PaymentMethod{}
	for rows.Next() {
		var pm models.PaymentMethod
		if err := rows.Scan(&pm.ID, &pm.Name, &pm.Type, &pm.Description,
			&pm.VirtualAccountNumber, &pm.VirtualAccountName, &pm.ImageURL); err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		methods = append(methods, pm)
	}
	return methods, rows.Err()
}
