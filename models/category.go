package models

import "time"

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Banner struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Promo struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	ImageURL           string    `json:"imageUrl"`
	TermsCondition     string    `json:"terms_condition"`
	PromoCode          string    `json:"promo_code"`
	PromoDiscountPrice int64     `json:"promo_discount_price"`
	MinimumClaimPrice  int64     `json:"minimum_claim_price"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type PaymentMethod struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Type                 string `json:"type"`
	Description          string `json:"description"`
	VirtualAccountNumber string `json:"virtual_account_number"`
	VirtualAccountName   string `json:"virtual_account_name"`
	ImageURL             string `json:"imageUrl"`
}
