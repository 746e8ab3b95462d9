package models

import "time"

type CartItem struct {
	ID         string           `json:"id"`
	UserID     string           `json:"userId"`
	ActivityID string           `json:"activityId"`
	Quantity   int              `json:"quantity"`
	Activity   ActivitySnapshot `json:"activity"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

func (c CartItem) LineTotal() int64 {
	return c.Activity.UnitPrice() * int64(c.Quantity)
}
