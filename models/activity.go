package models

import "time"

type Activity struct {
	ID            string    `json:"id"`
	CategoryID    string    `json:"categoryId"`
	Category      *Category `json:"category,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ImageURLs     []string  `json:"imageUrls"`
	Price         int64     `json:"price"`
	PriceDiscount int64     `json:"price_discount"`
	Rating        float64   `json:"rating"`
	TotalReviews  int       `json:"total_reviews"`
	Facilities    string    `json:"facilities"`
	Address       string    `json:"address"`
	Province      string    `json:"province"`
	City          string    `json:"city"`
	LocationMaps  string    `json:"location_maps"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Snapshot copies the display fields a cart row carries.
func (a Activity) Snapshot() ActivitySnapshot {
	urls := make([]string, len(a.ImageURLs))
	copy(urls, a.ImageURLs)
	return ActivitySnapshot{
		ID:            a.ID,
		Title:         a.Title,
		Price:         a.Price,
		PriceDiscount: a.PriceDiscount,
		ImageURLs:     urls,
		City:          a.City,
		Province:      a.Province,
	}
}

// ActivitySnapshot is the denormalized view of an activity embedded in a cart
// item. It is never written back to the catalog.
type ActivitySnapshot struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Price         int64    `json:"price"`
	PriceDiscount int64    `json:"price_discount"`
	ImageURLs     []string `json:"imageUrls"`
	City          string   `json:"city"`
	Province      string   `json:"province"`
}

// UnitPrice is the discount price when it undercuts the list price.
func (s ActivitySnapshot) UnitPrice() int64 {
	return EffectivePrice(s.Price, s.PriceDiscount)
}

func EffectivePrice(price, discount int64) int64 {
	if discount > 0 && discount < price {
		return discount
	}
	return price
}
