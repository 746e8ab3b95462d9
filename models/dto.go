package models

type RegisterRequest struct {
	Name              string `json:"name" binding:"required,min=3"`
	Email             string `json:"email" binding:"required,email"`
	Password          string `json:"password" binding:"required,min=6"`
	PasswordRepeat    string `json:"passwordRepeat" binding:"required,eqfield=Password"`
	Role              string `json:"role" binding:"omitempty,oneof=user admin"`
	ProfilePictureURL string `json:"profilePictureUrl"`
	PhoneNumber       string `json:"phoneNumber"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email" binding:"omitempty,email"`
	ProfilePictureURL string `json:"profilePictureUrl"`
	PhoneNumber       string `json:"phoneNumber"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

type CategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	ImageURL string `json:"imageUrl" binding:"required"`
}

type BannerRequest struct {
	Name     string `json:"name" binding:"required"`
	ImageURL string `json:"imageUrl" binding:"required"`
}

type PromoRequest struct {
	Title              string `json:"title" binding:"required"`
	Description        string `json:"description" binding:"required"`
	ImageURL           string `json:"imageUrl" binding:"required"`
	TermsCondition     string `json:"terms_condition" binding:"required"`
	PromoCode          string `json:"promo_code" binding:"required"`
	PromoDiscountPrice int64  `json:"promo_discount_price" binding:"gte=0"`
	MinimumClaimPrice  int64  `json:"minimum_claim_price" binding:"gte=0"`
}

type ActivityRequest struct {
	CategoryID    string   `json:"categoryId" binding:"required"`
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	ImageURLs     []string `json:"imageUrls" binding:"required,min=1"`
	Price         int64    `json:"price" binding:"required,gt=0"`
	PriceDiscount int64    `json:"price_discount" binding:"gte=0"`
	Rating        float64  `json:"rating" binding:"gte=0,lte=5"`
	TotalReviews  int      `json:"total_reviews" binding:"gte=0"`
	Facilities    string   `json:"facilities"`
	Address       string   `json:"address"`
	Province      string   `json:"province"`
	City          string   `json:"city"`
	LocationMaps  string   `json:"location_maps"`
}

type AddCartRequest struct {
	ActivityID string `json:"activityId" binding:"required"`
}

// Quantity is validated in the service so that zero reaches the same
// validation message as negatives.
type UpdateCartRequest struct {
	Quantity int `json:"quantity"`
}

type CreateTransactionRequest struct {
	CartIDs         []string `json:"cartIds"`
	PaymentMethodID string   `json:"paymentMethodId"`
}

type CreateTransactionResponse struct {
	ID          string            `json:"id"`
	InvoiceID   string            `json:"invoiceId"`
	TotalAmount int64             `json:"totalAmount"`
	Status      TransactionStatus `json:"status"`
}

type UpdateProofPaymentRequest struct {
	ProofPaymentURL string `json:"proofPaymentUrl" binding:"required"`
}

type UpdateTransactionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UploadImageResponse struct {
	ImageURL string `json:"imageUrl"`
}
