package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"travel-booking/libs"
	"travel-booking/models"
	"travel-booking/repositories"

	"github.com/google/uuid"
)

type ActivityStore interface {
	FindAll(ctx context.Context) ([]models.Activity, error)
	FindByCategory(ctx context.Context, categoryID string) ([]models.Activity, error)
	FindByID(ctx context.Context, id string) (*models.Activity, error)
	Create(ctx context.Context, a *models.Activity) error
	Update(ctx context.Context, a *models.Activity) error
	Delete(ctx context.Context, id string) error
}

type CategoryStore interface {
	FindAll(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, cat *models.Category) error
	Update(ctx context.Context, cat *models.Category) error
	Delete(ctx context.Context, id string) error
}

type PromoStore interface {
	FindAll(ctx context.Context) ([]models.Promo, error)
	FindByID(ctx context.Context, id string) (*models.Promo, error)
	Create(ctx context.Context, p *models.Promo) error
	Update(ctx context.Context, p *models.Promo) error
	Delete(ctx context.Context, id string) error
}

type BannerStore interface {
	FindAll(ctx context.Context) ([]models.Banner, error)
	FindByID(ctx context.Context, id string) (*models.Banner, error)
	Create(ctx context.Context, b *models.Banner) error
	Update(ctx context.Context, b *models.Banner) error
	Delete(ctx context.Context, id string) error
}

type PaymentMethodStore interface {
	FindAll(ctx context.Context) ([]models.PaymentMethod, error)
}

// CatalogService serves the read-mostly catalog through the Redis cache.
// Every admin write drops the cached entries of the affected kind.
type CatalogService struct {
	activities ActivityStore
	categories CategoryStore
	promos     PromoStore
	banners    BannerStore
	payments   PaymentMethodStore
	cache      *libs.Cache
}

type CatalogStores struct {
	Activities     ActivityStore
	Categories     CategoryStore
	Promos         PromoStore
	Banners        BannerStore
	PaymentMethods PaymentMethodStore
}

func NewCatalogService(stores CatalogStores, cache *libs.Cache) *CatalogService {
	return &CatalogService{
		activities: stores.Activities,
		categories: stores.Categories,
		promos:     stores.Promos,
		banners:    stores.Banners,
		payments:   stores.PaymentMethods,
		cache:      cache,
	}
}

func notFoundAs(err error, what string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: %s not found", ErrNotFound, what)
	}
	return err
}

func (s *CatalogService) invalidate(ctx context.Context, prefixes ...string) {
	if err := s.cache.Invalidate(ctx, prefixes...); err != nil {
		slog.Warn("cache invalidation failed", "prefixes", prefixes, "error", err)
	}
}

// Activities

func (s *CatalogService) GetActivities(ctx context.Context) ([]models.Activity, error) {
	return libs.Remember(ctx, s.cache, "activities:all", s.activities.FindAll)
}

func (s *CatalogService) GetActivitiesByCategory(ctx context.Context, categoryID string) ([]models.Activity, error) {
	return libs.Remember(ctx, s.cache, "activities:category:"+categoryID, func(ctx context.Context) ([]models.Activity, error) {
		return s.activities.FindByCategory(ctx, categoryID)
	})
}

func (s *CatalogService) GetActivity(ctx context.Context, id string) (*models.Activity, error) {
	a, err := libs.Remember(ctx, s.cache, "activities:id:"+id, func(ctx context.Context) (*models.Activity, error) {
		return s.activities.FindByID(ctx, id)
	})
	if err != nil {
		return nil, notFoundAs(err, "activity")
	}
	out := *a
	if cat, err := s.GetCategory(ctx, a.CategoryID); err == nil {
		out.Category = cat
	}
	return &out, nil
}

func activityFromRequest(a *models.Activity, req models.ActivityRequest) {
	a.CategoryID = req.CategoryID
	a.Title = req.Title
	a.Description = req.Description
	a.ImageURLs = req.ImageURLs
	a.Price = req.Price
	a.PriceDiscount = req.PriceDiscount
	a.Rating = req.Rating
	a.TotalReviews = req.TotalReviews
	a.Facilities = req.Facilities
	a.Address = req.Address
	a.Province = req.Province
	a.City = req.City
	a.LocationMaps = req.LocationMaps
}

func (s *CatalogService) validateActivity(ctx context.Context, req models.ActivityRequest) error {
	if req.PriceDiscount > req.Price {
		return fmt.Errorf("%w: price_discount must not exceed price", ErrValidation)
	}
	if _, err := s.categories.FindByID(ctx, req.CategoryID); err != nil {
		return notFoundAs(err, "category")
	}
	return nil
}

func (s *CatalogService) CreateActivity(ctx context.Context, req models.ActivityRequest) (*models.Activity, error) {
	if err := s.validateActivity(ctx, req); err != nil {
		return nil, err
	}
	a := &models.Activity{ID: uuid.NewString()}
	activityFromRequest(a, req)
	if err := s.activities.Create(ctx, a); err != nil {
		return nil, err
	}
	s.invalidate(ctx, "activities:")
	return a, nil
}

func (s *CatalogService) UpdateActivity(ctx context.Context, id string, req models.ActivityRequest) (*models.Activity, error) {
	a, err := s.activities.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "activity")
	}
	if err := s.validateActivity(ctx, req); err != nil {
		return nil, err
	}
	activityFromRequest(a, req)
	if err := s.activities.Update(ctx, a); err != nil {
		return nil, notFoundAs(err, "activity")
	}
	s.invalidate(ctx, "activities:")
	return a, nil
}

func (s *CatalogService) DeleteActivity(ctx context.Context, id string) error {
	if err := s.activities.Delete(ctx, id); err != nil {
		return notFoundAs(err, "activity")
	}
	s.invalidate(ctx, "activities:")
	return nil
}

// Categories

func (s *CatalogService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return libs.Remember(ctx, s.cache, "categories:all", s.categories.FindAll)
}

func (s *CatalogService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	cat, err := libs.Remember(ctx, s.cache, "categories:id:"+id, func(ctx context.Context) (*models.Category, error) {
		return s.categories.FindByID(ctx, id)
	})
	if err != nil {
		return nil, notFoundAs(err, "category")
	}
	return cat, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	cat := &models.Category{ID: uuid.NewString(), Name: req.Name, ImageURL: req.ImageURL}
	if err := s.categories.Create(ctx, cat); err != nil {
		return nil, err
	}
	s.invalidate(ctx, "categories:")
	return cat, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id string, req models.CategoryRequest) (*models.Category, error) {
	cat := &models.Category{ID: id, Name: req.Name, ImageURL: req.ImageURL}
	if err := s.categories.Update(ctx, cat); err != nil {
		return nil, notFoundAs(err, "category")
	}
	s.invalidate(ctx, "categories:", "activities:")
	return cat, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return notFoundAs(err, "category")
	}
	s.invalidate(ctx, "categories:", "activities:")
	return nil
}

// Promos

func (s *CatalogService) GetPromos(ctx context.Context) ([]models.Promo, error) {
	return libs.Remember(ctx, s.cache, "promos:all", s.promos.FindAll)
}

func (s *CatalogService) GetPromo(ctx context.Context, id string) (*models.Promo, error) {
	p, err := libs.Remember(ctx, s.cache, "promos:id:"+id, func(ctx context.Context) (*models.Promo, error) {
		return s.promos.FindByID(ctx, id)
	})
	if err != nil {
		return nil, notFoundAs(err, "promo")
	}
	return p, nil
}

func promoFromRequest(id string, req models.PromoRequest) *models.Promo {
	return &models.Promo{
		ID:                 id,
		Title:              req.Title,
		Description:        req.Description,
		ImageURL:           req.ImageURL,
		TermsCondition:     req.TermsCondition,
		PromoCode:          req.PromoCode,
		PromoDiscountPrice: req.PromoDiscountPrice,
		MinimumClaimPrice:  req.MinimumClaimPrice,
	}
}

func (s *CatalogService) CreatePromo(ctx context.Context, req models.PromoRequest) (*models.Promo, error) {
	p := promoFromRequest(uuid.NewString(), req)
	if err := s.promos.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, "promos:")
	return p, nil
}

func (s *CatalogService) UpdatePromo(ctx context.Context, id string, req models.PromoRequest) (*models.Promo, error) {
	p := promoFromRequest(id, req)
	if err := s.promos.Update(ctx, p); err != nil {
		return nil, notFoundAs(err, "promo")
	}
	s.invalidate(ctx, "promos:")
	return p, nil
}

func (s *CatalogService) DeletePromo(ctx context.Context, id string) error {
	if err := s.promos.Delete(ctx, id); err != nil {
		return notFoundAs(err, "promo")
	}
	s.invalidate(ctx, "promos:")
	return nil
}

// Banners

func (s *CatalogService) GetBanners(ctx context.Context) ([]models.Banner, error) {
	return libs.Remember(ctx, s.cache, "banners:all", s.banners.FindAll)
}

func (s *CatalogService) GetBanner(ctx context.Context, id string) (*models.Banner, error) {
	b, err := libs.Remember(ctx, s.cache, "banners:id:"+id, func(ctx context.Context) (*models.Banner, error) {
		return s.banners.FindByID(ctx, id)
	})
	if err != nil {
		return nil, notFoundAs(err, "banner")
	}
	return b, nil
}

func (s *CatalogService) CreateBanner(ctx context.Context, req models.BannerRequest) (*models.Banner, error) {
	b := &models.Banner{ID: uuid.NewString(), Name: req.Name, ImageURL: req.ImageURL}
	if err := s.banners.Create(ctx, b); err != nil {
		return nil, err
	}
	s.invalidate(ctx, "banners:")
	return b, nil
}

func (s *CatalogService) UpdateBanner(ctx context.Context, id string, req models.BannerRequest) (*models.Banner, error) {
	b := &models.Banner{ID: id, Name: req.Name, ImageURL: req.ImageURL}
	if err := s.banners.Update(ctx, b); err != nil {
		return nil, notFoundAs(err, "banner")
	}
	s.invalidate(ctx, "banners:")
	return b, nil
}

func (s *CatalogService) DeleteBanner(ctx context.Context, id string) error {
	if err := s.banners.Delete(ctx, id); err != nil {
		return notFoundAs(err, "banner")
	}
	s.invalidate(ctx, "banners:")
	return nil
}

// Payment methods

func (s *CatalogService) GetPaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	return libs.Remember(ctx, s.cache, "payment-methods:all", s.payments.FindAll)
}
