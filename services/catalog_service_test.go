package services

import (
	"context"
	"testing"
	"time"

	"travel-booking/libs"
	"travel-booking/models"
	"travel-booking/repositories"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCategoryStore struct {
	cats map[string]models.Category
}

func (f *fakeCategoryStore) FindAll(ctx context.Context) ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range f.cats {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryStore) FindByID(ctx context.Context, id string) (*models.Category, error) {
	c, ok := f.cats[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCategoryStore) Create(ctx context.Context, cat *models.Category) error {
	f.cats[cat.ID] = *cat
	return nil
}

func (f *fakeCategoryStore) Update(ctx context.Context, cat *models.Category) error {
	if _, ok := f.cats[cat.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.cats[cat.ID] = *cat
	return nil
}

func (f *fakeCategoryStore) Delete(ctx context.Context, id string) error {
	delete(f.cats, id)
	return nil
}

func newCatalogWithRedis(t *testing.T, stores CatalogStores) *CatalogService {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCatalogService(stores, libs.NewCache(client, time.Minute))
}

func TestGetActivities_CachedUntilAdminWrite(t *testing.T) {
	loads := 0
	activities := &fakeActivityStore{
		FindAllFn: func(ctx context.Context) ([]models.Activity, error) {
			loads++
			return []models.Activity{{ID: "a1", Title: "Snorkeling"}}, nil
		},
		CreateFn: func(ctx context.Context, a *models.Activity) error { return nil },
	}
	categories := &fakeCategoryStore{cats: map[string]models.Category{"c1": {ID: "c1", Name: "Beach"}}}
	s := newCatalogWithRedis(t, CatalogStores{Activities: activities, Categories: categories})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := s.GetActivities(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
	}
	assert.Equal(t, 1, loads)

	_, err := s.CreateActivity(ctx, models.ActivityRequest{
		CategoryID: "c1", Title: "Diving", ImageURLs: []string{"x"}, Price: 100,
	})
	require.NoError(t, err)

	_, err = s.GetActivities(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}

func TestCreateActivity_Validation(t *testing.T) {
	categories := &fakeCategoryStore{cats: map[string]models.Category{}}
	s := NewCatalogService(CatalogStores{Activities: &fakeActivityStore{}, Categories: categories}, nil)

	_, err := s.CreateActivity(context.Background(), models.ActivityRequest{CategoryID: "c1", Price: 100, PriceDiscount: 150})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.CreateActivity(context.Background(), models.ActivityRequest{CategoryID: "missing", Price: 100})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetActivity_AttachesCategory(t *testing.T) {
	activities := &fakeActivityStore{FindByIDFn: func(ctx context.Context, id string) (*models.Activity, error) {
		if id != "a1" {
			return nil, repositories.ErrNotFound
		}
		return &models.Activity{ID: "a1", CategoryID: "c1"}, nil
	}}
	categories := &fakeCategoryStore{cats: map[string]models.Category{"c1": {ID: "c1", Name: "Beach"}}}
	s := newCatalogWithRedis(t, CatalogStores{Activities: activities, Categories: categories})

	a, err := s.GetActivity(context.Background(), "a1")
	require.NoError(t, err)
	require.NotNil(t, a.Category)
	assert.Equal(t, "Beach", a.Category.Name)

	_, err = s.GetActivity(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
