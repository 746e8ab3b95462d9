package testutil

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travel-booking/config"
	"travel-booking/libs"
	"travel-booking/models"
	"travel-booking/routes"
	"travel-booking/services"
	"travel-booking/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const JWTSecret = "test-secret"

// Server is the full API router over a MemStore, served by httptest.
type Server struct {
	*httptest.Server
	Store *MemStore
	App   *routes.App
}

func NewServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var handler http.Handler
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	uploadDir := t.TempDir()
	cfg := &config.Config{
		JWTSecret:       JWTSecret,
		JWTExpiry:       time.Hour,
		UploadDir:       uploadDir,
		MaxUploadSize:   5 << 20,
		CatalogCacheTTL: time.Minute,
		TransactionTTL:  24 * time.Hour,
	}

	store := NewMemStore()
	stores := routes.Stores{
		Users: store.Users(),
		Catalog: services.CatalogStores{
			Activities:     store.Activities(),
			Categories:     store.Categories(),
			Promos:         store.Promos(),
			Banners:        store.Banners(),
			PaymentMethods: store.PaymentMethods(),
		},
		Carts:        store.Carts(),
		Transactions: store.Transactions(),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := routes.NewApp(cfg, stores, nil, libs.NewLocalStorage(uploadDir, srv.URL), nil, logger)
	handler = app.Router

	return &Server{Server: srv, Store: store, App: app}
}

// Login stores a user with the given role and returns a bearer token for it.
func (s *Server) Login(t *testing.T, role string) (userID, token string) {
	t.Helper()
	userID = uuid.NewString()
	err := s.Store.Users().Create(t.Context(), &models.User{
		ID: userID, Name: "Test " + role, Email: userID + "@example.com", Role: role,
	})
	require.NoError(t, err)

	token, err = utils.GenerateToken(JWTSecret, time.Hour, userID, userID+"@example.com", role)
	require.NoError(t, err)
	return userID, token
}
