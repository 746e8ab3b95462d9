package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travel-booking/config"
	"travel-booking/libs"
	"travel-booking/routes"
	"travel-booking/testutil"
	"travel-booking/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPostgresApp serves the router over the pgx repositories backed by a
// mock pool.
func newPostgresApp(t *testing.T) (*routes.App, pgxmock.PgxPoolIface) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	dir := t.TempDir()
	cfg := &config.Config{
		JWTSecret:       testutil.JWTSecret,
		JWTExpiry:       time.Hour,
		UploadDir:       dir,
		MaxUploadSize:   5 << 20,
		CatalogCacheTTL: time.Minute,
		TransactionTTL:  24 * time.Hour,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := routes.NewApp(cfg, routes.PostgresStores(mock), nil, libs.NewLocalStorage(dir, "http://localhost"), nil, logger)
	return app, mock
}

func serve(t *testing.T, app *routes.App, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func invalidUUID(id string) error {
	return &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "` + id + `"`}
}

func TestMalformedIDs_RespondNotFound(t *testing.T) {
	userID := uuid.NewString()
	token, err := utils.GenerateToken(testutil.JWTSecret, time.Hour, userID, "traveler@example.com", "user")
	require.NoError(t, err)

	t.Run("get transaction", func(t *testing.T) {
		app, mock := newPostgresApp(t)
		mock.ExpectQuery(`FROM transactions t`).WithArgs("abc").WillReturnError(invalidUUID("abc"))

		code, env := serve(t, app, http.MethodGet, "/transaction/abc", token, nil)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "transaction not found", env.Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update cart", func(t *testing.T) {
		app, mock := newPostgresApp(t)
		mock.ExpectExec(`UPDATE cart_items SET quantity`).
			WithArgs(2, pgxmock.AnyArg(), "abc", userID).
			WillReturnError(invalidUUID("abc"))

		code, env := serve(t, app, http.MethodPost, "/update-cart/abc", token, map[string]int{"quantity": 2})
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "cart item not found", env.Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete cart", func(t *testing.T) {
		app, mock := newPostgresApp(t)
		mock.ExpectExec(`DELETE FROM cart_items`).WithArgs("abc", userID).WillReturnError(invalidUUID("abc"))

		code, _ := serve(t, app, http.MethodDelete, "/delete-cart/abc", token, nil)
		assert.Equal(t, http.StatusNotFound, code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create transaction", func(t *testing.T) {
		app, mock := newPostgresApp(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`FROM cart_items ci`).
			WithArgs(userID, []string{"abc"}).
			WillReturnError(invalidUUID("abc"))
		mock.ExpectRollback()

		code, env := serve(t, app, http.MethodPost, "/create-transaction", token, map[string]any{
			"cartIds":         []string{"abc"},
			"paymentMethodId": uuid.NewString(),
		})
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "cart item not found", env.Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
