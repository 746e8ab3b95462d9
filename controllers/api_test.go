package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"travel-booking/models"
	"travel-booking/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func call(t *testing.T, srv *testutil.Server, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, srv.URL+"/api/v1"+path, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	return res.StatusCode, env
}

func seedCatalog(srv *testutil.Server) {
	srv.Store.PutActivity(models.Activity{ID: "bali", Title: "Bali Tour", Price: 100, ImageURLs: []string{"bali.png"}})
	srv.Store.PutActivity(models.Activity{ID: "lombok", Title: "Lombok Trip", Price: 80, PriceDiscount: 50})
	srv.Store.PutPaymentMethod(models.PaymentMethod{ID: "bca", Name: "BCA", Type: "virtual_account"})
}

func cartItems(t *testing.T, srv *testutil.Server, token string) []models.CartItem {
	t.Helper()
	code, env := call(t, srv, http.MethodGet, "/carts", token, nil)
	require.Equal(t, http.StatusOK, code)
	var items []models.CartItem
	require.NoError(t, json.Unmarshal(env.Data, &items))
	return items
}

func TestCartEndpoints(t *testing.T) {
	srv := testutil.NewServer(t)
	seedCatalog(srv)
	_, token := srv.Login(t, models.RoleUser)
	_, other := srv.Login(t, models.RoleUser)

	code, _ := call(t, srv, http.MethodPost, "/add-cart", token, models.AddCartRequest{ActivityID: "bali"})
	require.Equal(t, http.StatusCreated, code)
	code, _ = call(t, srv, http.MethodPost, "/add-cart", token, models.AddCartRequest{ActivityID: "bali"})
	require.Equal(t, http.StatusCreated, code)

	items := cartItems(t, srv, token)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "Bali Tour", items[0].Activity.Title)

	code, env := call(t, srv, http.MethodPost, "/update-cart/"+items[0].ID, token, models.UpdateCartRequest{Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "quantity must be at least 1", env.Message)
	assert.Equal(t, 2, cartItems(t, srv, token)[0].Quantity)

	code, _ = call(t, srv, http.MethodDelete, "/delete-cart/"+items[0].ID, other, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = call(t, srv, http.MethodPost, "/add-cart", token, models.AddCartRequest{ActivityID: "nowhere"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = call(t, srv, http.MethodGet, "/carts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestTransactionLifecycle(t *testing.T) {
	srv := testutil.NewServer(t)
	seedCatalog(srv)
	_, token := srv.Login(t, models.RoleUser)
	_, stranger := srv.Login(t, models.RoleUser)
	_, admin := srv.Login(t, models.RoleAdmin)

	call(t, srv, http.MethodPost, "/add-cart", token, models.AddCartRequest{ActivityID: "bali"})
	call(t, srv, http.MethodPost, "/add-cart", token, models.AddCartRequest{ActivityID: "bali"})
	call(t, srv, http.MethodPost, "/add-cart", token, models.AddCartRequest{ActivityID: "lombok"})
	items := cartItems(t, srv, token)
	require.Len(t, items, 2)

	code, env := call(t, srv, http.MethodPost, "/create-transaction", token, models.CreateTransactionRequest{PaymentMethodID: "bca"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)

	code, env = call(t, srv, http.MethodPost, "/create-transaction", token, models.CreateTransactionRequest{
		CartIDs:         []string{items[0].ID, items[1].ID},
		PaymentMethodID: "bca",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var created models.CreateTransactionResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, int64(250), created.TotalAmount)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Empty(t, cartItems(t, srv, token))

	code, _ = call(t, srv, http.MethodGet, "/transaction/"+created.ID, stranger, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = call(t, srv, http.MethodGet, "/transaction/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, code)
	var fetched models.Transaction
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Len(t, fetched.TransactionItems, 2)
	assert.Equal(t, "BCA", fetched.PaymentMethod.Name)

	code, _ = call(t, srv, http.MethodPost, "/update-transaction-status/"+created.ID, token, models.UpdateTransactionStatusRequest{Status: "success"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = call(t, srv, http.MethodPost, "/update-transaction-status/"+created.ID, admin, models.UpdateTransactionStatusRequest{Status: "success"})
	assert.Equal(t, http.StatusOK, code)

	code, env = call(t, srv, http.MethodPost, "/update-transaction-status/"+created.ID, admin, models.UpdateTransactionStatusRequest{Status: "failed"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "transaction is already success", env.Message)

	stored, ok := srv.Store.Transaction(created.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusSuccess, stored.Status)
}

func TestAllTransactions_Paginated(t *testing.T) {
	srv := testutil.NewServer(t)
	seedCatalog(srv)
	_, token := srv.Login(t, models.RoleUser)
	_, admin := srv.Login(t, models.RoleAdmin)

	for i := 0; i < 3; i++ {
		call(t, srv, http.MethodPost, "/add-cart", token, models.AddCartRequest{ActivityID: "bali"})
		id := cartItems(t, srv, token)[0].ID
		code, _ := call(t, srv, http.MethodPost, "/create-transaction", token, models.CreateTransactionRequest{
			CartIDs: []string{id}, PaymentMethodID: "bca",
		})
		require.Equal(t, http.StatusCreated, code)
	}

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/all-transactions?page=1&limit=2&status=pending", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+admin)
	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var body models.HATEOASResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 3, body.Meta.TotalItems)
	assert.Equal(t, 2, body.Meta.TotalPages)
	assert.Contains(t, body.Links.Next, "page=2")
	assert.Empty(t, body.Links.Prev)
}

func upload(t *testing.T, srv *testutil.Server, token, filename string, content []byte) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/upload-image", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	return res.StatusCode, env
}

func TestUploadImage(t *testing.T) {
	srv := testutil.NewServer(t)
	_, token := srv.Login(t, models.RoleUser)

	code, env := upload(t, srv, token, "proof.png", []byte("\x89PNG fake"))
	require.Equal(t, http.StatusOK, code, env.Message)
	var out models.UploadImageResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Contains(t, out.ImageURL, "/uploads/images/")

	res, err := srv.Client().Get(out.ImageURL)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	code, _ = upload(t, srv, token, "notes.txt", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, code)
}
