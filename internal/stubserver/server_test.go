package stubserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JaydevKalariyaa/proxima-sales/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := New(config.DevAPIConfig{
		Port:         "0",
		DatabasePath: ":memory:",
		JWTSecret:    "test-secret",
		JWTExpiry:    time.Hour,
		Email:        "demo@proxima.local",
		Password:     "proxima",
		RateLimit:    10000,
	}, zap.NewNop())
	require.NoError(t, err)
	return s
}

func do(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func login(t *testing.T, s *Server) string {
	t.Helper()
	w := do(t, s, http.MethodPost, "/api/accounts/login/", "", gin.H{
		"email":    "demo@proxima.local",
		"password": "proxima",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeBody(t, w)["data"].(map[string]any)
	token := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/api/accounts/login/", "", gin.H{
		"email":    "demo@proxima.local",
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	login(t, s)
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/clients/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, s, http.MethodGet, "/api/clients/", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func createDraft(t *testing.T, s *Server, token string) string {
	t.Helper()
	w := do(t, s, http.MethodPost, "/api/sales/", token, gin.H{
		"status": "draft",
		"items": []gin.H{
			{
				"category": "Modular", "room": "Kitchen", "product_name": "Cabinet",
				"product_code": "MD002", "mrp": 2000, "discount_type": "amount",
				"discount_value": 200, "quantity": 1,
			},
			{
				"category": "Sofa & Curtains", "room": "Living Room", "product_name": "Modern Sofa Set",
				"mrp": 45000, "discount_type": "percent", "discount_value": 10, "quantity": 1,
			},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeBody(t, w)["data"].(map[string]any)
	id := data["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestCreateSale_Validation(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s)

	w := do(t, s, http.MethodPost, "/api/sales/", token, gin.H{"status": "confirmed", "items": []gin.H{{"product_name": "x", "mrp": 1, "quantity": 1}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/api/sales/", token, gin.H{"status": "draft", "items": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/api/sales/", token, gin.H{"status": "draft", "items": []gin.H{{"product_name": "", "mrp": 1, "quantity": 1}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaleLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s)
	saleID := createDraft(t, s, token)

	// Confirm with client info.
	w := do(t, s, http.MethodPost, "/api/sales/"+saleID+"/confirm/", token, gin.H{
		"client": gin.H{"name": "Asha Patel", "phone": "9876543210", "address": "12 MG Road"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Confirming again overwrites the client record instead of duplicating it.
	w = do(t, s, http.MethodPost, "/api/sales/"+saleID+"/confirm/", token, gin.H{
		"client": gin.H{"name": "Asha P.", "phone": "9876543210"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var clientCount int64
	require.NoError(t, s.DB().Model(&Client{}).Count(&clientCount).Error)
	assert.EqualValues(t, 1, clientCount)

	// The client shows up in the listing, searchable by name.
	w = do(t, s, http.MethodGet, "/api/clients/?page=1&page_size=10&search=asha", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.EqualValues(t, 1, data["total_count"])
	results := data["results"].([]any)
	require.Len(t, results, 1)
	client := results[0].(map[string]any)
	assert.Equal(t, "Asha P.", client["name"])
	clientID := client["id"].(string)

	// The sale detail carries recomputed item prices and the grand total.
	w = do(t, s, http.MethodGet, "/api/sales/?client_id="+clientID, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sales := decodeBody(t, w)["data"].([]any)
	require.Len(t, sales, 1)
	sale := sales[0].(map[string]any)
	assert.Equal(t, "confirmed", sale["status"])
	assert.EqualValues(t, 42300, sale["total_amount"]) // 1800 + 40500
	items := sale["items"].([]any)
	require.Len(t, items, 2)
	var cabinet map[string]any
	for _, it := range items {
		if m := it.(map[string]any); m["product_name"] == "Cabinet" {
			cabinet = m
		}
	}
	require.NotNil(t, cabinet)
	assert.EqualValues(t, 1800, cabinet["price_per_piece"])

	// A confirmed sale cannot be cancelled.
	w = do(t, s, http.MethodPost, "/api/sales/"+saleID+"/cancel/", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Deleting the client removes its sales as well.
	w = do(t, s, http.MethodDelete, "/api/clients/"+clientID+"/", token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var saleCount, itemCount int64
	require.NoError(t, s.DB().Model(&Sale{}).Count(&saleCount).Error)
	require.NoError(t, s.DB().Model(&SaleItem{}).Count(&itemCount).Error)
	assert.Zero(t, saleCount)
	assert.Zero(t, itemCount)

	w = do(t, s, http.MethodGet, "/api/clients/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeBody(t, w)["data"].(map[string]any)
	assert.EqualValues(t, 0, data["total_count"])
}

func TestCancelDraft(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s)
	saleID := createDraft(t, s, token)

	w := do(t, s, http.MethodPost, "/api/sales/"+saleID+"/cancel/", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// A cancelled sale is terminal.
	w = do(t, s, http.MethodPost, "/api/sales/"+saleID+"/confirm/", token, gin.H{
		"client": gin.H{"name": "Asha"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/api/sales/"+saleID+"/cancel/", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirm_UnknownSale(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s)

	w := do(t, s, http.MethodPost, fmt.Sprintf("/api/sales/%s/confirm/", "2e9cba05-5a4b-4bff-a2a4-000000000000"), token, gin.H{
		"client": gin.H{"name": "Asha"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfirm_ValidatesClient(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s)
	saleID := createDraft(t, s, token)

	w := do(t, s, http.MethodPost, "/api/sales/"+saleID+"/confirm/", token, gin.H{
		"client": gin.H{"name": ""},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/api/sales/"+saleID+"/confirm/", token, gin.H{
		"client": gin.H{"name": "Asha", "phone": "12345"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
