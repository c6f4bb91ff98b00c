package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/JaydevKalariyaa/proxima-sales/internal/domain/entity"
	"github.com/JaydevKalariyaa/proxima-sales/internal/domain/enum"
	"github.com/JaydevKalariyaa/proxima-sales/internal/infrastructure/session"
	"github.com/JaydevKalariyaa/proxima-sales/pkg/apperror"
	"github.com/JaydevKalariyaa/proxima-sales/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Session) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess := session.New(session.NewFileStore(filepath.Join(t.TempDir(), "session.json")))
	require.NoError(t, sess.Initialize())

	client := NewClient(srv.URL, 5*time.Second, sess, zap.NewNop())
	t.Cleanup(func() { client.Close() })
	return client, sess
}

func TestDecodeData_WrappedAndBareShapes(t *testing.T) {
	var out struct {
		ID string `json:"id"`
	}

	require.NoError(t, decodeData([]byte(`{"success":true,"data":{"id":"s1"}}`), &out))
	assert.Equal(t, "s1", out.ID)

	out.ID = ""
	require.NoError(t, decodeData([]byte(`{"id":"s2"}`), &out))
	assert.Equal(t, "s2", out.ID)

	err := decodeData([]byte(`{"success":false,"message":"quota exceeded"}`), &out)
	require.Error(t, err)
	assert.Equal(t, "quota exceeded", apperror.GetAppError(err).Message)

	// A failure envelope without a message still fails meaningfully.
	require.Error(t, decodeData([]byte(`{"success":false}`), &out))
}

func TestFlexTypes(t *testing.T) {
	var v struct {
		ID    flexID    `json:"id"`
		Total flexFloat `json:"total"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"id":17,"total":"45000.00"}`), &v))
	assert.Equal(t, "17", v.ID.String())
	assert.Equal(t, 45000.0, float64(v.Total))

	require.NoError(t, json.Unmarshal([]byte(`{"id":"abc","total":null}`), &v))
	assert.Equal(t, "abc", v.ID.String())
	assert.Equal(t, 0.0, float64(v.Total))
}

func TestCreateDraft_SendsOnlyCanonicalFields(t *testing.T) {
	var body map[string]any
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sales/", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"success":true,"data":{"id":101}}`)
	}))
	require.NoError(t, sess.SetToken("tok"))

	repo := NewSaleRepository(client)
	item := entity.LineItem{
		ID:            "local-1",
		Category:      enum.CategoryModular,
		ProductName:   "Cabinet",
		MRP:           2000,
		DiscountType:  enum.DiscountTypeAmount,
		DiscountValue: 200,
		Quantity:      1,
	}
	item.Recompute()

	saleID, err := repo.CreateDraft(context.Background(), []entity.LineItem{item})
	require.NoError(t, err)
	assert.Equal(t, "101", saleID, "numeric server ids are normalized to strings")

	assert.Equal(t, "draft", body["status"])
	items := body["items"].([]any)
	require.Len(t, items, 1)
	sent := items[0].(map[string]any)
	assert.Equal(t, "Cabinet", sent["product_name"])
	// Derived values never travel; the server recomputes them.
	assert.NotContains(t, sent, "price_per_piece")
	assert.NotContains(t, sent, "total_amount")
	assert.NotContains(t, sent, "id")
}

func TestGetByClient_ToleratesStringNumericsAndBareBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "c1", r.URL.Query().Get("client_id"))
		// Bare array, stringly-typed numerics.
		io.WriteString(w, `[{
			"id": 7,
			"client": {"id": "c1", "name": "Asha"},
			"items": [{"id": 1, "product_name": "Cabinet", "mrp": "2000.00",
				"discount_type": "amount", "discount_value": "200",
				"quantity": "1", "price_per_piece": "1800", "total_amount": "1800"}],
			"total_amount": "1800.00",
			"created_at": "2024-01-15T10:30:00Z",
			"status": "confirmed"
		}]`)
	}))

	detail, err := NewSaleRepository(client).GetByClient(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "7", detail.ID)
	assert.Equal(t, "Asha", detail.Client.Name)
	assert.Equal(t, 1800.0, detail.TotalAmount)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, 2000.0, detail.Items[0].MRP)
	assert.Equal(t, enum.SaleStatusConfirmed, detail.Status)
}

func TestGetByClient_EmptyListIsNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":[]}`)
	}))

	_, err := NewSaleRepository(client).GetByClient(context.Background(), "c1")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestUnauthorizedResponse_TearsDownSession(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	require.NoError(t, sess.SetToken("stale"))

	var torndown bool
	sess.OnTeardown(func() { torndown = true })

	_, err := NewClientRepository(client).List(context.Background(), pagination.Default(), "")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
	assert.True(t, torndown, "a rejected token forces a logout")
	assert.False(t, sess.Authenticated())
}

func TestLogin_BadCredentialsDoNotTouchSession(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	require.NoError(t, sess.SetToken("existing"))

	_, err := NewAuthRepository(client).Login(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
	// A failed login is not an expired session.
	assert.Equal(t, "existing", sess.Token())
}

func TestServerError_IsSubmissionError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	err := NewSaleRepository(client).Cancel(context.Background(), "s1")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindSubmission))
}
