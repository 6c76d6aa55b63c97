package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ListMenu(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/menu", r.URL.Path)
		json.NewEncoder(w).Encode([]model.MenuItem{{ID: 1, Name: "Burger", Price: 1299}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	items, err := c.ListMenu(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Burger", items[0].Name)
}

// サーバーのnullは (nil, nil)
func TestClient_GetMenuItemNullBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/menu/42", r.URL.Path)
		w.Write([]byte("null"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	item, err := c.GetMenuItem(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, item)
}

// トークンはBearerで送る
func TestClient_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer my-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]model.CartLine{})
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("my-token"))
	assert.True(t, c.Authenticated())

	_, err := c.ListCart(context.Background())
	require.NoError(t, err)
}

func TestClient_AddToCartSendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cart", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req addCartRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(10), req.MenuItemID)
		assert.Equal(t, int64(2), req.Quantity)

		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("t"))
	require.NoError(t, c.AddToCart(context.Background(), 10, 2))
}

// エラーボディの{"error": ...}をAPIErrorに写す
func TestClient_DecodesErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"unauthorized"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListCart(context.Background())
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "unauthorized", apiErr.Message)
}

// echoの{"message": ...}形式も読める
func TestClient_DecodesEchoErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"validation failed"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.AddToCart(context.Background(), 1, 0)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "validation failed", apiErr.Message)
}

func TestClient_TrimsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/menu", r.URL.Path)
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	_, err := c.ListMenu(context.Background())
	require.NoError(t, err)
}
