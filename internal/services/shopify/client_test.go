package shopify

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"feedbridge/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/2023-10/products.json", r.URL.Path)
		assert.Equal(t, "secret-token", r.Header.Get("X-Shopify-Access-Token"))
		assert.Equal(t, "250", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products":[{"id":1,"title":"Shirt","variants":[{"id":11,"price":"19.99","sku":"SH-1"}]}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token", "2023-10", logger.New("error"))

	resp, err := client.GetProducts(250, "")
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Shirt", resp.Products[0].Title)
	require.Len(t, resp.Products[0].Variants, 1)
	assert.Equal(t, "SH-1", resp.Products[0].Variants[0].Sku)
}

func TestGetAllProductsFollowsLinkHeader(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Query().Get("page_info") {
		case "":
			w.Header().Set("Link", fmt.Sprintf(`<%s/admin/api/2023-10/products.json?limit=250&page_info=cursor2>; rel="next"`, server.URL))
			w.Write([]byte(`{"products":[{"id":1,"title":"Shirt"}]}`))
		case "cursor2":
			// Last page: no Link header.
			w.Write([]byte(`{"products":[{"id":2,"title":"Hat"}]}`))
		default:
			t.Errorf("unexpected page_info %q", r.URL.Query().Get("page_info"))
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token", "2023-10", logger.New("error"))

	products, err := client.GetAllProducts()
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Shirt", products[0].Title)
	assert.Equal(t, "Hat", products[1].Title)
}

func TestNextPageInfo(t *testing.T) {
	next := `<https://shop.myshopify.com/admin/api/2023-10/products.json?limit=250&page_info=abc123>; rel="next"`
	prev := `<https://shop.myshopify.com/admin/api/2023-10/products.json?limit=250&page_info=xyz789>; rel="previous"`

	assert.Equal(t, "abc123", nextPageInfo(next))
	assert.Equal(t, "abc123", nextPageInfo(prev+", "+next))
	assert.Equal(t, "", nextPageInfo(prev))
	assert.Equal(t, "", nextPageInfo(""))
	assert.Equal(t, "", nextPageInfo(`malformed; rel="next"`))
}

func TestGetProductsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limited"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token", "2023-10", logger.New("error"))

	_, err := client.GetProducts(250, "")
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusTooManyRequests, fetchErr.StatusCode)
	assert.Equal(t, "rate limited", fetchErr.Body)
}

func TestNormalizeSourceURL(t *testing.T) {
	assert.Equal(t, "https://shop.myshopify.com", normalizeSourceURL("shop.myshopify.com"))
	assert.Equal(t, "https://shop.myshopify.com", normalizeSourceURL("https://shop.myshopify.com/"))
	assert.Equal(t, "http://localhost:8081", normalizeSourceURL("http://localhost:8081"))
}
