package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/app/internal/cart"
	"storefront/app/internal/catalog"
	"storefront/app/internal/domain"
	"storefront/app/internal/queue"
	"storefront/app/internal/repository"
	"storefront/app/internal/service"
	"storefront/app/internal/state"
	"storefront/app/internal/view"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct{}

func (stubSource) Fetch(_ context.Context) (domain.Catalog, error) {
	return domain.Catalog{
		domain.TabElectronics: {
			Subcategories: []string{"audio"},
			Items: []*domain.Item{
				{ID: 5, Title: "Speaker", Category: "audio", Price: decimal.RequireFromString("80")},
			},
		},
		domain.TabBooks: {
			Subcategories: []string{"fiction"},
			Items: []*domain.Item{
				{ID: 1, Title: "Dune", Category: "fiction", Price: decimal.RequireFromString("9.99")},
			},
		},
	}, nil
}

type pageEnvelope struct {
	Data  view.Page `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	svc := service.NewService(
		catalog.NewStore(stubSource{}),
		cart.NewStore(ctx, state.NewMemoryCartStorage()),
		queue.NopPublisher{},
		repository.NewNopOrderRepository(),
	)
	svc.Init(ctx)

	srv := httptest.NewServer(NewRouter(NewHandler(svc)))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, pageEnvelope) {
	t.Helper()

	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope pageEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCartFlow(t *testing.T) {
	srv := newTestServer(t)

	status, env := do(t, srv, http.MethodPost, "/v1/cart/books/1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Dune added to cart", env.Data.Notice.Message)

	status, env = do(t, srv, http.MethodPost, "/v1/cart/books/1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, env.Data.Badge)
	assert.Equal(t, "$19.98", env.Data.Cart.Total)

	status, env = do(t, srv, http.MethodPatch, "/v1/cart/books/1", `{"delta": -1}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, env.Data.Badge)

	status, env = do(t, srv, http.MethodDelete, "/v1/cart/books/1", "")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Data.Cart.Empty)

	status, env = do(t, srv, http.MethodPost, "/v1/checkout", "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CART_EMPTY", env.Error.Code)
	assert.Equal(t, "Your cart is empty!", env.Error.Message)
}

func TestCheckout(t *testing.T) {
	srv := newTestServer(t)
	do(t, srv, http.MethodPost, "/v1/cart/electronics/5", "")

	status, env := do(t, srv, http.MethodPost, "/v1/checkout", "")

	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Data.Cart.Empty)
	assert.Equal(t, "Thank you for your purchase!", env.Data.Notice.Message)
}

func TestBrowsing(t *testing.T) {
	srv := newTestServer(t)

	status, env := do(t, srv, http.MethodPost, "/v1/tabs/books", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, domain.TabBooks, env.Data.ActiveTab)

	status, env = do(t, srv, http.MethodPost, "/v1/search", `{"query": "dun"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, env.Data.Products, 1)

	status, env = do(t, srv, http.MethodPost, "/v1/subcategories/history", "")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Data.NoResults)

	status, _ = do(t, srv, http.MethodPost, "/v1/tabs/garden", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, srv, http.MethodPost, "/v1/search", `not json`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestItemRoutes(t *testing.T) {
	srv := newTestServer(t)

	status, env := do(t, srv, http.MethodGet, "/v1/items/books/1", "")
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.Data.Modal)
	assert.Equal(t, "Dune", env.Data.Modal.Title)

	status, _ = do(t, srv, http.MethodGet, "/v1/items/books/abc", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = do(t, srv, http.MethodDelete, "/v1/items/electronics/5", "")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Data.NoResults)

	status, env = do(t, srv, http.MethodDelete, "/v1/items/electronics/5", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "ITEM_NOT_FOUND", env.Error.Code)
}

func TestRenderHTML(t *testing.T) {
	srv := newTestServer(t)
	do(t, srv, http.MethodPost, "/v1/cart/electronics/5", "")

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, "Speaker", doc.Find(".product-title").Text())
	assert.Equal(t, "1", doc.Find(".cart-count").Text())
	assert.Equal(t, "$80.00", doc.Find("#cartTotal").Text())
}

func TestRenderHTMLKeepsSearch(t *testing.T) {
	srv := newTestServer(t)

	status, env := do(t, srv, http.MethodPost, "/v1/search", `{"query": "zzz"}`)
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Data.NoResults)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	status, env = do(t, srv, http.MethodGet, "/v1/page", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "zzz", env.Data.Query)
	assert.True(t, env.Data.NoResults)

	resp, err = http.Get(srv.URL + "/?q=speak")
	require.NoError(t, err)
	resp.Body.Close()

	_, env = do(t, srv, http.MethodGet, "/v1/page", "")
	assert.Equal(t, "speak", env.Data.Query)
	assert.Len(t, env.Data.Products, 1)
}

func TestRouterRecoversFromPanic(t *testing.T) {
	srv := httptest.NewServer(NewRouter(NewHandler(nil)))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/v1/page")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
