package handlers_test_suite

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rogerio-castellano/lesoria-cart/internal/cart"
	"github.com/rogerio-castellano/lesoria-cart/internal/http/handlers"
	rl "github.com/rogerio-castellano/lesoria-cart/internal/http/rate_limiter"
	"github.com/rogerio-castellano/lesoria-cart/internal/http/router"
	"github.com/rogerio-castellano/lesoria-cart/internal/repo"
	"github.com/rogerio-castellano/lesoria-cart/internal/session"
)

const testSecret = "handlers-test-secret"

// flakyStorage fails writes while down is set.
type flakyStorage struct {
	*repo.InMemoryKeyValueStore
	down bool
}

func (f *flakyStorage) Set(ctx context.Context, key, value string) error {
	if f.down {
		return errors.New("storage unavailable")
	}
	return f.InMemoryKeyValueStore.Set(ctx, key, value)
}

type testEnv struct {
	router  http.Handler
	storage *flakyStorage
}

// setupRouter wires handlers to fresh in-memory storage. A nil limiter disables rate limiting.
func setupRouter(t *testing.T, storage *flakyStorage, limiter *rl.Limiter) *testEnv {
	t.Helper()
	if storage == nil {
		storage = &flakyStorage{InMemoryKeyValueStore: repo.NewInMemoryKeyValueStore()}
	}

	issuer, err := session.NewIssuer(testSecret)
	if err != nil {
		t.Fatal(err)
	}

	handlers.SetCartRegistry(cart.NewRegistry(storage, cart.DefaultStorageKey, nil))
	handlers.SetRenderer(cart.NewRenderer(cart.NewFormatter("en", "₽")))

	return &testEnv{
		router:  router.NewRouter(router.Options{Issuer: issuer, Limiter: limiter}),
		storage: storage,
	}
}

// newVisitor starts a session and returns its cookie.
func (e *testEnv) newVisitor(t *testing.T) *http.Cookie {
	t.Helper()
	w := e.do(nil, httptest.NewRequest(http.MethodGet, "/cart", nil))
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("expected a visitor cookie")
	return nil
}

func (e *testEnv) do(visitor *http.Cookie, req *http.Request) *httptest.ResponseRecorder {
	if visitor != nil {
		req.AddCookie(visitor)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) postForm(visitor *http.Cookie, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(visitor, req)
}

func (e *testEnv) postJSON(visitor *http.Cookie, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return e.do(visitor, req)
}

func (e *testEnv) addItem(visitor *http.Cookie, id, name, price string) *httptest.ResponseRecorder {
	return e.postForm(visitor, "/cart/items", url.Values{"id": {id}, "name": {name}, "price": {price}})
}

func (e *testEnv) state(t *testing.T, visitor *http.Cookie) handlers.CartStateResponse {
	t.Helper()
	w := e.do(visitor, httptest.NewRequest(http.MethodGet, "/cart/state", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from /cart/state, got %d", w.Code)
	}
	var resp handlers.CartStateResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding state: %v", err)
	}
	return resp
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) cart.View {
	t.Helper()
	var v cart.View
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("error decoding view: %v", err)
	}
	return v
}
