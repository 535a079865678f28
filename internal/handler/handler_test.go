package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invdesk/internal/api"
	"invdesk/internal/auth"
	"invdesk/internal/handler"
	"invdesk/internal/model"
	"invdesk/internal/service"
	"invdesk/internal/session"
)

// newConsole wires the full client stack against a fake upstream API.
func newConsole(t *testing.T, upstream http.HandlerFunc) *handler.Handler {
	ts := httptest.NewServer(upstream)
	t.Cleanup(ts.Close)

	store := session.NewMemStore()
	var mgr *auth.Manager
	client := api.New(api.Config{
		BaseURL: ts.URL,
		Store:   store,
		OnSessionExpired: func() {
			mgr.Invalidate()
		},
	})
	mgr = auth.New(client, store)

	return handler.New(
		zerolog.Nop(),
		mgr,
		service.NewItems(client),
		service.NewCustomers(client),
		service.NewSales(client),
		service.NewReports(client),
	)
}

func doJSON(h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var payload *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		payload = bytes.NewBuffer(data)
	} else {
		payload = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, h http.Handler) {
	rec := doJSON(h, http.MethodPost, "/auth/login", map[string]string{
		"email":    "a@b.com",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

// fakeUpstream answers the auth endpoints and delegates the rest.
func fakeUpstream(extra func(w http.ResponseWriter, r *http.Request) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(map[string]any{
				"user":         model.User{ID: 1, Name: "Asha", Email: "a@b.com", Role: "staff"},
				"accessToken":  "access-1",
				"refreshToken": "refresh-1",
			})
			return
		case "/auth/register":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"message": "created"})
			return
		}
		if extra != nil && extra(w, r) {
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestRequiresSession(t *testing.T) {
	h := newConsole(t, fakeUpstream(nil))
	rec := doJSON(h, http.MethodGet, "/items", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "sign in")
}

func TestLoginThenListItems(t *testing.T) {
	var bearer string
	h := newConsole(t, fakeUpstream(func(w http.ResponseWriter, r *http.Request) bool {
		if r.URL.Path == "/items" {
			bearer = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(model.Page[model.Item]{
				Data:     []model.Item{{ID: 1, Name: "Soap", Price: 20, Quantity: 5}},
				PageMeta: model.PageMeta{Page: 1, PageSize: 10, Total: 1, TotalPages: 1},
			})
			return true
		}
		return false
	}))

	login(t, h)
	rec := doJSON(h, http.MethodGet, "/items?search=soap&page=1&pageSize=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer access-1", bearer)

	var page model.Page[model.Item]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Soap", page.Data[0].Name)
	assert.Equal(t, 1, page.Total)
}

func TestCreateCustomerValidationSurfacesFields(t *testing.T) {
	h := newConsole(t, fakeUpstream(nil))
	login(t, h)

	rec := doJSON(h, http.MethodPost, "/customers", map[string]string{
		"name":   "Ravi",
		"mobile": "12345",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation failed", body.Message)
	assert.Contains(t, body.Fields["mobile"], "10-digit")
}

func TestCreateItemUsesServerMessage(t *testing.T) {
	h := newConsole(t, fakeUpstream(func(w http.ResponseWriter, r *http.Request) bool {
		if r.URL.Path == "/items" && r.Method == http.MethodPost {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "item name already exists"})
			return true
		}
		return false
	}))
	login(t, h)

	rec := doJSON(h, http.MethodPost, "/items", map[string]any{"name": "Soap", "price": 20, "quantity": 1})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "item name already exists")
}

func TestCreateSaleReturnsReloadedPages(t *testing.T) {
	h := newConsole(t, fakeUpstream(func(w http.ResponseWriter, r *http.Request) bool {
		switch {
		case r.URL.Path == "/items/5":
			json.NewEncoder(w).Encode(model.Item{ID: 5, Name: "Soap", Price: 20, Quantity: 10})
			return true
		case r.URL.Path == "/sales" && r.Method == http.MethodPost:
			json.NewEncoder(w).Encode(model.Sale{ID: 7, Total: 40})
			return true
		case r.URL.Path == "/sales":
			json.NewEncoder(w).Encode(model.Page[model.Sale]{
				Data:     []model.Sale{{ID: 7}},
				PageMeta: model.PageMeta{Page: 1, Total: 1, TotalPages: 1},
			})
			return true
		case r.URL.Path == "/items":
			json.NewEncoder(w).Encode(model.Page[model.Item]{
				Data:     []model.Item{{ID: 5, Quantity: 8}},
				PageMeta: model.PageMeta{Page: 1, Total: 1, TotalPages: 1},
			})
			return true
		}
		return false
	}))
	login(t, h)

	rec := doJSON(h, http.MethodPost, "/sales", map[string]any{
		"items": []map[string]any{{"itemId": 5, "quantity": 2}},
		"paid":  40,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		Sale  model.Sale             `json:"sale"`
		Sales model.Page[model.Sale] `json:"sales"`
		Items model.Page[model.Item] `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 7, body.Sale.ID)
	require.Len(t, body.Items.Data, 1)
	assert.Equal(t, 8, body.Items.Data[0].Quantity, "stock reflects the sale")
}

func TestSessionExpiryMapsToUnauthorized(t *testing.T) {
	h := newConsole(t, fakeUpstream(func(w http.ResponseWriter, r *http.Request) bool {
		switch r.URL.Path {
		case "/auth/refresh-token":
			w.WriteHeader(http.StatusUnauthorized)
			return true
		case "/customers":
			w.WriteHeader(http.StatusUnauthorized)
			return true
		}
		return false
	}))
	login(t, h)

	rec := doJSON(h, http.MethodGet, "/customers", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "session expired") ||
		strings.Contains(rec.Body.String(), "sign in"))

	// The forced logout is visible on the next request.
	rec = doJSON(h, http.MethodGet, "/items", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterEndpoint(t *testing.T) {
	h := newConsole(t, fakeUpstream(nil))
	rec := doJSON(h, http.MethodPost, "/auth/register", map[string]string{
		"name":            "New Staff",
		"email":           "new@shop.test",
		"phoneNumber":     "9876543210",
		"password":        "secret1",
		"confirmPassword": "secret1",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestHealth(t *testing.T) {
	h := newConsole(t, fakeUpstream(nil))
	rec := doJSON(h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
