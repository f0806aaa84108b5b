package v1_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxfactory/internal/config"
	"boxfactory/internal/core/id"
	v1 "boxfactory/internal/infrastructure/http/v1"
	"boxfactory/internal/infrastructure/storage/memory"
	"boxfactory/pkg/logger"
	"boxfactory/pkg/numerator"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: 5000, Env: "test", CORSOrigin: "*"},
		RateLimit: config.RateLimitConfig{WindowMS: 900000, MaxRequests: 1000},
		Paging:    config.PagingConfig{DefaultSize: 10, MaxSize: 100},
	}
}

func newAPI(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	backend := v1.Backend{
		TxManager: store.TxManager,
		Clients:   store.Clients,
		Branches:  store.Branches,
		Materials: store.Materials,
		Products:  store.Products,
		Orders:    store.Orders,
		Invoices:  store.Invoices,
		Payments:  store.Payments,
		Shipments: store.Shipments,
		Audit:     store.Audit,
		Dashboard: store.Dashboard,
	}

	router, err := v1.NewRouter(v1.RouterConfig{
		Config:   cfg,
		Logger:   logger.NewNop(),
		Services: v1.NewServices(backend, numerator.New()),
		Backend:  backend,
	})
	require.NoError(t, err)
	return router
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Error      string          `json:"error"`
	Errors     []string        `json:"errors"`
	Count      int             `json:"count"`
	Pagination struct {
		Page    int   `json:"page"`
		Limit   int   `json:"limit"`
		Total   int64 `json:"total"`
		Pages   int   `json:"pages"`
		HasNext bool  `json:"hasNext"`
		HasPrev bool  `json:"hasPrev"`
	} `json:"pagination"`
}

func call(t *testing.T, r http.Handler, method, path string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func decode(t *testing.T, raw json.RawMessage) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func clientBody(name, email string) map[string]any {
	return map[string]any{
		"name": name, "email": email, "phone": "555-0100",
		"address": "1 Dock St", "city": "Springfield", "state": "IL", "zipCode": "62701",
	}
}

func createClient(t *testing.T, r http.Handler, name, email string) string {
	t.Helper()
	code, env := call(t, r, http.MethodPost, "/api/clients", clientBody(name, email))
	require.Equal(t, http.StatusCreated, code, env.Message)
	return decode(t, env.Data)["id"].(string)
}

func TestOrderFlow(t *testing.T) {
	r := newAPI(t, testConfig())
	clientID := createClient(t, r, "Acme Packaging", "orders@acme.test")

	code, env := call(t, r, http.MethodPost, "/api/materials", map[string]any{
		"name": "Kraft board", "unit": "sheets", "currentStock": 500, "price": 0.4, "status": "out_of_stock",
	})
	require.Equal(t, http.StatusCreated, code)
	mat := decode(t, env.Data)
	assert.Equal(t, "in_stock", mat["status"])

	code, env = call(t, r, http.MethodPost, "/api/products", map[string]any{
		"name": "Mailer", "description": "Small mailer box", "price": 4.5,
		"materials": []map[string]any{{"materialId": mat["id"], "quantity": 2, "unitPrice": 0.4}},
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	productID := decode(t, env.Data)["id"].(string)

	code, env = call(t, r, http.MethodGet, "/api/products/"+productID+"/materials", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, env.Count)

	code, env = call(t, r, http.MethodPost, "/api/orders", map[string]any{
		"clientId": clientID, "deliveryDate": "2026-12-01",
		"items": []map[string]any{{"productId": productID, "quantity": 10, "unitPrice": 3.99, "totalPrice": 1}},
		"totalAmount": 5,
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	ord := decode(t, env.Data)
	assert.Equal(t, 39.9, ord["totalAmount"])
	assert.Equal(t, "Acme Packaging", ord["clientName"])
	assert.Equal(t, "New", ord["status"])
	orderID := ord["id"].(string)

	code, env = call(t, r, http.MethodPost, "/api/orders/"+orderID+"/items", map[string]any{
		"productId": productID, "quantity": 2, "unitPrice": 5,
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	item := decode(t, env.Data)
	assert.Equal(t, "Mailer", item["productName"])
	assert.Equal(t, 10.0, item["totalPrice"])

	code, env = call(t, r, http.MethodPut, "/api/order-items/"+item["id"].(string), map[string]any{"quantity": 3})
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, 15.0, decode(t, env.Data)["totalPrice"])

	code, env = call(t, r, http.MethodGet, "/api/orders/"+orderID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 54.9, decode(t, env.Data)["totalAmount"])

	code, env = call(t, r, http.MethodGet, "/api/orders/"+orderID+"/items", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, env.Count)

	code, env = call(t, r, http.MethodDelete, "/api/order-items/"+item["id"].(string), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Order item deleted successfully", env.Message)

	code, env = call(t, r, http.MethodDelete, "/api/order-items/"+item["id"].(string), nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Order item not found", env.Message)

	code, env = call(t, r, http.MethodGet, "/api/clients/"+clientID+"/orders", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(1), env.Pagination.Total)
}

func TestList_Pagination(t *testing.T) {
	r := newAPI(t, testConfig())
	for i := 0; i < 12; i++ {
		createClient(t, r, fmt.Sprintf("Client %02d", i), fmt.Sprintf("c%02d@example.com", i))
	}

	tests := []struct {
		query              string
		page, limit, pages int
		count              int
		hasNext, hasPrev   bool
	}{
		{"", 1, 10, 2, 10, true, false},
		{"?page=2&limit=5", 2, 5, 3, 5, true, true},
		{"?page=3&limit=5", 3, 5, 3, 2, false, true},
		{"?page=abc&limit=0", 1, 10, 2, 10, true, false},
		{"?limit=1000", 1, 100, 1, 12, false, false},
		{"?page=9", 9, 10, 2, 0, false, true},
		{"?page=184467440737095517&limit=100", math.MaxInt / 100, 100, 1, 0, false, true},
		{"?page=2abc&limit=5.9", 2, 5, 3, 5, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			code, env := call(t, r, http.MethodGet, "/api/clients"+tt.query, nil)
			require.Equal(t, http.StatusOK, code)
			assert.True(t, env.Success)
			assert.Equal(t, tt.page, env.Pagination.Page)
			assert.Equal(t, tt.limit, env.Pagination.Limit)
			assert.Equal(t, int64(12), env.Pagination.Total)
			assert.Equal(t, tt.pages, env.Pagination.Pages)
			assert.Equal(t, tt.hasNext, env.Pagination.HasNext)
			assert.Equal(t, tt.hasPrev, env.Pagination.HasPrev)
			assert.Equal(t, tt.count, env.Count)
		})
	}
}

func TestList_SortSearchAndFilters(t *testing.T) {
	r := newAPI(t, testConfig())
	createClient(t, r, "Beta Boxes", "beta@example.com")
	createClient(t, r, "Alpha Cartons", "alpha@example.com")

	code, env := call(t, r, http.MethodGet, "/api/clients?sort=name", nil)
	require.Equal(t, http.StatusOK, code)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Alpha Cartons", rows[0]["name"])

	code, env = call(t, r, http.MethodGet, "/api/clients?search=beta", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, env.Count)

	code, env = call(t, r, http.MethodGet, "/api/clients?status=inactive", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, env.Count)

	code, env = call(t, r, http.MethodGet, "/api/clients?sort=-password", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid sort field: password", env.Message)

	code, _ = call(t, r, http.MethodGet, "/api/orders?clientId=nope", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestErrors(t *testing.T) {
	r := newAPI(t, testConfig())
	createClient(t, r, "Acme", "acme@example.com")

	tests := []struct {
		name    string
		method  string
		path    string
		body    any
		status  int
		code    string
		message string
	}{
		{"missing client", http.MethodGet, "/api/clients/" + id.New().String(), nil, 404, "NOT_FOUND", "Client not found"},
		{"malformed id", http.MethodGet, "/api/orders/not-an-id", nil, 404, "NOT_FOUND", "Order not found"},
		{"nested missing client", http.MethodGet, "/api/clients/" + id.New().String() + "/branches", nil, 404, "NOT_FOUND", "Client not found"},
		{"dangling client ref", http.MethodPost, "/api/branches",
			map[string]any{"name": "North", "location": "Dock 4", "clientId": id.New().String()}, 400, "VALIDATION_ERROR", "Client not found"},
		{"malformed client ref", http.MethodPost, "/api/invoices",
			map[string]any{"clientId": "123", "amount": 10}, 400, "VALIDATION_ERROR", "Client not found"},
		{"dangling product line", http.MethodPost, "/api/products",
			map[string]any{"name": "Box", "description": "d", "materials": []map[string]any{{"materialId": "bad", "quantity": 1}}},
			400, "VALIDATION_ERROR", "Material with ID bad not found"},
		{"duplicate email", http.MethodPost, "/api/clients", clientBody("Other", "ACME@example.com"), 409, "DUPLICATE_ENTRY", "Client with this email already exists"},
		{"unknown route", http.MethodGet, "/api/nope", nil, 404, "NOT_FOUND", "Route /api/nope not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := call(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, status)
			assert.False(t, env.Success)
			assert.Equal(t, tt.code, env.Error)
			assert.Equal(t, tt.message, env.Message)
		})
	}
}

func TestCreate_ValidationListsEveryProblem(t *testing.T) {
	r := newAPI(t, testConfig())

	code, env := call(t, r, http.MethodPost, "/api/clients", map[string]any{"email": "nope"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error)
	assert.ElementsMatch(t, []string{
		"Name is required",
		"Email format is invalid",
		"Phone is required",
		"Address is required",
		"City is required",
		"State is required",
		"Zip code is required",
	}, env.Errors)
}

func TestCreate_RejectsOversizedText(t *testing.T) {
	r := newAPI(t, testConfig())
	clientID := createClient(t, r, "Acme", "acme@example.com")

	body := clientBody(strings.Repeat("x", 201), "long@example.com")
	body["address"] = strings.Repeat("y", 501)
	code, env := call(t, r, http.MethodPost, "/api/clients", body)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error)
	assert.ElementsMatch(t, []string{
		"name must be at most 200 characters",
		"address must be at most 500 characters",
	}, env.Errors)

	code, env = call(t, r, http.MethodPost, "/api/orders", map[string]any{
		"clientId":     clientID,
		"deliveryDate": "2026-12-01",
		"items": []map[string]any{
			{"productId": id.New().String(), "quantity": 1, "unitPrice": 1, "specifications": strings.Repeat("z", 1001)},
		},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, []string{"specifications must be at most 1000 characters"}, env.Errors)

	long := strings.Repeat("n", 201)
	code, env = call(t, r, http.MethodPut, "/api/clients/"+clientID, map[string]any{"name": long})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, []string{"name must be at most 200 characters"}, env.Errors)
}

func TestUpdateAndDelete(t *testing.T) {
	r := newAPI(t, testConfig())
	clientID := createClient(t, r, "Acme", "acme@example.com")

	code, env := call(t, r, http.MethodPut, "/api/clients/"+clientID, map[string]any{"city": "Shelbyville", "id": id.New().String()})
	require.Equal(t, http.StatusOK, code, env.Message)
	got := decode(t, env.Data)
	assert.Equal(t, "Shelbyville", got["city"])
	assert.Equal(t, "Acme", got["name"])
	assert.Equal(t, clientID, got["id"])

	code, env = call(t, r, http.MethodGet, "/api/audit/client/"+clientID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, env.Count)

	code, env = call(t, r, http.MethodDelete, "/api/clients/"+clientID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Client deleted successfully", env.Message)
	assert.JSONEq(t, `{}`, string(env.Data))

	code, _ = call(t, r, http.MethodDelete, "/api/clients/"+clientID, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestDocumentNumbers(t *testing.T) {
	r := newAPI(t, testConfig())
	clientID := createClient(t, r, "Acme", "acme@example.com")

	code, env := call(t, r, http.MethodPost, "/api/invoices", map[string]any{"clientId": clientID, "amount": 120, "orderId": ""})
	require.Equal(t, http.StatusCreated, code, env.Message)
	inv := decode(t, env.Data)
	assert.Regexp(t, `^INV-\d+-[0-9a-z]{9}$`, inv["invoiceNumber"])
	assert.Nil(t, inv["orderId"])

	code, env = call(t, r, http.MethodPost, "/api/invoices", map[string]any{
		"clientId": clientID, "amount": 1, "invoiceNumber": inv["invoiceNumber"],
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "DUPLICATE_ENTRY", env.Error)

	code, env = call(t, r, http.MethodPost, "/api/payments", map[string]any{
		"clientId": clientID, "invoiceId": inv["id"], "amount": 120, "paymentMethod": "Cash",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	assert.Regexp(t, `^PAY-`, decode(t, env.Data)["paymentNumber"])

	code, env = call(t, r, http.MethodPost, "/api/shipments", map[string]any{
		"clientId": clientID, "trackingNumber": "1Z999",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	assert.Regexp(t, `^SHIP-`, decode(t, env.Data)["shipmentNumber"])
}

func TestDashboardStats(t *testing.T) {
	r := newAPI(t, testConfig())
	clientID := createClient(t, r, "Acme", "acme@example.com")
	for _, status := range []string{"New", "Confirmed", "Completed"} {
		code, env := call(t, r, http.MethodPost, "/api/orders", map[string]any{
			"clientId": clientID, "deliveryDate": "2026-12-01", "status": status,
		})
		require.Equal(t, http.StatusCreated, code, env.Message)
	}

	code, env := call(t, r, http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, code)
	stats := decode(t, env.Data)
	assert.Equal(t, 3.0, stats["totalOrders"])
	assert.Equal(t, 2.0, stats["pendingOrders"])
	assert.Equal(t, 1.0, stats["completedOrders"])
	assert.Equal(t, 1.0, stats["totalClients"])
	assert.Len(t, stats["recentOrders"], 3)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.MaxRequests = 2
	r := newAPI(t, cfg)

	for i := 0; i < 2; i++ {
		code, _ := call(t, r, http.MethodGet, "/api/clients", nil)
		require.Equal(t, http.StatusOK, code)
	}
	code, env := call(t, r, http.MethodGet, "/api/clients", nil)
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, "RATE_LIMITED", env.Error)

	// health probes are not limited
	code, _ = call(t, r, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestHealth(t *testing.T) {
	r := newAPI(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/health/info", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var info map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "memory", info["storage"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
