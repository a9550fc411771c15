package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"foodexpress/internal/domain"
	"github.com/shopspring/decimal"
)

func TestBuildRouter_RequiresServices(t *testing.T) {
	if _, err := buildRouter(logDiscard(), nil, Deps{}); err == nil {
		t.Fatalf("expected error for missing services")
	}
}

func TestHealthz_SetsRequestID(t *testing.T) {
	router := newTestRouter(t, testDeps())

	rec := do(router, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}
}

func TestReadyz_WithoutDB(t *testing.T) {
	router := newTestRouter(t, testDeps())

	rec := do(router, http.MethodGet, "/readyz", "", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestCategoryProducts_PassesCategoryID(t *testing.T) {
	deps := testDeps()
	products := &stubProductService{products: []domain.Product{
		{ID: 1, Name: "Margherita", Price: decimal.RequireFromString("10.50"), CategoryID: 2},
	}}
	deps.ProductSvc = products
	router := newTestRouter(t, deps)

	rec := do(router, http.MethodGet, "/categories/2/products", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if products.lastCategory == nil || *products.lastCategory != 2 {
		t.Fatalf("expected category 2, got %v", products.lastCategory)
	}
	if !strings.Contains(rec.Body.String(), `"price":10.5`) {
		t.Fatalf("expected numeric price, got %s", rec.Body.String())
	}

	rec = do(router, http.MethodGet, "/categories/abc/products", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", rec.Code)
	}
}

func TestProducts_EmptyListIsArray(t *testing.T) {
	router := newTestRouter(t, testDeps())

	rec := do(router, http.MethodGet, "/products", "", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestCart_RequiresAuth(t *testing.T) {
	router := newTestRouter(t, testDeps())

	for _, r := range []struct{ method, path string }{
		{http.MethodGet, "/cart"},
		{http.MethodPost, "/cart/add"},
		{http.MethodPut, "/cart/update"},
		{http.MethodPost, "/cart/clear"},
		{http.MethodPost, "/order/create"},
		{http.MethodPost, "/order/1/pay"},
		{http.MethodGet, "/order/1/status"},
	} {
		rec := do(router, r.method, r.path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", r.method, r.path, rec.Code)
		}
	}
}

func TestCartAdd_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{domain.Validation("invalid data"), http.StatusBadRequest},
		{domain.NotFound("product not found"), http.StatusNotFound},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		deps := testDeps()
		carts := &stubCartService{err: tc.err}
		deps.CartSvc = carts
		router := newTestRouter(t, deps)

		rec := do(router, http.MethodPost, "/cart/add", `{"productId":3,"quantity":2}`, "good-token")
		if rec.Code != tc.want {
			t.Fatalf("err=%v: expected %d, got %d body=%s", tc.err, tc.want, rec.Code, rec.Body.String())
		}
		if carts.lastUserID != 7 || carts.lastAdd.ProductID != 3 || *carts.lastAdd.Quantity != 2 {
			t.Fatalf("unexpected call user=%d in=%+v", carts.lastUserID, carts.lastAdd)
		}
		if tc.want == http.StatusInternalServerError && strings.Contains(rec.Body.String(), "db down") {
			t.Fatalf("internal error leaked: %s", rec.Body.String())
		}
	}
}

func TestCartAdd_MalformedBody(t *testing.T) {
	router := newTestRouter(t, testDeps())

	rec := do(router, http.MethodPost, "/cart/add", `{"productId":`, "good-token")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCartView(t *testing.T) {
	deps := testDeps()
	deps.CartSvc = &stubCartService{lines: []domain.CartLine{
		{ID: 1, ProductID: 3, ProductName: "Cola", Price: decimal.RequireFromString("2.00"), Quantity: 2},
	}}
	router := newTestRouter(t, deps)

	rec := do(router, http.MethodGet, "/cart", "", "good-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body []cartLineResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body) != 1 || body[0].ProductName != "Cola" || body[0].Price != 2 {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestCartUpdateAndClear(t *testing.T) {
	deps := testDeps()
	carts := &stubCartService{}
	deps.CartSvc = carts
	router := newTestRouter(t, deps)

	rec := do(router, http.MethodPut, "/cart/update", `{"cartItemId":5,"quantity":0}`, "good-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if carts.lastUpdate.CartItemID == nil || *carts.lastUpdate.CartItemID != 5 || *carts.lastUpdate.Quantity != 0 {
		t.Fatalf("unexpected update %+v", carts.lastUpdate)
	}

	rec = do(router, http.MethodPost, "/cart/clear", "", "good-token")
	if rec.Code != http.StatusOK || !carts.cleared {
		t.Fatalf("expected cart cleared, got %d", rec.Code)
	}
}

func TestOrderCreate_Created(t *testing.T) {
	deps := testDeps()
	orders := &stubOrderService{order: &domain.Order{ID: 11, Status: domain.OrderPending, DeliveryFee: decimal.RequireFromString("8.49")}}
	deps.OrderSvc = orders
	router := newTestRouter(t, deps)

	rec := do(router, http.MethodPost, "/order/create", `{"deliveryAddress":"1 Main St"}`, "good-token")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	var body createOrderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.OrderID != 11 || body.DeliveryFee != 8.49 || body.Status != domain.OrderPending {
		t.Fatalf("unexpected body %+v", body)
	}
	if orders.lastAddress != "1 Main St" {
		t.Fatalf("unexpected address %q", orders.lastAddress)
	}
}

func TestOrderCreate_EmptyCart(t *testing.T) {
	deps := testDeps()
	deps.OrderSvc = &stubOrderService{err: domain.Validation("cart is empty")}
	router := newTestRouter(t, deps)

	rec := do(router, http.MethodPost, "/order/create", `{"deliveryAddress":"1 Main St"}`, "good-token")
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "cart is empty") {
		t.Fatalf("expected 400 cart is empty, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestOrderPay_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.NotFound("order not found"), http.StatusNotFound},
		{domain.Conflictf("cannot pay order in status %s", domain.OrderAccepted), http.StatusBadRequest},
	}
	for _, tc := range cases {
		deps := testDeps()
		orders := &stubOrderService{err: tc.err}
		deps.OrderSvc = orders
		router := newTestRouter(t, deps)

		rec := do(router, http.MethodPost, "/order/42/pay", "", "good-token")
		if rec.Code != tc.want {
			t.Fatalf("err=%v: expected %d, got %d", tc.err, tc.want, rec.Code)
		}
		if orders.lastOrderID != 42 || orders.lastUserID != 7 {
			t.Fatalf("unexpected call order=%d user=%d", orders.lastOrderID, orders.lastUserID)
		}
	}
}

func TestOrderPay_ReturnsSchedule(t *testing.T) {
	deps := testDeps()
	at := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	deps.OrderSvc = &stubOrderService{steps: []domain.CourierStep{{Step: "order accepted", Timestamp: at}}}
	router := newTestRouter(t, deps)

	rec := do(router, http.MethodPost, "/order/42/pay", "", "good-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"deliverySteps":[{"step":"order accepted","timestamp":"2026-01-01T12:00:00Z"}]`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestOrderStatus_OmitsCourierPathWhilePending(t *testing.T) {
	deps := testDeps()
	deps.OrderSvc = &stubOrderService{tracking: &domain.OrderTracking{OrderID: 42, Status: domain.OrderPending}}
	router := newTestRouter(t, deps)

	rec := do(router, http.MethodGet, "/order/42/status", "", "good-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "courierPath") {
		t.Fatalf("expected no courierPath, got %s", rec.Body.String())
	}

	rec = do(router, http.MethodGet, "/order/x/status", "", "good-token")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", rec.Code)
	}
}

func TestCORSConfig(t *testing.T) {
	if cfg := corsConfig([]string{"*"}); !cfg.AllowAllOrigins || len(cfg.AllowOrigins) != 0 {
		t.Fatalf("expected allow all, got %+v", cfg)
	}
	cfg := corsConfig([]string{"https://shop.example.com"})
	if cfg.AllowAllOrigins || len(cfg.AllowOrigins) != 1 {
		t.Fatalf("expected explicit origin, got %+v", cfg)
	}
}
