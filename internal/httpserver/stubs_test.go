package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"foodexpress/internal/domain"
	cartsvc "foodexpress/internal/service/cart"
	usersvc "foodexpress/internal/service/user"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func logDiscard() *zap.Logger {
	return zap.NewNop()
}

type stubCategoryService struct {
	categories []domain.Category
	err        error
}

func (s *stubCategoryService) List(_ context.Context) ([]domain.Category, error) {
	return s.categories, s.err
}

type stubProductService struct {
	products     []domain.Product
	err          error
	lastCategory *int64
}

func (s *stubProductService) List(_ context.Context, categoryID *int64) ([]domain.Product, error) {
	s.lastCategory = categoryID
	return s.products, s.err
}

type stubCartService struct {
	lines      []domain.CartLine
	err        error
	lastUserID int64
	lastAdd    cartsvc.AddInput
	lastUpdate cartsvc.UpdateInput
	cleared    bool
}

func (s *stubCartService) View(_ context.Context, userID int64) ([]domain.CartLine, error) {
	s.lastUserID = userID
	return s.lines, s.err
}

func (s *stubCartService) Add(_ context.Context, userID int64, in cartsvc.AddInput) error {
	s.lastUserID = userID
	s.lastAdd = in
	return s.err
}

func (s *stubCartService) Update(_ context.Context, userID int64, in cartsvc.UpdateInput) error {
	s.lastUserID = userID
	s.lastUpdate = in
	return s.err
}

func (s *stubCartService) Clear(_ context.Context, userID int64) error {
	s.lastUserID = userID
	s.cleared = true
	return s.err
}

type stubOrderService struct {
	order       *domain.Order
	steps       []domain.CourierStep
	tracking    *domain.OrderTracking
	err         error
	lastUserID  int64
	lastOrderID int64
	lastAddress string
}

func (s *stubOrderService) Create(_ context.Context, userID int64, address string) (*domain.Order, error) {
	s.lastUserID = userID
	s.lastAddress = address
	return s.order, s.err
}

func (s *stubOrderService) Pay(_ context.Context, userID, orderID int64) ([]domain.CourierStep, error) {
	s.lastUserID = userID
	s.lastOrderID = orderID
	return s.steps, s.err
}

func (s *stubOrderService) Status(_ context.Context, userID, orderID int64) (*domain.OrderTracking, error) {
	s.lastUserID = userID
	s.lastOrderID = orderID
	return s.tracking, s.err
}

// stubUserService accepts "good-token" as user 7; "expired-token" is expired.
type stubUserService struct {
	user     *domain.User
	login    *usersvc.LoginResult
	err      error
	lastName string
}

func (s *stubUserService) Register(_ context.Context, in usersvc.RegisterInput) (*domain.User, error) {
	s.lastName = in.FullName
	return s.user, s.err
}

func (s *stubUserService) Login(_ context.Context, _, _ string) (*usersvc.LoginResult, error) {
	return s.login, s.err
}

func (s *stubUserService) Authenticate(token string) (int64, error) {
	switch token {
	case "good-token":
		return 7, nil
	case "expired-token":
		return 0, usersvc.ErrTokenExpired
	}
	return 0, usersvc.ErrTokenInvalid
}

func (s *stubUserService) Me(_ context.Context, _ int64) (*domain.User, error) {
	return s.user, s.err
}

func testDeps() Deps {
	return Deps{
		CategorySvc: &stubCategoryService{},
		ProductSvc:  &stubProductService{},
		CartSvc:     &stubCartService{},
		OrderSvc:    &stubOrderService{},
		UserSvc:     &stubUserService{user: &domain.User{ID: 7, Email: "user@example.com", CreatedAt: time.Now()}},
	}
}

func newTestRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func do(router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
