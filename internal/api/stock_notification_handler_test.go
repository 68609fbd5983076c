package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ecotrade/internal/model"
	"ecotrade/internal/service/stocknotify"

	"github.com/gin-gonic/gin"
)

type mockNotifier struct {
	record  *model.StockNotification
	already bool
	err     error

	gotProductID int64
	gotEmail     string
}

func (m *mockNotifier) RequestNotification(ctx context.Context, productID int64, email string) (*model.StockNotification, bool, error) {
	m.gotProductID = productID
	m.gotEmail = email
	return m.record, m.already, m.err
}

func performRequest(t *testing.T, notifier *mockNotifier, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handler := NewStockNotificationHandler(notifier)
	router.POST("/api/stock-notifications/request", handler.RequestNotification)

	req := httptest.NewRequest(http.MethodPost, "/api/stock-notifications/request", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return resp
}

func TestRequestNotification_Created(t *testing.T) {
	notifier := &mockNotifier{
		record: &model.StockNotification{ID: 1, ProductID: 42, Email: "a@x.com", CreatedAt: time.Now()},
	}

	w := performRequest(t, notifier, `{"productId": 42, "email": "a@x.com"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeBody(t, w)
	if resp["success"] != true {
		t.Error("expected success true")
	}
	if resp["message"] != "You will be notified when this product is back in stock" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
	if notifier.gotProductID != 42 || notifier.gotEmail != "a@x.com" {
		t.Errorf("handler passed wrong args: product=%d email=%s", notifier.gotProductID, notifier.gotEmail)
	}

	notification, ok := resp["notification"].(map[string]any)
	if !ok {
		t.Fatal("expected notification object in response")
	}
	if notification["product"] != float64(42) {
		t.Errorf("expected product 42, got %v", notification["product"])
	}
	if notification["notified"] != false {
		t.Error("new subscription must serialize notified=false")
	}
}

func TestRequestNotification_AlreadySubscribed(t *testing.T) {
	notifier := &mockNotifier{
		record:  &model.StockNotification{ID: 1, ProductID: 42, Email: "a@x.com"},
		already: true,
	}

	w := performRequest(t, notifier, `{"productId": 42, "email": "a@x.com"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decodeBody(t, w)
	if resp["message"] != "You are already subscribed to notifications for this product" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
}

func TestRequestNotification_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"validation", stocknotify.ErrValidation, http.StatusBadRequest},
		{"product not found", stocknotify.ErrProductNotFound, http.StatusNotFound},
		{"in stock", stocknotify.ErrInStock, http.StatusBadRequest},
		{"storage failure", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			notifier := &mockNotifier{err: tc.err}
			w := performRequest(t, notifier, `{"productId": 42, "email": "a@x.com"}`)

			if w.Code != tc.wantCode {
				t.Errorf("expected %d, got %d", tc.wantCode, w.Code)
			}
			resp := decodeBody(t, w)
			if resp["success"] != false {
				t.Error("expected success false")
			}
		})
	}
}

func TestRequestNotification_MalformedBody(t *testing.T) {
	notifier := &mockNotifier{}
	w := performRequest(t, notifier, `{"productId": "not a number"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if notifier.gotEmail != "" || notifier.gotProductID != 0 {
		t.Error("handler must not call the service on a malformed body")
	}
}

func TestRequestNotification_InternalErrorIsOpaque(t *testing.T) {
	notifier := &mockNotifier{err: errors.New("pq: relation does not exist")}
	w := performRequest(t, notifier, `{"productId": 42, "email": "a@x.com"}`)

	if strings.Contains(w.Body.String(), "relation") {
		t.Error("internal error details must not leak to the client")
	}
}
