// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"keymint-server/billing"
	"keymint-server/db"
	"keymint-server/models"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeProvider struct {
	status      billing.Status
	statusErr   error
	customerErr error
	checkoutErr error
	cancelErr   error
	event       *billing.Event
	parseErr    error
	canceled    []string
}

func (f *fakeProvider) CreateCustomer(ctx context.Context, email, apiKey string) (string, error) {
	if f.customerErr != nil {
		return "", f.customerErr
	}
	return "cus_" + email, nil
}

func (f *fakeProvider) SubscriptionStatus(ctx context.Context, subscriptionID string) (billing.Status, error) {
	return f.status, f.statusErr
}

func (f *fakeProvider) CreateCheckout(ctx context.Context, req billing.CheckoutRequest) (*billing.CheckoutSession, error) {
	if f.checkoutErr != nil {
		return nil, f.checkoutErr
	}
	return &billing.CheckoutSession{SessionID: "cs_test", URL: "https://checkout.example/cs_test"}, nil
}

func (f *fakeProvider) CancelAtPeriodEnd(ctx context.Context, subscriptionID string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.canceled = append(f.canceled, subscriptionID)
	return nil
}

func (f *fakeProvider) ParseWebhook(payload []byte, signature string) (*billing.Event, error) {
	if f.parseErr != nil {
		return nil, f.parseErr
	}
	return f.event, nil
}

func setupHandlerTest(t *testing.T) *fakeProvider {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := conn.AutoMigrate(models.AllModels...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	db.Conn = conn

	fake := &fakeProvider{}
	InitBilling(fake)
	return fake
}

func createTestAccount(t *testing.T, account *models.Account) *models.Account {
	t.Helper()
	if err := db.Conn.Create(account).Error; err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}
	return account
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("Expected *echo.HTTPError, got %T: %v", err, err)
	}
	return httpErr.Code
}
