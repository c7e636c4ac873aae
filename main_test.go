package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"gopkg.in/gomail.v2"

	"github.com/rake87226-cmyk/vercel-backend/config"
	"github.com/rake87226-cmyk/vercel-backend/models"
	"github.com/rake87226-cmyk/vercel-backend/notify"
	"github.com/rake87226-cmyk/vercel-backend/store"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	log.Logger = zerolog.Nop()
	os.Exit(m.Run())
}

// Create a seeded store backed by a private in-memory database
func getTestStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(config.Database{Path: "file:" + name + "?mode=memory&cache=shared"}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Bootstrap(context.Background()))
	return st
}

type testServer struct {
	router   *gin.Engine
	store    *store.Store
	notifier *notify.Notifier
}

// Helper: router with logging-only notification senders
func newTestServer(t *testing.T) *testServer {
	st := getTestStore(t)
	n := notify.New(nil, nil, nil, zerolog.Nop())
	return &testServer{router: SetupRouter(st, n, ""), store: st, notifier: n}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) waitForNotifications(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.notifier.Wait(ctx))
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// ----------------------- TESTS ----------------------- //

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestListMenu(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "GET", "/api/menu", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	menu := decode[[]models.MenuItem](t, w)
	require.Len(t, menu, 5)
	for i, item := range menu {
		assert.Equal(t, uint(i+1), item.ID)
	}
	assert.Equal(t, "Chocolate Brownie", menu[4].Name)
}

func TestCreateOrderUsesMenuPrices(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "POST", "/api/orders", map[string]any{
		"items": []map[string]any{
			{"id": 1, "qty": 2, "price": 1},
			{"id": 3, "qty": 1, "price": 1},
		},
		"customer": map[string]any{"name": "Asha", "email": "", "phone": ""},
		"total":    2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[map[string]uint](t, w)
	require.NotZero(t, created["orderId"])

	w = s.do(t, "GET", "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	orders := decode[[]models.OrderWithItems](t, w)
	require.Len(t, orders, 1)

	o := orders[0]
	assert.Equal(t, created["orderId"], o.ID)
	assert.Equal(t, models.OrderPending, o.Status)
	assert.Equal(t, 2.0, o.Total, "the client total is stored as sent")
	require.Len(t, o.Items, 2)
	assert.Equal(t, 250.0, o.Items[0].Price)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.Equal(t, 180.0, o.Items[1].Price)
	require.NotNil(t, o.Items[1].Name)
	assert.Equal(t, "Veg Biryani", *o.Items[1].Name)
}

func TestCreateOrderSkipsUnknownMenuItems(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "POST", "/api/orders", map[string]any{
		"items":    []map[string]any{{"id": 2, "qty": 1}, {"id": 404, "qty": 5}},
		"customer": map[string]any{"name": "Dev"},
		"total":    220,
	})
	require.Equal(t, http.StatusOK, w.Code)

	orders := decode[[]models.OrderWithItems](t, s.do(t, "GET", "/api/orders", nil))
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, uint(2), orders[0].Items[0].MenuID)
}

func TestCreateOrderWithEmptyBody(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/orders", http.NoBody)
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	orders := decode[[]models.OrderWithItems](t, s.do(t, "GET", "/api/orders", nil))
	require.Len(t, orders, 1)
	assert.Empty(t, orders[0].Items)
	assert.Equal(t, "", orders[0].CustomerName)
}

func TestCreateOrderWithMalformedBody(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/orders", strings.NewReader(`{"items": "lots"}`))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decode[map[string]string](t, w), "error")
}

type failingTwilio struct {
	mu    sync.Mutex
	calls int
}

func (f *failingTwilio) CreateMessage(*openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return nil, errors.New("twilio is down")
}

type failingMailer struct {
	mu    sync.Mutex
	calls int
}

func (f *failingMailer) DialAndSend(...*gomail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return errors.New("smtp: connection refused")
}

func TestNotificationFailuresDoNotAffectResponses(t *testing.T) {
	st := getTestStore(t)
	sms, mail := &failingTwilio{}, &failingMailer{}
	n := notify.New(
		notify.NewSMSSender(sms, "+15005550006", zerolog.Nop()),
		notify.NewEmailSender(mail, "orders@example.com", zerolog.Nop()),
		nil,
		zerolog.Nop(),
	)
	s := &testServer{router: SetupRouter(st, n, ""), store: st, notifier: n}

	w := s.do(t, "POST", "/api/orders", map[string]any{
		"items":    []map[string]any{{"id": 1, "qty": 1}},
		"customer": map[string]any{"name": "Asha", "email": "asha@example.com", "phone": "+911234"},
		"total":    250,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"orderId"}, keys(decode[map[string]any](t, w)))

	w = s.do(t, "POST", "/api/reservations", map[string]any{
		"name": "Asha", "phone": "+911234", "email": "asha@example.com",
		"date": "2024-01-01", "time": "19:00", "party_size": 2,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"reservationId"}, keys(decode[map[string]any](t, w)))

	s.waitForNotifications(t)
	assert.Equal(t, 2, sms.calls)
	assert.Equal(t, 2, mail.calls)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestCreateReservation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "POST", "/api/reservations", map[string]any{
		"name": "A", "phone": "+911234", "email": "",
		"date": "2024-01-01", "time": "19:00", "party_size": 4,
	})
	require.Equal(t, http.StatusOK, w.Code)
	created := decode[map[string]uint](t, w)
	require.NotZero(t, created["reservationId"])

	w = s.do(t, "GET", "/api/reservations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows := decode[[]models.Reservation](t, w)
	require.Len(t, rows, 1)
	assert.Equal(t, created["reservationId"], rows[0].ID)
	assert.Equal(t, "pending", rows[0].Status)
	assert.Equal(t, 4, rows[0].PartySize)
	assert.Equal(t, "19:00", rows[0].Time)

	s.waitForNotifications(t)
}

func TestFeedbackPublicAndAdminMatch(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "POST", "/api/feedback", map[string]any{"name": "Meera", "email": "m@example.com", "comment": "Great brownie"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotZero(t, decode[map[string]uint](t, w)["feedbackId"])

	public := s.do(t, "GET", "/api/feedback", nil)
	admin := s.do(t, "GET", "/api/admin/feedback", nil)
	require.Equal(t, http.StatusOK, public.Code)
	require.Equal(t, http.StatusOK, admin.Code)
	assert.JSONEq(t, public.Body.String(), admin.Body.String())

	rows := decode[[]models.Feedback](t, public)
	require.Len(t, rows, 1)
	assert.Equal(t, models.DefaultRating, rows[0].Rating, "rating defaults to 5")
	assert.Equal(t, "m@example.com", rows[0].Email)
}

func TestPaymentMarksOrderPaid(t *testing.T) {
	s := newTestServer(t)

	orderID := decode[map[string]uint](t, s.do(t, "POST", "/api/orders", map[string]any{
		"items": []map[string]any{{"id": 1, "qty": 1}}, "total": 250,
	}))["orderId"]

	w := s.do(t, "POST", "/api/payments", map[string]any{
		"orderId": orderID, "amount": 250, "method": "upi", "details": map[string]any{"vpa": "asha@okbank"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	paymentID := decode[map[string]uint](t, w)["paymentId"]
	require.NotZero(t, paymentID)

	w = s.do(t, "GET", "/api/admin/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows := decode[[]map[string]any](t, w)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "paid", row["status"])
	assert.Equal(t, true, row["paid"])
	assert.Equal(t, float64(paymentID), row["payment_ref"])
	assert.Equal(t, map[string]any{"vpa": "asha@okbank"}, row["payment_details"])
	assert.Len(t, row["items"], 1)
	assert.Contains(t, row, "name")
}

func TestPaymentConfirmsReservation(t *testing.T) {
	s := newTestServer(t)

	resID := decode[map[string]uint](t, s.do(t, "POST", "/api/reservations", map[string]any{
		"name": "Ravi", "date": "2024-02-14", "time": "20:30", "party_size": 2,
	}))["reservationId"]

	w := s.do(t, "POST", "/api/payments", map[string]any{"reservationId": resID, "amount": 100})
	require.Equal(t, http.StatusOK, w.Code)

	rows := decode[[]map[string]any](t, s.do(t, "GET", "/api/admin/reservations", nil))
	require.Len(t, rows, 1)
	assert.Equal(t, "confirmed", rows[0]["status"])
	assert.Equal(t, true, rows[0]["paid"])
	assert.Equal(t, map[string]any{}, rows[0]["payment_details"], "details default to {}")
	assert.Equal(t, float64(2), rows[0]["party_size"])

	var p models.Payment
	require.NoError(t, s.store.DB().Last(&p).Error)
	assert.Equal(t, models.DefaultPaymentMethod, p.Method)
	assert.Nil(t, p.OrderID)
}

func TestAdminViewsWithoutPayments(t *testing.T) {
	s := newTestServer(t)

	s.do(t, "POST", "/api/orders", map[string]any{"total": 10})
	s.do(t, "POST", "/api/reservations", map[string]any{"name": "Z"})

	for _, path := range []string{"/api/admin/orders", "/api/admin/reservations"} {
		rows := decode[[]map[string]any](t, s.do(t, "GET", path, nil))
		require.Len(t, rows, 1, path)
		assert.Equal(t, false, rows[0]["paid"], path)
		assert.Nil(t, rows[0]["payment_ref"], path)
		assert.Nil(t, rows[0]["payment_details"], path)
	}
}

func TestAdminOrdersWithMalformedPaymentDetails(t *testing.T) {
	s := newTestServer(t)

	orderID := decode[map[string]uint](t, s.do(t, "POST", "/api/orders", map[string]any{"total": 80}))["orderId"]
	require.NoError(t, s.store.DB().Create(&models.Payment{
		OrderID: &orderID, Amount: 80, Method: "cash", Status: "completed", Details: "paid at counter {",
	}).Error)

	w := s.do(t, "GET", "/api/admin/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows := decode[[]map[string]any](t, w)
	require.Len(t, rows, 1)
	assert.Equal(t, "paid at counter {", rows[0]["payment_details"])
	assert.Equal(t, true, rows[0]["paid"])
}

func TestOrdersShowNullNameForDeletedMenuItem(t *testing.T) {
	s := newTestServer(t)

	s.do(t, "POST", "/api/orders", map[string]any{"items": []map[string]any{{"id": 4, "qty": 1}}})
	require.NoError(t, s.store.DB().Delete(&models.MenuItem{}, 4).Error)

	w := s.do(t, "GET", "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows := decode[[]map[string]any](t, w)
	require.Len(t, rows, 1)
	items := rows[0]["items"].([]any)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].(map[string]any)["name"])
}

func TestUnknownAPIRouteReturnsJSON404(t *testing.T) {
	s := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{"GET", "/api/nope"},
		{"GET", "/api"},
		{"DELETE", "/api/menu"},
		{"POST", "/api/admin/orders"},
	} {
		w := s.do(t, tc.method, tc.path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, tc.path)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json", tc.path)
		assert.Equal(t, "API endpoint not found", decode[map[string]string](t, w)["error"], tc.path)
	}
}

func TestPanicReturnsJSON500(t *testing.T) {
	s := newTestServer(t)
	s.router.GET("/api/boom", func(c *gin.Context) { panic(errors.New("kaboom")) })

	w := s.do(t, "GET", "/api/boom", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "kaboom", decode[map[string]string](t, w)["error"])
}

func TestStoreErrorsReturnJSON500(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.store.DB().Migrator().DropTable(&models.Reservation{}))

	w := s.do(t, "GET", "/api/reservations", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "reservations")
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>La Bella</h1>"), 0o644))
	st := getTestStore(t)
	r := SetupRouter(st, notify.New(nil, nil, nil, zerolog.Nop()), dir)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/index.html", nil)
	r.ServeHTTP(w, req)
	// FileServer redirects /index.html to the directory itself.
	assert.Equal(t, http.StatusMovedPermanently, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "La Bella")
}
