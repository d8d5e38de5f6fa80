package handlers_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/Hounds1/Mosk-Server/internal/auth"
	"github.com/Hounds1/Mosk-Server/internal/handlers"
	"github.com/Hounds1/Mosk-Server/internal/models"
	"github.com/Hounds1/Mosk-Server/internal/payment"
	"github.com/Hounds1/Mosk-Server/internal/routes"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDBRouter builds the router on a mocked connection pool for handlers
// that run SQL directly.
func newDBRouter(t *testing.T, gw payment.Client) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	auth.Init("handler-test-secret")

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	app := &handlers.Handlers{DB: db, Payments: gw}
	return routes.SetupRouter(app), mock
}

const payOrderBody = `{"orderId":7,"paymentKey":"pay_123","amount":25000}`

func expectOrderLookup(mock sqlmock.Sqlmock, status string, totalPrice int64) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, total_price FROM orders WHERE id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "total_price"}).AddRow(status, totalPrice))
}

func TestPayOrderSettlesOrder(t *testing.T) {
	gw := &stubGateway{}
	router, mock := newDBRouter(t, gw)

	expectOrderLookup(mock, models.OrderInit, 25000)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status = ? WHERE id = ? AND status = ?")).
		WithArgs(models.OrderSuccess, int64(7), models.OrderInit).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/orders/payment", strings.NewReader(payOrderBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, gw.calls)

	var envelope struct {
		Data struct {
			OrderID int64  `json:"orderId"`
			Status  string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, int64(7), envelope.Data.OrderID)
	assert.Equal(t, models.OrderSuccess, envelope.Data.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayOrderDeclineCancelsOrder(t *testing.T) {
	gw := &stubGateway{err: &payment.DeclinedError{Code: "REJECT_CARD_COMPANY", Message: "rejected"}}
	router, mock := newDBRouter(t, gw)

	expectOrderLookup(mock, models.OrderInit, 25000)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status = ? WHERE id = ? AND status = ?")).
		WithArgs(models.OrderCanceled, int64(7), models.OrderInit).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/orders/payment", strings.NewReader(payOrderBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope handlers.ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Contains(t, envelope.Message, "payment gateway is unstable")
	assert.NotContains(t, envelope.Message, "REJECT_CARD_COMPANY")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayOrderAmountMismatch(t *testing.T) {
	gw := &stubGateway{}
	router, mock := newDBRouter(t, gw)

	expectOrderLookup(mock, models.OrderInit, 30000)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/orders/payment", strings.NewReader(payOrderBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, gw.calls, "gateway must not be charged for a mismatched amount")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayOrderAlreadySettledRace(t *testing.T) {
	gw := &stubGateway{}
	router, mock := newDBRouter(t, gw)

	// A concurrent payment flips the row between the lookup and the
	// conditional update; zero rows affected means the race was lost.
	expectOrderLookup(mock, models.OrderInit, 25000)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status = ? WHERE id = ? AND status = ?")).
		WithArgs(models.OrderSuccess, int64(7), models.OrderInit).
		WillReturnResult(sqlmock.NewResult(0, 0))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/orders/payment", strings.NewReader(payOrderBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayOrderNotPayable(t *testing.T) {
	gw := &stubGateway{}
	router, mock := newDBRouter(t, gw)

	expectOrderLookup(mock, models.OrderSuccess, 25000)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/orders/payment", strings.NewReader(payOrderBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 0, gw.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayOrderNotFound(t *testing.T) {
	router, mock := newDBRouter(t, &stubGateway{})

	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, total_price FROM orders WHERE id = ?")).
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/orders/payment", strings.NewReader(payOrderBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderComputesTotalServerSide(t *testing.T) {
	router, mock := newDBRouter(t, &stubGateway{})

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT price, selling FROM products WHERE id = ? AND store_id = ?")).
		WithArgs(int64(3), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"price", "selling"}).AddRow(10000, models.Selling))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT o.price FROM options o")).
		WithArgs(int64(9), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow(500))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO orders (store_id, status, total_price, ordered_at)")).
		WithArgs(int64(1), models.OrderInit, int64(21000), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_products (order_id, product_id, quantity, unit_price)")).
		WithArgs(int64(11), int64(3), 2, int64(10500)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// The client never sends prices; two units of a 10000 product with a
	// 500 option surcharge come out at 21000.
	body := `{"storeId":1,"items":[{"productId":3,"optionIds":[9],"quantity":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, int64(11), envelope.Data.ID)
	assert.Equal(t, int64(21000), envelope.Data.TotalPrice)
	assert.Equal(t, models.OrderInit, envelope.Data.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderRejectsStoppedProduct(t *testing.T) {
	router, mock := newDBRouter(t, &stubGateway{})

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT price, selling FROM products WHERE id = ? AND store_id = ?")).
		WithArgs(int64(3), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"price", "selling"}).AddRow(10000, models.StopSelling))
	mock.ExpectRollback()

	body := `{"storeId":1,"items":[{"productId":3,"quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
