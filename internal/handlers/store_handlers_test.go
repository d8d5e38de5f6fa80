package handlers_test

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithdrawStore(t *testing.T) {
	router, mock := newDBRouter(t, &stubGateway{})

	mock.ExpectExec(regexp.QuoteMeta("UPDATE stores SET withdrawn_at = ?, updated_at = ? WHERE id = ? AND withdrawn_at IS NULL")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/stores", nil)
	req.Header.Set("Authorization", bearerToken(t, 1))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawStoreTwice(t *testing.T) {
	router, mock := newDBRouter(t, &stubGateway{})

	// Already withdrawn: the guarded update touches nothing.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE stores SET withdrawn_at = ?, updated_at = ? WHERE id = ? AND withdrawn_at IS NULL")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/stores", nil)
	req.Header.Set("Authorization", bearerToken(t, 1))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginExcludesWithdrawnStore(t *testing.T) {
	router, mock := newDBRouter(t, &stubGateway{})

	// The lookup filters withdrawn rows, so a withdrawn account resolves
	// to no rows and logs in as if it never existed.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, password_hash FROM stores WHERE email = ? AND withdrawn_at IS NULL")).
		WithArgs("gone@example.com").
		WillReturnError(sql.ErrNoRows)

	body := `{"email":"gone@example.com","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
