package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"

	"github.com/haingladys/JSDC-Accounting/internal/middleware"
)

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)

	setup := func(t *testing.T) (*gin.Engine, redismock.ClientMock, *bool) {
		t.Helper()
		rdb, mock := redismock.NewClientMock()

		handled := false
		r := gin.New()
		r.POST("/api/v1/payrolls", middleware.Idempotency(rdb), func(c *gin.Context) {
			handled = true
			_, hasCache := c.Get("idempotency_cache_key")
			_, hasLock := c.Get("idempotency_lock_key")
			if c.GetHeader("Idempotency-Key") != "" {
				assert.True(t, hasCache)
				assert.True(t, hasLock)
			} else {
				assert.False(t, hasCache)
				assert.False(t, hasLock)
			}
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		})
		return r, mock, &handled
	}

	t.Run("no key passes straight through", func(t *testing.T) {
		r, mock, handled := setup(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payrolls", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, *handled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cache hit replays without calling the handler", func(t *testing.T) {
		r, mock, handled := setup(t)
		mock.ExpectGet("idemp:/api/v1/payrolls:abc").SetVal(`{"id":"p1"}`)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payrolls", nil)
		req.Header.Set("Idempotency-Key", "abc")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, *handled)
		assert.JSONEq(t, `{"ok":true,"data":{"id":"p1"}}`, w.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("in-flight key rejected", func(t *testing.T) {
		r, mock, handled := setup(t)
		mock.ExpectGet("idemp:/api/v1/payrolls:abc").RedisNil()
		mock.ExpectSetNX("idemp:/api/v1/payrolls:abc:lock", "locked", 30*time.Second).SetVal(false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payrolls", nil)
		req.Header.Set("Idempotency-Key", "abc")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.False(t, *handled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fresh key takes the lock and runs the handler", func(t *testing.T) {
		r, mock, handled := setup(t)
		mock.ExpectGet("idemp:/api/v1/payrolls:abc").RedisNil()
		mock.ExpectSetNX("idemp:/api/v1/payrolls:abc:lock", "locked", 30*time.Second).SetVal(true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payrolls", nil)
		req.Header.Set("Idempotency-Key", "abc")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, *handled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
