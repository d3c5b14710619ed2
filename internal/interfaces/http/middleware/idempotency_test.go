package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/pos/backend/internal/infrastructure/cache"
)

func newIdempotentRouter(t *testing.T) (*gin.Engine, *cache.InMemoryIdempotencyStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { store.Close() })

	r := gin.New()
	r.POST("/payments", Idempotency(store, time.Minute, nil), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r, store
}

func TestIdempotency_FirstRequestPasses(t *testing.T) {
	r, _ := newIdempotentRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestIdempotency_ReplayRejected(t *testing.T) {
	r, _ := newIdempotentRouter(t)

	for i, expected := range []int{http.StatusCreated, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/payments", nil)
		req.Header.Set(IdempotencyKeyHeader, "key-2")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, expected, w.Code, "request %d", i+1)
	}
}

func TestIdempotency_NoHeaderPassesThrough(t *testing.T) {
	r, _ := newIdempotentRouter(t)

	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/payments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	}
}

func TestIdempotency_DistinctKeysIndependent(t *testing.T) {
	r, _ := newIdempotentRouter(t)

	for _, key := range []string{"a", "b"} {
		req := httptest.NewRequest(http.MethodPost, "/payments", nil)
		req.Header.Set(IdempotencyKeyHeader, key)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	}
}
