package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kmuteti/restopos-api/internal/domain/entity"
)

type memoryIdempotencyRepo struct {
	mu   sync.Mutex
	keys map[string]*entity.IdempotencyKey
}

func newMemoryIdempotencyRepo() *memoryIdempotencyRepo {
	return &memoryIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (r *memoryIdempotencyRepo) GetByKey(_ context.Context, key string, staffID uuid.UUID) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ikey, ok := r.keys[key+"/"+staffID.String()]
	if !ok {
		return nil, nil
	}
	return ikey, nil
}

func (r *memoryIdempotencyRepo) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[ikey.Key+"/"+ikey.StaffID.String()] = ikey
	return nil
}

func (r *memoryIdempotencyRepo) DeleteExpired(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, ikey := range r.keys {
		if ikey.IsExpired() {
			delete(r.keys, k)
		}
	}
	return nil
}

func newIdempotencyTestRouter(repo *memoryIdempotencyRepo, staffID uuid.UUID) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	calls := 0
	router.POST("/sales",
		func(c *gin.Context) { c.Set("staff_id", staffID) },
		IdempotencyRequired(IdempotencyConfig{Repo: repo}),
		func(c *gin.Context) {
			calls++
			c.JSON(http.StatusCreated, gin.H{"receipt_number": "RCP-00000001"})
		},
	)
	return router, &calls
}

func TestIdempotencyRequiredRejectsMissingKey(t *testing.T) {
	router, calls := newIdempotencyTestRouter(newMemoryIdempotencyRepo(), uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/sales", strings.NewReader("{}"))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if *calls != 0 {
		t.Error("handler must not run without an idempotency key")
	}
}

func TestIdempotencyReplaysCachedResponse(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	router, calls := newIdempotencyTestRouter(repo, uuid.New())

	send := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/sales", strings.NewReader("{}"))
		req.Header.Set(IdempotencyKeyHeader, "order-abc-123")
		router.ServeHTTP(w, req)
		return w
	}

	first := send()
	if first.Code != http.StatusCreated {
		t.Fatalf("first status = %d, want 201", first.Code)
	}
	if first.Header().Get("X-Idempotency-Replayed") != "" {
		t.Error("first response must not be marked replayed")
	}

	second := send()
	if second.Code != http.StatusCreated {
		t.Errorf("replayed status = %d, want 201", second.Code)
	}
	if second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("second response should be marked replayed")
	}
	if !strings.Contains(second.Body.String(), "RCP-00000001") {
		t.Errorf("replayed body = %q, want cached receipt", second.Body.String())
	}
	if *calls != 1 {
		t.Errorf("handler ran %d times, want 1", *calls)
	}
}

func TestIdempotencyKeysAreScopedPerStaff(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	routerA, callsA := newIdempotencyTestRouter(repo, uuid.New())
	routerB, callsB := newIdempotencyTestRouter(repo, uuid.New())

	for _, router := range []*gin.Engine{routerA, routerB} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/sales", strings.NewReader("{}"))
		req.Header.Set(IdempotencyKeyHeader, "shared-key")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", w.Code)
		}
	}
	if *callsA != 1 || *callsB != 1 {
		t.Errorf("calls = (%d, %d), want both handlers to run once", *callsA, *callsB)
	}
}

func TestIdempotencyExpiredKeyReprocesses(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	staffID := uuid.New()
	router, calls := newIdempotencyTestRouter(repo, staffID)

	_ = repo.Create(context.Background(), &entity.IdempotencyKey{
		Key:          "stale-key",
		StaffID:      staffID,
		ResponseCode: http.StatusCreated,
		ResponseBody: `{"receipt_number":"RCP-STALE"}`,
		ExpiresAt:    time.Now().Add(-time.Minute),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/sales", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "stale-key")
	router.ServeHTTP(w, req)

	if *calls != 1 {
		t.Error("an expired key must not replay; the handler should run")
	}
	if strings.Contains(w.Body.String(), "RCP-STALE") {
		t.Error("stale cached body must not be served")
	}
}
