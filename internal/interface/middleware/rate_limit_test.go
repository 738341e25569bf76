package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newLimitedRouter(rdb *redis.Client, max int, window time.Duration, allow AllowFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.GET("/ping", RateLimit(rdb, max, window, KeyByIP(), allow), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return e
}

func get(e *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestRateLimitAllowsUnderLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	e := newLimitedRouter(rdb, 3, time.Minute, nil)
	for i := 0; i < 3; i++ {
		if w := get(e); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, w.Code)
		}
	}
}

func TestRateLimitBlocksOverLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	e := newLimitedRouter(rdb, 2, time.Minute, nil)
	get(e)
	get(e)

	w := get(e)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-RateLimit-Limit") != "2" {
		t.Errorf("X-RateLimit-Limit = %q", w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimitResetsAfterWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	e := newLimitedRouter(rdb, 1, time.Minute, nil)
	get(e)
	if w := get(e); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected block, got %d", w.Code)
	}

	mr.FastForward(2 * time.Minute)
	if w := get(e); w.Code != http.StatusOK {
		t.Fatalf("after window: status = %d", w.Code)
	}
}

func TestRateLimitFailsOpenWithoutRedis(t *testing.T) {
	e := newLimitedRouter(nil, 1, time.Minute, nil)
	for i := 0; i < 5; i++ {
		if w := get(e); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, w.Code)
		}
	}
}

func TestRateLimitFailsOpenOnRedisError(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()
	mr.Close()

	e := newLimitedRouter(rdb, 1, time.Minute, nil)
	for i := 0; i < 3; i++ {
		if w := get(e); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, w.Code)
		}
	}
}

func TestRateLimitAllowlistBypass(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	allowAll := func(*gin.Context) bool { return true }
	e := newLimitedRouter(rdb, 1, time.Minute, allowAll)
	for i := 0; i < 5; i++ {
		if w := get(e); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, w.Code)
		}
	}
}

func TestKeyByUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	fn := KeyByUserID()
	if key := fn(c); key == "" || key == "rl:user:" {
		t.Errorf("anonymous key = %q", key)
	}

	c.Set(CtxUserIDKey, "u-1")
	if key := fn(c); key != "rl:user:u-1" {
		t.Errorf("key = %q", key)
	}
}
