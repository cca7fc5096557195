package cache

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %v, %v, %v; want nil, false, nil", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func newFileCache(t *testing.T) *FileCache {
	t.Helper()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	return c.(*FileCache)
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newFileCache(t)
	key := NewDefaultKeyer().OrdersKey(OrdersKeyOpts{Candidates: 3, Limit: 6, Seed: 1})
	payload := []byte{1, 6, 1, 2, 3, 3, 2, 1}

	if _, hit, _ := c.Get(ctx, key); hit {
		t.Fatal("empty cache should miss")
	}
	if err := c.Set(ctx, key, payload, 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit {
		t.Fatalf("Get = hit %v err %v, want hit", hit, err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("Get data = %v, want %v", data, payload)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
}

func TestFileCacheEmptyValue(t *testing.T) {
	ctx := context.Background()
	c := newFileCache(t)
	if err := c.Set(ctx, "k", nil, 0); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || len(data) != 0 {
		t.Errorf("Get = %v, %v, %v; want empty hit", data, hit, err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := newFileCache(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatal(err)
	}
	now = now.Add(59 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Error("entry should live for its ttl")
	}
	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}
}

func TestFileCacheTruncatedEntry(t *testing.T) {
	ctx := context.Background()
	c := newFileCache(t)
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.WriteFile(path, []byte{0, 0, 0}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("truncated entry: hit %v err %v, want miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("truncated entry should be removed")
	}
}

func TestFileCachePathSharding(t *testing.T) {
	c := newFileCache(t)
	p1, p2 := c.path("a"), c.path("b")
	if p1 == p2 {
		t.Error("different keys share a path")
	}
	if !strings.HasSuffix(p1, ".bin") {
		t.Errorf("path %q lacks the .bin suffix", p1)
	}
	if c.path("a") != p1 {
		t.Error("path is not deterministic")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	tests := []struct {
		opts OrdersKeyOpts
		want string
	}{
		{OrdersKeyOpts{Candidates: 11, Limit: 100000, Seed: 1}, "orders:v1:c11:l100000:s1"},
		{OrdersKeyOpts{Candidates: 3, Limit: 6, Seed: 42}, "orders:v1:c3:l6:s42"},
	}
	for _, tt := range tests {
		if got := k.OrdersKey(tt.opts); got != tt.want {
			t.Errorf("OrdersKey(%+v) = %q, want %q", tt.opts, got, tt.want)
		}
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("wrapped error should unwrap to ErrNetwork")
	}
	if IsRetryable(ErrNetwork) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestBackoffDo(t *testing.T) {
	ctx := context.Background()
	b := Backoff{Attempts: 3, Delay: time.Millisecond}
	errPermanent := errors.New("permanent")

	tests := []struct {
		name      string
		failures  int // leading retryable failures
		permanent bool
		wantCalls int
		wantErr   error
	}{
		{name: "success", wantCalls: 1},
		{name: "permanent", permanent: true, wantCalls: 1, wantErr: errPermanent},
		{name: "retry once", failures: 1, wantCalls: 2},
		{name: "exhausted", failures: 5, wantCalls: 3, wantErr: ErrNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := b.Do(ctx, func() error {
				calls++
				if tt.permanent {
					return errPermanent
				}
				if calls <= tt.failures {
					return Retryable(ErrNetwork)
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if err != tt.wantErr {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackoffDoContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := DefaultBackoff.Do(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Do error = %v, want context.Canceled", err)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), RedisConfig{URL: "http://not-redis"})
	if err == nil {
		t.Fatal("NewRedisCache should reject non-redis URLs")
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, RedisConfig{URL: "redis://127.0.0.1:1/0"})
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("NewRedisCache error = %v, want ErrNetwork", err)
	}
}
