package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestMemory_GetMiss(t *testing.T) {
	c := NewMemory[string](Policy{TTL: time.Minute})

	if v, ok := c.Get("missing"); ok || v != "" {
		t.Errorf("Get(missing) = (%q, %v), want zero value and false", v, ok)
	}
}

func TestMemory_SetGet(t *testing.T) {
	c := NewMemory[string](Policy{TTL: time.Minute})
	c.Set("key", "value")

	v, ok := c.Get("key")
	if !ok {
		t.Fatal("Get() miss after Set()")
	}
	if v != "value" {
		t.Errorf("Get() = %q, want %q", v, "value")
	}
}

func TestMemory_Overwrite(t *testing.T) {
	c := NewMemory[int](Policy{TTL: time.Minute})
	c.Set("key", 1)
	c.Set("key", 2)

	if v, _ := c.Get("key"); v != 2 {
		t.Errorf("Get() = %d, want 2", v)
	}
}

func TestMemory_Expiry(t *testing.T) {
	c := NewMemory[string](Policy{TTL: 20 * time.Millisecond})
	c.Set("key", "value")

	if _, ok := c.Get("key"); !ok {
		t.Fatal("Get() miss before expiry")
	}

	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("key"); ok {
		t.Error("Get() hit after expiry")
	}
}

func TestMemory_Delete(t *testing.T) {
	c := NewMemory[string](Policy{TTL: time.Minute})
	c.Set("key", "value")
	c.Delete("key")

	if _, ok := c.Get("key"); ok {
		t.Error("Get() hit after Delete()")
	}

	// Deleting a missing key is a no-op.
	c.Delete("missing")
}

func TestMemory_DisabledPolicy(t *testing.T) {
	c := NewMemory[string](Policy{TTL: 0})
	c.Set("key", "value")

	if _, ok := c.Get("key"); ok {
		t.Error("Get() hit with caching disabled")
	}
}

func TestMemory_GetOrCompute_CachesResult(t *testing.T) {
	c := NewMemory[string](Policy{TTL: time.Minute})
	calls := 0

	compute := func(context.Context) (string, error) {
		calls++
		return "computed", nil
	}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		v, err := c.GetOrCompute(ctx, "key", compute)
		if err != nil {
			t.Fatalf("GetOrCompute() error = %v", err)
		}
		if v != "computed" {
			t.Errorf("GetOrCompute() = %q, want %q", v, "computed")
		}
	}

	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}
}

func TestMemory_GetOrCompute_RecomputesAfterExpiry(t *testing.T) {
	c := NewMemory[int](Policy{TTL: 20 * time.Millisecond})
	calls := 0

	compute := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	ctx := context.Background()
	if v, _ := c.GetOrCompute(ctx, "key", compute); v != 1 {
		t.Errorf("first GetOrCompute() = %d, want 1", v)
	}

	time.Sleep(30 * time.Millisecond)

	if v, _ := c.GetOrCompute(ctx, "key", compute); v != 2 {
		t.Errorf("GetOrCompute() after expiry = %d, want 2", v)
	}
}

func TestMemory_GetOrCompute_ErrorNotCached(t *testing.T) {
	c := NewMemory[string](Policy{TTL: time.Minute})
	wantErr := errors.New("compute failed")
	calls := 0

	failing := func(context.Context) (string, error) {
		calls++
		return "", wantErr
	}

	ctx := context.Background()
	if _, err := c.GetOrCompute(ctx, "key", failing); !errors.Is(err, wantErr) {
		t.Fatalf("GetOrCompute() error = %v, want %v", err, wantErr)
	}
	if _, ok := c.Get("key"); ok {
		t.Error("failed computation was cached")
	}

	// A later successful computation fills the entry.
	v, err := c.GetOrCompute(ctx, "key", func(context.Context) (string, error) {
		return "recovered", nil
	})
	if err != nil {
		t.Fatalf("GetOrCompute() error = %v", err)
	}
	if v != "recovered" {
		t.Errorf("GetOrCompute() = %q, want %q", v, "recovered")
	}
	if calls != 1 {
		t.Errorf("failing compute called %d times, want 1", calls)
	}
}

func TestMemory_GetOrCompute_DisabledBypassesCache(t *testing.T) {
	c := NewMemory[int](Policy{TTL: 0})
	calls := 0

	compute := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := c.GetOrCompute(ctx, "key", compute); err != nil {
			t.Fatalf("GetOrCompute() error = %v", err)
		}
	}

	if calls != 3 {
		t.Errorf("compute called %d times, want 3", calls)
	}
}

func TestMemory_GetOrCompute_Deduplicates(t *testing.T) {
	c := NewMemory[string](Policy{TTL: time.Minute})

	var calls atomic.Int64
	started := make(chan struct{})
	release := make(chan struct{})

	compute := func(context.Context) (string, error) {
		calls.Add(1)
		close(started)
		<-release
		return "shared", nil
	}

	ctx := context.Background()
	const callers = 8

	var wg sync.WaitGroup
	results := make([]string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.GetOrCompute(ctx, "key", compute)
			if err != nil {
				t.Errorf("GetOrCompute() error = %v", err)
			}
			results[i] = v
		}(i)
	}

	<-started
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("compute called %d times, want 1", got)
	}
	for i, v := range results {
		if v != "shared" {
			t.Errorf("caller %d got %q, want %q", i, v, "shared")
		}
	}
}

func TestMemory_IndependentKeys(t *testing.T) {
	c := NewMemory[string](Policy{TTL: time.Minute})
	c.Set("a", "alpha")
	c.Set("b", "bravo")

	c.Delete("a")

	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) hit after Delete(a)")
	}
	if v, ok := c.Get("b"); !ok || v != "bravo" {
		t.Errorf("Get(b) = (%q, %v), want (bravo, true)", v, ok)
	}
}

func TestMemory_StructValues(t *testing.T) {
	type report struct {
		Status string
		Count  int
	}

	c := NewMemory[report](Policy{TTL: time.Minute})
	c.Set("key", report{Status: "ready", Count: 3})

	v, ok := c.Get("key")
	if !ok {
		t.Fatal("Get() miss after Set()")
	}
	if v.Status != "ready" || v.Count != 3 {
		t.Errorf("Get() = %+v, want {ready 3}", v)
	}
}
