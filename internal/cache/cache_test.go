package cache

import (
	"errors"
	"slices"
	"strconv"
	"sync"
	"testing"
)

func TestGetSet(t *testing.T) {
	c := New[string, int](0)
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected miss on empty cache")
	}
	c.Set("a", 1)
	c.Set("a", 2)
	if v, ok := c.Get("a"); !ok || v != 2 {
		t.Errorf("expected (2, true), got (%d, %v)", v, ok)
	}
	if c.Len() != 1 {
		t.Errorf("expected len 1, got %d", c.Len())
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, string](2)
	var evicted []int
	c.OnEvict(func(k int, _ string) { evicted = append(evicted, k) })

	c.Set(1, "one")
	c.Set(2, "two")
	c.Get(1)
	c.Set(3, "three")

	if !slices.Equal(evicted, []int{2}) {
		t.Fatalf("expected key 2 evicted, got %v", evicted)
	}
	if _, ok := c.Get(2); ok {
		t.Error("evicted key still present")
	}
	if s := c.Stats(); s.Evictions != 1 || s.Len != 2 {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestGetOrCreate(t *testing.T) {
	c := New[int, string](0)
	calls := 0
	create := func() (string, error) {
		calls++
		return "built", nil
	}
	for i := 0; i < 3; i++ {
		v, err := c.GetOrCreate(7, create)
		if err != nil || v != "built" {
			t.Fatalf("expected built, got (%q, %v)", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("expected one create, got %d", calls)
	}
	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 {
		t.Errorf("expected 2 hits 1 miss, got %+v", s)
	}
}

func TestGetOrCreateErrorIsNotCached(t *testing.T) {
	c := New[int, string](0)
	boom := errors.New("boom")
	if _, err := c.GetOrCreate(1, func() (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if c.Len() != 0 {
		t.Error("failed create was cached")
	}
	if v, err := c.GetOrCreate(1, func() (string, error) { return "ok", nil }); err != nil || v != "ok" {
		t.Errorf("expected retry to succeed, got (%q, %v)", v, err)
	}
}

func TestDeleteAndClearNotify(t *testing.T) {
	c := New[int, int](0)
	released := map[int]bool{}
	c.OnEvict(func(k, _ int) { released[k] = true })
	for i := 0; i < 4; i++ {
		c.Set(i, i)
	}
	if !c.Delete(1) || c.Delete(1) {
		t.Error("expected Delete to succeed once")
	}
	c.Clear()
	if len(released) != 4 || c.Len() != 0 {
		t.Errorf("expected all 4 released and cache empty, got %v len %d", released, c.Len())
	}
	c.Set(9, 9)
	if v, ok := c.Get(9); !ok || v != 9 {
		t.Error("cache unusable after Clear")
	}
}

func TestConcurrentGetOrCreate(t *testing.T) {
	c := New[string, int](16)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := strconv.Itoa(i % 32)
				if _, err := c.GetOrCreate(key, func() (int, error) { return i, nil }); err != nil {
					t.Error(err)
				}
			}
		}()
	}
	wg.Wait()
	if c.Len() > 16 {
		t.Errorf("expected at most 16 entries, got %d", c.Len())
	}
}
