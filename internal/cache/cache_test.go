package cache

import (
	"strconv"
	"testing"
	"time"
)

// tick returns a clock that advances one second per call.
func tick() func() time.Time {
	t := time.Unix(1_700_000_000, 0)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestGetHitAndStale(t *testing.T) {
	c := New[int](0)
	mod := time.Unix(100, 0)
	c.Set("/a.go", 42, 10, mod)

	if got, ok := c.Get("/a.go", 10, mod); !ok || got != 42 {
		t.Fatalf("Get() = %d, %v; want 42, true", got, ok)
	}
	if _, ok := c.Get("/a.go", 11, mod); ok {
		t.Error("Get() hit with different size")
	}
	if _, ok := c.Get("/a.go", 10, mod.Add(time.Millisecond)); ok {
		t.Error("Get() hit with different modtime")
	}
	if _, ok := c.Get("/missing", 10, mod); ok {
		t.Error("Get() hit for missing key")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want stale entry kept until replaced", c.Len())
	}
}

func TestSetReplaces(t *testing.T) {
	c := New[string](0)
	c.Set("k", "old", 1, time.Unix(1, 0))
	c.Set("k", "new", 2, time.Unix(2, 0))

	e, ok := c.Peek("k")
	if !ok {
		t.Fatal("Peek() missing entry")
	}
	if e.Data != "new" || e.Size != 2 || !e.ModTime.Equal(time.Unix(2, 0)) {
		t.Errorf("entry = %+v, want replaced data and metadata", e)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestDeletePrefix(t *testing.T) {
	c := New[int](0)
	mod := time.Unix(1, 0)
	for _, k := range []string{"/r/src", "/r/src/a.go", "/r/src/sub/b.go", "/r/srcx/c.go", "/r/d.go"} {
		c.Set(k, 1, 1, mod)
	}

	if n := c.DeletePrefix("/r/src/", "/"); n != 3 {
		t.Errorf("DeletePrefix() removed %d, want 3", n)
	}
	for _, k := range []string{"/r/srcx/c.go", "/r/d.go"} {
		if _, ok := c.Peek(k); !ok {
			t.Errorf("%s should survive", k)
		}
	}
}

func TestDeleteAndClear(t *testing.T) {
	c := New[int](0)
	mod := time.Unix(1, 0)
	c.Set("a", 1, 1, mod)
	c.Set("b", 2, 1, mod)

	c.Delete("a")
	if _, ok := c.Peek("a"); ok {
		t.Error("a should be deleted")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int](2)
	c.now = tick()
	mod := time.Unix(1, 0)

	c.Set("a", 1, 1, mod)
	c.Set("b", 2, 1, mod)
	c.Get("a", 1, mod) // a is now more recent than b
	c.Set("c", 3, 1, mod)

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if _, ok := c.Peek("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Peek("a"); !ok {
		t.Error("a should survive")
	}
}

func TestUnboundedNeverEvicts(t *testing.T) {
	c := New[int](0)
	mod := time.Unix(1, 0)
	for i := range 1000 {
		c.Set("/f"+strconv.Itoa(i), i, 1, mod)
	}
	if c.Len() != 1000 {
		t.Errorf("Len() = %d, want 1000", c.Len())
	}
}
