package cache

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
)

func TestGetOrLoad(t *testing.T) {
	var logs bytes.Buffer
	c := New[string, int]()
	c.SetLogger(log.New(&logs, "", 0))

	calls := 0
	load := func() (int, error) {
		calls++
		return 42, nil
	}

	v, hit, err := c.GetOrLoad("users|", load)
	if err != nil || hit || v != 42 {
		t.Fatalf("first call: v=%d hit=%v err=%v", v, hit, err)
	}
	v, hit, err = c.GetOrLoad("users|", load)
	if err != nil || !hit || v != 42 {
		t.Fatalf("second call: v=%d hit=%v err=%v", v, hit, err)
	}
	if calls != 1 {
		t.Errorf("loader called %d times, expected 1", calls)
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Entries != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if !strings.Contains(logs.String(), "[cache miss]") || !strings.Contains(logs.String(), "[cache hit]") {
		t.Errorf("expected hit and miss diagnostics, got %q", logs.String())
	}
}

func TestFailedLoadIsNotCached(t *testing.T) {
	c := New[string, []string]()
	c.SetLogger(nil)
	boom := errors.New("boom")

	if _, _, err := c.GetOrLoad("k", func() ([]string, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("failed load was cached")
	}

	v, hit, err := c.GetOrLoad("k", func() ([]string, error) { return []string{"ok"}, nil })
	if err != nil || hit || len(v) != 1 {
		t.Errorf("retry after failure: v=%v hit=%v err=%v", v, hit, err)
	}
}

func TestDistinctKeys(t *testing.T) {
	type key struct{ table, filter string }
	c := New[key, string]()
	c.SetLogger(nil)

	c.GetOrLoad(key{"users", ""}, func() (string, error) { return "all", nil })
	v, hit, _ := c.GetOrLoad(key{"users", "age=28"}, func() (string, error) { return "filtered", nil })
	if hit || v != "filtered" {
		t.Errorf("keys with different filters must not collide: v=%s hit=%v", v, hit)
	}
}
