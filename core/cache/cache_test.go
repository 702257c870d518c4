package cache

import (
	"testing"
	"time"
)

func TestSet_Get(t *testing.T) {
	c := New()
	c.Set("k", "val", 0)
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("Get: want true")
	}
	if got != "val" {
		t.Errorf("Get = %v, want val", got)
	}
}

func TestGet_Missing(t *testing.T) {
	c := New()
	if _, ok := c.Get("nonexistent-key-xyz"); ok {
		t.Error("Get missing key: want false")
	}
}

func TestGet_Expired(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewWithClock(func() time.Time { return now })
	c.Set("loc", "L1", time.Minute)

	if v, ok := c.GetString("loc"); !ok || v != "L1" {
		t.Fatalf("GetString before expiry = %q, %v; want L1, true", v, ok)
	}
	now = now.Add(time.Minute)
	if _, ok := c.Get("loc"); ok {
		t.Error("Get after ttl: want false")
	}
}

func TestDelete(t *testing.T) {
	c := New()
	c.Set("k", "x", 0, "t")
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("Delete: key should be gone")
	}
	if keys := c.KeysByTag("t"); len(keys) != 0 {
		t.Errorf("KeysByTag after Delete = %v, want none", keys)
	}
}

func TestGetOrDefault(t *testing.T) {
	c := New()
	if got := c.GetOrDefault("k", "default"); got != "default" {
		t.Errorf("GetOrDefault missing = %v, want default", got)
	}
	c.Set("k", "stored", 0)
	if got := c.GetOrDefault("k", "default"); got != "stored" {
		t.Errorf("GetOrDefault found = %v, want stored", got)
	}
}

func TestDeleteByTag(t *testing.T) {
	c := New()
	c.Set("k1", "v1", 0, "square")
	c.Set("k2", "v2", 0, "square")
	c.Set("k3", "v3", 0)

	if keys := c.KeysByTag("square"); len(keys) != 2 {
		t.Errorf("KeysByTag = %d keys, want 2", len(keys))
	}
	c.DeleteByTag("square")
	if _, ok := c.Get("k1"); ok {
		t.Error("DeleteByTag: k1 should be gone")
	}
	if _, ok := c.Get("k2"); ok {
		t.Error("DeleteByTag: k2 should be gone")
	}
	if _, ok := c.Get("k3"); !ok {
		t.Error("DeleteByTag: untagged k3 should remain")
	}
}
