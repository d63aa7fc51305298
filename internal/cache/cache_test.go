package cache

import (
	"context"
	"testing"
	"time"
)

func TestSummaryCacheSaveGet(t *testing.T) {
	c := &SummaryCache{Dir: t.TempDir()}
	key := Key("openai", "gpt-4o-mini", "key findings", "article body")
	data := []byte(`{"summary":"short","provider":"openai","model":"gpt-4o-mini"}`)
	if err := c.Save(context.Background(), key, data); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := c.Get(context.Background(), key)
	if err != nil || !ok {
		t.Fatalf("get: %v ok=%v", err, ok)
	}
	if string(got) != string(data) {
		t.Fatalf("got %s, want %s", got, data)
	}
}

func TestSummaryCacheMiss(t *testing.T) {
	c := &SummaryCache{Dir: t.TempDir()}
	if _, ok, err := c.Get(context.Background(), Key("openai", "m", "", "absent")); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
}

func TestSummaryCacheDisabledWithoutDir(t *testing.T) {
	var c *SummaryCache
	if _, ok, err := c.Get(context.Background(), "k"); ok || err != nil {
		t.Fatalf("nil cache should miss cleanly, got ok=%v err=%v", ok, err)
	}
	if err := c.Save(context.Background(), "k", []byte("v")); err != nil {
		t.Fatalf("nil cache save should be a no-op: %v", err)
	}
}

func TestSummaryCacheStaleEntryEvicted(t *testing.T) {
	c := &SummaryCache{Dir: t.TempDir(), MaxAge: time.Millisecond}
	key := Key("openai", "m", "", "content")
	if err := c.Save(context.Background(), key, []byte("v")); err != nil {
		t.Fatalf("save: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok, _ := c.Get(context.Background(), key); ok {
		t.Fatal("expected stale entry to be a miss")
	}
	if _, ok, _ := c.Get(context.Background(), key); ok {
		t.Fatal("expected stale entry removed on first access")
	}
}

func TestKeyVariesByContextLabel(t *testing.T) {
	a := Key("openai", "m", "key findings", "content")
	b := Key("openai", "m", "action items", "content")
	if a == b {
		t.Fatal("different context labels must produce different keys")
	}
}
