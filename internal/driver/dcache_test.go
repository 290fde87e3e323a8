package driver

import (
	"os"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"jlower/internal/arrays"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCache("jlower", t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	key := CacheKey([]byte("unit"), arrays.DefaultRuntime)
	var miss DiskPayload
	if ok, err := cache.Get(key, &miss); ok || err != nil {
		t.Fatalf("empty cache Get = %v, %v", ok, err)
	}

	in := &DiskPayload{Name: "A", Unit: []byte{1, 2, 3}, Signatures: []SignatureInfo{{Class: "IOSIntArray"}}}
	if err := cache.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var out DiskPayload
	ok, err := cache.Get(key, &out)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if out.Name != "A" || len(out.Unit) != 3 || out.Signatures[0].Class != "IOSIntArray" {
		t.Fatalf("payload = %+v", out)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if ok, _ := cache.Get(key, &out); ok {
		t.Fatalf("entry survived DropAll")
	}
}

func TestDiskCacheSchemaMismatchIsMiss(t *testing.T) {
	cache, err := OpenDiskCache("jlower", t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	key := CacheKey([]byte("old"), arrays.DefaultRuntime)
	if err := cache.Put(key, &DiskPayload{Name: "old"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	stale, err := msgpack.Marshal(&DiskPayload{Schema: diskCacheSchemaVersion - 1, Name: "old"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(cache.pathFor(key), stale, 0o600); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	var out DiskPayload
	if ok, err := cache.Get(key, &out); ok || err != nil {
		t.Fatalf("stale schema Get = %v, %v", ok, err)
	}
}

func TestCacheKeyDependsOnPrefix(t *testing.T) {
	a := CacheKey([]byte("x"), arrays.Runtime{Prefix: "IOS"})
	b := CacheKey([]byte("x"), arrays.Runtime{Prefix: "GS"})
	if a == b {
		t.Fatalf("prefix must be part of the key")
	}
	if len(a.String()) != 64 {
		t.Fatalf("hex digest length = %d", len(a.String()))
	}
}
