package kv_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/blog-store-api/internal/config"
	"github.com/blog-store-api/internal/kv"
	"github.com/rs/zerolog"
)

// exerciseBackend runs the Backend contract against b
func exerciseBackend(t *testing.T, b kv.Backend) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := b.Load(ctx, "missing"); err != nil || ok {
		t.Fatalf("Load(missing) = ok %v, err %v", ok, err)
	}

	if err := b.Save(ctx, "a:one", []byte(`1`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := b.Save(ctx, "a:one", []byte(`2`)); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}
	if err := b.Save(ctx, "b:two", []byte(`"x"`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	v, ok, err := b.Load(ctx, "a:one")
	if err != nil || !ok || string(v) != "2" {
		t.Errorf("Load(a:one) = %q, %v, %v", v, ok, err)
	}

	if has, _ := b.Has(ctx, "b:two"); !has {
		t.Error("Has(b:two) should be true")
	}

	if err := b.DeletePrefix(ctx, "a:"); err != nil {
		t.Fatalf("DeletePrefix failed: %v", err)
	}
	if has, _ := b.Has(ctx, "a:one"); has {
		t.Error("a:one should be gone after DeletePrefix")
	}
	if has, _ := b.Has(ctx, "b:two"); !has {
		t.Error("b:two should survive DeletePrefix(a:)")
	}

	if err := b.Delete(ctx, "b:two"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := b.Delete(ctx, "b:two"); err != nil {
		t.Errorf("Deleting a missing key should not fail: %v", err)
	}

	b.Save(ctx, "c", []byte(`null`))
	if err := b.DeletePrefix(ctx, ""); err != nil {
		t.Fatalf("DeletePrefix(all) failed: %v", err)
	}
	if has, _ := b.Has(ctx, "c"); has {
		t.Error("Empty prefix should remove every key")
	}
}

func TestMemoryBackend(t *testing.T) {
	b := kv.NewMemory()
	exerciseBackend(t, b)

	if err := kv.New(b, zerolog.Nop()).Ping(context.Background()); err != nil {
		t.Errorf("Memory backend should always be healthy: %v", err)
	}
}

func TestSQLiteBackend_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	cfg := &config.StorageConfig{SQLitePath: filepath.Join(t.TempDir(), "blog.db")}

	b, err := kv.Open(ctx, "sqlite", cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open sqlite failed: %v", err)
	}
	exerciseBackend(t, b)

	store := kv.New(b, zerolog.Nop())
	if err := store.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
	if !store.Set(ctx, kv.KeyTags, []string{"Go"}) {
		t.Fatal("Set should succeed")
	}
	b.(*kv.SQL).Close()

	reopened, err := kv.Open(ctx, "sqlite", cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Reopen sqlite failed: %v", err)
	}
	defer reopened.(*kv.SQL).Close()

	got := kv.GetOr(ctx, kv.New(reopened, zerolog.Nop()), kv.KeyTags, []string(nil))
	if len(got) != 1 || got[0] != "Go" {
		t.Errorf("Expected value to survive reopen, got %v", got)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := kv.Open(context.Background(), "redis", &config.StorageConfig{}, zerolog.Nop())
	if err == nil {
		t.Fatal("Expected error for unregistered driver")
	}
}

func TestDrivers(t *testing.T) {
	drivers := kv.Drivers()
	want := map[string]bool{"memory": true, "sqlite": true, "postgres": true}
	for _, d := range drivers {
		delete(want, d)
	}
	if len(want) != 0 {
		t.Errorf("Missing drivers %v in %v", want, drivers)
	}
}
