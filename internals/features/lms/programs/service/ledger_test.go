package service

import (
	"context"
	"reflect"
	"testing"

	storage "lmsku_backend/internals/helpers/storage"
)

func TestCompensationGuard_ReleaseDeletesReverseOrder(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	_ = store.Write(ctx, "materials/a.pdf", []byte("a"))
	_ = store.Write(ctx, "questions/b.png", []byte("b"))

	guard := NewCompensationGuard(store)
	guard.Record("materials/a.pdf")
	guard.Record("questions/b.png")

	if failed := guard.Release(ctx); len(failed) != 0 {
		t.Fatalf("failed = %v, want kosong", failed)
	}
	if store.Len() != 0 {
		t.Fatalf("store masih berisi %d file", store.Len())
	}
	// yang terakhir ditulis dihapus duluan
	want := []string{"questions/b.png", "materials/a.pdf"}
	if got := store.DeletedPaths(); !reflect.DeepEqual(got, want) {
		t.Fatalf("urutan hapus = %v, want %v", got, want)
	}
}

func TestCompensationGuard_ReleaseIdempotent(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	_ = store.Write(ctx, "covers/c.jpg", []byte("c"))

	guard := NewCompensationGuard(store)
	guard.Record("covers/c.jpg")

	if failed := guard.Release(ctx); len(failed) != 0 {
		t.Fatalf("release pertama: %v", failed)
	}
	deleted := len(store.DeletedPaths())

	// panggilan kedua (mis. dari defer backstop) tidak boleh menghapus ulang
	if failed := guard.Release(ctx); len(failed) != 0 {
		t.Fatalf("release kedua: %v", failed)
	}
	if len(store.DeletedPaths()) != deleted {
		t.Fatalf("release kedua menyentuh store lagi")
	}
}

func TestCompensationGuard_SkipsAlreadyMissing(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	guard := NewCompensationGuard(store)
	guard.Record("materials/hilang.pdf") // tidak pernah ada di store

	if failed := guard.Release(ctx); len(failed) != 0 {
		t.Fatalf("file yang sudah tidak ada bukan kegagalan: %v", failed)
	}
}

func TestCompensationGuard_DisarmKeepsFiles(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	_ = store.Write(ctx, "materials/keep.pdf", []byte("x"))

	guard := NewCompensationGuard(store)
	guard.Record("materials/keep.pdf")
	guard.Disarm()

	if failed := guard.Release(ctx); len(failed) != 0 {
		t.Fatalf("failed = %v", failed)
	}
	if !store.Exists(ctx, "materials/keep.pdf") {
		t.Fatalf("file terhapus padahal guard sudah disarm")
	}
}

func TestCompensationGuard_ReportsFailedDeletes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := storage.NewMemoryStore()
	_ = store.Write(ctx, "materials/x.pdf", []byte("x"))

	guard := NewCompensationGuard(store)
	guard.Record("materials/x.pdf")

	cancel() // Delete akan gagal karena ctx sudah mati
	failed := guard.Release(ctx)
	if len(failed) != 1 || failed[0] != "materials/x.pdf" {
		t.Fatalf("failed = %v, want [materials/x.pdf]", failed)
	}
}
