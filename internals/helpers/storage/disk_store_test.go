package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func newDiskStore(t *testing.T) *DiskStore {
	t.Helper()
	store, err := NewDiskStore(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("new disk store: %v", err)
	}
	return store
}

func TestDiskStore_CreatesTree(t *testing.T) {
	store := newDiskStore(t)
	for _, d := range []string{DirMaterials, DirQuestions, DirCovers, DirTemp} {
		info, err := os.Stat(filepath.Join(store.Root(), d))
		if err != nil || !info.IsDir() {
			t.Errorf("direktori %s tidak dibuat: %v", d, err)
		}
	}
}

func TestDiskStore_WriteReadDelete(t *testing.T) {
	ctx := context.Background()
	store := newDiskStore(t)

	path := "materials/20250101120000_abcdef1234.pdf"
	if err := store.Write(ctx, path, []byte("isi modul")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !store.Exists(ctx, path) {
		t.Fatal("file tidak ada setelah write")
	}
	data, err := store.Read(ctx, path)
	if err != nil || string(data) != "isi modul" {
		t.Fatalf("read = %q, %v", data, err)
	}

	if err := store.Delete(ctx, path); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if store.Exists(ctx, path) {
		t.Fatal("file masih ada setelah delete")
	}
	// delete kedua kalinya = no-op, bukan error
	if err := store.Delete(ctx, path); err != nil {
		t.Fatalf("delete idempotent: %v", err)
	}
}

func TestDiskStore_WriteLeavesNoPartialFiles(t *testing.T) {
	ctx := context.Background()
	store := newDiskStore(t)

	if err := store.Write(ctx, "covers/x.jpg", []byte("cover")); err != nil {
		t.Fatalf("write: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(store.Root(), DirCovers))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if e.Name() != "x.jpg" {
			t.Errorf("file tak terduga di covers/: %s", e.Name())
		}
	}
}

func TestDiskStore_Move(t *testing.T) {
	ctx := context.Background()
	store := newDiskStore(t)

	src := "temp/20250101120000_abcdef1234.mp4"
	dst := "materials/20250101120001_9876543210.mp4"
	if err := store.Write(ctx, src, []byte("video")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := store.Move(ctx, src, dst); err != nil {
		t.Fatalf("move: %v", err)
	}
	if store.Exists(ctx, src) {
		t.Error("sumber masih ada setelah move")
	}
	data, err := store.Read(ctx, dst)
	if err != nil || string(data) != "video" {
		t.Fatalf("tujuan = %q, %v", data, err)
	}
}

func TestDiskStore_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	store := newDiskStore(t)

	for _, p := range []string{"../di-luar.txt", "materials/../../etc/passwd", `materials\x.pdf`} {
		if err := store.Write(ctx, p, []byte("x")); err == nil {
			t.Errorf("write %q lolos, harusnya ditolak", p)
		}
		if store.Exists(ctx, p) {
			t.Errorf("exists %q = true", p)
		}
	}
}

func TestDiskStore_CancelledContext(t *testing.T) {
	store := newDiskStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Write(ctx, "materials/x.pdf", []byte("x")); err == nil {
		t.Error("write dengan ctx mati harus gagal")
	}
	if err := store.Delete(ctx, "materials/x.pdf"); err == nil {
		t.Error("delete dengan ctx mati harus gagal")
	}
}

func TestDiskStore_PublicURL(t *testing.T) {
	store := newDiskStore(t)
	if got := store.PublicURL("materials/a.pdf"); got != "/uploads/materials/a.pdf" {
		t.Errorf("url = %q", got)
	}
	if got := store.PublicURL("../jahat"); got != "" {
		t.Errorf("traversal menghasilkan url %q", got)
	}
}
