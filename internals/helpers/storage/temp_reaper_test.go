package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestReapTempOnce(t *testing.T) {
	ctx := context.Background()
	store := newDiskStore(t)

	// satu file basi, satu file segar, satu file permanen (tak boleh disentuh)
	if err := store.Write(ctx, "temp/basi.pdf", []byte("x")); err != nil {
		t.Fatalf("write: %v", err)
	}
	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(filepath.Join(store.Root(), "temp", "basi.pdf"), old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if err := store.Write(ctx, "temp/segar.pdf", []byte("y")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := store.Write(ctx, "materials/permanen.pdf", []byte("z")); err != nil {
		t.Fatalf("write: %v", err)
	}

	removed, kept := ReapTempOnce(store, TempReaperConfig{RetentionHours: 24})
	if removed != 1 || kept != 1 {
		t.Fatalf("removed=%d kept=%d, want 1/1", removed, kept)
	}
	if store.Exists(ctx, "temp/basi.pdf") {
		t.Error("file basi masih ada")
	}
	if !store.Exists(ctx, "temp/segar.pdf") {
		t.Error("file segar ikut terhapus")
	}
	if !store.Exists(ctx, "materials/permanen.pdf") {
		t.Error("file permanen ikut terhapus")
	}
}

func TestReapTempOnce_DryRun(t *testing.T) {
	ctx := context.Background()
	store := newDiskStore(t)

	if err := store.Write(ctx, "temp/basi.pdf", []byte("x")); err != nil {
		t.Fatalf("write: %v", err)
	}
	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(filepath.Join(store.Root(), "temp", "basi.pdf"), old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	removed, _ := ReapTempOnce(store, TempReaperConfig{RetentionHours: 24, DryRun: true})
	if removed != 1 {
		t.Fatalf("removed = %d, want 1 (dihitung tapi tidak dihapus)", removed)
	}
	if !store.Exists(ctx, "temp/basi.pdf") {
		t.Error("dry-run tetap menghapus file")
	}
}
