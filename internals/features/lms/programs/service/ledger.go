package service

import (
	"context"
	"log"

	storage "lmsku_backend/internals/helpers/storage"
)

/*
CompensationGuard = ledger file yang ditulis selama SATU kali assembly.

File store tidak punya transaksi, jadi all-or-nothing didekati manual:
setiap tulis sukses dicatat di sini; kalau pipeline gagal, Release()
menghapus semuanya; kalau sukses, Disarm() membuang ledger-nya.
Release idempotent dan aman dipanggil dari defer sebagai backstop panic.
*/
type CompensationGuard struct {
	store    storage.AssetStore
	paths    []string
	disarmed bool
}

func NewCompensationGuard(store storage.AssetStore) *CompensationGuard {
	return &CompensationGuard{store: store}
}

// Record mencatat path permanen (bukan public URL — penghapusan pakai path).
func (g *CompensationGuard) Record(path string) {
	g.paths = append(g.paths, path)
}

// Disarm dipanggil tepat setelah commit sukses: file resmi jadi milik program.
func (g *CompensationGuard) Disarm() {
	g.disarmed = true
	g.paths = nil
}

func (g *CompensationGuard) Paths() []string {
	out := make([]string, len(g.paths))
	copy(out, g.paths)
	return out
}

// Release menghapus semua path di ledger (urutan terbalik), mengembalikan
// path yang GAGAL dihapus. Setelah dipanggil, ledger kosong.
func (g *CompensationGuard) Release(ctx context.Context) []string {
	if g.disarmed || len(g.paths) == 0 {
		return nil
	}
	var failed []string
	for i := len(g.paths) - 1; i >= 0; i-- {
		p := g.paths[i]
		if !g.store.Exists(ctx, p) {
			continue
		}
		if err := g.store.Delete(ctx, p); err != nil {
			log.Printf("[ASSEMBLE] ❌ cleanup gagal hapus file: path=%s err=%v", p, err)
			failed = append(failed, p)
		}
	}
	g.paths = nil
	return failed
}
