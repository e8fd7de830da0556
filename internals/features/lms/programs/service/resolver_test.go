package service

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	storage "lmsku_backend/internals/helpers/storage"
)

// PNG 1x1 valid, cukup untuk sniff MIME.
var pngBytes = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4, 0x89,
}

func pngDataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
}

func newResolver(store storage.AssetStore) (*assetResolver, *CompensationGuard) {
	guard := NewCompensationGuard(store)
	return &assetResolver{store: store, guard: guard}, guard
}

func TestResolve_EmptyInputIsNoAsset(t *testing.T) {
	store := storage.NewMemoryStore()
	r, _ := newResolver(store)

	asset, err := r.Resolve(context.Background(), "AttachCoverImage", storage.DirCovers, "program_cover", AssetInput{})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if asset != nil {
		t.Fatalf("asset = %+v, want nil (requiredness diputuskan caller)", asset)
	}
	if store.Len() != 0 {
		t.Fatalf("store berisi %d file", store.Len())
	}
}

func TestResolve_NativeUpload(t *testing.T) {
	store := storage.NewMemoryStore()
	r, guard := newResolver(store)

	fh := uploadHeader(t, "modul-k3.pdf", []byte("%PDF-1.4 isi"))
	asset, err := r.Resolve(context.Background(), "CreateMaterials", storage.DirMaterials, "materials[0]", AssetInput{File: fh})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if asset == nil {
		t.Fatal("asset nil")
	}
	if !strings.HasPrefix(asset.Path, "materials/") || !strings.HasSuffix(asset.Path, ".pdf") {
		t.Errorf("path = %q", asset.Path)
	}
	if asset.OriginalName != "modul-k3.pdf" {
		t.Errorf("original name = %q", asset.OriginalName)
	}
	if asset.Size == 0 {
		t.Errorf("size = 0")
	}
	if !store.Exists(context.Background(), asset.Path) {
		t.Fatalf("file tidak ada di store: %s", asset.Path)
	}
	if got := guard.Paths(); len(got) != 1 || got[0] != asset.Path {
		t.Fatalf("ledger = %v, want [%s]", got, asset.Path)
	}
}

func TestResolve_TempPathMovesOutOfStaging(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	r, _ := newResolver(store)

	_ = store.Write(ctx, "temp/20250101120000_abcdef1234.mp4", []byte("video"))

	asset, err := r.Resolve(ctx, "CreateMaterials", storage.DirMaterials, "materials[0]", AssetInput{
		TempPath: "temp/20250101120000_abcdef1234.mp4",
	})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if !strings.HasPrefix(asset.Path, "materials/") || !strings.HasSuffix(asset.Path, ".mp4") {
		t.Errorf("path = %q", asset.Path)
	}
	// MOVE, bukan copy: sumber temp ikut bersih
	if store.Exists(ctx, "temp/20250101120000_abcdef1234.mp4") {
		t.Fatalf("file temp masih ada setelah resolve")
	}
	if asset.Size != int64(len("video")) {
		t.Errorf("size = %d", asset.Size)
	}
}

func TestResolve_TempPathRejectsOutsideStaging(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	r, _ := newResolver(store)
	_ = store.Write(ctx, "materials/sudah-permanen.pdf", []byte("x"))

	for _, p := range []string{
		"materials/sudah-permanen.pdf", // bukan area staging
		"../etc/passwd",                // traversal
		"temp/../materials/x.pdf",
	} {
		_, err := r.Resolve(ctx, "CreateMaterials", storage.DirMaterials, "materials[0]", AssetInput{TempPath: p})
		ae, ok := AsAssemblyError(err)
		if !ok || ae.Kind != KindResolutionFailed {
			t.Errorf("path %q: err = %v, want KindResolutionFailed", p, err)
		}
	}
}

func TestResolve_TempPathMissingFile(t *testing.T) {
	store := storage.NewMemoryStore()
	r, _ := newResolver(store)

	_, err := r.Resolve(context.Background(), "CreateMaterials", storage.DirMaterials, "materials[1]", AssetInput{
		TempPath: "temp/tidak-ada.pdf",
	})
	ae, ok := AsAssemblyError(err)
	if !ok || ae.Kind != KindResolutionFailed {
		t.Fatalf("err = %v, want KindResolutionFailed", err)
	}
	if ae.Field != "materials[1]" {
		t.Errorf("field = %q", ae.Field)
	}
}

func TestResolve_DataURI(t *testing.T) {
	store := storage.NewMemoryStore()
	r, guard := newResolver(store)

	asset, err := r.Resolve(context.Background(), "CreateQuestions", storage.DirQuestions, "pretest_questions[1]", AssetInput{
		DataURI: pngDataURI(),
	})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if !strings.HasPrefix(asset.Path, "questions/") || !strings.HasSuffix(asset.Path, ".png") {
		t.Errorf("path = %q", asset.Path)
	}
	data, err := store.Read(context.Background(), asset.Path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) != len(pngBytes) {
		t.Errorf("isi berubah: %d vs %d byte", len(data), len(pngBytes))
	}
	if len(guard.Paths()) != 1 {
		t.Fatalf("ledger = %v", guard.Paths())
	}
}

func TestResolve_MalformedDataURI(t *testing.T) {
	store := storage.NewMemoryStore()
	r, _ := newResolver(store)

	for _, uri := range []string{
		"data:image/png;base64,!!!bukan-base64!!!",
		"data:image/png,tanpa-base64",
		"data:image/png;base64,",
	} {
		_, err := r.Resolve(context.Background(), "CreateQuestions", storage.DirQuestions, "questions[0]", AssetInput{DataURI: uri})
		ae, ok := AsAssemblyError(err)
		if !ok || ae.Kind != KindResolutionFailed {
			t.Errorf("uri %q: err = %v, want KindResolutionFailed", uri, err)
		}
	}
	if store.Len() != 0 {
		t.Fatalf("referensi malformed meninggalkan %d file", store.Len())
	}
}

func TestResolve_EmptyUploadRejected(t *testing.T) {
	store := storage.NewMemoryStore()
	r, _ := newResolver(store)

	fh := uploadHeader(t, "kosong.pdf", []byte{})
	_, err := r.Resolve(context.Background(), "CreateMaterials", storage.DirMaterials, "materials[0]", AssetInput{File: fh})
	ae, ok := AsAssemblyError(err)
	if !ok || ae.Kind != KindResolutionFailed {
		t.Fatalf("err = %v, want KindResolutionFailed", err)
	}
}
