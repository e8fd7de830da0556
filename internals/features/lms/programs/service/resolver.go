package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	storage "lmsku_backend/internals/helpers/storage"
)

// AssetInput = referensi asset dari caller, salah satu dari tiga bentuk.
// Prioritas resolve: upload native → path staging temp → data URI base64.
type AssetInput struct {
	File     *multipart.FileHeader
	TempPath string
	DataURI  string
}

func (in AssetInput) IsZero() bool {
	return in.File == nil && in.TempPath == "" && in.DataURI == ""
}

// assetResolver menulis asset ke area permanen lewat AssetStore yang
// di-inject, dan mencatat SETIAP tulisan sukses ke guard sebelum return —
// tidak pernah ada tulisan parsial yang lolos dari ledger.
type assetResolver struct {
	store storage.AssetStore
	guard *CompensationGuard
}

// Resolve mengubah referensi jadi file permanen + PermanentAsset.
// Input kosong = "tidak ada asset" (nil, nil) — requiredness diputuskan caller.
// Referensi malformed selalu ResolutionFailed.
func (r *assetResolver) Resolve(ctx context.Context, step, dir, field string, in AssetInput) (*storage.PermanentAsset, error) {
	switch {
	case in.File != nil:
		return r.resolveUpload(ctx, step, dir, field, in.File)
	case in.TempPath != "":
		return r.resolveTemp(ctx, step, dir, field, in.TempPath)
	case in.DataURI != "":
		return r.resolveDataURI(ctx, step, dir, field, in.DataURI)
	default:
		return nil, nil
	}
}

// 1) Upload native multipart
func (r *assetResolver) resolveUpload(ctx context.Context, step, dir, field string, fh *multipart.FileHeader) (*storage.PermanentAsset, error) {
	if fh.Size == 0 || fh.Filename == "" {
		return nil, resolutionErr(step, field, errors.New("file upload kosong"))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, resolutionErr(step, field, fmt.Errorf("buka upload: %w", err))
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, resolutionErr(step, field, fmt.Errorf("baca upload: %w", err))
	}
	if len(data) == 0 {
		return nil, resolutionErr(step, field, errors.New("file upload kosong"))
	}

	ext := storage.ExtFromFilename(fh.Filename)
	if ext == "" {
		ext = storage.ExtForMIME(fh.Header.Get("Content-Type"), data)
	}

	dst := storage.ObjectPath(dir, ext)
	if err := r.store.Write(ctx, dst, data); err != nil {
		return nil, resolutionErr(step, field, fmt.Errorf("tulis ke store: %w", err))
	}
	return r.finish(ctx, step, field, dst, fh.Filename, ext, int64(len(data)))
}

// 2) Referensi staging temp: MOVE (bukan copy) supaya temp ikut bersih.
func (r *assetResolver) resolveTemp(ctx context.Context, step, dir, field, tempPath string) (*storage.PermanentAsset, error) {
	clean, ok := storage.CleanPath(tempPath)
	if !ok || !strings.HasPrefix(clean, storage.DirTemp+"/") {
		return nil, resolutionErr(step, field, fmt.Errorf("path temp tidak valid: %q", tempPath))
	}
	if !r.store.Exists(ctx, clean) {
		return nil, resolutionErr(step, field, fmt.Errorf("file temp tidak ditemukan: %s", clean))
	}

	ext := storage.ExtFromFilename(clean)
	dst := storage.ObjectPath(dir, ext)
	if err := r.store.Move(ctx, clean, dst); err != nil {
		return nil, resolutionErr(step, field, fmt.Errorf("pindah dari temp: %w", err))
	}

	size := int64(0)
	if data, err := r.store.Read(ctx, dst); err == nil {
		size = int64(len(data))
	}
	return r.finish(ctx, step, field, dst, path.Base(clean), ext, size)
}

// 3) Data URI base64 inline
func (r *assetResolver) resolveDataURI(ctx context.Context, step, dir, field, uri string) (*storage.PermanentAsset, error) {
	mimeType, data, err := storage.ParseDataURI(uri)
	if err != nil {
		return nil, resolutionErr(step, field, err)
	}

	ext := storage.ExtForMIME(mimeType, data)
	dst := storage.ObjectPath(dir, ext)
	if err := r.store.Write(ctx, dst, data); err != nil {
		return nil, resolutionErr(step, field, fmt.Errorf("tulis ke store: %w", err))
	}
	return r.finish(ctx, step, field, dst, "", ext, int64(len(data)))
}

// finish: verifikasi file beneran ada, baru catat ke ledger & kembalikan ref.
func (r *assetResolver) finish(ctx context.Context, step, field, dst, originalName, ext string, size int64) (*storage.PermanentAsset, error) {
	if !r.store.Exists(ctx, dst) {
		return nil, resolutionErr(step, field, fmt.Errorf("verifikasi pasca-tulis gagal: %s", dst))
	}
	r.guard.Record(dst)
	return &storage.PermanentAsset{
		Path:         dst,
		PublicURL:    r.store.PublicURL(dst),
		OriginalName: originalName,
		Ext:          ext,
		Size:         size,
	}, nil
}
