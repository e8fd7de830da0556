package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"lmsku_backend/internals/configs"
)

// DiskStore menulis ke satu public tree lokal (STORAGE_ROOT) yang
// di-serve statis lewat STORAGE_BASE_URL.
type DiskStore struct {
	root    string
	baseURL string
}

func NewDiskStore(root, baseURL string) (*DiskStore, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("storage root kosong")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("buat storage root: %w", err)
	}
	for _, d := range []string{DirMaterials, DirQuestions, DirCovers, DirTemp} {
		if err := os.MkdirAll(filepath.Join(abs, d), 0o755); err != nil {
			return nil, err
		}
	}
	return &DiskStore{root: abs, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func NewDiskStoreFromEnv() (*DiskStore, error) {
	return NewDiskStore(configs.StorageRoot, configs.StorageBaseURL)
}

func (s *DiskStore) Root() string { return s.root }

func (s *DiskStore) abs(p string) (string, error) {
	clean, ok := CleanPath(p)
	if !ok {
		return "", fmt.Errorf("path tidak valid: %q", p)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

// Write: tulis ke file sementara lalu rename, supaya pembaca tidak pernah
// melihat file setengah jadi.
func (s *DiskStore) Write(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dst, err := s.abs(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".part-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, dst); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// Move memindahkan file di dalam tree (dipakai temp → permanen);
// fallback copy+remove untuk kasus rename lintas device.
func (s *DiskStore) Move(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	srcAbs, err := s.abs(src)
	if err != nil {
		return err
	}
	dstAbs, err := s.abs(dst)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dstAbs), 0o755); err != nil {
		return err
	}
	if err := os.Rename(srcAbs, dstAbs); err == nil {
		return nil
	}

	in, err := os.Open(srcAbs)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dstAbs)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dstAbs)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(srcAbs)
}

func (s *DiskStore) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	abs, err := s.abs(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

func (s *DiskStore) Exists(ctx context.Context, path string) bool {
	abs, err := s.abs(path)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && !info.IsDir()
}

// Delete: file yang sudah tidak ada dianggap sukses (idempotent untuk cleanup).
func (s *DiskStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	abs, err := s.abs(path)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *DiskStore) PublicURL(path string) string {
	clean, ok := CleanPath(path)
	if !ok {
		return ""
	}
	return s.baseURL + "/" + clean
}
