package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryStore adalah AssetStore in-memory untuk test: bisa di-assert persis
// file apa yang ditulis dan dihapus tanpa menyentuh disk.
type MemoryStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	deleted []string
	baseURL string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		files:   map[string][]byte{},
		baseURL: "mem://",
	}
}

func (s *MemoryStore) Write(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean, ok := CleanPath(path)
	if !ok {
		return fmt.Errorf("path tidak valid: %q", path)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.files[clean] = cp
	return nil
}

func (s *MemoryStore) Move(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	srcClean, ok := CleanPath(src)
	if !ok {
		return fmt.Errorf("path tidak valid: %q", src)
	}
	dstClean, ok := CleanPath(dst)
	if !ok {
		return fmt.Errorf("path tidak valid: %q", dst)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, found := s.files[srcClean]
	if !found {
		return fmt.Errorf("file sumber tidak ada: %s", srcClean)
	}
	s.files[dstClean] = data
	delete(s.files, srcClean)
	return nil
}

func (s *MemoryStore) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean, _ := CleanPath(path)
	s.mu.Lock()
	defer s.mu.Unlock()
	data, found := s.files[clean]
	if !found {
		return nil, fmt.Errorf("file tidak ada: %s", clean)
	}
	return data, nil
}

func (s *MemoryStore) Exists(ctx context.Context, path string) bool {
	clean, _ := CleanPath(path)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, found := s.files[clean]
	return found
}

func (s *MemoryStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean, _ := CleanPath(path)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, clean)
	s.deleted = append(s.deleted, clean)
	return nil
}

func (s *MemoryStore) PublicURL(path string) string {
	clean, _ := CleanPath(path)
	return s.baseURL + clean
}

/* ===============================
   Inspeksi untuk test
=================================*/

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// Paths mengembalikan path yang masih hidup, urut, opsional difilter prefix.
func (s *MemoryStore) Paths(prefix string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for p := range s.files {
		if prefix == "" || strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

func (s *MemoryStore) DeletedPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.deleted))
	copy(out, s.deleted)
	return out
}
