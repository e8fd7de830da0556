package storage

import (
	"context"
	"strings"
)

// Direktori tetap di public tree. Nama path ini bagian dari kontrak eksternal
// (exporter & cleanup job mem-parse path ini), jangan diubah sembarangan.
const (
	DirMaterials = "materials"
	DirQuestions = "questions"
	DirCovers    = "covers"
	DirTemp      = "temp"
)

// PermanentAsset adalah hasil tulis yang sudah durable di public tree.
type PermanentAsset struct {
	Path         string `json:"path"`       // path relatif, mis. "materials/20250101120000_ab12cd34ef.pdf"
	PublicURL    string `json:"public_url"` // URL yang bisa diakses klien
	OriginalName string `json:"original_name,omitempty"`
	Ext          string `json:"ext,omitempty"` // termasuk titik, mis. ".pdf"
	Size         int64  `json:"size"`
}

/*
AssetStore adalah capability file-store yang di-inject ke pipeline
(bukan akses disk global), supaya test bisa pakai store in-memory dan
assert persis apa yang ditulis/dihapus.

Kontrak: Write/Move harus atomic dari sudut pandang pembaca — file yang
berhasil ditulis selalu utuh, dan kegagalan tidak meninggalkan partial file.
*/
type AssetStore interface {
	Write(ctx context.Context, path string, data []byte) error
	Move(ctx context.Context, src, dst string) error
	Read(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) bool
	Delete(ctx context.Context, path string) error
	PublicURL(path string) string
}

// CleanPath menormalkan path relatif & menolak traversal keluar tree.
func CleanPath(p string) (string, bool) {
	p = strings.TrimSpace(p)
	p = strings.TrimPrefix(p, "/")
	if p == "" || strings.Contains(p, "..") || strings.Contains(p, "\\") {
		return "", false
	}
	return p, true
}
