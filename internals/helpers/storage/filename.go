package storage

import (
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const tsLayout = "20060102150405"

// NewObjectName menghasilkan nama file anti-tabrakan: {timestamp}_{discriminator}.{ext}.
// Discriminator acak (uuid) membuat tabrakan dalam satu detik praktis mustahil.
func NewObjectName(ext string) string {
	disc := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	return time.Now().Format(tsLayout) + "_" + disc + NormalizeExt(ext)
}

// ObjectPath menggabungkan direktori tujuan + nama object baru.
func ObjectPath(dir, ext string) string {
	return path.Join(dir, NewObjectName(ext))
}

// NormalizeExt: lowercase, selalu berawalan titik; kosong jika tidak valid.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if strings.ContainsAny(ext[1:], "./\\") {
		return ""
	}
	return ext
}

// ExtFromFilename mengambil ekstensi dari nama file upload.
func ExtFromFilename(name string) string {
	return NormalizeExt(filepath.Ext(name))
}

// ExtForMIME memilih ekstensi dari MIME type yang dideklarasikan;
// kalau tidak dikenal, sniff dari isi file.
func ExtForMIME(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" {
		if m := mimetype.Lookup(declared); m != nil && m.Extension() != "" {
			return NormalizeExt(m.Extension())
		}
	}
	if len(data) > 0 {
		if m := mimetype.Detect(data); m != nil && m.Extension() != "" {
			return NormalizeExt(m.Extension())
		}
	}
	return ".bin"
}
