package storage

import (
	"regexp"
	"strings"
	"testing"
)

var objectNameRe = regexp.MustCompile(`^\d{14}_[0-9a-f]{10}\.[a-z0-9]+$`)

func TestNewObjectName_Format(t *testing.T) {
	name := NewObjectName(".pdf")
	if !objectNameRe.MatchString(name) {
		t.Fatalf("nama tidak sesuai pola {timestamp}_{discriminator}.{ext}: %q", name)
	}
}

func TestNewObjectName_NoCollisionSameSecond(t *testing.T) {
	// 10k nama dalam rentang sedetik tidak boleh tabrakan — discriminator
	// acak yang menjamin, bukan timestamp-nya.
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		name := NewObjectName(".jpg")
		if _, dup := seen[name]; dup {
			t.Fatalf("tabrakan nama pada iterasi %d: %q", i, name)
		}
		seen[name] = struct{}{}
	}
}

func TestObjectPath(t *testing.T) {
	p := ObjectPath(DirMaterials, ".mp4")
	if !strings.HasPrefix(p, "materials/") || !strings.HasSuffix(p, ".mp4") {
		t.Fatalf("path = %q", p)
	}
}

func TestNormalizeExt(t *testing.T) {
	cases := []struct{ in, want string }{
		{"pdf", ".pdf"},
		{".PDF", ".pdf"},
		{"  .Mp4 ", ".mp4"},
		{"", ""},
		{".a/b", ""},
		{".a.b", ""},
		{`.a\b`, ""},
	}
	for _, tc := range cases {
		if got := NormalizeExt(tc.in); got != tc.want {
			t.Errorf("NormalizeExt(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExtFromFilename(t *testing.T) {
	if got := ExtFromFilename("Modul K3.PDF"); got != ".pdf" {
		t.Errorf("got %q", got)
	}
	if got := ExtFromFilename("tanpa-ekstensi"); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestExtForMIME(t *testing.T) {
	if got := ExtForMIME("application/pdf", nil); got != ".pdf" {
		t.Errorf("declared pdf → %q", got)
	}
	// declared tidak dikenal → sniff isi
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	if got := ExtForMIME("application/x-tidak-dikenal", png); got != ".png" {
		t.Errorf("sniff png → %q", got)
	}
	if got := ExtForMIME("", nil); got != ".bin" {
		t.Errorf("fallback → %q", got)
	}
}
