package helper

import (
	"bytes"
	"mime/multipart"
	"testing"
)

func buildForm(t *testing.T, fields map[string][]byte) *multipart.Form {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, data := range fields {
		fw, err := w.CreateFormFile(name, name+".bin")
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form
}

func TestPickFile(t *testing.T) {
	form := buildForm(t, map[string][]byte{"program_cover": []byte("img")})

	if fh := PickFile(form, "cover", "program_cover"); fh == nil {
		t.Fatal("fallback nama kedua tidak jalan")
	}
	if fh := PickFile(form, "tidak_ada"); fh != nil {
		t.Fatalf("dapat %q padahal field tidak ada", fh.Filename)
	}
	if fh := PickFile(nil, "program_cover"); fh != nil {
		t.Fatal("form nil harus aman")
	}
}

func TestCollectIndexedFiles(t *testing.T) {
	form := buildForm(t, map[string][]byte{
		"material_file[0]": []byte("a"),
		"material_file[3]": []byte("b"), // index bolong disengaja
		"material_file[x]": []byte("c"), // bukan angka, dilewati
		"question_image":   []byte("d"), // tanpa index, dilewati
	})

	got := CollectIndexedFiles(form, "material_file")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %v", len(got), got)
	}
	if got[0] == nil || got[3] == nil {
		t.Fatalf("index 0/3 hilang: %v", got)
	}

	if got := CollectIndexedFiles(form, "question_image"); got != nil {
		t.Fatalf("base tanpa match harus nil, dapat %v", got)
	}
	if got := CollectIndexedFiles(nil, "material_file"); got != nil {
		t.Fatal("form nil harus aman")
	}
}
