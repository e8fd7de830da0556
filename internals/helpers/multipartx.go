package helper

import (
	"mime/multipart"
	"regexp"
	"strconv"
)

// ==============================
// Indexed file collector
// ==============================

// PickFile mengambil file pertama dari beberapa kemungkinan nama field form.
// Jika tidak ada file, kembalikan nil supaya controller bisa fallback.
func PickFile(form *multipart.Form, fieldNames ...string) *multipart.FileHeader {
	if form == nil || form.File == nil {
		return nil
	}
	for _, name := range fieldNames {
		if arr := form.File[name]; len(arr) > 0 && arr[0] != nil && arr[0].Filename != "" {
			return arr[0]
		}
	}
	return nil
}

// CollectIndexedFiles mengumpulkan file multipart yang dikirim out-of-band
// dengan key ber-index: "<base>[0]", "<base>[3]", dst. Hasilnya map index → file,
// supaya bisa direkonsiliasi dengan entry JSON pada index yang sama.
func CollectIndexedFiles(form *multipart.Form, base string) map[int]*multipart.FileHeader {
	if form == nil || form.File == nil {
		return nil
	}
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(base) + `\[(\d+)\]$`)

	out := map[int]*multipart.FileHeader{}
	for key, fhs := range form.File {
		m := re.FindStringSubmatch(key)
		if m == nil || len(fhs) == 0 || fhs[0] == nil || fhs[0].Filename == "" {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		out[idx] = fhs[0]
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
