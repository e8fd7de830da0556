package storage

import (
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrNotDataURI     = errors.New("bukan data URI")
	ErrBadDataURI     = errors.New("data URI tidak valid")
	ErrEmptyDataURI   = errors.New("data URI kosong")
	ErrNotBase64Coded = errors.New("data URI harus ber-encoding base64")
)

// IsDataURI cek cepat tanpa decode.
func IsDataURI(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "data:")
}

// ParseDataURI mengurai "data:image/png;base64,...." menjadi (mimeType, bytes).
// Hanya bentuk base64 yang diterima; bentuk lain dianggap malformed.
func ParseDataURI(s string) (string, []byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "data:") {
		return "", nil, ErrNotDataURI
	}
	comma := strings.Index(s, ",")
	if comma < 0 {
		return "", nil, ErrBadDataURI
	}

	meta := s[len("data:"):comma]
	payload := s[comma+1:]
	if payload == "" {
		return "", nil, ErrEmptyDataURI
	}

	parts := strings.Split(meta, ";")
	mimeType := strings.TrimSpace(parts[0])
	isBase64 := false
	for _, p := range parts[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			isBase64 = true
		}
	}
	if !isBase64 {
		return "", nil, ErrNotBase64Coded
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, ErrBadDataURI
	}
	if len(data) == 0 {
		return "", nil, ErrEmptyDataURI
	}
	return mimeType, data, nil
}
