package storage

import (
	"encoding/base64"
	"errors"
	"testing"
)

func TestIsDataURI(t *testing.T) {
	if !IsDataURI("data:image/png;base64,AAAA") {
		t.Error("data URI valid tidak terdeteksi")
	}
	if IsDataURI("https://example.com/x.png") {
		t.Error("URL biasa terdeteksi sebagai data URI")
	}
	if !IsDataURI("  data:text/plain;base64,AA==") {
		t.Error("leading space harus ditoleransi")
	}
}

func TestParseDataURI_OK(t *testing.T) {
	payload := []byte("isi file")
	uri := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(payload)

	mimeType, data, err := ParseDataURI(uri)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if mimeType != "application/pdf" {
		t.Errorf("mime = %q", mimeType)
	}
	if string(data) != "isi file" {
		t.Errorf("data = %q", data)
	}
}

func TestParseDataURI_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"bukan data uri", "https://example.com", ErrNotDataURI},
		{"tanpa koma", "data:image/png;base64", ErrBadDataURI},
		{"payload kosong", "data:image/png;base64,", ErrEmptyDataURI},
		{"bukan base64 encoding", "data:image/png,rawdata", ErrNotBase64Coded},
		{"base64 rusak", "data:image/png;base64,@@@@", ErrBadDataURI},
	}
	for _, tc := range cases {
		_, _, err := ParseDataURI(tc.in)
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestParseDataURI_DecodedEmptyRejected(t *testing.T) {
	// base64 valid tapi decode jadi nol byte
	_, _, err := ParseDataURI("data:image/png;base64," + base64.StdEncoding.EncodeToString(nil))
	if !errors.Is(err, ErrEmptyDataURI) {
		t.Fatalf("err = %v, want ErrEmptyDataURI", err)
	}
}
