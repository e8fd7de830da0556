package model

import (
	"strings"
	"testing"
)

func validQuestion() *QuestionModel {
	m := &QuestionModel{
		QuestionText:    "Apa kepanjangan APD?",
		QuestionCorrect: "b",
	}
	_ = m.SetOptions([4]QuestionOption{
		{Text: "Alat Pelindung Dasar"},
		{Text: "Alat Pelindung Diri"},
		{Text: "Alat Pengaman Diri"},
		{Text: "Alat Pengaman Dasar"},
	})
	return m
}

func TestBeforeSave_DerivesMirror(t *testing.T) {
	m := validQuestion()
	if err := m.BeforeSave(nil); err != nil {
		t.Fatalf("err = %v", err)
	}
	if m.QuestionOptionA != "Alat Pelindung Dasar" ||
		m.QuestionOptionB != "Alat Pelindung Diri" ||
		m.QuestionOptionC != "Alat Pengaman Diri" ||
		m.QuestionOptionD != "Alat Pengaman Dasar" {
		t.Errorf("mirror = %q %q %q %q",
			m.QuestionOptionA, m.QuestionOptionB, m.QuestionOptionC, m.QuestionOptionD)
	}
	if m.QuestionDifficulty != DifficultyMedium {
		t.Errorf("difficulty = %q, want default medium", m.QuestionDifficulty)
	}
}

func TestBeforeSave_MirrorFollowsCanonicalRewrite(t *testing.T) {
	m := validQuestion()
	if err := m.BeforeSave(nil); err != nil {
		t.Fatalf("err = %v", err)
	}

	// tulis ulang kanonik → mirror harus ikut, bukan nilai lama
	_ = m.SetOptions([4]QuestionOption{
		{Text: "baru a"}, {Text: "baru b"}, {Text: "baru c"}, {Text: "baru d"},
	})
	if err := m.BeforeSave(nil); err != nil {
		t.Fatalf("err = %v", err)
	}
	if m.QuestionOptionA != "baru a" || m.QuestionOptionD != "baru d" {
		t.Errorf("mirror tidak mengikuti kanonik: %q %q", m.QuestionOptionA, m.QuestionOptionD)
	}
}

func TestBeforeSave_RejectsBadCorrectLabel(t *testing.T) {
	m := validQuestion()
	m.QuestionCorrect = "z"
	if err := m.BeforeSave(nil); err == nil {
		t.Fatal("label jawaban di luar a-d lolos")
	}
}

func TestBeforeSave_RejectsBrokenCanonical(t *testing.T) {
	m := validQuestion()
	m.QuestionOptions = []byte(`{"bukan":"array"}`)
	if err := m.BeforeSave(nil); err == nil {
		t.Fatal("question_options rusak lolos")
	}
}

func TestSetOptions_ForcesLabels(t *testing.T) {
	m := &QuestionModel{}
	// label salah dari caller diabaikan, selalu dipaksa a-d urut
	if err := m.SetOptions([4]QuestionOption{
		{Label: "x", Text: "1"}, {Label: "y", Text: "2"}, {Label: "z", Text: "3"}, {Label: "w", Text: "4"},
	}); err != nil {
		t.Fatalf("err = %v", err)
	}
	opts, err := m.Options()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	for i, o := range opts {
		if o.Label != OptionLabels[i] {
			t.Errorf("label[%d] = %q, want %q", i, o.Label, OptionLabels[i])
		}
	}
	if !strings.HasPrefix(string(m.QuestionOptions), "[") {
		t.Errorf("kanonik bukan array JSON: %s", m.QuestionOptions)
	}
}
