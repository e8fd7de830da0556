package service

import (
	"bytes"
	"mime/multipart"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	programModel "lmsku_backend/internals/features/lms/programs/model"
	quizModel "lmsku_backend/internals/features/lms/quizzes/model"
)

// newTestDB = sqlite in-memory, satu koneksi supaya transaksi konsisten.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("buka sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("ambil sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&programModel.ProgramModel{},
		&programModel.MaterialModel{},
		&quizModel.QuizModel{},
		&quizModel.QuestionModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// uploadHeader membangun *multipart.FileHeader beneran (bisa di-Open) dari bytes.
func uploadHeader(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("tulis form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("tutup writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
