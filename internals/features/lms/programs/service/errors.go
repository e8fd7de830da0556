package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Taxonomy error pipeline. Semua kegagalan step ditangkap SEKALI di
// orchestrator, dikonversi ke kind terkecil yang cocok, dengan cause asli
// tetap terbawa untuk diagnostik.

type ErrorKind string

const (
	KindValidationFailed     ErrorKind = "VALIDATION_FAILED"
	KindConflictingFormat    ErrorKind = "CONFLICTING_FORMAT"
	KindResolutionFailed     ErrorKind = "RESOLUTION_FAILED"
	KindPersistenceFailed    ErrorKind = "PERSISTENCE_FAILED"
	KindPartialCleanupFailed ErrorKind = "PARTIAL_CLEANUP_FAILED"
)

type AssemblyError struct {
	Kind  ErrorKind
	Step  string // step state machine tempat gagal, mis. "CreateMaterials"
	Field string // field payload yang bermasalah (kalau ada)
	Err   error  // cause asli

	// Hanya terisi pada KindPartialCleanupFailed: path yang gagal dihapus
	// setelah rollback — harus bisa ditemukan untuk rekonsiliasi manual.
	OrphanPaths []string
}

func (e *AssemblyError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Step != "" {
		b.WriteString(" at " + e.Step)
	}
	if e.Field != "" {
		b.WriteString(" (field " + e.Field + ")")
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	if len(e.OrphanPaths) > 0 {
		b.WriteString(fmt.Sprintf(" [orphan=%v]", e.OrphanPaths))
	}
	return b.String()
}

func (e *AssemblyError) Unwrap() error { return e.Err }

// Message = pesan untuk caller (tanpa detail internal step).
func (e *AssemblyError) Message() string {
	switch e.Kind {
	case KindValidationFailed:
		if e.Field != "" {
			return "Payload tidak valid pada " + e.Field
		}
		return "Payload tidak valid"
	case KindConflictingFormat:
		return "Format soal ganda: kirim `questions` ATAU `pretest_questions`/`posttest_questions`, bukan dua-duanya"
	case KindResolutionFailed:
		if e.Field != "" {
			return "File tidak bisa diproses pada " + e.Field
		}
		return "File tidak bisa diproses"
	case KindPartialCleanupFailed:
		return "Pembuatan program gagal (sebagian file cleanup tidak terhapus, sudah dicatat)"
	default:
		return "Gagal menyimpan program"
	}
}

func (e *AssemblyError) HTTPStatus() int {
	switch e.Kind {
	case KindValidationFailed:
		return fiber.StatusUnprocessableEntity
	case KindConflictingFormat, KindResolutionFailed:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func AsAssemblyError(err error) (*AssemblyError, bool) {
	var ae *AssemblyError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func validationErr(field string, err error) *AssemblyError {
	return &AssemblyError{Kind: KindValidationFailed, Step: "ValidateMetadata", Field: field, Err: err}
}

func conflictingFormatErr() *AssemblyError {
	return &AssemblyError{
		Kind: KindConflictingFormat,
		Step: "NormalizeQuestions",
		Err:  errors.New("unified dan separated question list terisi bersamaan"),
	}
}

func resolutionErr(step, field string, err error) *AssemblyError {
	return &AssemblyError{Kind: KindResolutionFailed, Step: step, Field: field, Err: err}
}

func persistenceErr(step string, err error) *AssemblyError {
	return &AssemblyError{Kind: KindPersistenceFailed, Step: step, Err: err}
}

// coerce memastikan error apa pun keluar sebagai *AssemblyError.
func coerce(step string, err error) *AssemblyError {
	if ae, ok := AsAssemblyError(err); ok {
		return ae
	}
	return persistenceErr(step, err)
}
