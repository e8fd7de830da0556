package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"lmsku_backend/internals/features/lms/programs/dto"
	programModel "lmsku_backend/internals/features/lms/programs/model"
	quizModel "lmsku_backend/internals/features/lms/quizzes/model"
	storage "lmsku_backend/internals/helpers/storage"
)

/*
AssemblyService = orchestrator Training Content Assembly Pipeline.

State machine linear:

	Start → ValidateMetadata → OpenTransaction → CreateProgram →
	AttachCoverImage → CreateMaterials* → NormalizeQuestions (pre-tx) →
	MaterializeQuizzes → CreateQuestions* → FinalizeQuizCounts →
	UpdateProgramFlags → Commit

Transaksi DB membungkus semua tulis DB; tulis FILE tidak ikut transaksi dan
dikompensasi manual: file selalu ditulis SEBELUM row yang mereferensikannya
(rollback DB tidak pernah meninggalkan referensi ke file yang tidak ada),
dan setiap tulisan dicatat di CompensationGuard supaya kegagalan belakangan
tetap bisa menghapus file yang telanjur sukses.
*/
type AssemblyService struct {
	db       *gorm.DB
	store    storage.AssetStore
	validate *validator.Validate
}

func NewAssemblyService(db *gorm.DB, store storage.AssetStore) *AssemblyService {
	return &AssemblyService{
		db:       db,
		store:    store,
		validate: validator.New(),
	}
}

// Assemble merakit satu program lengkap, all-or-nothing.
// Sukses → program + seluruh anaknya ada; gagal → tidak ada row maupun file
// yang tersisa dari panggilan ini (modulo PartialCleanupFailed yang dicatat).
func (s *AssemblyService) Assemble(ctx context.Context, req *dto.AssembleProgramRequest) (*programModel.ProgramModel, error) {
	// 1) ValidateMetadata — sebelum side effect apa pun
	req.Normalize()
	if err := s.validate.Struct(req); err != nil {
		return nil, validationErr("", err)
	}
	if err := validateMaterialEntries(req.Materials); err != nil {
		return nil, err
	}

	// 2) NormalizeQuestions — masih pre-transaction, fail-fast tanpa side effect
	canonical, err := NormalizeQuestions(QuestionSubmission{
		Unified:  req.Questions,
		Pretest:  req.PretestQuestions,
		Posttest: req.PosttestQuestions,
	})
	if err != nil {
		return nil, err
	}

	// 3) Guard + resolver. Defer = backstop (termasuk panic); jalur normal
	// memanggil Release/Disarm eksplisit, Release idempotent.
	guard := NewCompensationGuard(s.store)
	defer func() {
		if orphans := guard.Release(ctx); len(orphans) > 0 {
			log.Printf("[ASSEMBLE] ❌ cleanup backstop menyisakan orphan: %v", orphans)
		}
	}()
	resolver := &assetResolver{store: s.store, guard: guard}

	// 4) OpenTransaction
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, persistenceErr("OpenTransaction", tx.Error)
	}

	program := req.ToModel()

	// 5) AttachCoverImage (opsional) — file dulu, baru row yang menunjuknya
	cover, err := resolver.Resolve(ctx, "AttachCoverImage", storage.DirCovers, "program_cover", AssetInput{
		File:     req.ProgramCoverFile,
		TempPath: req.ProgramCoverTempPath,
		DataURI:  req.ProgramCoverDataURI,
	})
	if err != nil {
		return nil, s.fail(ctx, tx, guard, "AttachCoverImage", err)
	}
	if cover != nil {
		program.ProgramCoverURL = &cover.PublicURL
		program.ProgramCoverPath = &cover.Path
	}

	// 6) CreateProgram
	if err := tx.Create(program).Error; err != nil {
		return nil, s.fail(ctx, tx, guard, "CreateProgram", err)
	}

	// 7) CreateMaterials*
	for i := range req.Materials {
		if err := s.createMaterial(ctx, tx, resolver, program, i, &req.Materials[i]); err != nil {
			return nil, s.fail(ctx, tx, guard, "CreateMaterials", err)
		}
	}

	// 8) MaterializeQuizzes + CreateQuestions*
	hasPretest, hasPosttest := false, false
	quizByType := map[string]*quizModel.QuizModel{}
	for i := range canonical {
		cq := &canonical[i]
		quiz, ok := quizByType[cq.Type]
		if !ok {
			quiz, err = getOrCreateQuiz(tx, program, cq.Type, s.quizDefaultsFor(req, cq.Type))
			if err != nil {
				return nil, s.fail(ctx, tx, guard, "MaterializeQuizzes", err)
			}
			quizByType[cq.Type] = quiz
		}

		if err := s.createQuestion(ctx, tx, resolver, program, quiz, cq); err != nil {
			return nil, s.fail(ctx, tx, guard, "CreateQuestions", err)
		}
		if cq.Type == quizModel.QuizTypePretest {
			hasPretest = true
		} else {
			hasPosttest = true
		}
	}

	// 9) FinalizeQuizCounts
	if err := finalizeQuizCounts(tx, program.ProgramID); err != nil {
		return nil, s.fail(ctx, tx, guard, "FinalizeQuizCounts", err)
	}

	// 10) UpdateProgramFlags — dari soal yang BENAR-BENAR tersimpan, bukan
	// dari keberadaan header quiz (header bisa saja kosong)
	if err := tx.Model(program).Updates(map[string]any{
		"program_has_pretest":  hasPretest,
		"program_has_posttest": hasPosttest,
	}).Error; err != nil {
		return nil, s.fail(ctx, tx, guard, "UpdateProgramFlags", err)
	}
	program.ProgramHasPretest = hasPretest
	program.ProgramHasPosttest = hasPosttest

	// 11) Commit
	if err := tx.Commit().Error; err != nil {
		return nil, s.fail(ctx, tx, guard, "Commit", err)
	}
	guard.Disarm()

	log.Printf("[ASSEMBLE] ✅ program_id=%s materials=%d questions=%d pretest=%v posttest=%v",
		program.ProgramID, len(req.Materials), len(canonical), hasPretest, hasPosttest)
	return program, nil
}

// fail = satu-satunya jalur kegagalan: rollback DB, lalu hapus semua file
// dari ledger. Kalau cleanup-nya sendiri gagal, itu storage drift — dibunyikan
// keras (PartialCleanupFailed + log path persis), bukan ditelan.
func (s *AssemblyService) fail(ctx context.Context, tx *gorm.DB, guard *CompensationGuard, step string, err error) error {
	if rbErr := tx.Rollback().Error; rbErr != nil && !errors.Is(rbErr, gorm.ErrInvalidTransaction) {
		log.Printf("[ASSEMBLE] rollback err: %v", rbErr)
	}

	cause := coerce(step, err)
	if orphans := guard.Release(ctx); len(orphans) > 0 {
		log.Printf("[ASSEMBLE] ❌ PARTIAL CLEANUP: file orphan butuh rekonsiliasi manual: %v", orphans)
		return &AssemblyError{
			Kind:        KindPartialCleanupFailed,
			Step:        cause.Step,
			Err:         cause,
			OrphanPaths: orphans,
		}
	}
	return cause
}

func validateMaterialEntries(entries []dto.MaterialEntry) error {
	for i := range entries {
		e := &entries[i]
		hasFile := e.HasFileRef()
		hasURL := e.MaterialExternalURL != ""
		if hasFile && hasURL {
			return validationErr(fmt.Sprintf("materials[%d]", i),
				errors.New("material tidak boleh file dan link eksternal sekaligus"))
		}
		if !hasFile && !hasURL {
			return validationErr(fmt.Sprintf("materials[%d]", i),
				errors.New("material wajib bawa file atau link eksternal"))
		}
	}
	return nil
}

func (s *AssemblyService) createMaterial(ctx context.Context, tx *gorm.DB, resolver *assetResolver, program *programModel.ProgramModel, idx int, e *dto.MaterialEntry) error {
	order := e.MaterialOrder
	if order == 0 {
		order = idx + 1
	}
	mat := &programModel.MaterialModel{
		MaterialProgramID:       program.ProgramID,
		MaterialTitle:           e.MaterialTitle,
		MaterialDescription:     e.MaterialDescription,
		MaterialOrder:           order,
		MaterialDurationMinutes: e.MaterialDurationMinutes,
	}

	if e.MaterialExternalURL != "" {
		mat.MaterialExternalURL = &e.MaterialExternalURL
	} else {
		// Material file: wajib resolve — gagal di sini menggagalkan SELURUH
		// pembuatan program, bukan skip satu material.
		field := fmt.Sprintf("materials[%d]", idx)
		asset, err := resolver.Resolve(ctx, "CreateMaterials", storage.DirMaterials, field, AssetInput{
			File:     e.MaterialFile,
			TempPath: e.MaterialTempPath,
			DataURI:  e.MaterialDataURI,
		})
		if err != nil {
			return err
		}
		if asset == nil {
			return resolutionErr("CreateMaterials", field, errors.New("referensi file material tidak dikenali"))
		}
		mat.MaterialFilePath = &asset.Path
		mat.MaterialFileURL = &asset.PublicURL
		mat.MaterialFileExt = &asset.Ext
		mat.MaterialFileSize = &asset.Size
		if asset.OriginalName != "" {
			mat.MaterialOriginalName = &asset.OriginalName
		}
	}

	return tx.Create(mat).Error
}

func (s *AssemblyService) createQuestion(ctx context.Context, tx *gorm.DB, resolver *assetResolver, program *programModel.ProgramModel, quiz *quizModel.QuizModel, cq *CanonicalQuestion) error {
	q := &quizModel.QuestionModel{
		QuestionProgramID:   program.ProgramID,
		QuestionQuizID:      quiz.QuizID,
		QuestionText:        cq.Text,
		QuestionCorrect:     cq.Correct,
		QuestionExplanation: cq.Explanation,
		QuestionDifficulty:  cq.Difficulty,
		QuestionOrder:       cq.Order,
	}

	var opts [4]quizModel.QuestionOption
	for i, text := range cq.OptionTexts {
		opts[i] = quizModel.QuestionOption{Label: quizModel.OptionLabels[i], Text: text}
	}
	if err := q.SetOptions(opts); err != nil {
		return err
	}

	// Gambar soal opsional — file dulu, baru row
	field := fmt.Sprintf("%s_questions[%d]", cq.Type, cq.Order)
	asset, err := resolver.Resolve(ctx, "CreateQuestions", storage.DirQuestions, field, cq.Image)
	if err != nil {
		return err
	}
	if asset != nil {
		q.QuestionImageURL = &asset.PublicURL
		q.QuestionImagePath = &asset.Path
	}

	return tx.Create(q).Error
}

func (s *AssemblyService) quizDefaultsFor(req *dto.AssembleProgramRequest, qType string) quizDefaults {
	if qType == quizModel.QuizTypePretest {
		return quizDefaults{TimeLimitMinutes: req.PretestTimeLimitMinutes, PassingScore: req.PretestPassingScore}
	}
	return quizDefaults{TimeLimitMinutes: req.PosttestTimeLimitMinutes, PassingScore: req.PosttestPassingScore}
}
