package service

import (
	"testing"

	"spm_tracker_backend/internal/model"
	"spm_tracker_backend/internal/repository"
	"spm_tracker_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newResultService(t *testing.T) *ResultService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.ExamResult{}, &model.ResultQuestion{}))
	return NewResultService(repository.NewResultRepository(db))
}

func samplePayload(userID string) *model.UpsertResultPayload {
	return &model.UpsertResultPayload{
		UserID:    userID,
		State:     "Selangor",
		Year:      2025,
		PaperCode: model.Paper1,
		DateDone:  "2025-01-10",
		Questions: []model.QuestionScoreInput{
			{QuestionNo: 1, Section: "A", MaxScore: 5, Score: intPtr(5)},
			{QuestionNo: 2, Section: "A", MaxScore: 7, Score: intPtr(4)},
			{QuestionNo: 3, Section: "A", MaxScore: 6, Score: nil},
		},
	}
}

func TestUpsertResultComputesTotals(t *testing.T) {
	svc := newResultService(t)

	result, err := svc.UpsertResult(samplePayload("student-1"))
	require.NoError(t, err)

	// 未作答按 0 计总分，分值照常计入
	assert.Equal(t, 9, result.TotalScore)
	assert.Equal(t, 18, result.TotalMax)
	assert.Len(t, result.Questions, 3)
}

func TestUpsertResultClampsScores(t *testing.T) {
	svc := newResultService(t)

	payload := samplePayload("student-1")
	payload.Questions = []model.QuestionScoreInput{
		{QuestionNo: 1, Section: "A", MaxScore: 5, Score: intPtr(-3)},
		{QuestionNo: 2, Section: "A", MaxScore: 6, Score: intPtr(10)},
	}

	result, err := svc.UpsertResult(payload)
	require.NoError(t, err)

	assert.Equal(t, 0, *result.Questions[0].Score)
	assert.Equal(t, 6, *result.Questions[1].Score)
	assert.Equal(t, 6, result.TotalScore)
	assert.Equal(t, 11, result.TotalMax)
}

func TestUpsertResultIdempotentKey(t *testing.T) {
	svc := newResultService(t)

	first, err := svc.UpsertResult(samplePayload("student-1"))
	require.NoError(t, err)

	payload := samplePayload("student-1")
	payload.DateDone = "2025-02-01"
	second, err := svc.UpsertResult(payload)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	results, err := svc.ListResults("student-1")
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "2025-02-01", results[0].DateDone)
}

func TestUpsertResultRejectsBadInput(t *testing.T) {
	svc := newResultService(t)

	payload := samplePayload("student-1")
	payload.PaperCode = model.PaperCode("P9")
	_, err := svc.UpsertResult(payload)
	assert.ErrorIs(t, err, util.ErrUnknownPaperCode)

	payload = samplePayload("student-1")
	payload.Questions = nil
	_, err = svc.UpsertResult(payload)
	assert.ErrorIs(t, err, util.ErrEmptyQuestions)
}

func TestDeleteResultNotFound(t *testing.T) {
	svc := newResultService(t)

	err := svc.DeleteResult("student-1", "missing")
	assert.ErrorIs(t, err, util.ErrResultNotFound)
}

func TestDeleteResultRemoves(t *testing.T) {
	svc := newResultService(t)

	result, err := svc.UpsertResult(samplePayload("student-1"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteResult("student-1", result.ID))

	_, err = svc.GetResult("student-1", result.ID)
	assert.ErrorIs(t, err, util.ErrResultNotFound)
}

func TestUpsertResultFullBlueprint(t *testing.T) {
	svc := newResultService(t)

	payload := samplePayload("student-1")
	payload.Questions = nil
	for _, item := range model.Blueprint(model.Paper1) {
		payload.Questions = append(payload.Questions, model.QuestionScoreInput{
			QuestionNo: item.QuestionNo,
			Section:    item.Section,
			MaxScore:   item.MaxScore,
			Score:      intPtr(item.MaxScore),
		})
	}

	result, err := svc.UpsertResult(payload)
	require.NoError(t, err)

	assert.Equal(t, 90, result.TotalMax)
	assert.Equal(t, 90, result.TotalScore)
}
