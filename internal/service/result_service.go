package service

import (
	"spm_tracker_backend/internal/model"
	"spm_tracker_backend/internal/repository"
	"spm_tracker_backend/internal/util"
	"spm_tracker_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

// ResultService 成绩记录的写入与查询
type ResultService struct {
	ResultRepo *repository.ResultRepository
}

func NewResultService(resultRepo *repository.ResultRepository) *ResultService {
	return &ResultService{ResultRepo: resultRepo}
}

func (s *ResultService) ListResults(userID string) ([]model.ExamResult, error) {
	return s.ResultRepo.ListByUser(userID)
}

func (s *ResultService) GetResult(userID, resultID string) (*model.ExamResult, error) {
	return s.ResultRepo.FindByID(userID, resultID)
}

// UpsertResult 规范化提交数据并按自然键写入：
// 单题得分被钳制到 [0, maxScore]，总分总分值在服务端重新计算，客户端给的合计一律忽略
func (s *ResultService) UpsertResult(payload *model.UpsertResultPayload) (*model.ExamResult, error) {
	if payload.PaperCode != model.Paper1 && payload.PaperCode != model.Paper2 {
		return nil, util.ErrUnknownPaperCode
	}
	if len(payload.Questions) == 0 {
		return nil, util.ErrEmptyQuestions
	}

	dateDone := payload.DateDone
	if _, err := time.Parse(util.DateFormat, dateDone); err != nil {
		logger.Log.Warn("Unparseable date_done on submit, keeping raw value",
			zap.String("userId", payload.UserID),
			zap.String("dateDone", dateDone))
	}

	questions := make([]model.ResultQuestion, 0, len(payload.Questions))
	totalScore, totalMax := 0, 0
	for _, q := range payload.Questions {
		score := q.Score
		if score != nil {
			clamped := clampScore(*score, q.MaxScore)
			score = &clamped
			totalScore += clamped
		}
		totalMax += q.MaxScore

		questions = append(questions, model.ResultQuestion{
			QuestionNo: q.QuestionNo,
			Section:    q.Section,
			MaxScore:   q.MaxScore,
			Score:      score,
			Chapter:    q.Chapter,
			Subtopic:   q.Subtopic,
			Cognitive:  q.Cognitive,
		})
	}

	result := &model.ExamResult{
		UserID:       payload.UserID,
		State:        payload.State,
		Year:         payload.Year,
		PaperCode:    payload.PaperCode,
		DateDone:     dateDone,
		TimeSpentMin: payload.TimeSpentMin,
		Notes:        payload.Notes,
		TotalScore:   totalScore,
		TotalMax:     totalMax,
		Questions:    questions,
	}

	if err := s.ResultRepo.Upsert(result); err != nil {
		return nil, err
	}

	logger.Log.Info("Exam result saved",
		zap.String("userId", result.UserID),
		zap.String("resultId", result.ID),
		zap.String("state", result.State),
		zap.Int("year", result.Year),
		zap.String("paperCode", string(result.PaperCode)),
		zap.Int("totalScore", result.TotalScore),
		zap.Int("totalMax", result.TotalMax))

	return s.ResultRepo.FindByID(result.UserID, result.ID)
}

func (s *ResultService) DeleteResult(userID, resultID string) error {
	removed, err := s.ResultRepo.Delete(userID, resultID)
	if err != nil {
		return err
	}
	if !removed {
		return util.ErrResultNotFound
	}
	logger.Log.Info("Exam result deleted",
		zap.String("userId", userID),
		zap.String("resultId", resultID))
	return nil
}

func clampScore(score, maxScore int) int {
	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}
