package repository

import (
	"errors"
	"spm_tracker_backend/internal/model"
	"spm_tracker_backend/internal/util"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

func questionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("section, question_no")
}

// ListByUser 返回用户全部成绩记录，按完成日期、更新时间倒序，附带题目明细
func (r *ResultRepository) ListByUser(userID string) ([]model.ExamResult, error) {
	var results []model.ExamResult
	err := r.DB.
		Preload("Questions", questionOrder).
		Where("user_id = ?", userID).
		Order("date_done DESC, updated_at DESC").
		Find(&results).Error
	return results, err
}

func (r *ResultRepository) FindByID(userID, resultID string) (*model.ExamResult, error) {
	var result model.ExamResult
	err := r.DB.
		Preload("Questions", questionOrder).
		Where("user_id = ? AND id = ?", userID, resultID).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrResultNotFound
		}
		return nil, err
	}
	return &result, nil
}

// Upsert 按自然键 (user_id, state, year, paper_code) 原子替换成绩记录：
// 命中时更新标量字段并整体重建题目明细，未命中时新建；整个过程在一个事务内完成
func (r *ResultRepository) Upsert(result *model.ExamResult) error {
	questions := result.Questions
	result.Questions = nil

	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.ExamResult
		err := tx.
			Where("user_id = ? AND state = ? AND year = ? AND paper_code = ?",
				result.UserID, result.State, result.Year, result.PaperCode).
			First(&existing).Error

		switch {
		case err == nil:
			result.ID = existing.ID
			result.CreatedAt = existing.CreatedAt

			updates := map[string]interface{}{
				"date_done":      result.DateDone,
				"time_spent_min": result.TimeSpentMin,
				"notes":          result.Notes,
				"total_score":    result.TotalScore,
				"total_max":      result.TotalMax,
			}
			if err := tx.Model(&model.ExamResult{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
				return err
			}
			if err := tx.Where("result_id = ?", existing.ID).Delete(&model.ResultQuestion{}).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			result.ID = model.GenerateUUID()
			if err := tx.Omit("Questions").Create(result).Error; err != nil {
				return err
			}
		default:
			return err
		}

		for i := range questions {
			questions[i].ID = 0
			questions[i].ResultID = result.ID
		}
		if err := tx.Create(&questions).Error; err != nil {
			return err
		}

		return nil
	})
}

// Delete 删除成绩记录及其全部题目明细，返回是否真的删掉了东西。
// 题目明细先删、主记录后删，外键约束下顺序不能反
func (r *ResultRepository) Delete(userID, resultID string) (bool, error) {
	removed := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.ExamResult
		err := tx.Select("id").
			Where("id = ? AND user_id = ?", resultID, userID).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Where("result_id = ?", existing.ID).Delete(&model.ResultQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.ExamResult{}, "id = ?", existing.ID).Error; err != nil {
			return err
		}
		removed = true
		return nil
	})
	return removed, err
}
