package model

import "time"

type PaperCode string

const (
	Paper1 PaperCode = "P1"
	Paper2 PaperCode = "P2"
)

// ExamResult 一次真题套卷的自评成绩记录
// 同一用户对同一套卷（州属+年份+卷别）只保留最新一条，重复提交时原地覆盖
type ExamResult struct {
	ID           string           `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID       string           `gorm:"type:varchar(64);uniqueIndex:idx_attempt_key,priority:1" json:"userId"`
	State        string           `gorm:"type:varchar(64);uniqueIndex:idx_attempt_key,priority:2" json:"state"`
	Year         int              `gorm:"uniqueIndex:idx_attempt_key,priority:3" json:"year"`
	PaperCode    PaperCode        `gorm:"type:varchar(8);uniqueIndex:idx_attempt_key,priority:4" json:"paperCode"`
	DateDone     string           `gorm:"type:varchar(10)" json:"dateDone"`
	TimeSpentMin *int             `json:"timeSpentMin"`
	Notes        *string          `gorm:"type:text" json:"notes"`
	TotalScore   int              `gorm:"not null" json:"totalScore"`
	TotalMax     int              `gorm:"not null" json:"totalMax"`
	Questions    []ResultQuestion `gorm:"foreignKey:ResultID;references:ID" json:"questions"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

func (ExamResult) TableName() string {
	return "exam_results"
}

// ResultQuestion 套卷中单题的得分明细
type ResultQuestion struct {
	ID         uint    `gorm:"primaryKey;autoIncrement" json:"-"`
	ResultID   string  `gorm:"index;type:varchar(36)" json:"-"`
	QuestionNo int     `gorm:"column:question_no;not null" json:"questionNumber"`
	Section    string  `gorm:"type:varchar(8);not null" json:"section"`
	MaxScore   int     `gorm:"not null" json:"maxScore"`
	Score      *int    `json:"score"` // null 表示未作答/未评分
	Chapter    *string `gorm:"type:varchar(128)" json:"chapter"`
	Subtopic   *string `gorm:"type:varchar(128)" json:"subtopic"`
	Cognitive  *string `gorm:"type:varchar(64)" json:"cognitiveLevel"`
}

func (ResultQuestion) TableName() string {
	return "exam_result_questions"
}

// UpsertResultPayload 提交成绩的请求体，userId 由身份中间件注入
type UpsertResultPayload struct {
	UserID       string               `json:"-"`
	State        string               `json:"state" binding:"required"`
	Year         int                  `json:"year" binding:"required"`
	PaperCode    PaperCode            `json:"paperCode" binding:"required,oneof=P1 P2"`
	DateDone     string               `json:"dateDone" binding:"required"`
	TimeSpentMin *int                 `json:"timeSpentMin" binding:"omitempty,gte=0"`
	Notes        *string              `json:"notes"`
	Questions    []QuestionScoreInput `json:"questions" binding:"required,min=1,dive"`
}

type QuestionScoreInput struct {
	QuestionNo int     `json:"questionNumber" binding:"required,gt=0"`
	Section    string  `json:"section" binding:"required"`
	MaxScore   int     `json:"maxScore" binding:"required,gt=0"`
	Score      *int    `json:"score"`
	Chapter    *string `json:"chapter"`
	Subtopic   *string `json:"subtopic"`
	Cognitive  *string `json:"cognitiveLevel"`
}
