package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RecommendationActive   = "active"
	RecommendationArchived = "archived"
)

// RecommendationSet 每周生成的智能刷题推荐集
// 由本服务之外的离线流程生成与归档，这里只做只读消费
type RecommendationSet struct {
	ID               string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID           string     `gorm:"index;type:varchar(64)" json:"userId"`
	WeekStart        string     `gorm:"type:varchar(10)" json:"weekStart"`
	Subtopics        StringList `gorm:"type:json" json:"subtopics"`
	QuestionIDs      StringList `gorm:"type:json" json:"questionIds"`
	EstimatedTimeMin int        `json:"estimatedTimeMin"`
	Status           string     `gorm:"type:varchar(16);index" json:"status"`
	Title            string     `gorm:"type:varchar(255)" json:"title"`
	Description      string     `gorm:"type:text" json:"description"`
	CarriesForward   bool       `json:"carriesForward"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func (RecommendationSet) TableName() string {
	return "recommendation_sets"
}

func (r *RecommendationSet) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = GenerateUUID()
	}
	return
}
