package database

import (
	"fmt"
	"log"
	"spm_tracker_backend/internal/config"
	"spm_tracker_backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		cfg.Database.Host,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.DBName,
		cfg.Database.Port,
		cfg.Database.SSLMode,
		cfg.Database.TimeZone,
	)

	logMode := logger.Warn
	if cfg.Server.Mode == "debug" {
		logMode = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式默认跳过迁移，除非显式指定 -migrate
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.ExamResult{},
		&model.ResultQuestion{},
		&model.RecommendationSet{},
	); err != nil {
		return err
	}

	seedRecommendations(db)
	return nil
}

// seedRecommendations 在推荐集为空时写入一条示例数据，便于前端联调
func seedRecommendations(db *gorm.DB) {
	var count int64
	db.Model(&model.RecommendationSet{}).Count(&count)
	if count > 0 {
		return
	}

	sample := &model.RecommendationSet{
		UserID:           "local-student",
		WeekStart:        "2025-01-06",
		Title:            "Smart Revision Set",
		Description:      "Focus on chain rule setups and definite integrals with substitution.",
		Subtopics:        []string{"Differentiation", "Integration by Substitution"},
		QuestionIDs:      []string{},
		EstimatedTimeMin: 45,
		Status:           model.RecommendationActive,
		CarriesForward:   false,
	}
	db.Create(sample)
}
