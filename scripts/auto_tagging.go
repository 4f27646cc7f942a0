// 手动触发 AI 自动打标签脚本
//
// 该功能已集成到主应用的后台定时任务中（每 24 小时自动执行一次）。
// 此脚本仅用于手动触发，例如首次部署或题库批量导入新题之后。
//
// 用法: go run scripts/auto_tagging.go

package main

import (
	"context"
	"log"

	"spm_tracker_backend/internal/config"
	"spm_tracker_backend/internal/service"
	"spm_tracker_backend/pkg/database"
	"spm_tracker_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Printf("Redis 连接失败，跳过缓存: %v", err)
		rdb = nil
	}

	questionService := service.NewQuestionService(cfg.Tracker.QuestionsPath, rdb)
	standardsService := service.NewStandardsService(cfg.Tracker.StandardsPath)
	aiService := service.NewAIService(cfg.AI)
	autoTagging := service.NewAutoTaggingService(questionService, standardsService, aiService)

	log.Println("手动触发自动打标签任务...")
	autoTagging.RunAutoTagging(context.Background())
	log.Println("完成！")
}
