package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"spm_tracker_backend/internal/model"
	"spm_tracker_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	questionCacheKey = "spm_tracker:question_bank"
	questionCacheTTL = time.Hour
)

// QuestionService 题库元数据存取：data/questions.json 为准，Redis 做一层读缓存
type QuestionService struct {
	path  string
	redis *redis.Client
	mu    sync.Mutex
}

func NewQuestionService(path string, redisClient *redis.Client) *QuestionService {
	return &QuestionService{path: path, redis: redisClient}
}

// ListQuestions 返回全部题库条目，优先走 Redis 缓存，未命中再读文件并回填
func (s *QuestionService) ListQuestions(ctx context.Context) ([]model.BankQuestion, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, questionCacheKey).Result()
		if err == nil {
			var questions []model.BankQuestion
			if jsonErr := json.Unmarshal([]byte(cached), &questions); jsonErr == nil {
				return questions, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("Question cache read failed, falling back to file", zap.Error(err))
		}
	}

	questions, err := s.loadFile()
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, jsonErr := json.Marshal(questions); jsonErr == nil {
			if err := s.redis.Set(ctx, questionCacheKey, data, questionCacheTTL).Err(); err != nil {
				logger.Log.Warn("Question cache write failed", zap.Error(err))
			}
		}
	}
	return questions, nil
}

// SaveQuestions 用非空的完整题库覆写文件并失效缓存，供离线打标流程回写
func (s *QuestionService) SaveQuestions(ctx context.Context, questions []model.BankQuestion) error {
	if len(questions) == 0 {
		return fmt.Errorf("question payload must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeFile(ctx, questions)
}

// UpdateTags 给单个题目写入章节标签。
// 读-改-写全程持锁，定时打标任务和手工脚本并发时不丢标签
func (s *QuestionService) UpdateTags(ctx context.Context, questionID string, tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions, err := s.loadFile()
	if err != nil {
		return err
	}

	found := false
	for i := range questions {
		if questions[i].ID == questionID {
			questions[i].ChapterTags = tags
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("question %s not found", questionID)
	}
	return s.writeFile(ctx, questions)
}

// writeFile 覆写题库文件并失效缓存，调用方必须已持有 s.mu
func (s *QuestionService) writeFile(ctx context.Context, questions []model.BankQuestion) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		return err
	}
	// 先写临时文件再原子改名，避免中途崩溃留下半个文件
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return err
	}

	s.invalidate(ctx)
	logger.Log.Info("Question bank saved", zap.Int("count", len(questions)))
	return nil
}

func (s *QuestionService) loadFile() ([]model.BankQuestion, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.BankQuestion{}, nil
		}
		return nil, err
	}
	var questions []model.BankQuestion
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	return questions, nil
}

func (s *QuestionService) invalidate(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, questionCacheKey).Err(); err != nil {
		logger.Log.Warn("Question cache invalidation failed", zap.Error(err))
	}
}
