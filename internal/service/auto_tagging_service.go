package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"spm_tracker_backend/pkg/logger"

	"go.uber.org/zap"
)

// AutoTaggingService 章节自动标注服务
// 定时扫描题库中 chapterTags 为空的题目，结合教学大纲章节调用 AI 打标并写回
type AutoTaggingService struct {
	questions *QuestionService
	standards *StandardsService
	ai        *AIService
}

func NewAutoTaggingService(questions *QuestionService, standards *StandardsService, ai *AIService) *AutoTaggingService {
	return &AutoTaggingService{questions: questions, standards: standards, ai: ai}
}

// RunAutoTagging 执行一次自动打标签任务
func (s *AutoTaggingService) RunAutoTagging(ctx context.Context) {
	bank, err := s.questions.ListQuestions(ctx)
	if err != nil {
		logger.Log.Error("Failed to load question bank for tagging", zap.Error(err))
		return
	}

	var untagged []string
	byID := map[string]int{}
	for i, q := range bank {
		byID[q.ID] = i
		if len(q.ChapterTags) == 0 {
			untagged = append(untagged, q.ID)
		}
	}
	if len(untagged) == 0 {
		return
	}

	chapterGuide := s.chapterGuide()
	if chapterGuide == "" {
		logger.Log.Warn("No learning standards available, skipping auto tagging")
		return
	}

	logger.Log.Info("Starting question auto tagging", zap.Int("count", len(untagged)))

	tagged := 0
	for _, id := range untagged {
		q := bank[byID[id]]
		prompt := fmt.Sprintf(
			"以下是 SPM 附加数学题库中的一道题目，请根据题目信息从章节列表中选出最相关的 1-3 个章节，"+
				"仅返回章节名，用逗号分隔，不要有多余文字。\n卷别: %s\n题号: %d\n年份: %d\n题目图片: %s",
			q.PaperID, q.QuestionNo, q.Year, q.ImageURL,
		)

		answer, err := s.ai.Chat(prompt, "可选章节列表：\n"+chapterGuide)
		if err != nil {
			logger.Log.Warn("AI tagging request failed", zap.String("questionId", q.ID), zap.Error(err))
			continue
		}

		tags := cleanChapterTags(answer)
		if len(tags) == 0 {
			continue
		}

		if err := s.questions.UpdateTags(ctx, q.ID, tags); err != nil {
			logger.Log.Warn("Failed to persist question tags", zap.String("questionId", q.ID), zap.Error(err))
			continue
		}

		tagged++
		logger.Log.Info("Question tagged",
			zap.String("questionId", q.ID),
			zap.Strings("tags", tags))

		// 避免 AI API 限流，间隔 1 秒
		time.Sleep(time.Second)
	}

	logger.Log.Info("Question auto tagging finished",
		zap.Int("tagged", tagged), zap.Int("total", len(untagged)))
}

// chapterGuide 把教学大纲章节拼成提示词里的候选列表
func (s *AutoTaggingService) chapterGuide() string {
	chapters, err := s.standards.LoadChapters()
	if err != nil {
		logger.Log.Warn("Failed to load learning standards", zap.Error(err))
		return ""
	}

	var b strings.Builder
	for _, chapter := range chapters {
		fmt.Fprintf(&b, "- %s\n", chapter.Title)
	}
	return b.String()
}

// cleanChapterTags 清理 AI 返回的章节文本为标签列表
func cleanChapterTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	raw = strings.Trim(raw, "`")
	raw = strings.ReplaceAll(raw, "、", ",")
	raw = strings.ReplaceAll(raw, "，", ",")
	raw = strings.ReplaceAll(raw, "\n", ",")

	var tags []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(part), "-"))
		if part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}
