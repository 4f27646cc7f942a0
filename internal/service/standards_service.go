package service

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"spm_tracker_backend/internal/model"
)

var (
	standardCodeRe  = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)*)\s+(.*)$`)
	inlineHeadingRe = regexp.MustCompile(`\s*##[^#]+$`)
	formPrefixRe    = regexp.MustCompile(`form\s+\d+`)
	chapterPrefixRe = regexp.MustCompile(`chapter\s+\d+`)
	nonAlnumRe      = regexp.MustCompile(`[^a-z0-9]+`)
	edgeDashRe      = regexp.MustCompile(`^-+|-+$`)
	nonCodeCharsRe  = regexp.MustCompile(`[^0-9.]`)
	repeatedDotRe   = regexp.MustCompile(`\.+`)
)

// StandardsService 解析教学大纲 Markdown 为章节/小节/课程标准的树形结构
// 约定格式：## 学段、### 章节、#### 小节、- [编号] 描述
type StandardsService struct {
	path string
}

func NewStandardsService(path string) *StandardsService {
	return &StandardsService{path: path}
}

func (s *StandardsService) LoadChapters() ([]*model.StandardChapter, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read learning standards: %w", err)
	}
	return ParseLearningStandards(string(data)), nil
}

// ParseLearningStandards 逐行扫描 Markdown，章节按规范化后的键去重合并
func ParseLearningStandards(markdown string) []*model.StandardChapter {
	var chapters []*model.StandardChapter
	index := map[string]*model.StandardChapter{}

	var currentStage *string
	var currentChapter *model.StandardChapter
	currentSection := ""

	for _, rawLine := range strings.Split(markdown, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(rawLine, "\r"))
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "## ") && !strings.HasPrefix(line, "###"):
			stage := strings.TrimSpace(strings.TrimPrefix(line, "## "))
			currentStage = &stage

		case strings.HasPrefix(line, "### ") && !strings.HasPrefix(line, "####"):
			title := strings.TrimSpace(strings.TrimPrefix(line, "### "))
			key := buildChapterKey(title)
			chapter, ok := index[key]
			if !ok {
				chapter = &model.StandardChapter{
					Title:      title,
					Normalized: key,
					Stage:      currentStage,
					Sections:   []*model.StandardSection{},
					Standards:  []*model.LearningStandard{},
				}
				index[key] = chapter
				chapters = append(chapters, chapter)
			}
			if chapter.Stage == nil {
				chapter.Stage = currentStage
			}
			currentChapter = chapter
			currentSection = ""

		case strings.HasPrefix(line, "#### "):
			currentSection = strings.TrimSpace(strings.TrimPrefix(line, "#### "))

		case strings.HasPrefix(line, "- "):
			if currentChapter == nil {
				continue
			}
			entry := cleanStandardLine(strings.TrimSpace(line[2:]))
			if entry == "" {
				continue
			}

			var code *string
			statement := entry
			if m := standardCodeRe.FindStringSubmatch(entry); m != nil {
				c := strings.TrimSpace(m[1])
				code = &c
				statement = strings.TrimSpace(m[2])
			}

			idBase := fmt.Sprintf("%d", len(currentChapter.Standards)+1)
			if code != nil {
				idBase = repeatedDotRe.ReplaceAllString(nonCodeCharsRe.ReplaceAllString(*code, ""), "_")
			}

			section := getOrCreateSection(currentChapter, currentSection)

			label := statement
			if code != nil {
				label = *code + " " + statement
			}
			sectionTitle := section.Title
			standard := &model.LearningStandard{
				ID:           fmt.Sprintf("%s-%s", currentChapter.Normalized, idBase),
				Code:         code,
				Statement:    statement,
				Label:        label,
				SectionTitle: &sectionTitle,
				Chapter:      currentChapter.Title,
				Stage:        currentChapter.Stage,
			}
			currentChapter.Standards = append(currentChapter.Standards, standard)
			section.Standards = append(section.Standards, standard)
		}
	}

	return chapters
}

// cleanStandardLine 去掉条目尾部误拼进来的内联标题
func cleanStandardLine(line string) string {
	return strings.TrimSpace(inlineHeadingRe.ReplaceAllString(line, ""))
}

// buildChapterKey 章节标题 → 规范化键：去掉 Form N / Chapter N 前缀，
// 冒号后取最后一段，非字母数字折叠成连字符
func buildChapterKey(raw string) string {
	key := strings.ToLower(raw)
	key = formPrefixRe.ReplaceAllString(key, "")
	key = chapterPrefixRe.ReplaceAllString(key, "")
	parts := strings.Split(key, ":")
	key = strings.TrimSpace(parts[len(parts)-1])
	key = nonAlnumRe.ReplaceAllString(key, "-")
	return edgeDashRe.ReplaceAllString(key, "")
}

func getOrCreateSection(chapter *model.StandardChapter, title string) *model.StandardSection {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "General"
	}
	for _, section := range chapter.Sections {
		if section.Title == title {
			return section
		}
	}
	section := &model.StandardSection{
		Title:      title,
		Normalized: buildChapterKey(title),
		Standards:  []*model.LearningStandard{},
	}
	chapter.Sections = append(chapter.Sections, section)
	return section
}
