package model

// LearningStandard 课程标准条目，从教学大纲 Markdown 解析而来
type LearningStandard struct {
	ID           string  `json:"id"`
	Code         *string `json:"code"`
	Statement    string  `json:"statement"`
	Label        string  `json:"label"`
	SectionTitle *string `json:"sectionTitle"`
	Chapter      string  `json:"chapter"`
	Stage        *string `json:"stage"`
}

type StandardSection struct {
	Title      string              `json:"title"`
	Normalized string              `json:"normalized"`
	Standards  []*LearningStandard `json:"standards"`
}

type StandardChapter struct {
	Title      string              `json:"title"`
	Normalized string              `json:"normalized"`
	Stage      *string             `json:"stage"`
	Sections   []*StandardSection  `json:"sections"`
	Standards  []*LearningStandard `json:"standards"`
}
