package model

// BlueprintItem 试卷蓝图中的一道题：分区、题号、满分
type BlueprintItem struct {
	Section    string `json:"section"`
	QuestionNo int    `json:"questionNumber"`
	MaxScore   int    `json:"maxScore"`
}

// PaperBlueprints SPM 高级数学试卷结构（固定配置，非用户可编辑）
// P1 满分 90，P2 满分 94
var PaperBlueprints = map[PaperCode][]BlueprintItem{
	Paper1: {
		{Section: "A", QuestionNo: 1, MaxScore: 5},
		{Section: "A", QuestionNo: 2, MaxScore: 7},
		{Section: "A", QuestionNo: 3, MaxScore: 6},
		{Section: "A", QuestionNo: 4, MaxScore: 6},
		{Section: "A", QuestionNo: 5, MaxScore: 5},
		{Section: "A", QuestionNo: 6, MaxScore: 5},
		{Section: "A", QuestionNo: 7, MaxScore: 5},
		{Section: "A", QuestionNo: 8, MaxScore: 5},
		{Section: "A", QuestionNo: 9, MaxScore: 5},
		{Section: "A", QuestionNo: 10, MaxScore: 5},
		{Section: "A", QuestionNo: 11, MaxScore: 6},
		{Section: "A", QuestionNo: 12, MaxScore: 6},
		{Section: "B", QuestionNo: 13, MaxScore: 8},
		{Section: "B", QuestionNo: 14, MaxScore: 8},
		{Section: "B", QuestionNo: 15, MaxScore: 8},
	},
	Paper2: {
		{Section: "A", QuestionNo: 1, MaxScore: 6},
		{Section: "A", QuestionNo: 2, MaxScore: 6},
		{Section: "A", QuestionNo: 3, MaxScore: 6},
		{Section: "A", QuestionNo: 4, MaxScore: 7},
		{Section: "A", QuestionNo: 5, MaxScore: 7},
		{Section: "A", QuestionNo: 6, MaxScore: 7},
		{Section: "A", QuestionNo: 7, MaxScore: 7},
		{Section: "B", QuestionNo: 8, MaxScore: 12},
		{Section: "B", QuestionNo: 9, MaxScore: 12},
		{Section: "B", QuestionNo: 10, MaxScore: 12},
		{Section: "B", QuestionNo: 11, MaxScore: 12},
	},
}

// Blueprint 返回指定卷别的题目蓝图，未知卷别返回 nil
func Blueprint(paper PaperCode) []BlueprintItem {
	return PaperBlueprints[paper]
}

// BlueprintFullMark 蓝图满分合计
func BlueprintFullMark(paper PaperCode) int {
	total := 0
	for _, item := range PaperBlueprints[paper] {
		total += item.MaxScore
	}
	return total
}
