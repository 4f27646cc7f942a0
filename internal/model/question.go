package model

// BankQuestion 题库元数据（data/questions.json），题目本体是静态图片
type BankQuestion struct {
	ID          string   `json:"id"`
	PaperID     string   `json:"paperId"`
	QuestionNo  int      `json:"questionNumber"`
	Year        int      `json:"year"`
	ImageURL    string   `json:"imageUrl"`
	ChapterTags []string `json:"chapterTags"`
}
