package model

// RecognitionResult 外部 OCR 服务对手写答案图片的识别结果
type RecognitionResult struct {
	Type       string  `json:"type"` // formula | text
	Latex      string  `json:"latex"`
	RawText    string  `json:"raw_text"`
	Confidence float64 `json:"confidence"`
	ImageURL   string  `json:"imageUrl,omitempty"` // 上传图片的存档地址
}

// GradeRequest 对比学生答案与标准答案的请求
type GradeRequest struct {
	StudentLatex string `json:"studentLatex" binding:"required"`
	AnswerLatex  string `json:"answerLatex" binding:"required"`
}

// GradeResult 外部符号等价判定服务的结果
type GradeResult struct {
	Correct           bool    `json:"correct"`
	Reason            string  `json:"reason"`
	NormalizedStudent *string `json:"normalized_student"`
	NormalizedAnswer  *string `json:"normalized_answer"`
}
