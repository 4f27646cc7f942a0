package model

// QuestionList 用户收藏的题目清单，持久化为本地 JSON 文件
type QuestionList struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Items     []string `json:"items"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

// ListCreatePayload 新建清单：给出 name，或给出 sourceId 复制已有清单
type ListCreatePayload struct {
	Name     string   `json:"name"`
	Items    []string `json:"items"`
	SourceID string   `json:"sourceId"`
}

// ListPatchPayload 清单的批量修改操作
type ListPatchPayload struct {
	Name        string   `json:"name"`
	AddItems    []string `json:"addItems"`
	RemoveItems []string `json:"removeItems"`
	Duplicate   bool     `json:"duplicate"`
}
