package model

type TrendMode string

const (
	TrendPercent TrendMode = "percent"
	TrendTotal   TrendMode = "total"
)

// KpiCard 仪表盘顶部指标卡
type KpiCard struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Trend  string `json:"trend"`
	Icon   string `json:"icon"`
	Accent string `json:"accent"`
}

// ChartPoint 趋势图坐标点，X/Y 已归一化到 0-100 绘图空间
type ChartPoint struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Label   string  `json:"label"`
	Summary string  `json:"summary"`
}

// ChartSeries 趋势图序列，含 SVG 路径字符串
type ChartSeries struct {
	Points   []ChartPoint `json:"points"`
	LinePath string       `json:"linePath"`
	AreaPath string       `json:"areaPath"`
}

// WeakLink 近期得分率最低的题目维度
type WeakLink struct {
	Subtopic string `json:"subtopic"`
	Score    int    `json:"score"`
	Delta    int    `json:"delta"`
	Attempts int    `json:"attempts"`
}

// DashboardView 仪表盘聚合响应
type DashboardView struct {
	Kpis            []KpiCard        `json:"kpis"`
	WeakLinks       []WeakLink       `json:"weakLinks"`
	KnowledgeChains []KnowledgeChain `json:"knowledgeChains"`
}
