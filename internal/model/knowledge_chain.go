package model

type ChainNodeStatus string

const (
	ChainStrong   ChainNodeStatus = "strong"
	ChainWarning  ChainNodeStatus = "warning"
	ChainCritical ChainNodeStatus = "critical"
)

// ChainNode 知识链中的一个节点，Score/Status 由统计窗口内的得分计算覆盖
type ChainNode struct {
	ID          string          `json:"id"`
	Label       string          `json:"label"`
	Status      ChainNodeStatus `json:"status"`
	Score       int             `json:"score"`
	Definition  string          `json:"definition"`
	Mistakes    string          `json:"mistakes"`
	PracticeSet string          `json:"practiceSet"`
}

// KnowledgeChain 章节维度的知识链视图
type KnowledgeChain struct {
	Chapter string      `json:"chapter"`
	Summary string      `json:"summary"`
	Nodes   []ChainNode `json:"nodes"`
}

// CategoryRule 题目 → 知识类目的映射规则
// 按序匹配：卷别与分区相同且题号不超过 UpToQuestion（0 表示该分区余下全部题目）
type CategoryRule struct {
	Paper        PaperCode
	Section      string
	UpToQuestion int
	Category     string
}

var categoryRules = []CategoryRule{
	{Paper: Paper1, Section: "A", UpToQuestion: 5, Category: "Functions"},
	{Paper: Paper1, Section: "A", UpToQuestion: 10, Category: "Differentiation"},
	{Paper: Paper1, Section: "A", UpToQuestion: 0, Category: "Applications of Derivative"},
	{Paper: Paper1, Section: "B", UpToQuestion: 0, Category: "Applications of Derivative"},
	{Paper: Paper2, Section: "A", UpToQuestion: 4, Category: "Integration Basics"},
	{Paper: Paper2, Section: "A", UpToQuestion: 0, Category: "Integration by Substitution"},
	{Paper: Paper2, Section: "B", UpToQuestion: 0, Category: "Area Under Curve"},
}

// CategoryFor 按映射规则把题目归入知识类目
func CategoryFor(paper PaperCode, section string, questionNo int) (string, bool) {
	for _, rule := range categoryRules {
		if rule.Paper != paper || rule.Section != section {
			continue
		}
		if rule.UpToQuestion == 0 || questionNo <= rule.UpToQuestion {
			return rule.Category, true
		}
	}
	return "", false
}

// NodeCategoryMap 知识链节点 ID → 知识类目名
var NodeCategoryMap = map[string]string{
	"functions":        "Functions",
	"differentiation":  "Differentiation",
	"applications":     "Applications of Derivative",
	"anti-derivatives": "Integration Basics",
	"substitution":     "Integration by Substitution",
	"area":             "Area Under Curve",
}

// KnowledgeChainTemplate 知识链静态模板：章节分组、定义与常见错误文案
var KnowledgeChainTemplate = []KnowledgeChain{
	{
		Chapter: "Differentiation",
		Summary: "Tangent gradient chain needs reinforcement before moving to optimisation questions.",
		Nodes: []ChainNode{
			{
				ID:          "functions",
				Label:       "Functions",
				Status:      ChainStrong,
				Score:       78,
				Definition:  "Relationship mapping each x to a single y. Mastery of notation and domain/range.",
				Mistakes:    "Occasional missing of domain restrictions when composing functions.",
				PracticeSet: "Quick refresh: Function transformations (5Q)",
			},
			{
				ID:          "differentiation",
				Label:       "Differentiation",
				Status:      ChainWarning,
				Score:       64,
				Definition:  "Rate of change using first principles and differentiation rules.",
				Mistakes:    "Loses marks on chain rule and implicit differentiation setup.",
				PracticeSet: "Chain rule warm-up (6Q)",
			},
			{
				ID:          "applications",
				Label:       "Applications of Derivative",
				Status:      ChainCritical,
				Score:       42,
				Definition:  "Apply derivatives for tangents, normals, optimisation, and related rates.",
				Mistakes:    "Algebra slips when substituting point-slope into tangent equations.",
				PracticeSet: "Targeted tangent + normal set (5Q)",
			},
		},
	},
	{
		Chapter: "Integration",
		Summary: "Techniques are improving, but definite integrals with substitution still inconsistent.",
		Nodes: []ChainNode{
			{
				ID:          "anti-derivatives",
				Label:       "Anti-derivatives",
				Status:      ChainStrong,
				Score:       82,
				Definition:  "Reverse differentiation, including power, exponential, and basic trig forms.",
				Mistakes:    "Generally solid; minor slips on constants of integration.",
				PracticeSet: "Mixed anti-derivative drill (4Q)",
			},
			{
				ID:          "substitution",
				Label:       "Integration by Substitution",
				Status:      ChainWarning,
				Score:       58,
				Definition:  "Change of variables to simplify integral expressions.",
				Mistakes:    "Forgets to adjust limits after substitution in definite integrals.",
				PracticeSet: "Substitution with bounds (5Q)",
			},
			{
				ID:          "area",
				Label:       "Area Under Curve",
				Status:      ChainWarning,
				Score:       52,
				Definition:  "Using definite integrals to compute area between curves and axes.",
				Mistakes:    "Mixes up upper/lower function when curves intersect twice.",
				PracticeSet: "Sketch + area blend (4Q)",
			},
		},
	},
}
