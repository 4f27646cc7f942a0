package service

import (
	"fmt"
	"testing"
	"time"

	"spm_tracker_backend/internal/model"
	"spm_tracker_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func init() {
	logger.Log = zap.NewNop()
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func makeResult(dateDone string, score, max int) model.ExamResult {
	return model.ExamResult{
		ID:         model.GenerateUUID(),
		UserID:     "student-1",
		PaperCode:  model.Paper1,
		DateDone:   dateDone,
		TotalScore: score,
		TotalMax:   max,
	}
}

func daysAgo(n int) string {
	return testNow.AddDate(0, 0, -n).Format("2006-01-02")
}

func TestComputeKPIsEmpty(t *testing.T) {
	kpis := ComputeKPIs(nil, 0, testNow)

	assert.Len(t, kpis, 4)
	assert.Equal(t, "—", kpis[0].Value)
	assert.Equal(t, "Log 3 attempts to unlock trend", kpis[0].Trend)
	assert.Equal(t, "0", kpis[1].Value)
	assert.Equal(t, "Target: 4/week", kpis[1].Trend)
	assert.Equal(t, "—", kpis[2].Value)
	assert.Equal(t, "Log attempts this week to unlock trend", kpis[2].Trend)
	assert.Equal(t, "0", kpis[3].Value)
	assert.Equal(t, "Upload a paper to generate sets", kpis[3].Trend)
}

func TestComputeKPIsPlaceholderUnderThreeAttempts(t *testing.T) {
	records := []model.ExamResult{
		makeResult(daysAgo(1), 40, 80),
		makeResult(daysAgo(2), 60, 80),
	}

	kpis := ComputeKPIs(records, 0, testNow)

	// 两条记录合计 100/160 = 62.5 → 63%
	assert.Equal(t, "63%", kpis[0].Value)
	assert.Equal(t, "Log 3 attempts to unlock trend", kpis[0].Trend)
}

func TestComputeKPIsAverageDelta(t *testing.T) {
	// 最近 3 次 80%，再往前 3 次 60%
	var records []model.ExamResult
	for i := 1; i <= 3; i++ {
		records = append(records, makeResult(daysAgo(i), 80, 100))
	}
	for i := 4; i <= 6; i++ {
		records = append(records, makeResult(daysAgo(i*30), 60, 100))
	}

	kpis := ComputeKPIs(records, 2, testNow)

	assert.Equal(t, "80%", kpis[0].Value)
	assert.Equal(t, "+20pp vs prior 3", kpis[0].Trend)
	assert.Equal(t, "2", kpis[3].Value)
	assert.Equal(t, "Smart sets ready", kpis[3].Trend)
}

func TestComputeKPIsErrorRate(t *testing.T) {
	records := []model.ExamResult{
		// 本周窗口（近 7 天）：60% → 错误率 40%
		makeResult(daysAgo(1), 60, 100),
		// 上一个 7 天窗口：80% → 错误率 20%
		makeResult(daysAgo(10), 80, 100),
	}

	kpis := ComputeKPIs(records, 0, testNow)

	assert.Equal(t, "40%", kpis[2].Value)
	assert.Equal(t, "-20pp vs prior week", kpis[2].Trend)
}

func TestComputeKPIsWeeklyCount(t *testing.T) {
	records := []model.ExamResult{
		makeResult(daysAgo(0), 50, 100),
		makeResult(daysAgo(3), 50, 100),
		makeResult(daysAgo(30), 50, 100),
		makeResult("not-a-date", 50, 100),
	}

	kpis := ComputeKPIs(records, 0, testNow)

	assert.Equal(t, "2", kpis[1].Value)
}

func TestComputeKPIsMalformedDatesSortLast(t *testing.T) {
	records := []model.ExamResult{
		makeResult("garbage", 0, 100),
		makeResult(daysAgo(1), 90, 100),
		makeResult(daysAgo(2), 90, 100),
		makeResult(daysAgo(3), 90, 100),
	}

	kpis := ComputeKPIs(records, 0, testNow)

	// 最近 3 次不包含坏日期的 0 分记录
	assert.Equal(t, "90%", kpis[0].Value)
}

func TestComputeTrendEmpty(t *testing.T) {
	series := ComputeTrend(nil, model.TrendPercent, 90, testNow)

	assert.Empty(t, series.Points)
	assert.Empty(t, series.LinePath)
	assert.Empty(t, series.AreaPath)
}

func TestComputeTrendSinglePoint(t *testing.T) {
	records := []model.ExamResult{makeResult(daysAgo(1), 45, 89)}

	series := ComputeTrend(records, model.TrendPercent, 90, testNow)

	assert.Len(t, series.Points, 1)
	assert.Equal(t, 50.0, series.Points[0].X)
	assert.Equal(t, "51%", series.Points[0].Summary)
	assert.Contains(t, series.AreaPath, "L 100 100 L 0 100 Z")
}

func TestComputeTrendCapsAtTwelveBuckets(t *testing.T) {
	var records []model.ExamResult
	for i := 1; i <= 20; i++ {
		records = append(records, makeResult(daysAgo(i), 50+i, 100))
	}

	series := ComputeTrend(records, model.TrendPercent, 90, testNow)

	assert.Len(t, series.Points, 12)
	// 保留的是最近 12 天，升序排列
	assert.Equal(t, testNow.AddDate(0, 0, -12).Format("Jan 2"), series.Points[0].Label)
	assert.Equal(t, testNow.AddDate(0, 0, -1).Format("Jan 2"), series.Points[11].Label)
	assert.Equal(t, 0.0, series.Points[0].X)
	assert.Equal(t, 100.0, series.Points[11].X)
}

func TestComputeTrendGroupsSameDay(t *testing.T) {
	day := daysAgo(2)
	records := []model.ExamResult{
		makeResult(day, 40, 100),
		makeResult(day, 60, 100),
		makeResult(daysAgo(5), 30, 100),
	}

	series := ComputeTrend(records, model.TrendPercent, 90, testNow)

	assert.Len(t, series.Points, 2)
	// 同一天两份卷合计 100/200 = 50%
	assert.Equal(t, "50%", series.Points[1].Summary)
}

func TestComputeTrendTotalMode(t *testing.T) {
	day := daysAgo(2)
	records := []model.ExamResult{
		makeResult(day, 40, 89),
		makeResult(day, 60, 89),
	}

	series := ComputeTrend(records, model.TrendTotal, 90, testNow)

	assert.Len(t, series.Points, 1)
	assert.Equal(t, "50 marks", series.Points[0].Summary)
}

func weakLinkResult(dateDone string, paper model.PaperCode, questions []model.ResultQuestion) model.ExamResult {
	r := makeResult(dateDone, 0, 0)
	r.PaperCode = paper
	r.Questions = questions
	return r
}

func TestComputeWeakLinksRanking(t *testing.T) {
	records := []model.ExamResult{
		weakLinkResult(daysAgo(1), model.Paper1, []model.ResultQuestion{
			{QuestionNo: 1, Section: "A", MaxScore: 5, Score: intPtr(1)},
			{QuestionNo: 2, Section: "A", MaxScore: 7, Score: intPtr(7)},
			{QuestionNo: 13, Section: "B", MaxScore: 8, Score: intPtr(4)},
			// 未作答：不计 attempts，但计入 maxSum
			{QuestionNo: 3, Section: "A", MaxScore: 6, Score: nil},
		}),
	}

	links := ComputeWeakLinks(records, 7, 3, testNow)

	assert.Len(t, links, 3)
	assert.Equal(t, "Section A — Q1", links[0].Subtopic)
	assert.Equal(t, 20, links[0].Score)
	assert.Equal(t, 1, links[0].Attempts)
	assert.Equal(t, "Section B — Q13", links[1].Subtopic)
	assert.Equal(t, 50, links[1].Score)
	// Q3 无作答被剔除，Q2 100% 排第三
	assert.Equal(t, "Section A — Q2", links[2].Subtopic)
}

func TestComputeWeakLinksDeterministicTieBreak(t *testing.T) {
	questions := []model.ResultQuestion{
		{QuestionNo: 2, Section: "A", MaxScore: 5, Score: intPtr(2)},
		{QuestionNo: 1, Section: "A", MaxScore: 5, Score: intPtr(2)},
		{QuestionNo: 13, Section: "B", MaxScore: 5, Score: intPtr(2)},
	}
	records := []model.ExamResult{weakLinkResult(daysAgo(1), model.Paper1, questions)}

	for i := 0; i < 5; i++ {
		links := ComputeWeakLinks(records, 7, 3, testNow)
		assert.Equal(t, "Section A — Q1", links[0].Subtopic, "run %d", i)
		assert.Equal(t, "Section A — Q2", links[1].Subtopic, "run %d", i)
		assert.Equal(t, "Section B — Q13", links[2].Subtopic, "run %d", i)
	}
}

func TestComputeWeakLinksIgnoresOldAttempts(t *testing.T) {
	records := []model.ExamResult{
		weakLinkResult(daysAgo(30), model.Paper1, []model.ResultQuestion{
			{QuestionNo: 1, Section: "A", MaxScore: 5, Score: intPtr(0)},
		}),
	}

	links := ComputeWeakLinks(records, 7, 3, testNow)

	assert.Empty(t, links)
}

func TestComputeChapterMasteryNoData(t *testing.T) {
	chains := ComputeChapterMastery(nil, 14, testNow)

	assert.Len(t, chains, len(model.KnowledgeChainTemplate))
	for _, chain := range chains {
		for _, node := range chain.Nodes {
			assert.Equal(t, 0, node.Score)
			assert.Equal(t, model.ChainWarning, node.Status)
		}
	}
}

func TestComputeChapterMasteryStatuses(t *testing.T) {
	records := []model.ExamResult{
		weakLinkResult(daysAgo(1), model.Paper1, []model.ResultQuestion{
			// Functions (P1 A Q1-5): 9/10 → 90% strong
			{QuestionNo: 1, Section: "A", MaxScore: 5, Score: intPtr(5)},
			{QuestionNo: 2, Section: "A", MaxScore: 5, Score: intPtr(4)},
			// Differentiation (P1 A Q6-10): 3/5 → 60% warning
			{QuestionNo: 6, Section: "A", MaxScore: 5, Score: intPtr(3)},
			// Applications (P1 A Q11+): 1/6 → 17% critical
			{QuestionNo: 11, Section: "A", MaxScore: 6, Score: intPtr(1)},
		}),
	}

	chains := ComputeChapterMastery(records, 14, testNow)

	byID := map[string]model.ChainNode{}
	for _, chain := range chains {
		for _, node := range chain.Nodes {
			byID[node.ID] = node
		}
	}

	assert.Equal(t, 90, byID["functions"].Score)
	assert.Equal(t, model.ChainStrong, byID["functions"].Status)
	assert.Equal(t, 60, byID["differentiation"].Score)
	assert.Equal(t, model.ChainWarning, byID["differentiation"].Status)
	assert.Equal(t, 17, byID["applications"].Score)
	assert.Equal(t, model.ChainCritical, byID["applications"].Status)
	// 没有 P2 数据的类目回落到 0 分 warning
	assert.Equal(t, 0, byID["area"].Score)
	assert.Equal(t, model.ChainWarning, byID["area"].Status)
}

func TestComputeChapterMasteryTemplateNotMutated(t *testing.T) {
	original := fmt.Sprintf("%+v", model.KnowledgeChainTemplate)

	records := []model.ExamResult{
		weakLinkResult(daysAgo(1), model.Paper1, []model.ResultQuestion{
			{QuestionNo: 1, Section: "A", MaxScore: 5, Score: intPtr(5)},
		}),
	}
	ComputeChapterMastery(records, 14, testNow)

	assert.Equal(t, original, fmt.Sprintf("%+v", model.KnowledgeChainTemplate))
}
