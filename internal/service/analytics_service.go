package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"spm_tracker_backend/internal/model"
	"spm_tracker_backend/internal/repository"
	"spm_tracker_backend/internal/util"
	"spm_tracker_backend/pkg/logger"

	"go.uber.org/zap"
)

// AnalyticsService 仪表盘统计聚合
// 所有计算函数都是纯函数：输入成绩记录、推荐集和显式注入的当前时间，
// 不读钟表、不访问数据库，方便单测固定时间断言
type AnalyticsService struct {
	ResultRepo         *repository.ResultRepository
	RecommendationRepo *repository.RecommendationRepository
}

func NewAnalyticsService(resultRepo *repository.ResultRepository, recRepo *repository.RecommendationRepository) *AnalyticsService {
	return &AnalyticsService{ResultRepo: resultRepo, RecommendationRepo: recRepo}
}

// Dashboard 返回指标卡、薄弱环节与知识链三块聚合视图
func (s *AnalyticsService) Dashboard(userID string, now time.Time) (*model.DashboardView, error) {
	records, err := s.ResultRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	activeRecs, err := s.RecommendationRepo.CountActive(userID)
	if err != nil {
		return nil, err
	}

	return &model.DashboardView{
		Kpis:            ComputeKPIs(records, int(activeRecs), now),
		WeakLinks:       ComputeWeakLinks(records, 7, 3, now),
		KnowledgeChains: ComputeChapterMastery(records, 14, now),
	}, nil
}

// Trend 返回近 windowDays 天的得分走势序列
func (s *AnalyticsService) Trend(userID string, mode model.TrendMode, windowDays int, now time.Time) (*model.ChartSeries, error) {
	records, err := s.ResultRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	series := ComputeTrend(records, mode, windowDays, now)
	return &series, nil
}

// parseDateDone 解析完成日期；解析失败按零值处理，排序时沉底、统计窗口内不计入
func parseDateDone(raw string) time.Time {
	t, err := time.Parse(util.DateFormat, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// midnight 把时间截断到当天零点（UTC）
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// filterByWindow 取完成日期落在长度为 days 天的滑动窗口内的记录
// offset=0 时窗口的最后一天是今天，offset=7 则是紧邻的上一个窗口，二者首尾相接不重叠
func filterByWindow(records []model.ExamResult, days, offset int, now time.Time) []model.ExamResult {
	end := midnight(now).AddDate(0, 0, 1-offset)
	start := end.AddDate(0, 0, -days)

	var out []model.ExamResult
	for _, r := range records {
		done := parseDateDone(r.DateDone)
		if done.IsZero() {
			continue
		}
		if !done.Before(start) && done.Before(end) {
			out = append(out, r)
		}
	}
	return out
}

// countWithinDays 统计最近 days 天内（含今天）完成的套卷数
func countWithinDays(records []model.ExamResult, days int, now time.Time) int {
	cutoff := midnight(now).AddDate(0, 0, -days)
	count := 0
	for _, r := range records {
		done := parseDateDone(r.DateDone)
		if done.IsZero() {
			continue
		}
		if !done.Before(cutoff) {
			count++
		}
	}
	return count
}

// averagePercent 一组记录的总体得分率（四舍五入）；空集或满分合计为 0 时返回 nil
func averagePercent(records []model.ExamResult) *int {
	scoreSum, maxSum := 0, 0
	for _, r := range records {
		scoreSum += r.TotalScore
		maxSum += r.TotalMax
	}
	if len(records) == 0 || maxSum == 0 {
		return nil
	}
	pct := int(math.Round(float64(scoreSum) / float64(maxSum) * 100))
	return &pct
}

func formatPercent(v *int) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%d%%", *v)
}

// formatDelta 带符号的百分点变化描述，如 "+5pp vs prior 3"
func formatDelta(delta int, suffix string) string {
	sign := ""
	if delta > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%dpp %s", sign, delta, suffix)
}

// ComputeKPIs 计算仪表盘顶部四张指标卡
func ComputeKPIs(records []model.ExamResult, activeRecommendations int, now time.Time) []model.KpiCard {
	sorted := make([]model.ExamResult, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return parseDateDone(sorted[i].DateDone).After(parseDateDone(sorted[j].DateDone))
	})

	var lastThree, prevThree []model.ExamResult
	if len(sorted) > 0 {
		n := len(sorted)
		if n > 3 {
			lastThree = sorted[:3]
		} else {
			lastThree = sorted
		}
		if n > 3 {
			if n > 6 {
				prevThree = sorted[3:6]
			} else {
				prevThree = sorted[3:]
			}
		}
	}

	avgRecent := averagePercent(lastThree)
	avgPrev := averagePercent(prevThree)

	avgTrend := "Log 3 attempts to unlock trend"
	if avgRecent != nil && avgPrev != nil {
		avgTrend = formatDelta(*avgRecent-*avgPrev, "vs prior 3")
	}

	weekCount := countWithinDays(records, 7, now)

	thisWeek := averagePercent(filterByWindow(records, 7, 0, now))
	priorWeek := averagePercent(filterByWindow(records, 7, 7, now))

	errorValue := "—"
	errorTrend := "Log attempts this week to unlock trend"
	if thisWeek != nil {
		errorRate := 100 - *thisWeek
		if errorRate < 0 {
			errorRate = 0
		}
		errorValue = fmt.Sprintf("%d%%", errorRate)
		if priorWeek != nil {
			priorError := 100 - *priorWeek
			if priorError < 0 {
				priorError = 0
			}
			errorTrend = formatDelta(-(errorRate - priorError), "vs prior week")
		}
	}

	recTrend := "Upload a paper to generate sets"
	if activeRecommendations > 0 {
		recTrend = "Smart sets ready"
	}

	return []model.KpiCard{
		{
			Title:  "Avg Score (last 3 attempts)",
			Value:  formatPercent(avgRecent),
			Trend:  avgTrend,
			Icon:   "trending-up",
			Accent: "text-emerald-600",
		},
		{
			Title:  "Papers Completed (this week)",
			Value:  fmt.Sprintf("%d", weekCount),
			Trend:  "Target: 4/week",
			Icon:   "calendar-range",
			Accent: "text-[#1d4ed8]",
		},
		{
			Title:  "Error Rate (last 7 days)",
			Value:  errorValue,
			Trend:  errorTrend,
			Icon:   "alert-triangle",
			Accent: "text-amber-500",
		},
		{
			Title:  "Active Recommendations",
			Value:  fmt.Sprintf("%d", activeRecommendations),
			Trend:  recTrend,
			Icon:   "compass",
			Accent: "text-fuchsia-600",
		},
	}
}

type trendBucket struct {
	day      time.Time
	scoreSum int
	maxSum   int
	attempts int
}

// ComputeTrend 按天聚合得分走势，最多保留最近 12 个有记录的日期桶，
// 坐标归一化到 0-100 绘图空间（上下各留 10 的边距）并生成 SVG 路径
func ComputeTrend(records []model.ExamResult, mode model.TrendMode, windowDays int, now time.Time) model.ChartSeries {
	inWindow := filterByWindow(records, windowDays, 0, now)

	buckets := map[string]*trendBucket{}
	for _, r := range inWindow {
		done := parseDateDone(r.DateDone)
		key := done.Format(util.DateFormat)
		b, ok := buckets[key]
		if !ok {
			b = &trendBucket{day: done}
			buckets[key] = b
		}
		b.scoreSum += r.TotalScore
		b.maxSum += r.TotalMax
		b.attempts++
	}

	if len(buckets) == 0 {
		return model.ChartSeries{Points: []model.ChartPoint{}}
	}

	days := make([]*trendBucket, 0, len(buckets))
	for _, b := range buckets {
		days = append(days, b)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].day.Before(days[j].day) })
	if len(days) > 12 {
		days = days[len(days)-12:]
	}

	values := make([]float64, len(days))
	for i, b := range days {
		switch mode {
		case model.TrendTotal:
			values[i] = float64(b.scoreSum) / float64(b.attempts)
		default:
			if b.maxSum == 0 {
				values[i] = 0
			} else {
				values[i] = float64(b.scoreSum) / float64(b.maxSum) * 100
			}
		}
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	rangeV := maxV - minV
	if rangeV == 0 {
		rangeV = 1
	}

	points := make([]model.ChartPoint, len(days))
	var line strings.Builder
	for i, b := range days {
		x := 50.0
		if len(days) > 1 {
			x = float64(i) / float64(len(days)-1) * 100
		}
		y := 100 - ((values[i]-minV)/rangeV)*80 - 10

		summary := fmt.Sprintf("%d%%", int(math.Round(values[i])))
		if mode == model.TrendTotal {
			summary = fmt.Sprintf("%d marks", int(math.Round(values[i])))
		}

		points[i] = model.ChartPoint{
			X:       x,
			Y:       y,
			Label:   b.day.Format("Jan 2"),
			Summary: summary,
		}

		if i == 0 {
			fmt.Fprintf(&line, "M %.2f %.2f", x, y)
		} else {
			fmt.Fprintf(&line, " L %.2f %.2f", x, y)
		}
	}

	linePath := line.String()
	return model.ChartSeries{
		Points:   points,
		LinePath: linePath,
		AreaPath: linePath + " L 100 100 L 0 100 Z",
	}
}

type weakKey struct {
	scoreSum int
	maxSum   int
	attempts int
}

// ComputeWeakLinks 找出统计窗口内得分率最低的 topN 个题目维度
// 维度键是 卷别-分区-题号；零作答或零分值的键直接剔除；
// 得分率并列时按键名字典序，保证输出稳定
func ComputeWeakLinks(records []model.ExamResult, windowDays, topN int, now time.Time) []model.WeakLink {
	inWindow := filterByWindow(records, windowDays, 0, now)

	stats := map[string]*weakKey{}
	for _, r := range inWindow {
		for _, q := range r.Questions {
			key := fmt.Sprintf("%s-%s-%d", r.PaperCode, q.Section, q.QuestionNo)
			st, ok := stats[key]
			if !ok {
				st = &weakKey{}
				stats[key] = st
			}
			if q.Score != nil {
				st.scoreSum += *q.Score
				st.attempts++
			}
			st.maxSum += q.MaxScore
		}
	}

	type scored struct {
		key     string
		percent int
		stat    *weakKey
	}
	var candidates []scored
	for key, st := range stats {
		if st.attempts == 0 || st.maxSum == 0 {
			continue
		}
		pct := int(math.Round(float64(st.scoreSum) / float64(st.maxSum) * 100))
		candidates = append(candidates, scored{key: key, percent: pct, stat: st})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].percent != candidates[j].percent {
			return candidates[i].percent < candidates[j].percent
		}
		return candidates[i].key < candidates[j].key
	})

	if len(candidates) > topN {
		candidates = candidates[:topN]
	}

	links := make([]model.WeakLink, 0, len(candidates))
	for _, c := range candidates {
		parts := strings.SplitN(c.key, "-", 3)
		label := c.key
		if len(parts) == 3 {
			label = fmt.Sprintf("Section %s — Q%s", parts[1], parts[2])
		}
		links = append(links, model.WeakLink{
			Subtopic: label,
			Score:    c.percent,
			Delta:    0,
			Attempts: c.stat.attempts,
		})
	}
	return links
}

// ComputeChapterMastery 把统计窗口内的得分按知识类目汇总，覆盖知识链模板的节点分数与状态
// 无数据的类目按 0 分 warning 展示，提醒而非报警
func ComputeChapterMastery(records []model.ExamResult, windowDays int, now time.Time) []model.KnowledgeChain {
	inWindow := filterByWindow(records, windowDays, 0, now)

	type catStat struct {
		scoreSum int
		maxSum   int
	}
	stats := map[string]*catStat{}
	for _, r := range inWindow {
		for _, q := range r.Questions {
			category, ok := model.CategoryFor(r.PaperCode, q.Section, q.QuestionNo)
			if !ok {
				logger.Log.Warn("Question did not match any category rule",
					zap.String("paperCode", string(r.PaperCode)),
					zap.String("section", q.Section),
					zap.Int("questionNo", q.QuestionNo))
				continue
			}
			st, found := stats[category]
			if !found {
				st = &catStat{}
				stats[category] = st
			}
			if q.Score != nil {
				st.scoreSum += *q.Score
			}
			st.maxSum += q.MaxScore
		}
	}

	chains := make([]model.KnowledgeChain, len(model.KnowledgeChainTemplate))
	for i, tmpl := range model.KnowledgeChainTemplate {
		chain := tmpl
		chain.Nodes = make([]model.ChainNode, len(tmpl.Nodes))
		for j, node := range tmpl.Nodes {
			category := model.NodeCategoryMap[node.ID]
			st := stats[category]
			if st == nil || st.maxSum == 0 {
				node.Score = 0
				node.Status = model.ChainWarning
			} else {
				pct := int(math.Round(float64(st.scoreSum) / float64(st.maxSum) * 100))
				node.Score = pct
				switch {
				case pct >= 70:
					node.Status = model.ChainStrong
				case pct >= 50:
					node.Status = model.ChainWarning
				default:
					node.Status = model.ChainCritical
				}
			}
			chain.Nodes[j] = node
		}
		chains[i] = chain
	}
	return chains
}
