package controller

import (
	"strconv"
	"time"

	"spm_tracker_backend/internal/middleware"
	"spm_tracker_backend/internal/model"
	"spm_tracker_backend/internal/service"
	"spm_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	AnalyticsService *service.AnalyticsService
}

func NewDashboardController(analyticsService *service.AnalyticsService) *DashboardController {
	return &DashboardController{AnalyticsService: analyticsService}
}

// @Summary 仪表盘聚合数据
// @Description 指标卡、薄弱环节与知识链三块视图
// @Tags 仪表盘
// @Produce json
// @Param X-User-ID header string false "用户标识"
// @Success 200 {object} util.Response
// @Router /api/tracker/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	view, err := c.AnalyticsService.Dashboard(middleware.GetUserID(ctx), time.Now().UTC())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary 得分走势
// @Description 近 N 天按日聚合的走势序列，mode=percent 按得分率，mode=total 按平均总分
// @Tags 仪表盘
// @Produce json
// @Param mode query string false "percent | total" default(percent)
// @Param days query int false "统计窗口天数" default(90)
// @Success 200 {object} util.Response
// @Router /api/tracker/dashboard/trend [get]
func (c *DashboardController) GetTrend(ctx *gin.Context) {
	mode := model.TrendPercent
	if ctx.Query("mode") == string(model.TrendTotal) {
		mode = model.TrendTotal
	}

	days := 90
	if raw := ctx.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			util.BadRequest(ctx, "days must be a positive integer")
			return
		}
		days = parsed
	}

	series, err := c.AnalyticsService.Trend(middleware.GetUserID(ctx), mode, days, time.Now().UTC())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, series)
}
