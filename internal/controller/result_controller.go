package controller

import (
	"errors"

	"spm_tracker_backend/internal/middleware"
	"spm_tracker_backend/internal/model"
	"spm_tracker_backend/internal/service"
	"spm_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	ResultService *service.ResultService
}

func NewResultController(resultService *service.ResultService) *ResultController {
	return &ResultController{ResultService: resultService}
}

// @Summary 试卷蓝图
// @Description 各卷别的固定题目结构（分区、题号、满分），前端按蓝图生成录入表单
// @Tags 成绩记录
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/tracker/blueprints [get]
func (c *ResultController) GetBlueprints(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		string(model.Paper1): model.Blueprint(model.Paper1),
		string(model.Paper2): model.Blueprint(model.Paper2),
	})
}

// @Summary 成绩记录列表
// @Description 返回当前用户的全部套卷成绩，按完成日期倒序
// @Tags 成绩记录
// @Produce json
// @Param X-User-ID header string false "用户标识，缺省使用配置默认值"
// @Success 200 {object} util.Response
// @Router /api/tracker/results [get]
func (c *ResultController) ListResults(ctx *gin.Context) {
	results, err := c.ResultService.ListResults(middleware.GetUserID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if results == nil {
		results = []model.ExamResult{}
	}
	util.Success(ctx, results)
}

// @Summary 单条成绩记录
// @Tags 成绩记录
// @Produce json
// @Param id path string true "成绩记录ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/tracker/results/{id} [get]
func (c *ResultController) GetResult(ctx *gin.Context) {
	result, err := c.ResultService.GetResult(middleware.GetUserID(ctx), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrResultNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 提交成绩
// @Description 按 州属+年份+卷别 覆盖写入，同一套卷重复提交只保留最新一份；总分由服务端重新计算
// @Tags 成绩记录
// @Accept json
// @Produce json
// @Param body body model.UpsertResultPayload true "成绩数据"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/tracker/results [post]
func (c *ResultController) UpsertResult(ctx *gin.Context) {
	var payload model.UpsertResultPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	payload.UserID = middleware.GetUserID(ctx)

	result, err := c.ResultService.UpsertResult(&payload)
	if err != nil {
		if errors.Is(err, util.ErrUnknownPaperCode) || errors.Is(err, util.ErrEmptyQuestions) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 删除成绩记录
// @Tags 成绩记录
// @Produce json
// @Param id path string true "成绩记录ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/tracker/results/{id} [delete]
func (c *ResultController) DeleteResult(ctx *gin.Context) {
	err := c.ResultService.DeleteResult(middleware.GetUserID(ctx), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrResultNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
