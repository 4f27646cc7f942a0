package controller

import (
	"spm_tracker_backend/internal/model"
	"spm_tracker_backend/internal/service"
	"spm_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// @Summary 题库列表
// @Description 返回全部题库元数据，走 Redis 缓存
// @Tags 题库
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	questions, err := c.QuestionService.ListQuestions(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// @Summary 覆写题库
// @Description 用完整题库原子覆写数据文件，供离线打标流程回写
// @Tags 题库
// @Accept json
// @Produce json
// @Param body body []model.BankQuestion true "完整题库"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/questions/save [post]
func (c *QuestionController) SaveQuestions(ctx *gin.Context) {
	var questions []model.BankQuestion
	if err := ctx.ShouldBindJSON(&questions); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if len(questions) == 0 {
		util.BadRequest(ctx, "question payload must not be empty")
		return
	}

	if err := c.QuestionService.SaveQuestions(ctx.Request.Context(), questions); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"saved": len(questions)})
}
