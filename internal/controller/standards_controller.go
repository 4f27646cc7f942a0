package controller

import (
	"spm_tracker_backend/internal/service"
	"spm_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StandardsController struct {
	StandardsService *service.StandardsService
}

func NewStandardsController(standardsService *service.StandardsService) *StandardsController {
	return &StandardsController{StandardsService: standardsService}
}

// @Summary 课程标准
// @Description 返回教学大纲解析出的章节、小节与课程标准树
// @Tags 课程标准
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/learning-standards [get]
func (c *StandardsController) GetStandards(ctx *gin.Context) {
	chapters, err := c.StandardsService.LoadChapters()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"chapters": chapters})
}
