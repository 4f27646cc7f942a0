package controller

import (
	"spm_tracker_backend/internal/middleware"
	"spm_tracker_backend/internal/service"
	"spm_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	RecommendationService *service.RecommendationService
}

func NewRecommendationController(recService *service.RecommendationService) *RecommendationController {
	return &RecommendationController{RecommendationService: recService}
}

// @Summary 智能刷题推荐列表
// @Description 按周起始日期倒序返回当前用户的推荐集
// @Tags 推荐
// @Produce json
// @Param X-User-ID header string false "用户标识"
// @Success 200 {object} util.Response
// @Router /api/tracker/recommendations [get]
func (c *RecommendationController) ListRecommendations(ctx *gin.Context) {
	sets, err := c.RecommendationService.ListRecommendations(middleware.GetUserID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sets)
}
