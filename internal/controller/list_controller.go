package controller

import (
	"errors"

	"spm_tracker_backend/internal/model"
	"spm_tracker_backend/internal/service"
	"spm_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ListController struct {
	ListService *service.ListService
}

func NewListController(listService *service.ListService) *ListController {
	return &ListController{ListService: listService}
}

// @Summary 题目清单列表
// @Tags 题目清单
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/lists [get]
func (c *ListController) ListLists(ctx *gin.Context) {
	lists, err := c.ListService.ListLists()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lists)
}

// @Summary 单个题目清单
// @Tags 题目清单
// @Produce json
// @Param id path string true "清单ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/lists/{id} [get]
func (c *ListController) GetList(ctx *gin.Context) {
	list, err := c.ListService.GetList(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrListNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// @Summary 新建题目清单
// @Description 提供 name 新建空清单，或提供 sourceId 复制已有清单
// @Tags 题目清单
// @Accept json
// @Produce json
// @Param body body model.ListCreatePayload true "清单数据"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/lists [post]
func (c *ListController) CreateList(ctx *gin.Context) {
	var payload model.ListCreatePayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if payload.Name == "" && payload.SourceID == "" {
		util.BadRequest(ctx, "name or sourceId is required")
		return
	}

	list, err := c.ListService.CreateList(&payload)
	if err != nil {
		if errors.Is(err, util.ErrListNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, list)
}

// @Summary 修改题目清单
// @Description 重命名、增删条目，或 duplicate=true 复制一份
// @Tags 题目清单
// @Accept json
// @Produce json
// @Param id path string true "清单ID"
// @Param body body model.ListPatchPayload true "修改操作"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/lists/{id} [patch]
func (c *ListController) PatchList(ctx *gin.Context) {
	var payload model.ListPatchPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	list, err := c.ListService.PatchList(ctx.Param("id"), &payload)
	if err != nil {
		if errors.Is(err, util.ErrListNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// @Summary 删除题目清单
// @Tags 题目清单
// @Produce json
// @Param id path string true "清单ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/lists/{id} [delete]
func (c *ListController) DeleteList(ctx *gin.Context) {
	if err := c.ListService.DeleteList(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrListNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
