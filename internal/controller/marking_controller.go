package controller

import (
	"bytes"
	"io"

	"spm_tracker_backend/internal/model"
	"spm_tracker_backend/internal/service"
	"spm_tracker_backend/internal/util"
	"spm_tracker_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 手写答案图片上限 8MB
const maxAnswerImageSize = 8 << 20

type MarkingController struct {
	MarkingService *service.MarkingService
}

func NewMarkingController(markingService *service.MarkingService) *MarkingController {
	return &MarkingController{MarkingService: markingService}
}

// @Summary 识别手写答案
// @Description 上传答案图片，OCR 识别为 LaTeX；图片同时存档
// @Tags AI判分
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "答案图片"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/marking/recognize-answer [post]
func (c *MarkingController) RecognizeAnswer(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		util.BadRequest(ctx, "image file is required")
		return
	}
	if fileHeader.Size > maxAnswerImageSize {
		util.BadRequest(ctx, "image is too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if len(data) == 0 {
		util.BadRequest(ctx, "uploaded file is empty")
		return
	}

	mimeType, err := util.ValidateMimeType(bytes.NewReader(data), []string{util.MimeImage})
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.MarkingService.RecognizeAnswer(ctx.Request.Context(), fileHeader.Filename, data, mimeType)
	if err != nil {
		logger.Log.Error("Answer recognition failed", zap.Error(err))
		util.BadGateway(ctx, "Recognition service unavailable")
		return
	}
	util.Success(ctx, result)
}

// @Summary 判分
// @Description 对比学生答案与标准答案的符号等价性
// @Tags AI判分
// @Accept json
// @Produce json
// @Param body body model.GradeRequest true "答案对"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/marking/grade-answer [post]
func (c *MarkingController) GradeAnswer(ctx *gin.Context) {
	var payload model.GradeRequest
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.MarkingService.GradeAnswer(ctx.Request.Context(), payload.StudentLatex, payload.AnswerLatex)
	if err != nil {
		logger.Log.Error("Answer grading failed", zap.Error(err))
		util.BadGateway(ctx, "Grading service unavailable")
		return
	}
	util.Success(ctx, result)
}
