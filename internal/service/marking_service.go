package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"spm_tracker_backend/internal/config"
	"spm_tracker_backend/internal/model"
	"spm_tracker_backend/pkg/logger"

	"go.uber.org/zap"
)

// MarkingService 外部 OCR + 判分服务的 HTTP 网关
// 上游是独立部署的识别/判分服务，这里只做转发，不做重试
type MarkingService struct {
	baseURL string
	client  *http.Client
	storage *StorageService
}

func NewMarkingService(cfg config.MarkingConfig, storage *StorageService) *MarkingService {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MarkingService{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: timeout},
		storage: storage,
	}
}

// RecognizeAnswer 把手写答案图片转发给 OCR 服务识别为 LaTeX
// 图片同时存档到存储层，返回结果里带存档地址
func (s *MarkingService) RecognizeAnswer(ctx context.Context, filename string, image []byte, contentType string) (*model.RecognitionResult, error) {
	archiveName := fmt.Sprintf("answers/%s%s", model.GenerateUUID(), filepath.Ext(filename))
	archiveURL, err := s.storage.Upload(ctx, archiveName, bytes.NewReader(image), int64(len(image)), contentType)
	if err != nil {
		logger.Log.Warn("Answer image archive failed", zap.String("filename", filename), zap.Error(err))
		archiveURL = ""
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(image); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/recognize-answer", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result model.RecognitionResult
	if err := s.do(req, &result); err != nil {
		return nil, err
	}
	result.ImageURL = archiveURL
	return &result, nil
}

// GradeAnswer 请求上游对比学生答案与标准答案是否等价
func (s *MarkingService) GradeAnswer(ctx context.Context, studentLatex, answerLatex string) (*model.GradeResult, error) {
	payload, err := json.Marshal(map[string]string{
		"student_latex": studentLatex,
		"answer_latex":  answerLatex,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/grade-answer", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var result model.GradeResult
	if err := s.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *MarkingService) do(req *http.Request, out interface{}) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("marking API error (status %d): %s", resp.StatusCode, string(body))
	}
	return json.Unmarshal(body, out)
}
