package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"spm_tracker_backend/internal/model"
	"spm_tracker_backend/internal/util"
	"spm_tracker_backend/pkg/logger"

	"go.uber.org/zap"
)

// ListService 题目清单的 JSON 文件存储
// 单机单文件，互斥锁串行化全部读写；文件不存在时自动初始化为空数组
type ListService struct {
	path string
	mu   sync.Mutex
}

func NewListService(path string) *ListService {
	return &ListService{path: path}
}

func (s *ListService) load() ([]model.QuestionList, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.QuestionList{}, nil
		}
		return nil, err
	}

	var lists []model.QuestionList
	if err := json.Unmarshal(data, &lists); err != nil {
		logger.Log.Warn("Question list file is corrupt, starting empty",
			zap.String("path", s.path), zap.Error(err))
		return []model.QuestionList{}, nil
	}
	return lists, nil
}

func (s *ListService) save(lists []model.QuestionList) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(lists, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

func (s *ListService) ListLists() ([]model.QuestionList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *ListService) GetList(id string) (*model.QuestionList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range lists {
		if lists[i].ID == id {
			return &lists[i], nil
		}
	}
	return nil, util.ErrListNotFound
}

// CreateList 新建清单；给了 sourceId 就复制源清单的条目，名字默认 "<源名> Copy"
func (s *ListService) CreateList(payload *model.ListCreatePayload) (*model.QuestionList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.load()
	if err != nil {
		return nil, err
	}

	name := payload.Name
	items := dedupeItems(payload.Items)

	if payload.SourceID != "" {
		var source *model.QuestionList
		for i := range lists {
			if lists[i].ID == payload.SourceID {
				source = &lists[i]
				break
			}
		}
		if source == nil {
			return nil, util.ErrListNotFound
		}
		items = dedupeItems(source.Items)
		if name == "" {
			name = source.Name + " Copy"
		}
	}

	if name == "" {
		return nil, fmt.Errorf("list name is required")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	list := model.QuestionList{
		ID:        model.GenerateUUID(),
		Name:      name,
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}

	lists = append(lists, list)
	if err := s.save(lists); err != nil {
		return nil, err
	}
	logger.Log.Info("Question list created",
		zap.String("listId", list.ID), zap.String("name", list.Name))
	return &list, nil
}

// PatchList 批量修改：改名、并集加入 addItems、差集移除 removeItems，
// duplicate=true 时不改原清单而是返回一份副本；只有真的变了才更新 updatedAt
func (s *ListService) PatchList(id string, payload *model.ListPatchPayload) (*model.QuestionList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.load()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range lists {
		if lists[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, util.ErrListNotFound
	}

	if payload.Duplicate {
		// 副本固定叫 "<原名> Copy"，payload 里带的 name 不生效
		now := time.Now().UTC().Format(time.RFC3339)
		dup := model.QuestionList{
			ID:        model.GenerateUUID(),
			Name:      lists[idx].Name + " Copy",
			Items:     dedupeItems(lists[idx].Items),
			CreatedAt: now,
			UpdatedAt: now,
		}
		lists = append(lists, dup)
		if err := s.save(lists); err != nil {
			return nil, err
		}
		return &dup, nil
	}

	list := &lists[idx]
	changed := false

	if payload.Name != "" && payload.Name != list.Name {
		list.Name = payload.Name
		changed = true
	}

	if len(payload.AddItems) > 0 {
		merged := dedupeItems(append(append([]string{}, list.Items...), payload.AddItems...))
		if len(merged) != len(list.Items) {
			list.Items = merged
			changed = true
		}
	}

	if len(payload.RemoveItems) > 0 {
		remove := map[string]bool{}
		for _, item := range payload.RemoveItems {
			remove[item] = true
		}
		var kept []string
		for _, item := range list.Items {
			if !remove[item] {
				kept = append(kept, item)
			}
		}
		if len(kept) != len(list.Items) {
			if kept == nil {
				kept = []string{}
			}
			list.Items = kept
			changed = true
		}
	}

	if changed {
		list.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		if err := s.save(lists); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (s *ListService) DeleteList(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.load()
	if err != nil {
		return err
	}

	kept := lists[:0]
	found := false
	for _, list := range lists {
		if list.ID == id {
			found = true
			continue
		}
		kept = append(kept, list)
	}
	if !found {
		return util.ErrListNotFound
	}

	if err := s.save(kept); err != nil {
		return err
	}
	logger.Log.Info("Question list deleted", zap.String("listId", id))
	return nil
}

// dedupeItems 去重且保持首次出现的顺序
func dedupeItems(items []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
