package service

import (
	"path/filepath"
	"testing"

	"spm_tracker_backend/internal/model"
	"spm_tracker_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newListService(t *testing.T) *ListService {
	t.Helper()
	return NewListService(filepath.Join(t.TempDir(), "lists.json"))
}

func TestListServiceBootstrapsEmpty(t *testing.T) {
	svc := newListService(t)

	lists, err := svc.ListLists()
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func TestCreateListDedupesItems(t *testing.T) {
	svc := newListService(t)

	list, err := svc.CreateList(&model.ListCreatePayload{
		Name:  "Weak Topics",
		Items: []string{"q1", "q2", "q1", "", "q3"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"q1", "q2", "q3"}, list.Items)
	assert.NotEmpty(t, list.ID)
	assert.NotEmpty(t, list.CreatedAt)
}

func TestCreateListRequiresName(t *testing.T) {
	svc := newListService(t)

	_, err := svc.CreateList(&model.ListCreatePayload{})
	assert.Error(t, err)
}

func TestCreateListFromSource(t *testing.T) {
	svc := newListService(t)

	source, err := svc.CreateList(&model.ListCreatePayload{Name: "Original", Items: []string{"q1", "q2"}})
	require.NoError(t, err)

	dup, err := svc.CreateList(&model.ListCreatePayload{SourceID: source.ID})
	require.NoError(t, err)

	assert.Equal(t, "Original Copy", dup.Name)
	assert.Equal(t, source.Items, dup.Items)
	assert.NotEqual(t, source.ID, dup.ID)

	_, err = svc.CreateList(&model.ListCreatePayload{SourceID: "missing"})
	assert.ErrorIs(t, err, util.ErrListNotFound)
}

func TestPatchListAddRemove(t *testing.T) {
	svc := newListService(t)

	list, err := svc.CreateList(&model.ListCreatePayload{Name: "Drills", Items: []string{"q1", "q2"}})
	require.NoError(t, err)

	patched, err := svc.PatchList(list.ID, &model.ListPatchPayload{
		AddItems:    []string{"q2", "q3"},
		RemoveItems: []string{"q1"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"q2", "q3"}, patched.Items)
}

func TestPatchListUpdatedAtOnlyOnChange(t *testing.T) {
	svc := newListService(t)

	list, err := svc.CreateList(&model.ListCreatePayload{Name: "Drills", Items: []string{"q1"}})
	require.NoError(t, err)

	// 空操作不应更新时间戳
	unchanged, err := svc.PatchList(list.ID, &model.ListPatchPayload{AddItems: []string{"q1"}})
	require.NoError(t, err)
	assert.Equal(t, list.UpdatedAt, unchanged.UpdatedAt)

	renamed, err := svc.PatchList(list.ID, &model.ListPatchPayload{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", renamed.Name)
}

func TestPatchListDuplicate(t *testing.T) {
	svc := newListService(t)

	list, err := svc.CreateList(&model.ListCreatePayload{Name: "Drills", Items: []string{"q1"}})
	require.NoError(t, err)

	dup, err := svc.PatchList(list.ID, &model.ListPatchPayload{Duplicate: true})
	require.NoError(t, err)

	assert.Equal(t, "Drills Copy", dup.Name)
	assert.NotEqual(t, list.ID, dup.ID)

	// 副本命名固定，payload 里的 name 不参与
	named, err := svc.PatchList(list.ID, &model.ListPatchPayload{Duplicate: true, Name: "Custom"})
	require.NoError(t, err)
	assert.Equal(t, "Drills Copy", named.Name)

	lists, err := svc.ListLists()
	require.NoError(t, err)
	assert.Len(t, lists, 2)
}

func TestDeleteList(t *testing.T) {
	svc := newListService(t)

	list, err := svc.CreateList(&model.ListCreatePayload{Name: "Drills"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteList(list.ID))

	_, err = svc.GetList(list.ID)
	assert.ErrorIs(t, err, util.ErrListNotFound)

	assert.ErrorIs(t, svc.DeleteList("missing"), util.ErrListNotFound)
}

func TestListsPersistAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lists.json")

	first := NewListService(path)
	created, err := first.CreateList(&model.ListCreatePayload{Name: "Persisted", Items: []string{"q1"}})
	require.NoError(t, err)

	second := NewListService(path)
	fetched, err := second.GetList(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Persisted", fetched.Name)
}
