package tasks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/taskdash-go/apperror"
)

func newTestService() *Service {
	return NewService(NewMemoryTaskStore())
}

func strptr(s string) *string { return &s }

func statusptr(s Status) *Status { return &s }

func mustCreate(t *testing.T, svc *Service, ownerID uuid.UUID, req CreateTaskRequest) *Task {
	t.Helper()
	task, err := svc.Create(context.Background(), ownerID, req)
	require.NoError(t, err)
	return task
}

func TestCreateDefaultsToPending(t *testing.T) {
	svc := newTestService()
	ownerID := uuid.New()

	task := mustCreate(t, svc, ownerID, CreateTaskRequest{Title: "Buy groceries"})

	assert.Equal(t, StatusPending, task.Status)
	assert.Equal(t, ownerID, task.UserID)
	assert.NotEqual(t, uuid.Nil, task.ID)
	assert.Nil(t, task.DueDate)
}

func TestCreateKeepsExplicitStatus(t *testing.T) {
	svc := newTestService()

	task := mustCreate(t, svc, uuid.New(), CreateTaskRequest{
		Title:       "Ship release",
		Description: "tag and push",
		Status:      StatusInProgress,
		DueDate:     strptr("2026-09-15"),
	})

	assert.Equal(t, StatusInProgress, task.Status)
	assert.Equal(t, "tag and push", task.Description)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "2026-09-15", *task.DueDate)
}

func TestCreateRequiresTitle(t *testing.T) {
	svc := newTestService()

	for _, title := range []string{"", "   "} {
		_, err := svc.Create(context.Background(), uuid.New(), CreateTaskRequest{Title: title})
		require.Error(t, err)
		assert.True(t, apperror.IsValidationError(err))
		appErr, _ := apperror.FromError(err)
		assert.Equal(t, "Title is required", appErr.Message)
	}
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), uuid.New(), CreateTaskRequest{
		Title:  "Bad status",
		Status: Status("archived"),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))
	appErr, _ := apperror.FromError(err)
	assert.Equal(t, "Invalid input", appErr.Message)
}

func TestListMineIsOwnerScoped(t *testing.T) {
	svc := newTestService()
	alice := uuid.New()
	bob := uuid.New()

	mustCreate(t, svc, alice, CreateTaskRequest{Title: "alice 1"})
	mustCreate(t, svc, bob, CreateTaskRequest{Title: "bob 1"})
	mustCreate(t, svc, alice, CreateTaskRequest{Title: "alice 2"})

	aliceTasks, err := svc.ListMine(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, aliceTasks, 2)
	for _, task := range aliceTasks {
		assert.Equal(t, alice, task.UserID)
	}

	// A user with no tasks gets an empty list, not an error.
	carolTasks, err := svc.ListMine(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, carolTasks)
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	svc := newTestService()
	ownerID := uuid.New()
	task := mustCreate(t, svc, ownerID, CreateTaskRequest{
		Title:       "Original",
		Description: "keep me",
		DueDate:     strptr("2026-09-01"),
	})

	updated, err := svc.Update(context.Background(), ownerID, task.ID, UpdateTaskRequest{
		Status: statusptr(StatusCompleted),
	})
	require.NoError(t, err)

	assert.Equal(t, "Original", updated.Title)
	assert.Equal(t, "keep me", updated.Description)
	assert.Equal(t, StatusCompleted, updated.Status)
	require.NotNil(t, updated.DueDate)
	assert.Equal(t, "2026-09-01", *updated.DueDate)
	assert.False(t, updated.UpdatedAt.Before(task.UpdatedAt))
}

func TestUpdateClearsDescriptionWhenExplicitlyEmpty(t *testing.T) {
	svc := newTestService()
	ownerID := uuid.New()
	task := mustCreate(t, svc, ownerID, CreateTaskRequest{Title: "T", Description: "old"})

	updated, err := svc.Update(context.Background(), ownerID, task.ID, UpdateTaskRequest{
		Description: strptr(""),
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Description)
}

func TestUpdateIgnoresEmptyTitle(t *testing.T) {
	svc := newTestService()
	ownerID := uuid.New()
	task := mustCreate(t, svc, ownerID, CreateTaskRequest{Title: "Keep"})

	updated, err := svc.Update(context.Background(), ownerID, task.ID, UpdateTaskRequest{
		Title: strptr("   "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Keep", updated.Title)
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	svc := newTestService()
	ownerID := uuid.New()
	task := mustCreate(t, svc, ownerID, CreateTaskRequest{Title: "T"})

	_, err := svc.Update(context.Background(), ownerID, task.ID, UpdateTaskRequest{
		Status: statusptr(Status("archived")),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))
	appErr, _ := apperror.FromError(err)
	assert.Equal(t, "Invalid input", appErr.Message)
}

func TestUpdateOwnerNeverChanges(t *testing.T) {
	svc := newTestService()
	ownerID := uuid.New()
	task := mustCreate(t, svc, ownerID, CreateTaskRequest{Title: "Mine"})

	updated, err := svc.Update(context.Background(), ownerID, task.ID, UpdateTaskRequest{
		Title: strptr("Still mine"),
	})
	require.NoError(t, err)
	assert.Equal(t, ownerID, updated.UserID)
}

func TestUpdateByNonOwnerIsForbidden(t *testing.T) {
	svc := newTestService()
	ownerID := uuid.New()
	task := mustCreate(t, svc, ownerID, CreateTaskRequest{Title: "Mine"})

	_, err := svc.Update(context.Background(), uuid.New(), task.ID, UpdateTaskRequest{
		Title: strptr("Hijacked"),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsForbidden(err))
	appErr, _ := apperror.FromError(err)
	assert.Equal(t, "Not authorized to update this task", appErr.Message)

	// The task is untouched.
	got, err := svc.Update(context.Background(), ownerID, task.ID, UpdateTaskRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Mine", got.Title)
}

func TestUpdateMissingTaskIsNotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), UpdateTaskRequest{
		Title: strptr("Nothing there"),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	appErr, _ := apperror.FromError(err)
	assert.Equal(t, "Task not found", appErr.Message)
}

func TestDeleteByNonOwnerIsForbidden(t *testing.T) {
	svc := newTestService()
	ownerID := uuid.New()
	task := mustCreate(t, svc, ownerID, CreateTaskRequest{Title: "Mine"})

	err := svc.Delete(context.Background(), uuid.New(), task.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsForbidden(err))
	appErr, _ := apperror.FromError(err)
	assert.Equal(t, "Not authorized to delete this task", appErr.Message)

	// Still listed for the owner.
	tasks, err := svc.ListMine(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestDeleteTwiceIsNotFound(t *testing.T) {
	svc := newTestService()
	ownerID := uuid.New()
	task := mustCreate(t, svc, ownerID, CreateTaskRequest{Title: "Once"})

	require.NoError(t, svc.Delete(context.Background(), ownerID, task.ID))

	err := svc.Delete(context.Background(), ownerID, task.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	appErr, _ := apperror.FromError(err)
	assert.Equal(t, "Task not found", appErr.Message)
}
