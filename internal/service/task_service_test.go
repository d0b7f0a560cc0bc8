package service_test

import (
	"context"
	"testing"
	"time"

	"taskflow/internal/model"
	"taskflow/internal/repository"
	"taskflow/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func newService() *service.TaskService {
	return service.NewTaskService(repository.NewMemoryTaskRepository()).
		WithClock(func() time.Time { return fixedNow })
}

func ptr[T any](v T) *T { return &v }

func TestCreateThenGet(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	due := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)

	created, err := svc.Create(ctx, model.TaskInput{
		Title:       "Complete project report",
		Description: ptr("Write and submit the Q4 project report"),
		DueDate:     &due,
		Category:    ptr("Work"),
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, *created, *got)
	assert.Equal(t, "Complete project report", got.Title)
	assert.Equal(t, "Write and submit the Q4 project report", got.Description)
	assert.True(t, got.DueDate.Equal(due))
	assert.Equal(t, model.CategoryWork, got.Category)
	assert.False(t, got.Completed)
	assert.Equal(t, fixedNow, got.CreatedAt)
}

func TestCreate_Rejections(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.Create(ctx, model.TaskInput{Title: ""})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.Create(ctx, model.TaskInput{Title: "  "})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.Create(ctx, model.TaskInput{Title: "Invalid task", Category: ptr("InvalidCategory")})
	assert.ErrorIs(t, err, model.ErrInvalidCategory)

	tasks, err := svc.List(ctx, model.AllTasks)
	require.NoError(t, err)
	assert.Empty(t, tasks, "rejected payloads must not be stored")
}

func TestToggleIsInvolution(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	original, err := svc.Create(ctx, model.TaskInput{Title: "Morning jog", Category: ptr("Health")})
	require.NoError(t, err)

	_, err = svc.Toggle(ctx, original.ID)
	require.NoError(t, err)
	restored, err := svc.Toggle(ctx, original.ID)
	require.NoError(t, err)

	assert.Equal(t, *original, *restored)
}

func TestUpdate_ReplacesAndKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	due := time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC)
	task, err := svc.Create(ctx, model.TaskInput{Title: "Buy groceries", DueDate: &due, Category: ptr("Shopping")})
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, task.ID)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, task.ID, model.TaskInput{
		Title:       "Buy groceries - UPDATED",
		Description: ptr("Milk, eggs, bread, vegetables, fruits"),
		Category:    ptr("Shopping"),
	})

	require.NoError(t, err)
	assert.Equal(t, task.ID, updated.ID)
	assert.Equal(t, task.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Buy groceries - UPDATED", updated.Title)
	assert.Equal(t, "Milk, eggs, bread, vegetables, fruits", updated.Description)
	assert.Nil(t, updated.DueDate)
	assert.True(t, updated.Completed, "completed is kept when the payload leaves it out")

	reopened, err := svc.Update(ctx, task.ID, model.TaskInput{Title: "Buy groceries", Completed: ptr(false)})
	require.NoError(t, err)
	assert.False(t, reopened.Completed)
	assert.Equal(t, model.CategoryWork, reopened.Category)
}

func TestUpdate_InvalidPayloadHasNoEffect(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	task, err := svc.Create(ctx, model.TaskInput{Title: "Call mom", Category: ptr("Personal")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, task.ID, model.TaskInput{Title: " ", Completed: ptr(true)})
	assert.ErrorIs(t, err, model.ErrValidation)

	got, err := svc.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, *task, *got)
}

func TestMissingTask(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	id := uuid.New()

	_, err := svc.Get(ctx, id)
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	_, err = svc.Update(ctx, id, model.TaskInput{Title: "x"})
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	_, err = svc.Toggle(ctx, id)
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, id), repository.ErrTaskNotFound)
}

func TestLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	ids := func(filter model.TaskFilter) []uuid.UUID {
		tasks, err := svc.List(ctx, filter)
		require.NoError(t, err)
		out := []uuid.UUID{}
		for _, task := range tasks {
			out = append(out, task.ID)
		}
		return out
	}

	a, err := svc.Create(ctx, model.TaskInput{Title: "A", Category: ptr("Work")})
	require.NoError(t, err)
	assert.Contains(t, ids(model.TaskFilter{Status: model.StatusActive, Category: "Work"}), a.ID)

	_, err = svc.Toggle(ctx, a.ID)
	require.NoError(t, err)
	assert.NotContains(t, ids(model.TaskFilter{Status: model.StatusActive, Category: model.CategoryAll}), a.ID)
	assert.Contains(t, ids(model.TaskFilter{Status: model.StatusCompleted, Category: model.CategoryAll}), a.ID)

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.NotContains(t, ids(model.AllTasks), a.ID)
	_, err = svc.Get(ctx, a.ID)
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
}

type MockTaskRepository struct {
	mock.Mock
	repository.TaskRepositoryInterface
}

func (m *MockTaskRepository) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	args := m.Called(ctx, filter)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	return m.Called(ctx, task).Error(0)
}

func TestList_NeverNil(t *testing.T) {
	repo := new(MockTaskRepository)
	repo.On("List", mock.Anything, model.AllTasks).Return(nil, nil)

	tasks, err := service.NewTaskService(repo).List(context.Background(), model.AllTasks)

	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
	repo.AssertExpectations(t)
}

func TestCreate_StoreErrorIsWrapped(t *testing.T) {
	repo := new(MockTaskRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(assert.AnError)

	task, err := service.NewTaskService(repo).Create(context.Background(), model.TaskInput{Title: "x"})

	assert.Nil(t, task)
	assert.ErrorIs(t, err, assert.AnError)
	repo.AssertExpectations(t)
}
