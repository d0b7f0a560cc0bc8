package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/model"
	"taskflow/internal/repository"
)

// TaskService applies the task rules on top of a store.
type TaskService struct {
	repo repository.TaskRepositoryInterface
	now  func() time.Time
}

func NewTaskService(repo repository.TaskRepositoryInterface) *TaskService {
	return &TaskService{repo: repo, now: time.Now}
}

// WithClock replaces the time source used for CreatedAt.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

// List never returns a nil slice.
func (s *TaskService) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TaskService) Create(ctx context.Context, in model.TaskInput) (*model.Task, error) {
	task, err := model.NewTask(in, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// Update replaces all writable fields of the task with in.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, in model.TaskInput) (*model.Task, error) {
	return s.repo.Update(ctx, id, func(t *model.Task) error {
		return t.Replace(in)
	})
}

func (s *TaskService) Toggle(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	return s.repo.Toggle(ctx, id)
}

func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
