package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"taskflow/internal/model"
)

var _ TaskRepositoryInterface = (*MemoryTaskRepository)(nil)

// MemoryTaskRepository keeps tasks in insertion order behind a single lock.
// Callers always receive copies.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	order []uuid.UUID
	tasks map[uuid.UUID]model.Task
}

func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{tasks: make(map[uuid.UUID]model.Task)}
}

func (r *MemoryTaskRepository) List(_ context.Context, filter model.TaskFilter) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.Task{}
	for _, id := range r.order {
		task := r.tasks[id]
		if filter.Matches(&task) {
			out = append(out, cloneTask(task))
		}
	}
	return out, nil
}

func (r *MemoryTaskRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	task = cloneTask(task)
	return &task, nil
}

func (r *MemoryTaskRepository) Create(_ context.Context, task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if _, exists := r.tasks[task.ID]; !exists {
		r.order = append(r.order, task.ID)
	}
	r.tasks[task.ID] = cloneTask(*task)
	return nil
}

// Update runs mutate on a copy and stores it only when mutate succeeds.
func (r *MemoryTaskRepository) Update(_ context.Context, id uuid.UUID, mutate func(*model.Task) error) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}

	next := cloneTask(current)
	if err := mutate(&next); err != nil {
		return nil, err
	}
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt

	r.tasks[id] = cloneTask(next)
	return &next, nil
}

func (r *MemoryTaskRepository) Toggle(_ context.Context, id uuid.UUID) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	task.Completed = !task.Completed
	r.tasks[id] = task

	task = cloneTask(task)
	return &task, nil
}

func (r *MemoryTaskRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return ErrTaskNotFound
	}
	delete(r.tasks, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// cloneTask copies the due date so stored tasks never share memory with callers.
func cloneTask(t model.Task) model.Task {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}
