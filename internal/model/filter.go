package model

import "fmt"

// StatusFilter selects tasks by completion.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// CategoryFilter is either CategoryAll or one of the Category values.
type CategoryFilter string

const CategoryAll CategoryFilter = "all"

// ParseStatusFilter treats an empty string as "all".
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch f := StatusFilter(s); f {
	case "":
		return StatusAll, nil
	case StatusAll, StatusActive, StatusCompleted:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown status filter %q", ErrValidation, s)
}

// ParseCategoryFilter treats an empty string as "all".
func ParseCategoryFilter(s string) (CategoryFilter, error) {
	if s == "" || CategoryFilter(s) == CategoryAll {
		return CategoryAll, nil
	}
	if !Category(s).Valid() {
		return "", fmt.Errorf("%w: unknown category filter %q", ErrValidation, s)
	}
	return CategoryFilter(s), nil
}

// Category reports the category a filter pins, or false for CategoryAll.
func (f CategoryFilter) Category() (Category, bool) {
	if f == CategoryAll || f == "" {
		return "", false
	}
	return Category(f), true
}

// TaskFilter combines a status and a category filter.
type TaskFilter struct {
	Status   StatusFilter
	Category CategoryFilter
}

// AllTasks matches every task.
var AllTasks = TaskFilter{Status: StatusAll, Category: CategoryAll}

// Matches reports whether t passes both the status and the category filter.
func (f TaskFilter) Matches(t *Task) bool {
	return f.matchesStatus(t) && f.matchesCategory(t)
}

func (f TaskFilter) matchesStatus(t *Task) bool {
	switch f.Status {
	case StatusActive:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	default:
		return true
	}
}

func (f TaskFilter) matchesCategory(t *Task) bool {
	c, ok := f.Category.Category()
	if !ok {
		return true
	}
	return t.Category == c
}

// Matches is the free-function form of TaskFilter.Matches.
func Matches(t *Task, status StatusFilter, category CategoryFilter) bool {
	return TaskFilter{Status: status, Category: category}.Matches(t)
}
