package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"not null" json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Category    Category   `gorm:"type:varchar(16);not null;index" json:"category"`
	Completed   bool       `gorm:"not null;index" json:"completed"`
	CreatedAt   time.Time  `gorm:"not null;index" json:"created_at"`
}

func (Task) TableName() string {
	return "tasks"
}

// TaskInput carries the writable fields of a task. Nil pointers mean the
// field was left out of the payload.
type TaskInput struct {
	Title       string
	Description *string
	DueDate     *time.Time
	Category    *string
	Completed   *bool
}

type normalizedInput struct {
	title       string
	description string
	dueDate     *time.Time
	category    Category
}

func (in TaskInput) normalize() (normalizedInput, error) {
	var out normalizedInput

	out.title = strings.TrimSpace(in.Title)
	if out.title == "" {
		return out, fmt.Errorf("%w: title is required", ErrValidation)
	}

	if in.Description != nil {
		out.description = *in.Description
	}

	out.category = DefaultCategory
	if in.Category != nil {
		c, err := ParseCategory(*in.Category)
		if err != nil {
			return out, err
		}
		out.category = c
	}

	if in.DueDate != nil {
		due := in.DueDate.UTC()
		out.dueDate = &due
	}

	return out, nil
}

// NewTask builds a fresh, not yet completed task from a create payload.
// Completed in the payload is ignored.
func NewTask(in TaskInput, now time.Time) (*Task, error) {
	n, err := in.normalize()
	if err != nil {
		return nil, err
	}

	return &Task{
		ID:          uuid.New(),
		Title:       n.title,
		Description: n.description,
		DueDate:     n.dueDate,
		Category:    n.category,
		Completed:   false,
		CreatedAt:   now.UTC(),
	}, nil
}

// Replace overwrites every writable field from a full update payload. The
// task is left untouched when the payload is rejected. Completed changes only
// when the payload carries it.
func (t *Task) Replace(in TaskInput) error {
	n, err := in.normalize()
	if err != nil {
		return err
	}

	t.Title = n.title
	t.Description = n.description
	t.DueDate = n.dueDate
	t.Category = n.category
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	return nil
}
