package model_test

import (
	"testing"

	"taskflow/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks() []*model.Task {
	var tasks []*model.Task
	for _, c := range model.Categories() {
		for _, done := range []bool{false, true} {
			tasks = append(tasks, &model.Task{Title: string(c), Category: c, Completed: done})
		}
	}
	return tasks
}

func TestMatches_AllAll(t *testing.T) {
	for _, task := range sampleTasks() {
		assert.True(t, model.Matches(task, model.StatusAll, model.CategoryAll))
	}
}

func TestMatches_Status(t *testing.T) {
	for _, task := range sampleTasks() {
		assert.Equal(t, !task.Completed, model.Matches(task, model.StatusActive, model.CategoryAll))
		assert.Equal(t, task.Completed, model.Matches(task, model.StatusCompleted, model.CategoryAll))
	}
}

func TestMatches_Category(t *testing.T) {
	for _, task := range sampleTasks() {
		for _, c := range model.Categories() {
			got := model.Matches(task, model.StatusAll, model.CategoryFilter(c))
			assert.Equal(t, task.Category == c, got)
		}
	}
}

func TestMatches_BothFilters(t *testing.T) {
	task := &model.Task{Category: model.CategoryShopping, Completed: true}

	assert.True(t, model.Matches(task, model.StatusCompleted, "Shopping"))
	assert.False(t, model.Matches(task, model.StatusActive, "Shopping"))
	assert.False(t, model.Matches(task, model.StatusCompleted, "Work"))
}

func TestParseStatusFilter(t *testing.T) {
	for in, want := range map[string]model.StatusFilter{
		"":          model.StatusAll,
		"all":       model.StatusAll,
		"active":    model.StatusActive,
		"completed": model.StatusCompleted,
	} {
		got, err := model.ParseStatusFilter(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := model.ParseStatusFilter("done")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestParseCategoryFilter(t *testing.T) {
	got, err := model.ParseCategoryFilter("")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryAll, got)

	got, err = model.ParseCategoryFilter("Health")
	require.NoError(t, err)
	c, ok := got.Category()
	assert.True(t, ok)
	assert.Equal(t, model.CategoryHealth, c)

	_, err = model.ParseCategoryFilter("Hobby")
	assert.ErrorIs(t, err, model.ErrValidation)
}
