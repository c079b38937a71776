package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildsite-service/internal/model"
)

func TestEnsureProject_CreatesThenReuses(t *testing.T) {
	store := newFakeStore()

	first, created, err := EnsureProject(context.Background(), store, &model.Project{
		Name: "Cedar Villa", Code: "CEDAR1", ProjectType: "Residential",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, first.ID)

	// Same code again: the existing row wins even if attributes differ.
	second, created, err := EnsureProject(context.Background(), store, &model.Project{
		Name: "Renamed Villa", Code: "CEDAR1", ProjectType: "Commercial",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Cedar Villa", second.Name)
	assert.Len(t, store.projects, 1)
}

func TestEnsureProject_DistinctCodesCreateDistinctRows(t *testing.T) {
	store := newFakeStore()

	a, created, err := EnsureProject(context.Background(), store, &model.Project{Name: "A", Code: "AAA111"})
	require.NoError(t, err)
	assert.True(t, created)

	b, created, err := EnsureProject(context.Background(), store, &model.Project{Name: "B", Code: "BBB222"})
	require.NoError(t, err)
	assert.True(t, created)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, store.projects, 2)
}

func TestRepeatGeneration_ReusesProjectAndAppendsStages(t *testing.T) {
	store := newFakeStore()
	tree := Tree{
		{Name: "Foundation", Tasks: []TaskNode{
			{Name: "Excavation", Role: "Earthworks"},
		}},
		{Name: "Structure", Tasks: []TaskNode{
			{Name: "Framing", Role: "Carpenter"},
		}},
	}

	for i := 0; i < 2; i++ {
		project, _, err := EnsureProject(context.Background(), store, &model.Project{
			Name: "Cedar Villa", Code: "CEDAR1",
		})
		require.NoError(t, err)
		require.NoError(t, PersistSchedule(context.Background(), store, project.ID, tree))
	}

	// One project row, but each run appended its own stages and tasks.
	require.Len(t, store.projects, 1)
	assert.Len(t, store.stages, 4)
	assert.Len(t, store.tasks, 4)
	for _, stage := range store.stages {
		assert.Equal(t, store.projects[0].ID, stage.ProjectID)
	}
}
