package schedule

import (
	"context"

	"buildsite-service/internal/model"
)

// EnsureProject returns the project registered under candidate's join code,
// creating it from candidate when none exists. The bool reports whether a
// new row was created. Re-running generation with the same code therefore
// reuses the project row; each run appends its own stages and tasks, nothing
// is deduplicated.
func EnsureProject(ctx context.Context, store ProjectStore, candidate *model.Project) (*model.Project, bool, error) {
	existing, err := store.FindProjectByCode(ctx, candidate.Code)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	if err := store.CreateProject(ctx, candidate); err != nil {
		return nil, false, err
	}
	return candidate, true, nil
}
