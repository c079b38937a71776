package schedule

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"buildsite-service/internal/model"
)

// Store is the persistence surface the generator and persister need. Kept
// narrow so tests can run against an in-memory fake.
type Store interface {
	// CreateStage inserts a stage row and fills in its generated ID.
	CreateStage(ctx context.Context, stage *model.Stage) error

	// CreateTask inserts a task row and fills in its generated ID.
	CreateTask(ctx context.Context, task *model.Task) error
}

// ProjectStore is the lookup surface for resolving a project by join code.
type ProjectStore interface {
	// FindProjectByCode returns the project registered under the code, or
	// nil when none exists.
	FindProjectByCode(ctx context.Context, code string) (*model.Project, error)

	// CreateProject inserts a project row and fills in its generated ID.
	CreateProject(ctx context.Context, project *model.Project) error
}

// GormStore implements Store on a GORM handle. The handle may be a
// transaction, so stage-plus-tasks persistence commits atomically.
type GormStore struct {
	DB *gorm.DB
}

func (s *GormStore) CreateStage(ctx context.Context, stage *model.Stage) error {
	return s.DB.WithContext(ctx).Create(stage).Error
}

func (s *GormStore) CreateTask(ctx context.Context, task *model.Task) error {
	return s.DB.WithContext(ctx).Create(task).Error
}

func (s *GormStore) FindProjectByCode(ctx context.Context, code string) (*model.Project, error) {
	var project model.Project
	err := s.DB.WithContext(ctx).Where("code = ?", code).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *GormStore) CreateProject(ctx context.Context, project *model.Project) error {
	return s.DB.WithContext(ctx).Create(project).Error
}
