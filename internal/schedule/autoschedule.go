package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"buildsite-service/internal/llm"
	"buildsite-service/internal/model"
)

const autoScheduleSystemPrompt = `You are a construction scheduling assistant. ` +
	`You assign open tasks to team members and estimate effort. ` +
	`Respond with a single JSON object and nothing else.`

// AutoScheduler assigns a project's open tasks to team members with effort
// estimates in one model call, then writes assignees, dates, and status.
type AutoScheduler struct {
	db     *gorm.DB
	client llm.Client
	log    *zap.Logger
}

func NewAutoScheduler(db *gorm.DB, client llm.Client, log *zap.Logger) *AutoScheduler {
	return &AutoScheduler{db: db, client: client, log: log}
}

type taskAssignment struct {
	TaskID     uint    `json:"task_id"`
	AssigneeID string  `json:"assignee_id"`
	Hours      float64 `json:"estimated_hours"`
}

type assignmentResponse struct {
	Assignments []taskAssignment `json:"assignments"`
}

// Run assigns every "Not Started" task of the project. Returns the number of
// task rows updated. Model failures surface as errors; the caller decides
// how to report them.
func (s *AutoScheduler) Run(ctx context.Context, projectID uint) (int, error) {
	var tasks []model.Task
	err := s.db.WithContext(ctx).
		Joins("JOIN stages ON stages.id = tasks.stage_id").
		Where("stages.project_id = ? AND tasks.status = ?", projectID, model.TaskStatusNotStarted).
		Find(&tasks).Error
	if err != nil {
		return 0, fmt.Errorf("loading open tasks: %w", err)
	}
	if len(tasks) == 0 {
		return 0, nil
	}

	var members []model.ProjectMember
	err = s.db.WithContext(ctx).
		Where("project_id = ? AND status = ?", projectID, "Active").
		Find(&members).Error
	if err != nil {
		return 0, fmt.Errorf("loading team members: %w", err)
	}

	resp, err := s.client.Complete(ctx, llm.Request{
		Task:         "auto_schedule",
		SystemPrompt: autoScheduleSystemPrompt,
		UserPrompt:   buildAssignmentPrompt(tasks, members),
		Temperature:  0.2,
		MaxTokens:    2048,
	})
	if err != nil {
		return 0, err
	}

	parsed, err := llm.ExtractJSON[assignmentResponse](resp.Text, nil)
	if err != nil {
		return 0, err
	}

	byID := make(map[uint]*model.Task, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
	}

	now := time.Now()
	updated := 0
	for _, a := range parsed.Assignments {
		task, ok := byID[a.TaskID]
		if !ok {
			s.log.Warn("Model assigned unknown task", zap.Uint("task_id", a.TaskID))
			continue
		}

		// Working days at 8 hours a day, minimum one day.
		days := int(a.Hours / 8)
		if days < 1 {
			days = 1
		}
		start := now
		end := now.AddDate(0, 0, days)

		task.AssigneeID = a.AssigneeID
		task.StartDate = &start
		task.EndDate = &end
		task.Status = model.TaskStatusInProgress

		if err := s.db.WithContext(ctx).Save(task).Error; err != nil {
			return updated, fmt.Errorf("updating task %d: %w", task.ID, err)
		}
		updated++
	}

	return updated, nil
}

func buildAssignmentPrompt(tasks []model.Task, members []model.ProjectMember) string {
	var b strings.Builder

	b.WriteString("Assign each open task to the most suitable team member and estimate the effort in hours.\n\nTeam members:\n")
	if len(members) == 0 {
		b.WriteString("- (no members; leave assignee_id empty)\n")
	}
	for _, m := range members {
		fmt.Fprintf(&b, "- id=%s role=%s department=%s\n", m.UserID, m.Role, m.Department)
	}

	b.WriteString("\nOpen tasks:\n")
	for _, t := range tasks {
		fmt.Fprintf(&b, "- id=%d name=%q role=%s\n", t.ID, t.Name, t.AssignedRole)
	}

	b.WriteString(`
Return exactly this JSON shape:
{"assignments": [{"task_id": 1, "assignee_id": "...", "estimated_hours": 16}]}`)

	return b.String()
}
