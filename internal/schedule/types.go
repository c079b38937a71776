package schedule

import "time"

// TaskNode is one node of the generated work breakdown. Subtasks recurse to
// arbitrary depth; in practice the model emits shallow trees.
type TaskNode struct {
	Name      string     `json:"task_name"`
	Role      string     `json:"assigned_role"`
	StartDate string     `json:"start_date,omitempty"`
	EndDate   string     `json:"end_date,omitempty"`
	Subtasks  []TaskNode `json:"subtasks,omitempty"`
}

// StagePlan is one top-level stage of the generated schedule.
type StagePlan struct {
	Name      string     `json:"stage_name"`
	StartDate string     `json:"start_date,omitempty"`
	EndDate   string     `json:"end_date,omitempty"`
	Tasks     []TaskNode `json:"tasks"`
}

// Tree is an ordered sequence of stage plans, the full output of one
// generation run.
type Tree []StagePlan

const dateLayout = "2006-01-02"

// parseDate converts a model-emitted date string into a timestamp. Empty or
// malformed dates become nil rather than failing the whole schedule.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
