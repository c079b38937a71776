package schedule

import (
	"context"

	"buildsite-service/internal/model"
	"buildsite-service/prometheus"
)

// PersistTree walks a task tree in input order and creates one task row per
// node under the given stage, linking each child to its parent's generated
// ID. Every created row starts with status "Not Started".
//
// If an insert fails the error is returned and that node's descendants are
// not created; siblings already persisted stay persisted. An insert that
// reports success without yielding an ID drops the node's subtree without
// error, since there is no parent ID to hang the children on.
func PersistTree(ctx context.Context, store Store, stageID uint, parentTaskID *uint, nodes []TaskNode) error {
	for _, node := range nodes {
		task := model.Task{
			StageID:      stageID,
			ParentTaskID: parentTaskID,
			Name:         node.Name,
			AssignedRole: node.Role,
			Status:       model.TaskStatusNotStarted,
			StartDate:    parseDate(node.StartDate),
			EndDate:      parseDate(node.EndDate),
		}
		if err := store.CreateTask(ctx, &task); err != nil {
			return err
		}
		prometheus.TasksPersistedCounter.Inc()

		if task.ID == 0 {
			continue
		}
		if len(node.Subtasks) > 0 {
			parent := task.ID
			if err := PersistTree(ctx, store, stageID, &parent, node.Subtasks); err != nil {
				return err
			}
		}
	}
	return nil
}

// PersistSchedule creates one stage row per stage plan in order and persists
// each stage's task tree beneath it.
func PersistSchedule(ctx context.Context, store Store, projectID uint, tree Tree) error {
	for _, plan := range tree {
		stage := model.Stage{
			ProjectID: projectID,
			Name:      plan.Name,
			StartDate: parseDate(plan.StartDate),
			EndDate:   parseDate(plan.EndDate),
			Status:    model.TaskStatusNotStarted,
		}
		if err := store.CreateStage(ctx, &stage); err != nil {
			return err
		}
		if stage.ID == 0 {
			continue
		}
		if err := PersistTree(ctx, store, stage.ID, nil, plan.Tasks); err != nil {
			return err
		}
	}
	return nil
}
