package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"buildsite-service/internal/model"
	"buildsite-service/pkg/logger"
	"buildsite-service/prometheus"
)

// TaskHandler serves task CRUD endpoints
type TaskHandler struct {
	DB *gorm.DB
}

func NewTaskHandler(db *gorm.DB) *TaskHandler {
	return &TaskHandler{DB: db}
}

// TaskAddRequest defines the structure for task creation requests
type TaskAddRequest struct {
	StageID      uint       `json:"stage_id"`
	ParentTaskID *uint      `json:"parent_task_id,omitempty"`
	Name         string     `json:"name"`
	AssignedRole string     `json:"assigned_role"`
	AssigneeID   string     `json:"assignee_id"`
	Status       string     `json:"status"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
}

// Add handles creating a new task under a stage
func (h *TaskHandler) Add(c echo.Context) error {
	log := logger.FromContext(c)

	var req TaskAddRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.StageID == 0 || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stage_id and name are required"})
	}

	var stage model.Stage
	if err := h.DB.First(&stage, req.StageID).Error; err != nil {
		log.Warn("Stage not found", zap.Uint("stage_id", req.StageID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Stage not found"})
	}

	// A parent task must live in the same stage as its child
	if req.ParentTaskID != nil {
		var parent model.Task
		if err := h.DB.First(&parent, *req.ParentTaskID).Error; err != nil {
			log.Warn("Parent task not found", zap.Uint("parent_task_id", *req.ParentTaskID))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Parent task not found"})
		}
		if parent.StageID != req.StageID {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Parent task belongs to a different stage"})
		}
	}

	if req.Status == "" {
		req.Status = model.TaskStatusNotStarted
	}

	task := model.Task{
		StageID:      req.StageID,
		ParentTaskID: req.ParentTaskID,
		Name:         req.Name,
		AssignedRole: req.AssignedRole,
		AssigneeID:   req.AssigneeID,
		Status:       req.Status,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	}
	defer prometheus.TrackDBOperation("task_insert")(time.Now())
	if err := h.DB.Create(&task).Error; err != nil {
		log.Error("Failed to create task", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create task"})
	}

	log.Info("Task created",
		zap.Uint("task_id", task.ID),
		zap.Uint("stage_id", task.StageID))
	return c.JSON(http.StatusCreated, task)
}

// TaskUpdateRequest defines the structure for task patch requests.
// Pointer fields distinguish "omitted" from "set to zero value".
type TaskUpdateRequest struct {
	Name         *string    `json:"name,omitempty"`
	AssignedRole *string    `json:"assigned_role,omitempty"`
	AssigneeID   *string    `json:"assignee_id,omitempty"`
	Status       *string    `json:"status,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
}

// Update handles patching task fields
func (h *TaskHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req TaskUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("task_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	var task model.Task
	if err := h.DB.First(&task, id).Error; err != nil {
		log.Warn("Task not found for update", zap.String("task_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Task not found"})
	}

	if req.Name != nil {
		task.Name = *req.Name
	}
	if req.AssignedRole != nil {
		task.AssignedRole = *req.AssignedRole
	}
	if req.AssigneeID != nil {
		task.AssigneeID = *req.AssigneeID
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.StartDate != nil {
		task.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		task.EndDate = req.EndDate
	}

	if err := h.DB.Save(&task).Error; err != nil {
		log.Error("Failed to update task", zap.String("task_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update task"})
	}

	log.Info("Task updated",
		zap.Uint("task_id", task.ID),
		zap.String("status", task.Status))
	return c.JSON(http.StatusOK, task)
}

// Delete handles deleting a task (soft delete)
func (h *TaskHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	result := h.DB.Delete(&model.Task{}, id)
	if result.Error != nil {
		log.Error("Failed to delete task", zap.String("task_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete task"})
	}
	if result.RowsAffected == 0 {
		log.Warn("Task not found for deletion", zap.String("task_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Task not found"})
	}

	log.Info("Task deleted", zap.String("task_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Task deleted successfully"})
}
