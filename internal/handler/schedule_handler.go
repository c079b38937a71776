package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"buildsite-service/internal/model"
	"buildsite-service/internal/schedule"
	"buildsite-service/pkg/logger"
	"buildsite-service/prometheus"
)

// ScheduleHandler serves schedule generation endpoints
type ScheduleHandler struct {
	DB            *gorm.DB
	Generator     *schedule.Generator
	AutoScheduler *schedule.AutoScheduler
}

func NewScheduleHandler(db *gorm.DB, gen *schedule.Generator, auto *schedule.AutoScheduler) *ScheduleHandler {
	return &ScheduleHandler{DB: db, Generator: gen, AutoScheduler: auto}
}

// GenerateScheduleRequest defines the structure for schedule generation requests
type GenerateScheduleRequest struct {
	OwnerID            string  `json:"owner_id"`
	Name               string  `json:"name"`
	Code               string  `json:"code"`
	ProjectType        string  `json:"project_type"`
	SubType            string  `json:"sub_type"`
	ConstructionMethod string  `json:"construction_method"`
	DeliveryMethod     string  `json:"delivery_method"`
	SiteContext        string  `json:"site_context"`
	FloorCount         int     `json:"floor_count"`
	TowerCount         int     `json:"tower_count"`
	UnitCount          int     `json:"unit_count"`
	Area               float64 `json:"area"`
}

// Generate finds or creates the project by code, generates a schedule from
// its WBS template via the model, and persists the resulting stage/task tree.
// Re-running with the same code reuses the project row but appends a fresh
// set of stages and tasks; nothing is deduplicated.
func (h *ScheduleHandler) Generate(c echo.Context) error {
	log := logger.FromContext(c)

	var req GenerateScheduleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code is required"})
	}

	// Find-or-create by join code
	candidate := model.Project{
		Name:               req.Name,
		Code:               req.Code,
		OwnerID:            req.OwnerID,
		ProjectType:        req.ProjectType,
		SubType:            req.SubType,
		ConstructionMethod: req.ConstructionMethod,
		DeliveryMethod:     req.DeliveryMethod,
		SiteContext:        req.SiteContext,
		FloorCount:         req.FloorCount,
		TowerCount:         req.TowerCount,
		UnitCount:          req.UnitCount,
		Area:               req.Area,
		Status:             model.ProjectStatusPlanning,
	}
	project, created, err := schedule.EnsureProject(c.Request().Context(), &schedule.GormStore{DB: h.DB}, &candidate)
	if err != nil {
		log.Error("Failed to resolve project", zap.String("code", req.Code), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to resolve project"})
	}
	if created {
		log.Info("Project created for schedule", zap.Uint("project_id", project.ID))
	}

	tree, err := h.Generator.Generate(c.Request().Context(), project)
	if err != nil {
		log.Error("Schedule generation failed",
			zap.Uint("project_id", project.ID),
			zap.Error(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Schedule generation failed"})
	}

	// All stages and tasks of one run commit together
	defer prometheus.TrackDBOperation("schedule_insert")(time.Now())
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		store := &schedule.GormStore{DB: tx}
		return schedule.PersistSchedule(c.Request().Context(), store, project.ID, tree)
	})
	if err != nil {
		log.Error("Failed to persist schedule",
			zap.Uint("project_id", project.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to persist schedule"})
	}

	log.Info("Schedule generated",
		zap.Uint("project_id", project.ID),
		zap.Int("stage_count", len(tree)))
	return c.JSON(http.StatusOK, echo.Map{
		"status":     "Success",
		"project_id": project.ID,
	})
}

// AutoScheduleRequest defines the structure for auto-schedule requests
type AutoScheduleRequest struct {
	ProjectID uint `json:"project_id"`
}

// AutoSchedule assigns open tasks to team members via one model call
func (h *ScheduleHandler) AutoSchedule(c echo.Context) error {
	log := logger.FromContext(c)

	var req AutoScheduleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.ProjectID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "project_id is required"})
	}

	var project model.Project
	if err := h.DB.First(&project, req.ProjectID).Error; err != nil {
		log.Warn("Project not found", zap.Uint("project_id", req.ProjectID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Project not found"})
	}

	updated, err := h.AutoScheduler.Run(c.Request().Context(), req.ProjectID)
	if err != nil {
		log.Error("Auto-schedule failed",
			zap.Uint("project_id", req.ProjectID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status": "Error",
			"detail": err.Error(),
		})
	}

	log.Info("Auto-schedule complete",
		zap.Uint("project_id", req.ProjectID),
		zap.Int("tasks_updated", updated))
	return c.JSON(http.StatusOK, echo.Map{
		"status":        "Success",
		"tasks_updated": updated,
	})
}
