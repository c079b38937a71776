package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"buildsite-service/internal/model"
	"buildsite-service/pkg/logger"
	"buildsite-service/prometheus"
)

// ProjectHandler serves project lifecycle endpoints
type ProjectHandler struct {
	DB *gorm.DB
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{DB: db}
}

// ProjectCreateRequest defines the structure for project creation requests
type ProjectCreateRequest struct {
	OwnerID            string  `json:"owner_id"`
	Name               string  `json:"name"`
	Code               string  `json:"code"`
	ProjectType        string  `json:"project_type"`
	SubType            string  `json:"sub_type"`
	ConstructionMethod string  `json:"construction_method"`
	DeliveryMethod     string  `json:"delivery_method"`
	SiteContext        string  `json:"site_context"`
	Location           string  `json:"location"`
	ClientName         string  `json:"client_name"`
	FloorCount         int     `json:"floor_count"`
	TowerCount         int     `json:"tower_count"`
	UnitCount          int     `json:"unit_count"`
	Area               float64 `json:"area"`
	Budget             float64 `json:"budget"`
}

// Create handles creating a new project and its owner membership
func (h *ProjectHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req ProjectCreateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.Code == "" {
		req.Code = generateJoinCode()
	}

	log.Info("Creating project",
		zap.String("name", req.Name),
		zap.String("code", req.Code),
		zap.String("project_type", req.ProjectType))

	// Check if a project with this code already exists
	var count int64
	h.DB.Model(&model.Project{}).Where("code = ?", req.Code).Count(&count)
	if count > 0 {
		log.Warn("Project with this code already exists", zap.String("code", req.Code))
		return c.JSON(http.StatusConflict, echo.Map{"error": "Project with this code already exists"})
	}

	project := model.Project{
		Name:               req.Name,
		Code:               req.Code,
		OwnerID:            req.OwnerID,
		ProjectType:        req.ProjectType,
		SubType:            req.SubType,
		ConstructionMethod: req.ConstructionMethod,
		DeliveryMethod:     req.DeliveryMethod,
		SiteContext:        req.SiteContext,
		Location:           req.Location,
		ClientName:         req.ClientName,
		FloorCount:         req.FloorCount,
		TowerCount:         req.TowerCount,
		UnitCount:          req.UnitCount,
		Area:               req.Area,
		Budget:             req.Budget,
		Status:             model.ProjectStatusPlanning,
	}

	// Project and owner membership commit together
	defer prometheus.TrackDBOperation("project_insert")(time.Now())
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		owner := model.ProjectMember{
			ProjectID: project.ID,
			UserID:    req.OwnerID,
			Role:      "Owner",
			Status:    "Active",
		}
		return tx.Create(&owner).Error
	})
	if err != nil {
		log.Error("Failed to create project", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create project"})
	}

	log.Info("Project created successfully",
		zap.Uint("project_id", project.ID),
		zap.String("code", project.Code))
	return c.JSON(http.StatusCreated, echo.Map{
		"status":     "Success",
		"project_id": project.ID,
	})
}

// Dashboard handles retrieving a project with its stages and nested tasks
func (h *ProjectHandler) Dashboard(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var project model.Project
	if err := h.DB.First(&project, id).Error; err != nil {
		log.Warn("Project not found", zap.String("project_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Project not found"})
	}

	var stages []model.Stage
	err := h.DB.
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.id")
		}).
		Where("project_id = ?", project.ID).
		Order("id").
		Find(&stages).Error
	if err != nil {
		log.Error("Failed to load timeline", zap.String("project_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load timeline"})
	}

	log.Info("Dashboard retrieved",
		zap.Uint("project_id", project.ID),
		zap.Int("stage_count", len(stages)))
	return c.JSON(http.StatusOK, echo.Map{
		"project":       project,
		"timeline_data": stages,
	})
}

// JoinRequest defines the structure for join-by-code requests
type JoinRequest struct {
	Code   string `json:"code"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Join handles a user joining a project by its join code
func (h *ProjectHandler) Join(c echo.Context) error {
	log := logger.FromContext(c)

	var req JoinRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Code == "" || req.UserID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code and user_id are required"})
	}
	if req.Role == "" {
		req.Role = "Member"
	}

	var project model.Project
	if err := h.DB.Where("code = ?", req.Code).First(&project).Error; err != nil {
		log.Warn("Unknown join code", zap.String("code", req.Code))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Project not found"})
	}

	// Check-then-insert; racy under concurrent joins since no unique
	// constraint backs this.
	var existing model.ProjectMember
	err := h.DB.Where("project_id = ? AND user_id = ? AND status = ?", project.ID, req.UserID, "Active").
		First(&existing).Error
	if err == nil {
		log.Warn("User already a member",
			zap.Uint("project_id", project.ID),
			zap.String("user_id", req.UserID))
		return c.JSON(http.StatusConflict, echo.Map{"error": "Already a member of this project"})
	}

	member := model.ProjectMember{
		ProjectID: project.ID,
		UserID:    req.UserID,
		Role:      req.Role,
		Status:    "Active",
	}
	if err := h.DB.Create(&member).Error; err != nil {
		log.Error("Failed to join project", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to join project"})
	}

	log.Info("User joined project",
		zap.Uint("project_id", project.ID),
		zap.String("user_id", req.UserID),
		zap.String("role", req.Role))
	return c.JSON(http.StatusCreated, echo.Map{
		"status":     "Success",
		"project_id": project.ID,
	})
}

// Delete handles deleting a project (soft delete)
func (h *ProjectHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	result := h.DB.Delete(&model.Project{}, id)
	if result.Error != nil {
		log.Error("Failed to delete project", zap.String("project_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete project"})
	}
	if result.RowsAffected == 0 {
		log.Warn("Project not found for deletion", zap.String("project_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Project not found"})
	}

	log.Info("Project deleted", zap.String("project_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Project deleted successfully"})
}

// generateJoinCode builds a short shareable code for projects created
// without one.
func generateJoinCode() string {
	return strings.ToUpper(uuid.New().String()[:8])
}
