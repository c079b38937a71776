package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"buildsite-service/internal/model"
	"buildsite-service/pkg/logger"
)

// TeamHandler serves project membership endpoints
type TeamHandler struct {
	DB *gorm.DB
}

func NewTeamHandler(db *gorm.DB) *TeamHandler {
	return &TeamHandler{DB: db}
}

// TeamMemberAddRequest defines the structure for add-member requests
type TeamMemberAddRequest struct {
	ProjectID  uint   `json:"project_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
	AccessTier string `json:"access_tier"`
}

// Add handles adding a team member to a project by email
func (h *TeamHandler) Add(c echo.Context) error {
	log := logger.FromContext(c)

	var req TeamMemberAddRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.ProjectID == 0 || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "project_id and email are required"})
	}
	if req.Role == "" {
		req.Role = "Member"
	}

	var project model.Project
	if err := h.DB.First(&project, req.ProjectID).Error; err != nil {
		log.Warn("Project not found", zap.Uint("project_id", req.ProjectID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Project not found"})
	}

	// Resolve the email through the profile directory
	var profile model.Profile
	if err := h.DB.Where("email = ?", req.Email).First(&profile).Error; err != nil {
		log.Warn("No profile for email", zap.String("email", req.Email))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No user found for this email"})
	}

	// Check-then-insert duplicate guard; no unique constraint backs this.
	var existing model.ProjectMember
	err := h.DB.Where("project_id = ? AND user_id = ? AND status = ?", req.ProjectID, profile.UserID, "Active").
		First(&existing).Error
	if err == nil {
		log.Warn("User already a member",
			zap.Uint("project_id", req.ProjectID),
			zap.String("user_id", profile.UserID))
		return c.JSON(http.StatusConflict, echo.Map{"error": "User is already a member of this project"})
	}

	member := model.ProjectMember{
		ProjectID:  req.ProjectID,
		UserID:     profile.UserID,
		Email:      profile.Email,
		Role:       req.Role,
		Department: req.Department,
		AccessTier: req.AccessTier,
		Status:     "Active",
	}
	if err := h.DB.Create(&member).Error; err != nil {
		log.Error("Failed to add team member", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to add team member"})
	}

	log.Info("Team member added",
		zap.Uint("project_id", req.ProjectID),
		zap.String("user_id", profile.UserID),
		zap.String("role", req.Role))
	return c.JSON(http.StatusCreated, echo.Map{"status": "Success"})
}

// List handles retrieving the active members of a project
func (h *TeamHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var project model.Project
	if err := h.DB.First(&project, id).Error; err != nil {
		log.Warn("Project not found", zap.String("project_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Project not found"})
	}

	var members []model.ProjectMember
	if err := h.DB.Where("project_id = ? AND status = ?", project.ID, "Active").Find(&members).Error; err != nil {
		log.Error("Failed to list team members", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list team members"})
	}

	return c.JSON(http.StatusOK, members)
}
