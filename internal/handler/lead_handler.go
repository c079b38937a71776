package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"buildsite-service/internal/lead"
	"buildsite-service/internal/model"
	"buildsite-service/pkg/logger"
	"buildsite-service/prometheus"
)

// LeadHandler serves lead capture and listing endpoints
type LeadHandler struct {
	DB *gorm.DB
}

func NewLeadHandler(db *gorm.DB) *LeadHandler {
	return &LeadHandler{DB: db}
}

// UploadCSV handles bulk lead import from a multipart CSV file.
// The target project comes from the project_id query parameter.
func (h *LeadHandler) UploadCSV(c echo.Context) error {
	log := logger.FromContext(c)

	projectID, err := strconv.ParseUint(c.QueryParam("project_id"), 10, 32)
	if err != nil || projectID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "project_id query parameter is required"})
	}

	var project model.Project
	if err := h.DB.First(&project, projectID).Error; err != nil {
		log.Warn("Project not found", zap.Uint64("project_id", projectID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Project not found"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Error("Missing CSV file", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Failed to read uploaded file"})
	}
	defer file.Close()

	leads, err := lead.ParseCSV(file, uint(projectID))
	if err != nil {
		log.Error("Failed to parse CSV", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Failed to parse CSV: " + err.Error()})
	}
	if len(leads) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"status": "Success", "count": 0})
	}

	defer prometheus.TrackDBOperation("lead_bulk_insert")(time.Now())
	if err := h.DB.Create(&leads).Error; err != nil {
		log.Error("Failed to insert leads", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to insert leads"})
	}
	prometheus.RecordLeadOperation(model.LeadSourceCSVImport)

	log.Info("Leads imported",
		zap.Uint64("project_id", projectID),
		zap.Int("count", len(leads)))
	return c.JSON(http.StatusOK, echo.Map{
		"status": "Success",
		"count":  len(leads),
	})
}

// LeadIngestRequest defines the structure for direct lead ingestion
type LeadIngestRequest struct {
	ProjectID  uint    `json:"project_id"`
	Name       string  `json:"name"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty"`
	Source     string  `json:"source"`
	LeadScore  int     `json:"lead_score"`
	NextAction string  `json:"next_action"`
}

// Ingest handles creating a single lead directly
func (h *LeadHandler) Ingest(c echo.Context) error {
	log := logger.FromContext(c)

	var req LeadIngestRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.ProjectID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "project_id is required"})
	}
	if req.Source == "" {
		req.Source = model.LeadSourceDirect
	}

	record := model.Lead{
		ProjectID:  req.ProjectID,
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Source:     req.Source,
		LeadScore:  req.LeadScore,
		NextAction: req.NextAction,
		Status:     "New",
	}
	defer prometheus.TrackDBOperation("lead_insert")(time.Now())
	if err := h.DB.Create(&record).Error; err != nil {
		log.Error("Failed to create lead", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create lead"})
	}
	prometheus.RecordLeadOperation(record.Source)

	log.Info("Lead ingested",
		zap.Uint("lead_id", record.ID),
		zap.Uint("project_id", record.ProjectID))
	return c.JSON(http.StatusCreated, record)
}

// List handles retrieving a project's leads
func (h *LeadHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var project model.Project
	if err := h.DB.First(&project, id).Error; err != nil {
		log.Warn("Project not found", zap.String("project_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Project not found"})
	}

	var leads []model.Lead
	if err := h.DB.Where("project_id = ?", project.ID).Order("id").Find(&leads).Error; err != nil {
		log.Error("Failed to list leads", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list leads"})
	}

	return c.JSON(http.StatusOK, leads)
}
