package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"buildsite-service/internal/chat"
	"buildsite-service/internal/middleware"
	"buildsite-service/pkg/logger"
)

// ChatHandler serves the chat ingestion endpoint
type ChatHandler struct {
	Router *chat.Router
}

func NewChatHandler(router *chat.Router) *ChatHandler {
	return &ChatHandler{Router: router}
}

// ChatMessageRequest defines the structure for inbound chat messages
type ChatMessageRequest struct {
	ProjectID uint   `json:"project_id"`
	UserID    string `json:"user_id"`
	Message   string `json:"message"`
	Context   string `json:"context"`
}

// Send handles an inbound chat message and returns the routed reply
func (h *ChatHandler) Send(c echo.Context) error {
	log := logger.FromContext(c)

	var req ChatMessageRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.ProjectID == 0 || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "project_id and message are required"})
	}

	// Fall back to the bearer-token identity when the body omits user_id
	if req.UserID == "" {
		if userID, ok := middleware.GetUserIDFromContext(c); ok {
			req.UserID = userID
		}
	}

	reply, err := h.Router.Handle(c.Request().Context(), chat.Message{
		ProjectID: req.ProjectID,
		UserID:    req.UserID,
		Text:      req.Message,
		Context:   req.Context,
	})
	if err != nil {
		log.Error("Chat routing failed",
			zap.Uint("project_id", req.ProjectID),
			zap.String("context", req.Context),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to process message"})
	}

	log.Info("Chat message processed",
		zap.Uint("project_id", req.ProjectID),
		zap.String("context", req.Context))
	return c.JSON(http.StatusOK, echo.Map{
		"status":   "Success",
		"response": reply,
	})
}
