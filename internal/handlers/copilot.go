package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Samuel04-png/aether-api/internal/errors"
	"github.com/Samuel04-png/aether-api/internal/middleware"
	"github.com/Samuel04-png/aether-api/internal/services"
)

// CopilotHandler serves the workspace copilot.
type CopilotHandler struct {
	copilotService *services.CopilotService
}

// NewCopilotHandler creates a new CopilotHandler.
func NewCopilotHandler(copilotService *services.CopilotService) *CopilotHandler {
	return &CopilotHandler{
		copilotService: copilotService,
	}
}

// Ask answers a question grounded in the user's workspace data.
func (h *CopilotHandler) Ask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type AskRequest struct {
		Question string `json:"question" binding:"required"`
	}

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	answer, err := h.copilotService.Ask(c.Request.Context(), userID, req.Question)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCopilotDisabled):
			apierrors.ServiceUnavailable(c, "Copilot is not configured")
		case errors.Is(err, services.ErrQuestionRequired),
			errors.Is(err, services.ErrQuestionTooLong):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrNoScopingID):
			apierrors.Unauthorized(c, err.Error())
		default:
			apierrors.InternalError(c, "Copilot request failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answer": answer,
	})
}
