package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Samuel04-png/aether-api/internal/dto"
	apierrors "github.com/Samuel04-png/aether-api/internal/errors"
	"github.com/Samuel04-png/aether-api/internal/middleware"
	"github.com/Samuel04-png/aether-api/internal/models"
	"github.com/Samuel04-png/aether-api/internal/services"
	"github.com/Samuel04-png/aether-api/internal/views"
)

// LeadHandler coordinates sales pipeline HTTP handlers.
type LeadHandler struct {
	leadService *services.LeadService
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(leadService *services.LeadService) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
	}
}

// ListLeads returns the user's pipeline. Archived leads appear only with
// ?include_archived=true.
func (h *LeadHandler) ListLeads(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	leads, err := h.leadService.ListLeads(userID, c.Query("include_archived") == "true")
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch leads")
		return
	}

	leadDTOs := dto.ToLeadDTOs(leads)

	c.JSON(http.StatusOK, gin.H{
		"leads":          leadDTOs,
		"pipeline_value": views.PipelineValue(leadDTOs),
	})
}

// CreateLead adds a lead to the pipeline.
func (h *LeadHandler) CreateLead(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateLeadRequest struct {
		Name    string  `json:"name" binding:"required,max=100"`
		Company string  `json:"company" binding:"max=100"`
		Email   string  `json:"email" binding:"omitempty,email"`
		Stage   string  `json:"stage"`
		Value   float64 `json:"value"`
		Notes   string  `json:"notes"`
	}

	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	lead, err := h.leadService.CreateLead(c.Request.Context(), userID, services.CreateLeadInput{
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Stage:   models.LeadStage(req.Stage),
		Value:   req.Value,
		Notes:   req.Notes,
	})
	if err != nil {
		respondLeadError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToLeadDTO(*lead))
}

// UpdateLead updates a lead's fields, including stage moves.
func (h *LeadHandler) UpdateLead(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	leadID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid lead ID")
		return
	}

	type UpdateLeadRequest struct {
		Name    *string  `json:"name"`
		Company *string  `json:"company"`
		Email   *string  `json:"email"`
		Stage   *string  `json:"stage"`
		Value   *float64 `json:"value"`
		Notes   *string  `json:"notes"`
	}

	var req UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateLeadInput{
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Value:   req.Value,
		Notes:   req.Notes,
	}
	if req.Stage != nil {
		stage := models.LeadStage(*req.Stage)
		input.Stage = &stage
	}

	lead, err := h.leadService.UpdateLead(c.Request.Context(), leadID, userID, input)
	if err != nil {
		respondLeadError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLeadDTO(*lead))
}

// ArchiveLead archives a lead in place.
func (h *LeadHandler) ArchiveLead(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	leadID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid lead ID")
		return
	}

	if err := h.leadService.ArchiveLead(c.Request.Context(), leadID, userID); err != nil {
		respondLeadError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Lead archived",
	})
}

// UnarchiveLead restores an archived lead.
func (h *LeadHandler) UnarchiveLead(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	leadID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid lead ID")
		return
	}

	if err := h.leadService.UnarchiveLead(c.Request.Context(), leadID, userID); err != nil {
		respondLeadError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Lead restored",
	})
}

func respondLeadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoScopingID):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrLeadNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotLeadOwner):
		// 404 instead of 403 to avoid leaking pipeline contents
		apierrors.NotFound(c, "lead not found")
	case errors.Is(err, services.ErrLeadNameRequired),
		errors.Is(err, services.ErrInvalidLeadStage),
		errors.Is(err, services.ErrNegativeValue):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
