package dto

import (
	"time"

	"github.com/Samuel04-png/aether-api/internal/models"
)

// LeadDTO represents a lead in API responses
type LeadDTO struct {
	ID         uint64           `json:"id"`
	Name       string           `json:"name"`
	Company    string           `json:"company"`
	Email      string           `json:"email,omitempty"`
	Stage      models.LeadStage `json:"stage"`
	Value      float64          `json:"value"`
	Notes      string           `json:"notes,omitempty"`
	Archived   bool             `json:"archived"`
	ArchivedAt *time.Time       `json:"archived_at,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// ToLeadDTO converts a Lead model to LeadDTO
func ToLeadDTO(lead models.Lead) LeadDTO {
	dto := LeadDTO{
		ID:         lead.ID,
		Name:       lead.Name,
		Company:    lead.Company,
		Email:      lead.Email,
		Stage:      lead.Stage,
		Value:      lead.Value,
		Notes:      lead.Notes,
		Archived:   lead.ArchivedAt != nil,
		ArchivedAt: lead.ArchivedAt,
		CreatedAt:  lead.CreatedAt,
		UpdatedAt:  lead.UpdatedAt,
	}
	if dto.Stage == "" {
		dto.Stage = models.LeadStageNew
	}
	return dto
}

// ToLeadDTOs maps a slice of leads.
func ToLeadDTOs(leads []models.Lead) []LeadDTO {
	out := make([]LeadDTO, len(leads))
	for i, lead := range leads {
		out[i] = ToLeadDTO(lead)
	}
	return out
}
