package dto

import "github.com/Samuel04-png/aether-api/internal/models"

// DashboardStatDTO represents a KPI row in API responses
type DashboardStatDTO struct {
	ID     uint64  `json:"id"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Period string  `json:"period"`
}

// ToDashboardStatDTOs maps a slice of dashboard stats.
func ToDashboardStatDTOs(stats []models.DashboardStat) []DashboardStatDTO {
	out := make([]DashboardStatDTO, len(stats))
	for i, s := range stats {
		out[i] = DashboardStatDTO{
			ID:     s.ID,
			Label:  s.Label,
			Value:  s.Value,
			Period: s.Period,
		}
	}
	return out
}
