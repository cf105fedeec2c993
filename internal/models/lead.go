package models

import "time"

type LeadStage string

const (
	LeadStageNew       LeadStage = "new"
	LeadStageContacted LeadStage = "contacted"
	LeadStageQualified LeadStage = "qualified"
	LeadStageWon       LeadStage = "won"
	LeadStageLost      LeadStage = "lost"
)

// Valid reports whether s is one of the known pipeline stages.
func (s LeadStage) Valid() bool {
	switch s {
	case LeadStageNew, LeadStageContacted, LeadStageQualified, LeadStageWon, LeadStageLost:
		return true
	}
	return false
}

// Lead is archived in place rather than deleted.
type Lead struct {
	ID         uint64     `gorm:"primarykey" json:"id"`
	OwnerID    uint64     `gorm:"not null;index" json:"owner_id"`
	Name       string     `gorm:"type:varchar(100);not null" json:"name"`
	Company    string     `gorm:"type:varchar(100)" json:"company"`
	Email      string     `gorm:"type:varchar(255)" json:"email"`
	Stage      LeadStage  `gorm:"type:varchar(20);not null;default:'new'" json:"stage"`
	Value      float64    `gorm:"not null;default:0" json:"value"`
	Notes      string     `gorm:"type:text" json:"notes"`
	ArchivedAt *time.Time `gorm:"index" json:"archived_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
