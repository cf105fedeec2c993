package models

import "time"

// DashboardStat is a stored KPI row shown on the owner's dashboard. One row
// per owner/label/period.
type DashboardStat struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	OwnerID   uint64    `gorm:"not null;uniqueIndex:idx_stats_owner_label_period" json:"owner_id"`
	Label     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_stats_owner_label_period" json:"label"`
	Period    string    `gorm:"type:varchar(20);uniqueIndex:idx_stats_owner_label_period" json:"period"`
	Value     float64   `gorm:"not null;default:0" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
