package models

import "time"

// Global stat metric names
const (
	StatTotalBeams     = "total_beams"
	StatTotalBeamValue = "total_beam_amount"
)

// GlobalStat is a named counter row updated with atomic increments.
// It replaces the ambient global counters the marketing site kept in a
// single stats document.
type GlobalStat struct {
	Name      string    `gorm:"type:varchar(50);primary_key" json:"name"`
	Value     int64     `gorm:"not null;default:0" json:"value"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}
