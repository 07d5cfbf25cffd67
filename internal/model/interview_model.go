package model

import (
	"time"

	"github.com/google/uuid"
)

// InterviewSession stores one completed evaluation. Responses and Result hold
// the raw JSON payloads; OverallScore and Source are lifted out for querying.
type InterviewSession struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Specialty    string    `gorm:"type:varchar(100)" json:"specialty"`
	Responses    string    `gorm:"type:jsonb" json:"responses"`
	Result       string    `gorm:"type:jsonb" json:"result"`
	Source       string    `gorm:"type:varchar(20)" json:"source"` // "provider" or "heuristic"
	OverallScore float64   `gorm:"type:float" json:"overall_score"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
