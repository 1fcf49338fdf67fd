package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExportLog struct {
	ID         string       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID   string       `json:"tenant_id" gorm:"not null"`
	BatchID    string       `json:"batch_id" gorm:"not null"`
	TrackingID string       `json:"tracking_id"`
	Status     ExportStatus `json:"status" gorm:"default:SUBMITTED"`
	Message    string       `json:"message"`
	ItemCount  int          `json:"item_count"`
	CreatedAt  time.Time    `json:"created_at"`
}

type ExportStatus string

const (
	ExportStatusSubmitted ExportStatus = "SUBMITTED"
	ExportStatusFailed    ExportStatus = "FAILED"
)

func (e *ExportLog) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}
