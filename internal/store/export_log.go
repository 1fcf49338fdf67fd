package store

import (
	"fmt"

	"feedbridge/internal/models"

	"gorm.io/gorm"
)

type GormExportLogStore struct {
	db *gorm.DB
}

func NewExportLogStore(db *gorm.DB) *GormExportLogStore {
	return &GormExportLogStore{db: db}
}

func (s *GormExportLogStore) Record(log *models.ExportLog) error {
	if err := s.db.Create(log).Error; err != nil {
		return fmt.Errorf("failed to record export: %w", err)
	}
	return nil
}

func (s *GormExportLogStore) List(tenantID string) ([]models.ExportLog, error) {
	var logs []models.ExportLog
	if err := s.db.Where("tenant_id = ?", tenantID).Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch export logs: %w", err)
	}
	return logs, nil
}
