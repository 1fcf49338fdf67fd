package store

import (
	"fmt"

	"feedbridge/internal/models"

	"gorm.io/gorm"
)

type GormMappingStore struct {
	db *gorm.DB
}

func NewMappingStore(db *gorm.DB) *GormMappingStore {
	return &GormMappingStore{db: db}
}

// Save overwrites the tenant's rule set for a target product. Rules are
// replaced as a whole, never merged field by field.
func (s *GormMappingStore) Save(tenantID, targetProductID string, rules map[string]models.MappingRule) (*models.MappingSpec, error) {
	var spec models.MappingSpec
	err := s.db.Where("tenant_id = ? AND target_product_id = ?", tenantID, targetProductID).First(&spec).Error

	if err == gorm.ErrRecordNotFound {
		spec = models.MappingSpec{
			TenantID:        tenantID,
			TargetProductID: targetProductID,
			Rules:           rules,
		}
		if err := s.db.Create(&spec).Error; err != nil {
			return nil, fmt.Errorf("failed to create mapping spec: %w", err)
		}
		return &spec, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to query mapping spec: %w", err)
	}

	spec.Rules = rules
	if err := s.db.Save(&spec).Error; err != nil {
		return nil, fmt.Errorf("failed to update mapping spec: %w", err)
	}
	return &spec, nil
}

// Load returns all mapping specs declared by the tenant.
func (s *GormMappingStore) Load(tenantID string) ([]models.MappingSpec, error) {
	var specs []models.MappingSpec
	if err := s.db.Where("tenant_id = ?", tenantID).Order("updated_at DESC").Find(&specs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch mapping specs: %w", err)
	}
	return specs, nil
}
