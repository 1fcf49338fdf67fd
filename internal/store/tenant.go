package store

import (
	"fmt"

	"feedbridge/internal/models"

	"gorm.io/gorm"
)

type GormTenantStore struct {
	db *gorm.DB
}

func NewTenantStore(db *gorm.DB) *GormTenantStore {
	return &GormTenantStore{db: db}
}

func (s *GormTenantStore) Create(tenant *models.Tenant) error {
	if err := s.db.Create(tenant).Error; err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}
	return nil
}

func (s *GormTenantStore) Get(id string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.First(&tenant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (s *GormTenantStore) GetByEmail(email string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.First(&tenant, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}
