package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tenant struct {
	ID        string     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email     string     `json:"email" gorm:"unique;not null"`
	Role      TenantRole `json:"role" gorm:"default:MERCHANT"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type TenantRole string

const (
	TenantRoleMerchant TenantRole = "MERCHANT"
	TenantRoleAdmin    TenantRole = "ADMIN"
)

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
