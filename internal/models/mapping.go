package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RuleKind string

const (
	RuleIgnore     RuleKind = "IGNORE"
	RuleMapToField RuleKind = "MAP_TO_FIELD"
	RuleFreeText   RuleKind = "FREE_TEXT"
)

// MappingRule declares how one target attribute gets its value: skipped
// entirely, copied from a line-item field path, or filled with a literal.
type MappingRule struct {
	Kind  RuleKind `json:"kind"`
	Value string   `json:"value,omitempty"`
}

// MappingSpec is a tenant's declared rule set for one target product.
// Saved as a whole; a save replaces the previous rule set, never merges.
type MappingSpec struct {
	ID              string                 `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID        string                 `json:"tenant_id" gorm:"not null;uniqueIndex:idx_mappings_tenant_product"`
	TargetProductID string                 `json:"target_product_id" gorm:"not null;uniqueIndex:idx_mappings_tenant_product"`
	Rules           map[string]MappingRule `json:"rules" gorm:"serializer:json;type:jsonb"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

func (m *MappingSpec) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// Rule returns the declared rule for a target attribute, defaulting to
// Ignore when the spec says nothing about it.
func (m *MappingSpec) Rule(attribute string) MappingRule {
	if rule, ok := m.Rules[attribute]; ok {
		return rule
	}
	return MappingRule{Kind: RuleIgnore}
}
