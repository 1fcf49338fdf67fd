package store

import "feedbridge/internal/models"

// SnapshotStore persists the normalized result of a catalog fetch,
// keyed by tenant + source URL. Upserts replace wholesale.
type SnapshotStore interface {
	Upsert(tenantID, sourceURL string, items []models.CanonicalLineItem) (*models.SourceSnapshot, error)
	Get(tenantID string) ([]models.SourceSnapshot, error)
}

// MappingStore persists mapping specs, one per tenant + target product.
// Saves overwrite the whole rule set.
type MappingStore interface {
	Save(tenantID, targetProductID string, rules map[string]models.MappingRule) (*models.MappingSpec, error)
	Load(tenantID string) ([]models.MappingSpec, error)
}

// ExportLogStore records feed submissions and their tracking ids.
type ExportLogStore interface {
	Record(log *models.ExportLog) error
	List(tenantID string) ([]models.ExportLog, error)
}

// TenantStore persists tenant accounts.
type TenantStore interface {
	Create(tenant *models.Tenant) error
	Get(id string) (*models.Tenant, error)
	GetByEmail(email string) (*models.Tenant, error)
}
