package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CanonicalLineItem is one sellable unit: a variant, or a whole product
// when the product has no variants. Every field has a total default, so a
// line item can always be built from arbitrarily sparse source data.
type CanonicalLineItem struct {
	LineItemID        string    `json:"line_item_id"`
	ParentProductID   string    `json:"parent_product_id"`
	Title             string    `json:"title"`
	Price             string    `json:"price"`
	SKU               string    `json:"sku"`
	InventoryQuantity int       `json:"inventory_quantity"`
	CreatedAt         time.Time `json:"created_at"`
	Vendor            string    `json:"vendor"`
	SourceCategory    string    `json:"source_category"`
	ImageURL          string    `json:"image_url"`
	Description       string    `json:"description"`
}

// SourceSnapshot holds the normalized result of one catalog fetch for a
// tenant. Replaced wholesale on each re-fetch, keyed by tenant + source URL.
type SourceSnapshot struct {
	ID        string              `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID  string              `json:"tenant_id" gorm:"not null;uniqueIndex:idx_snapshots_tenant_source"`
	SourceURL string              `json:"source_url" gorm:"not null;uniqueIndex:idx_snapshots_tenant_source"`
	LineItems []CanonicalLineItem `json:"line_items" gorm:"serializer:json;type:jsonb"`
	FetchedAt time.Time           `json:"fetched_at"`
}

func (s *SourceSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
