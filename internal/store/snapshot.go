package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"feedbridge/internal/logger"
	"feedbridge/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const snapshotCacheTTL = 5 * time.Minute

type GormSnapshotStore struct {
	db     *gorm.DB
	cache  *redis.Client
	logger *logger.Logger
}

// NewSnapshotStore builds a gorm-backed snapshot store with an optional
// redis read-through cache; pass a nil client to run without caching.
func NewSnapshotStore(db *gorm.DB, cache *redis.Client, logger *logger.Logger) *GormSnapshotStore {
	return &GormSnapshotStore{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// Upsert replaces the tenant's snapshot for a source URL. Concurrent
// syncs for the same tenant are not coordinated: the later write wins.
func (s *GormSnapshotStore) Upsert(tenantID, sourceURL string, items []models.CanonicalLineItem) (*models.SourceSnapshot, error) {
	var snapshot models.SourceSnapshot
	err := s.db.Where("tenant_id = ? AND source_url = ?", tenantID, sourceURL).First(&snapshot).Error

	if err == gorm.ErrRecordNotFound {
		snapshot = models.SourceSnapshot{
			TenantID:  tenantID,
			SourceURL: sourceURL,
			LineItems: items,
			FetchedAt: time.Now().UTC(),
		}
		if err := s.db.Create(&snapshot).Error; err != nil {
			return nil, fmt.Errorf("failed to create snapshot: %w", err)
		}
	} else if err == nil {
		snapshot.LineItems = items
		snapshot.FetchedAt = time.Now().UTC()
		if err := s.db.Save(&snapshot).Error; err != nil {
			return nil, fmt.Errorf("failed to update snapshot: %w", err)
		}
	} else {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	s.invalidate(tenantID)
	return &snapshot, nil
}

// Get returns the tenant's current snapshots, most recent fetch first.
func (s *GormSnapshotStore) Get(tenantID string) ([]models.SourceSnapshot, error) {
	if cached, ok := s.fromCache(tenantID); ok {
		return cached, nil
	}

	var snapshots []models.SourceSnapshot
	if err := s.db.Where("tenant_id = ?", tenantID).Order("fetched_at DESC").Find(&snapshots).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch snapshots: %w", err)
	}

	s.toCache(tenantID, snapshots)
	return snapshots, nil
}

func (s *GormSnapshotStore) cacheKey(tenantID string) string {
	return "snapshots:" + tenantID
}

func (s *GormSnapshotStore) fromCache(tenantID string) ([]models.SourceSnapshot, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, err := s.cache.Get(context.Background(), s.cacheKey(tenantID)).Bytes()
	if err != nil {
		return nil, false
	}

	var snapshots []models.SourceSnapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, false
	}
	return snapshots, true
}

func (s *GormSnapshotStore) toCache(tenantID string, snapshots []models.SourceSnapshot) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(snapshots)
	if err != nil {
		return
	}

	if err := s.cache.Set(context.Background(), s.cacheKey(tenantID), data, snapshotCacheTTL).Err(); err != nil {
		s.logger.Debug("Failed to cache snapshots for tenant %s: %v", tenantID, err)
	}
}

func (s *GormSnapshotStore) invalidate(tenantID string) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Del(context.Background(), s.cacheKey(tenantID)).Err(); err != nil {
		s.logger.Debug("Failed to invalidate snapshot cache for tenant %s: %v", tenantID, err)
	}
}
