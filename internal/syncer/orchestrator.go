package syncer

import (
	"fmt"

	"feedbridge/internal/config"
	"feedbridge/internal/feed/walmart"
	"feedbridge/internal/logger"
	"feedbridge/internal/mapping"
	"feedbridge/internal/models"
	"feedbridge/internal/normalizer"
	"feedbridge/internal/services/shopify"
	"feedbridge/internal/store"
)

type State string

const (
	StateIdle        State = "IDLE"
	StateFetching    State = "FETCHING"
	StateNormalizing State = "NORMALIZING"
	StateMapping     State = "MAPPING"
	StateExporting   State = "EXPORTING"
	StateDone        State = "DONE"
	StateFailed      State = "FAILED"
)

// SourceClient pulls the raw catalog from the source shop.
type SourceClient interface {
	GetAllProducts() ([]shopify.Product, error)
}

// TargetConnector submits a built feed to the marketplace.
type TargetConnector interface {
	SubmitFeed(payload models.FeedPayload) (*models.ExportResult, error)
}

// SourceClientFactory builds a client for one tenant's source connection.
type SourceClientFactory func(sourceURL, credential string) SourceClient

// Request describes one sync invocation for one tenant.
type Request struct {
	TenantID   string `json:"tenant_id"`
	SourceURL  string `json:"source_url"`
	Credential string `json:"credential"`
	Export     bool   `json:"export"`
	// AllowPartial exports the batch even when required attributes are
	// missing on some records. Off by default: issues block the export.
	AllowPartial bool `json:"allow_partial"`
}

// Result reports where a sync ended up and what it produced. The
// normalized line items survive an export failure: they are persisted
// before the export step runs and are not rolled back.
type Result struct {
	State      State                      `json:"state"`
	LineItems  []models.CanonicalLineItem `json:"line_items"`
	TrackingID string                     `json:"tracking_id,omitempty"`
	Issues     []walmart.ValidationIssue  `json:"issues,omitempty"`
	Err        error                      `json:"-"`
}

// Orchestrator runs the fetch → normalize → persist → map → export flow.
// Each invocation is an isolated pass; tenants may sync concurrently and
// share nothing but the stores, which key every write by tenant id.
type Orchestrator struct {
	config       *config.Config
	logger       *logger.Logger
	normalizer   *normalizer.Normalizer
	resolver     *mapping.Resolver
	builder      *walmart.Builder
	snapshots    store.SnapshotStore
	mappings     store.MappingStore
	exports      store.ExportLogStore
	sourceClient SourceClientFactory
	target       TargetConnector
}

func New(
	cfg *config.Config,
	logger *logger.Logger,
	snapshots store.SnapshotStore,
	mappings store.MappingStore,
	exports store.ExportLogStore,
	sourceClient SourceClientFactory,
	target TargetConnector,
) *Orchestrator {
	return &Orchestrator{
		config:       cfg,
		logger:       logger,
		normalizer:   normalizer.New(cfg.PlaceholderImageURL),
		resolver:     mapping.New(walmart.ItemAttributes),
		builder:      walmart.NewBuilder(),
		snapshots:    snapshots,
		mappings:     mappings,
		exports:      exports,
		sourceClient: sourceClient,
		target:       target,
	}
}

// Run executes one sync. The returned Result is always non-nil; on
// failure its State is FAILED and Err carries the cause.
func (o *Orchestrator) Run(req Request) *Result {
	result := &Result{State: StateIdle}

	// Fetching
	result.State = StateFetching
	o.logger.Info("Sync for tenant %s: fetching %s", req.TenantID, req.SourceURL)

	client := o.sourceClient(req.SourceURL, req.Credential)
	products, err := client.GetAllProducts()
	if err != nil {
		return o.fail(result, fmt.Errorf("source fetch failed: %w", err))
	}

	// Normalizing. This step cannot fail: every canonical field has a
	// total default.
	result.State = StateNormalizing
	result.LineItems = o.normalizer.NormalizeAll(products)
	o.logger.Info("Sync for tenant %s: normalized %d products into %d line items",
		req.TenantID, len(products), len(result.LineItems))

	// Persist before any export so a later failure cannot lose the
	// normalized snapshot.
	if _, err := o.snapshots.Upsert(req.TenantID, req.SourceURL, result.LineItems); err != nil {
		return o.fail(result, fmt.Errorf("snapshot persistence failed: %w", err))
	}

	if !req.Export {
		result.State = StateDone
		return result
	}

	// Mapping
	result.State = StateMapping
	spec, err := o.loadSpec(req.TenantID)
	if err != nil {
		return o.fail(result, fmt.Errorf("mapping spec load failed: %w", err))
	}
	records := o.resolver.ResolveAll(spec, result.LineItems)

	result.Issues = walmart.ValidateRequired(records)
	if len(result.Issues) > 0 && !req.AllowPartial {
		return o.fail(result, fmt.Errorf("export blocked: %d required attributes unresolved", len(result.Issues)))
	}

	// Exporting
	result.State = StateExporting
	payload := o.builder.BuildFeed(records)

	exportResult, err := o.target.SubmitFeed(payload)
	if err != nil {
		o.recordExport(req.TenantID, payload, "", models.ExportStatusFailed, err.Error())
		return o.fail(result, fmt.Errorf("feed export failed: %w", err))
	}

	o.recordExport(req.TenantID, payload, exportResult.TrackingID, models.ExportStatusSubmitted, exportResult.Message)
	result.TrackingID = exportResult.TrackingID
	result.State = StateDone
	return result
}

// loadSpec picks the tenant's most recently saved mapping spec; a tenant
// without one gets an empty spec, which resolves every attribute as
// ignored.
func (o *Orchestrator) loadSpec(tenantID string) (models.MappingSpec, error) {
	specs, err := o.mappings.Load(tenantID)
	if err != nil {
		return models.MappingSpec{}, err
	}
	if len(specs) == 0 {
		return models.MappingSpec{}, nil
	}
	return specs[0], nil
}

func (o *Orchestrator) recordExport(tenantID string, payload models.FeedPayload, trackingID string, status models.ExportStatus, message string) {
	log := &models.ExportLog{
		TenantID:   tenantID,
		BatchID:    payload.Header.BatchID,
		TrackingID: trackingID,
		Status:     status,
		Message:    message,
		ItemCount:  len(payload.Items),
	}
	if err := o.exports.Record(log); err != nil {
		o.logger.Error("Failed to record export for tenant %s: %v", tenantID, err)
	}
}

func (o *Orchestrator) fail(result *Result, err error) *Result {
	o.logger.Error("Sync failed in state %s: %v", result.State, err)
	result.State = StateFailed
	result.Err = err
	return result
}
