package walmart

import (
	"time"

	"feedbridge/internal/models"

	"github.com/google/uuid"
)

// Builder wraps resolved records in a Walmart feed envelope. It is the
// only component that knows the envelope shapes; records pass through
// unchanged, in order, unvalidated.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// BuildFeed produces the batch shape: a header with the schema version
// and a fresh batch id, plus the records as given.
func (b *Builder) BuildFeed(records []models.TargetRecord) models.FeedPayload {
	return models.FeedPayload{
		Header: models.FeedHeader{
			Version:   SchemaVersion,
			BatchID:   uuid.New().String(),
			FeedDate:  time.Now().UTC(),
			ItemCount: len(records),
		},
		Items: records,
	}
}

// BuildItem produces the single-item shape.
func (b *Builder) BuildItem(record models.TargetRecord) models.ItemPayload {
	return models.ItemPayload{
		Item: record,
	}
}
