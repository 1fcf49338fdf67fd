package walmart

import (
	"testing"

	"feedbridge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFeedHeader(t *testing.T) {
	b := NewBuilder()

	records := []models.TargetRecord{
		{"SKU": "A-1"},
		{"SKU": "B-2"},
	}

	payload := b.BuildFeed(records)

	assert.Equal(t, SchemaVersion, payload.Header.Version)
	assert.NotEmpty(t, payload.Header.BatchID)
	assert.False(t, payload.Header.FeedDate.IsZero())
	assert.Equal(t, 2, payload.Header.ItemCount)
}

func TestBuildFeedBatchIDUniquePerBuild(t *testing.T) {
	b := NewBuilder()

	first := b.BuildFeed(nil)
	second := b.BuildFeed(nil)

	assert.NotEqual(t, first.Header.BatchID, second.Header.BatchID)
}

func TestBuildFeedPreservesRecordOrder(t *testing.T) {
	b := NewBuilder()

	records := []models.TargetRecord{
		{"SKU": "C-3"},
		{"SKU": "A-1"},
		{"SKU": "B-2"},
	}

	payload := b.BuildFeed(records)

	require.Len(t, payload.Items, 3)
	assert.Equal(t, "C-3", payload.Items[0]["SKU"])
	assert.Equal(t, "A-1", payload.Items[1]["SKU"])
	assert.Equal(t, "B-2", payload.Items[2]["SKU"])
}

func TestBuildItem(t *testing.T) {
	b := NewBuilder()

	record := models.TargetRecord{"SKU": "A-1", "Product Name": "Shirt"}
	payload := b.BuildItem(record)

	assert.Equal(t, record, payload.Item)
}

func TestValidateRequired(t *testing.T) {
	valid := models.TargetRecord{
		"SKU":             "A-1",
		"Product ID Type": "UPC",
		"Product ID":      "012345678905",
		"Product Name":    "Shirt",
		"Brand Name":      "Acme",
	}

	assert.Empty(t, ValidateRequired([]models.TargetRecord{valid}))
}

func TestValidateRequiredFlagsEmptyAndNA(t *testing.T) {
	records := []models.TargetRecord{
		{
			"SKU":             "A-1",
			"Product ID Type": "UPC",
			"Product ID":      "012345678905",
			"Product Name":    "Shirt",
			"Brand Name":      "Acme",
		},
		{
			"SKU":             "B-2",
			"Product ID Type": "",
			"Product ID":      "N/A",
			"Product Name":    "Hat",
			"Brand Name":      "Acme",
		},
	}

	issues := ValidateRequired(records)
	require.Len(t, issues, 2)

	assert.Equal(t, 1, issues[0].RecordIndex)
	assert.Equal(t, "B-2", issues[0].SKU)
	assert.Equal(t, "Product ID Type", issues[0].Attribute)
	assert.Equal(t, "is empty", issues[0].Reason)

	assert.Equal(t, "Product ID", issues[1].Attribute)
	assert.Equal(t, "resolved to N/A", issues[1].Reason)
}

func TestValidateRequiredIgnoresOptionalAttributes(t *testing.T) {
	record := models.TargetRecord{
		"SKU":             "A-1",
		"Product ID Type": "UPC",
		"Product ID":      "012345678905",
		"Product Name":    "Shirt",
		"Brand Name":      "Acme",
		"Shipping Weight": "",
		"Category":        "N/A",
	}

	assert.Empty(t, ValidateRequired([]models.TargetRecord{record}))
}
