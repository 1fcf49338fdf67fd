package normalizer

import (
	"testing"
	"time"

	"feedbridge/internal/services/shopify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const placeholder = "https://via.placeholder.com/150"

func newTestNormalizer() *Normalizer {
	return New(placeholder)
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestNormalizeOneLineItemPerVariant(t *testing.T) {
	n := newTestNormalizer()

	product := &shopify.Product{
		ID:    1,
		Title: "Shirt",
		Variants: []shopify.Variant{
			{ID: 11, Title: "Small", Price: "10.00", Sku: "SH-S"},
			{ID: 12, Title: "Medium", Price: "11.00", Sku: "SH-M"},
			{ID: 13, Title: "Large", Price: "12.00", Sku: "SH-L"},
		},
	}

	items := n.Normalize(product)
	require.Len(t, items, 3)

	assert.Equal(t, "11", items[0].LineItemID)
	assert.Equal(t, "1", items[0].ParentProductID)
	assert.Equal(t, "Shirt (Small)", items[0].Title)
	assert.Equal(t, "Shirt (Medium)", items[1].Title)
	assert.Equal(t, "Shirt (Large)", items[2].Title)
}

func TestNormalizeProductWithoutVariants(t *testing.T) {
	n := newTestNormalizer()

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	product := &shopify.Product{
		ID:        7,
		Title:     "Gift Card",
		CreatedAt: created,
	}

	items := n.Normalize(product)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "7", item.LineItemID)
	assert.Equal(t, "7", item.ParentProductID)
	assert.Equal(t, "Gift Card", item.Title)
	assert.Equal(t, "N/A", item.Price)
	assert.Equal(t, "N/A", item.SKU)
	assert.Equal(t, 0, item.InventoryQuantity)
	assert.Equal(t, created, item.CreatedAt)
	assert.Equal(t, "N/A", item.SourceCategory)
	assert.Equal(t, placeholder, item.ImageURL)
}

func TestNormalizeDefaults(t *testing.T) {
	n := newTestNormalizer()

	// A variant carrying nothing but its id still yields a full line item.
	product := &shopify.Product{
		ID:       2,
		Title:    "Mug",
		Variants: []shopify.Variant{{ID: 21}},
	}

	items := n.Normalize(product)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "Mug (Default Variant)", item.Title)
	assert.Equal(t, "0.00", item.Price)
	assert.Equal(t, "N/A", item.SKU)
	assert.Equal(t, 0, item.InventoryQuantity)
	assert.Equal(t, "N/A", item.Vendor)
	assert.Equal(t, "N/A", item.SourceCategory)
	assert.Equal(t, "", item.Description)
}

func TestNormalizeMalformedPriceDegrades(t *testing.T) {
	n := newTestNormalizer()

	product := &shopify.Product{
		ID:    3,
		Title: "Hat",
		Variants: []shopify.Variant{
			{ID: 31, Price: "not-a-price"},
			{ID: 32, Price: "19.9"},
		},
	}

	items := n.Normalize(product)
	require.Len(t, items, 2)
	assert.Equal(t, "0.00", items[0].Price)
	assert.Equal(t, "19.90", items[1].Price)
}

func TestImageResolutionPrecedence(t *testing.T) {
	n := newTestNormalizer()

	images := []shopify.Image{
		{ID: 100, Src: "https://cdn/first.jpg"},
		{ID: 200, Src: "https://cdn/second.jpg"},
		{ID: 300, Src: "https://cdn/third.jpg", VariantIDs: []int64{42}},
	}

	tests := []struct {
		name    string
		variant shopify.Variant
		want    string
	}{
		{
			name:    "explicit image id wins",
			variant: shopify.Variant{ID: 42, ImageID: int64Ptr(200)},
			want:    "https://cdn/second.jpg",
		},
		{
			name:    "membership match when no image id",
			variant: shopify.Variant{ID: 42},
			want:    "https://cdn/third.jpg",
		},
		{
			name:    "first image when nothing matches",
			variant: shopify.Variant{ID: 99},
			want:    "https://cdn/first.jpg",
		},
		{
			// A non-matching explicit image id does not short-circuit:
			// it falls through to the remaining steps.
			name:    "dangling image id falls through",
			variant: shopify.Variant{ID: 99, ImageID: int64Ptr(999)},
			want:    "https://cdn/first.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := &shopify.Product{
				ID:       4,
				Title:    "Poster",
				Variants: []shopify.Variant{tt.variant},
				Images:   images,
			}

			items := n.Normalize(product)
			require.Len(t, items, 1)
			assert.Equal(t, tt.want, items[0].ImageURL)
		})
	}
}

func TestImageResolutionNoImages(t *testing.T) {
	n := newTestNormalizer()

	product := &shopify.Product{
		ID:       5,
		Title:    "Sticker",
		Variants: []shopify.Variant{{ID: 51, ImageID: int64Ptr(123)}},
	}

	items := n.Normalize(product)
	require.Len(t, items, 1)
	assert.Equal(t, placeholder, items[0].ImageURL)
}

func TestNormalizeEndToEndExample(t *testing.T) {
	n := newTestNormalizer()

	product := &shopify.Product{
		ID:    1,
		Title: "Shirt",
		Variants: []shopify.Variant{
			{ID: 11, Price: "19.99", Sku: "SH-1", InventoryQuantity: 5},
		},
	}

	items := n.Normalize(product)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "11", item.LineItemID)
	assert.Equal(t, "Shirt (Default Variant)", item.Title)
	assert.Equal(t, "19.99", item.Price)
	assert.Equal(t, "SH-1", item.SKU)
	assert.Equal(t, 5, item.InventoryQuantity)
	assert.Equal(t, placeholder, item.ImageURL)
}

func TestNormalizeAllPreservesOrder(t *testing.T) {
	n := newTestNormalizer()

	products := []shopify.Product{
		{ID: 1, Title: "A", Variants: []shopify.Variant{{ID: 11}, {ID: 12}}},
		{ID: 2, Title: "B"},
		{ID: 3, Title: "C", Variants: []shopify.Variant{{ID: 31}}},
	}

	items := n.NormalizeAll(products)
	require.Len(t, items, 4)
	assert.Equal(t, "11", items[0].LineItemID)
	assert.Equal(t, "12", items[1].LineItemID)
	assert.Equal(t, "2", items[2].LineItemID)
	assert.Equal(t, "31", items[3].LineItemID)
}
