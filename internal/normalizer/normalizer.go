package normalizer

import (
	"fmt"
	"strconv"
	"strings"

	"feedbridge/internal/models"
	"feedbridge/internal/services/shopify"

	"github.com/shopspring/decimal"
)

const (
	defaultVariantTitle = "Default Variant"
	notAvailable        = "N/A"
)

// Normalizer flattens a raw source product into one canonical line item
// per sellable unit. It never fails: missing or malformed source fields
// degrade to documented defaults, field by field.
type Normalizer struct {
	placeholderImageURL string
}

func New(placeholderImageURL string) *Normalizer {
	return &Normalizer{
		placeholderImageURL: placeholderImageURL,
	}
}

// Normalize returns one line item per variant, or exactly one line item
// built from product-level fields when the product has no variants.
func (n *Normalizer) Normalize(product *shopify.Product) []models.CanonicalLineItem {
	if len(product.Variants) == 0 {
		return []models.CanonicalLineItem{n.normalizeBareProduct(product)}
	}

	items := make([]models.CanonicalLineItem, len(product.Variants))
	for i, variant := range product.Variants {
		items[i] = n.normalizeVariant(product, &variant)
	}
	return items
}

// NormalizeAll flattens a whole catalog fetch preserving product order.
func (n *Normalizer) NormalizeAll(products []shopify.Product) []models.CanonicalLineItem {
	items := make([]models.CanonicalLineItem, 0, len(products))
	for i := range products {
		items = append(items, n.Normalize(&products[i])...)
	}
	return items
}

func (n *Normalizer) normalizeVariant(product *shopify.Product, variant *shopify.Variant) models.CanonicalLineItem {
	variantTitle := variant.Title
	if variantTitle == "" {
		variantTitle = defaultVariantTitle
	}

	return models.CanonicalLineItem{
		LineItemID:        strconv.FormatInt(variant.ID, 10),
		ParentProductID:   strconv.FormatInt(product.ID, 10),
		Title:             fmt.Sprintf("%s (%s)", product.Title, variantTitle),
		Price:             normalizePrice(variant.Price),
		SKU:               orDefault(variant.Sku),
		InventoryQuantity: variant.InventoryQuantity,
		CreatedAt:         product.CreatedAt,
		Vendor:            orDefault(product.Vendor),
		SourceCategory:    orDefault(product.ProductType),
		ImageURL:          n.resolveImage(product, variant),
		Description:       product.BodyHTML,
	}
}

func (n *Normalizer) normalizeBareProduct(product *shopify.Product) models.CanonicalLineItem {
	return models.CanonicalLineItem{
		LineItemID:        strconv.FormatInt(product.ID, 10),
		ParentProductID:   strconv.FormatInt(product.ID, 10),
		Title:             product.Title,
		Price:             notAvailable,
		SKU:               notAvailable,
		InventoryQuantity: 0,
		CreatedAt:         product.CreatedAt,
		Vendor:            orDefault(product.Vendor),
		SourceCategory:    orDefault(product.ProductType),
		ImageURL:          n.firstImageOrPlaceholder(product),
		Description:       product.BodyHTML,
	}
}

// resolveImage picks the variant's image by precedence: explicit image id
// linkage, then membership in an image's variant id list, then the
// product's first image, then the placeholder. An explicit but
// non-matching image id still falls through to the first image.
func (n *Normalizer) resolveImage(product *shopify.Product, variant *shopify.Variant) string {
	if variant.ImageID != nil {
		for _, image := range product.Images {
			if image.ID == *variant.ImageID {
				return image.Src
			}
		}
	}

	for _, image := range product.Images {
		for _, variantID := range image.VariantIDs {
			if variantID == variant.ID {
				return image.Src
			}
		}
	}

	return n.firstImageOrPlaceholder(product)
}

func (n *Normalizer) firstImageOrPlaceholder(product *shopify.Product) string {
	if len(product.Images) > 0 {
		return product.Images[0].Src
	}
	return n.placeholderImageURL
}

// normalizePrice renders a source price as a two-decimal string. Anything
// unparseable degrades to "0.00" rather than failing the line item.
func normalizePrice(price string) string {
	trimmed := strings.TrimSpace(price)
	if trimmed == "" {
		return "0.00"
	}

	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return "0.00"
	}
	return value.StringFixed(2)
}

func orDefault(value string) string {
	if strings.TrimSpace(value) == "" {
		return notAvailable
	}
	return value
}
