package mapping

import (
	"strconv"

	"feedbridge/internal/models"
)

const notAvailable = "N/A"

// fieldPaths is the closed vocabulary of line-item field paths a
// MAP_TO_FIELD rule may reference. Anything else resolves to "N/A" at
// resolve time rather than being trusted as an arbitrary string.
var fieldPaths = map[string]func(models.CanonicalLineItem) string{
	"title":        func(li models.CanonicalLineItem) string { return li.Title },
	"vendor":       func(li models.CanonicalLineItem) string { return li.Vendor },
	"product_type": func(li models.CanonicalLineItem) string { return li.SourceCategory },
	"body_html":    func(li models.CanonicalLineItem) string { return li.Description },
	"variants[].sku":   func(li models.CanonicalLineItem) string { return li.SKU },
	"variants[].price": func(li models.CanonicalLineItem) string { return li.Price },
	"variants[].inventory_quantity": func(li models.CanonicalLineItem) string {
		return strconv.Itoa(li.InventoryQuantity)
	},
}

// ValidPath reports whether a field path belongs to the vocabulary.
func ValidPath(path string) bool {
	_, ok := fieldPaths[path]
	return ok
}

// Paths returns the recognized field paths, for callers that present or
// validate mapping choices.
func Paths() []string {
	paths := make([]string, 0, len(fieldPaths))
	for path := range fieldPaths {
		paths = append(paths, path)
	}
	return paths
}

// Resolver fills a fixed set of target-schema attributes from a mapping
// spec and a canonical line item. Stateless and deterministic: the same
// spec and item always produce the same record.
type Resolver struct {
	attributes []string
}

func New(attributes []string) *Resolver {
	return &Resolver{
		attributes: attributes,
	}
}

// Resolve produces one target record for a line item. Ignored attributes
// come back empty, free-text attributes carry the declared literal, and
// mapped attributes read the line item through the path vocabulary.
func (r *Resolver) Resolve(spec models.MappingSpec, item models.CanonicalLineItem) models.TargetRecord {
	record := make(models.TargetRecord, len(r.attributes))

	for _, attribute := range r.attributes {
		rule := spec.Rule(attribute)

		switch rule.Kind {
		case models.RuleFreeText:
			record[attribute] = rule.Value
		case models.RuleMapToField:
			record[attribute] = resolveField(rule.Value, item)
		default:
			record[attribute] = ""
		}
	}

	return record
}

// ResolveAll applies the same spec to every line item, preserving order.
func (r *Resolver) ResolveAll(spec models.MappingSpec, items []models.CanonicalLineItem) []models.TargetRecord {
	records := make([]models.TargetRecord, len(items))
	for i, item := range items {
		records[i] = r.Resolve(spec, item)
	}
	return records
}

func resolveField(path string, item models.CanonicalLineItem) string {
	getter, ok := fieldPaths[path]
	if !ok {
		return notAvailable
	}

	value := getter(item)
	if value == "" {
		return notAvailable
	}
	return value
}
