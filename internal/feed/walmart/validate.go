package walmart

import (
	"fmt"

	"feedbridge/internal/models"
)

// ValidationIssue flags one required attribute that resolved to nothing
// usable on one record.
type ValidationIssue struct {
	RecordIndex int    `json:"record_index"`
	SKU         string `json:"sku"`
	Attribute   string `json:"attribute"`
	Reason      string `json:"reason"`
}

func (v ValidationIssue) Error() string {
	return fmt.Sprintf("record %d (sku %q): required attribute %q %s", v.RecordIndex, v.SKU, v.Attribute, v.Reason)
}

// ValidateRequired checks every record for required-attribute presence.
// An empty value or the "N/A" fallback both count as missing. Callers
// decide whether issues block the batch or just the affected records.
func ValidateRequired(records []models.TargetRecord) []ValidationIssue {
	var issues []ValidationIssue

	for i, record := range records {
		for _, attribute := range RequiredAttributes {
			value := record[attribute]
			switch value {
			case "":
				issues = append(issues, ValidationIssue{
					RecordIndex: i,
					SKU:         record["SKU"],
					Attribute:   attribute,
					Reason:      "is empty",
				})
			case "N/A":
				issues = append(issues, ValidationIssue{
					RecordIndex: i,
					SKU:         record["SKU"],
					Attribute:   attribute,
					Reason:      "resolved to N/A",
				})
			}
		}
	}

	return issues
}
