package application

import (
	"fmt"
	"strings"
	"time"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "rootInode" -> "root inode")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"image":       "image",
		"destination": "destination",
		"rootInode":   "root inode",
		"fromDate":    "from date",
		"catalog":     "catalog",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// dateLayouts are tried in order by ParseDateFloor. Times without a zone are UTC,
// matching the scan tool's timestamps.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDateFloor parses an ISO 8601 date or date-time
func ParseDateFloor(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ValidationError{
		Field:   "fromDate",
		Message: fmt.Sprintf("expected ISO date, got: %s", value),
	}
}
