package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// Slugify converts a string to a URL-friendly slug
func Slugify(s string) string {
	// Convert to lowercase
	s = strings.ToLower(s)

	// Replace spaces with hyphens
	s = strings.ReplaceAll(s, " ", "-")

	// Remove non-alphanumeric characters except hyphens
	reg := regexp.MustCompile("[^a-z0-9-]")
	s = reg.ReplaceAllString(s, "")

	// Remove multiple consecutive hyphens
	reg = regexp.MustCompile("-+")
	s = reg.ReplaceAllString(s, "-")

	// Trim hyphens from start and end
	s = strings.Trim(s, "-")

	return s
}

// GenerateInvoiceNo generates a unique invoice number using the
// tenant's configured prefix (e.g. INV-3F7A21C9)
func GenerateInvoiceNo(prefix string) string {
	return prefix + strings.ToUpper(uuid.New().String()[:8])
}

// GeneratePreBudgetReference generates a unique pre-budget reference
// using the tenant's configured prefix (e.g. PRE-3F7A21C9)
func GeneratePreBudgetReference(prefix string) string {
	return prefix + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateSKU generates a unique catalogue SKU
func GenerateSKU() string {
	return "SKU-" + strings.ToUpper(uuid.New().String()[:8])
}
