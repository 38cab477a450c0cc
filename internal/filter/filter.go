// Package filter derives the visible item list of a tab.
package filter

import (
	"strings"

	"storefront/app/internal/domain"
)

// Criteria selects items within one tab. An empty Subcategory is treated as
// domain.SubcategoryAll and an empty Query disables text search.
type Criteria struct {
	Subcategory string
	Query       string
}

// Apply returns the items matching criteria in their original order. The
// input slice is never modified.
func Apply(items []*domain.Item, criteria Criteria) []*domain.Item {
	subcategory := criteria.Subcategory
	if subcategory == "" {
		subcategory = domain.SubcategoryAll
	}
	query := strings.ToLower(criteria.Query)

	result := make([]*domain.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if subcategory != domain.SubcategoryAll && item.Category != subcategory {
			continue
		}
		if query != "" && !Matches(item, query) {
			continue
		}
		result = append(result, item)
	}
	return result
}

// Matches reports whether the lowercased query is a substring of any
// searchable field of item. Absent optional fields are skipped.
func Matches(item *domain.Item, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(item.Title), lowerQuery) {
		return true
	}
	if item.Description != "" && strings.Contains(strings.ToLower(item.Description), lowerQuery) {
		return true
	}
	if item.Category != "" && strings.Contains(strings.ToLower(item.Category), lowerQuery) {
		return true
	}
	if item.Author != "" && strings.Contains(strings.ToLower(item.Author), lowerQuery) {
		return true
	}
	if len(item.Size) > 0 && strings.Contains(strings.ToLower(strings.Join(item.Size, " ")), lowerQuery) {
		return true
	}
	return false
}
