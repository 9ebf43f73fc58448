package models

import "strings"

// Error categories detectable from asset structure alone.
const (
	ErrorCategoryMissingSiteArea   = "missing_site_area"
	ErrorCategoryMissingConnection = "missing_connection"
)

// KnownErrorCategories lists every category the error listing accepts.
var KnownErrorCategories = []string{
	ErrorCategoryMissingSiteArea,
	ErrorCategoryMissingConnection,
}

// ErrorCategoryDetails maps each category to its diagnostic text, carried in
// the error listing next to the code.
var ErrorCategoryDetails = map[string]string{
	ErrorCategoryMissingSiteArea:   "asset is not assigned to a site area",
	ErrorCategoryMissingConnection: "dynamic asset has no connection configured",
}

// SplitBarList splits a bar-delimited filter value, dropping empty entries.
func SplitBarList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, "|")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Paging controls result windows. Limit == 0 means the store default.
type Paging struct {
	Limit           int
	Skip            int
	SortFields      string
	OnlyRecordCount bool
}

// AssetFilters narrows asset listings.
type AssetFilters struct {
	Search      string
	SiteIDs     []string
	SiteAreaIDs []string
}

// AssetInErrorFilters narrows the error listing. ErrorCategories is never
// empty once normalized; the default is missing_site_area.
type AssetInErrorFilters struct {
	AssetFilters
	ErrorCategories []string
}
