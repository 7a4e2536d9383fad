// internal/core/services/types.go
package services

// Paging limits shared by the overview and history queries
const (
	DefaultPageLimit    = 20
	MaxPageLimit        = 100
	DefaultHistoryLimit = 50
)

// FilterAll is the neutral value for the stock-level and product-type filters.
const FilterAll = "all"
