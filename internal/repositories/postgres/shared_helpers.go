package postgres

import (
	"gorm.io/gorm"

	"github.com/SIS-2025/academic-records-service/internal/repositories"
)

// SharedHelpers contains common query building operations
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// ApplyPaginationAndSort applies a whitelisted sort plus limit/offset.
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	// Whitelist allowed sort columns
	allowedSortColumns := map[string]bool{
		"id":           true,
		"name":         true,
		"email":        true,
		"status":       true,
		"created_at":   true,
		"updated_at":   true,
		"enrolled_at":  true,
		"cicle_number": true,
		"grade":        true,
	}

	if sortBy == "" || !allowedSortColumns[sortBy] {
		sortBy = "id"
	}

	if sortOrder != "asc" && sortOrder != "ASC" {
		sortOrder = "DESC"
	} else {
		sortOrder = "ASC"
	}

	query = query.Order(sortBy + " " + sortOrder)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}

// ApplyFilterExpr translates a filter expression tree into a WHERE clause.
func (h *SharedHelpers) ApplyFilterExpr(query *gorm.DB, expr repositories.FilterExpr) *gorm.DB {
	if expr == nil {
		return query
	}
	sql, args := expr.ToSQL()
	return query.Where(sql, args...)
}
