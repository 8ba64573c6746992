package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/team-collab-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// NewestFirst orders rows by creation time, breaking ties so the most recently
// inserted row comes first.
func NewestFirst(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(fmt.Sprintf("%s.created_at DESC", table)).Order(fmt.Sprintf("%s.id DESC", table))
	}
}
