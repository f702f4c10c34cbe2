// Package repository provides data access layer implementations for the
// application. Every default query path conjoins the soft-delete predicate,
// so no caller can accidentally surface deleted rows.
package repository

import (
	"time"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// notDeleted is the visibility predicate applied to every default query.
func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

// softDelete marks a row deleted with a single guarded UPDATE. The guard
// doubles as the concurrency contract: when two callers race on the same
// row, exactly one UPDATE matches and the other observes NotFound.
func softDelete(db *gorm.DB, model interface{}, resource string, id uint) error {
	res := db.Model(model).
		Scopes(notDeleted).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError(resource, id)
	}
	return nil
}
