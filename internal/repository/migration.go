package repository

import (
	"context"
	"fmt"

	"form-intake/internal/domain/submission"

	"gorm.io/gorm"
)

// InitSchema creates form_submissions and its indexes when missing.
// AutoMigrate only adds what is absent, so running it on every start is safe.
func InitSchema(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&submission.Submission{}); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}
