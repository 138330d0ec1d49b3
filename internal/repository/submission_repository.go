package repository

import (
	"context"
	"errors"

	"form-intake/internal/domain/submission"
	intake_errors "form-intake/pkg/errors"

	"gorm.io/gorm"
)

type PostgresSubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &PostgresSubmissionRepository{db: db}
}

func (r *PostgresSubmissionRepository) EnsureSchema(ctx context.Context) error {
	return InitSchema(ctx, r.db)
}

// Insert appends one row and returns its generated id. The pool checks out a
// connection for the statement only.
func (r *PostgresSubmissionRepository) Insert(ctx context.Context, s *submission.Submission) (int64, error) {
	if s == nil {
		return 0, errors.New("submission is nil")
	}
	s.ID = 0
	res := r.db.WithContext(ctx).Create(s)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return 0, intake_errors.ErrAlreadyExists
		}
		return 0, res.Error
	}
	return s.ID, nil
}

func (r *PostgresSubmissionRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&submission.Submission{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
