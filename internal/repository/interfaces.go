package repository

import (
	"context"

	"form-intake/internal/domain/submission"
)

type SubmissionRepository interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, s *submission.Submission) (int64, error)
	Count(ctx context.Context) (int64, error)
}
