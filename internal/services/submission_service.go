package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"form-intake/internal/domain/submission"
	"form-intake/internal/queue"
	"form-intake/internal/repository"
	"form-intake/internal/storage"
	intake_errors "form-intake/pkg/errors"
	"form-intake/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultContainer = "form-images"
	DefaultQueue     = "form-submission-job"
	defaultExtension = "jpg"
	// uuid (36) + "." + extension must fit image_filename varchar(255)
	maxExtensionLen = 16
)

// Stage names a step of the submission pipeline.
type Stage string

const (
	StageUpload  Stage = "upload"
	StagePersist Stage = "persist"
	StagePublish Stage = "publish"
)

// StageError reports which step failed. Earlier steps stay committed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Photo is the uploaded image as declared by the client.
type Photo struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

type SubmitInput struct {
	Name     string
	Address  string
	IDNumber string
	Photo    Photo
}

type SubmitResult struct {
	SubmissionID  int64
	ImageFilename string
	BlobURL       string
}

type SubmissionService struct {
	objects   storage.ObjectStore
	repo      repository.SubmissionRepository
	publisher queue.Publisher
	logger    *logger.Logger
	container string
	queueName string
	maxBytes  int64
	clock     func() time.Time
	newID     func() string
}

func NewSubmissionService(objects storage.ObjectStore, repo repository.SubmissionRepository, publisher queue.Publisher, l *logger.Logger, container, queueName string) *SubmissionService {
	if l == nil {
		l = logger.NewNop()
	}
	if container == "" {
		container = DefaultContainer
	}
	if queueName == "" {
		queueName = DefaultQueue
	}
	return &SubmissionService{
		objects:   objects,
		repo:      repo,
		publisher: publisher,
		logger:    l,
		container: container,
		queueName: queueName,
		clock:     time.Now,
		newID:     uuid.NewString,
	}
}

// WithMaxUploadBytes rejects photos larger than n bytes. Zero disables the limit.
func (s *SubmissionService) WithMaxUploadBytes(n int64) *SubmissionService {
	s.maxBytes = n
	return s
}

// Submit validates the photo, uploads it, stores the row and announces it.
// Nothing is rolled back when a later stage fails.
func (s *SubmissionService) Submit(ctx context.Context, in SubmitInput) (SubmitResult, error) {
	if !IsImage(in.Photo.ContentType) {
		return SubmitResult{}, intake_errors.ErrNotImage
	}
	if s.maxBytes > 0 && in.Photo.Size > s.maxBytes {
		return SubmitResult{}, intake_errors.ErrTooLarge
	}
	if in.Photo.Open == nil {
		return SubmitResult{}, intake_errors.ErrInvalidInput
	}

	key := s.newID() + "." + FileExtension(in.Photo.Filename)

	data, err := readPhoto(in.Photo)
	if err != nil {
		return SubmitResult{}, s.fail(ctx, StageUpload, err, zap.String("image_filename", key))
	}

	blobURL, err := s.objects.Upload(ctx, s.container, key, data, in.Photo.ContentType)
	if err != nil {
		return SubmitResult{}, s.fail(ctx, StageUpload, err, zap.String("image_filename", key))
	}

	row := submission.Submission{
		Name:          in.Name,
		Address:       in.Address,
		IDNumber:      in.IDNumber,
		ImageFilename: key,
		BlobURL:       blobURL,
	}
	id, err := s.repo.Insert(ctx, &row)
	if err != nil {
		return SubmitResult{}, s.fail(ctx, StagePersist, err, zap.String("image_filename", key), zap.String("blob_url", blobURL))
	}
	row.ID = id

	payload, err := json.Marshal(submission.NewEvent(row, s.clock()))
	if err != nil {
		return SubmitResult{}, s.fail(ctx, StagePublish, err, zap.Int64("submission_id", id))
	}
	if err := s.publisher.Publish(ctx, s.queueName, payload); err != nil {
		return SubmitResult{}, s.fail(ctx, StagePublish, err, zap.Int64("submission_id", id))
	}

	s.logger.Info(ctx, "form submitted", zap.Int64("submission_id", id), zap.String("image_filename", key))
	return SubmitResult{SubmissionID: id, ImageFilename: key, BlobURL: blobURL}, nil
}

func (s *SubmissionService) fail(ctx context.Context, stage Stage, err error, fields ...zap.Field) error {
	fields = append(fields, zap.String("stage", string(stage)), zap.Error(err))
	s.logger.Error(ctx, "error processing form submission", fields...)
	return &StageError{Stage: stage, Err: err}
}

func readPhoto(p Photo) ([]byte, error) {
	f, err := p.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// IsImage reports whether a declared content type is an image kind.
func IsImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

// FileExtension returns the text after the last '.' of the file's base name, or "jpg"
// when there is none or it is longer than 16 bytes.
func FileExtension(filename string) string {
	if slash := strings.LastIndexAny(filename, `/\`); slash >= 0 {
		filename = filename[slash+1:]
	}
	i := strings.LastIndex(filename, ".")
	if i < 0 || i == len(filename)-1 || len(filename)-i-1 > maxExtensionLen {
		return defaultExtension
	}
	return filename[i+1:]
}
