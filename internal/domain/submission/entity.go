package submission

import (
	"time"
)

// Submission represents form_submissions. Rows are append-only.
type Submission struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Address       string    `gorm:"type:text;not null"`
	IDNumber      string    `gorm:"column:id_number;type:varchar(100);not null"`
	ImageFilename string    `gorm:"type:varchar(255);uniqueIndex"`
	BlobURL       string    `gorm:"column:blob_url;type:text"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Submission) TableName() string {
	return "form_submissions"
}

// Event is the queue payload announcing a stored submission.
type Event struct {
	SubmissionID  int64  `json:"submission_id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	IDNumber      string `json:"id_number"`
	ImageFilename string `json:"image_filename"`
	BlobURL       string `json:"blob_url"`
	Timestamp     string `json:"timestamp"`
}

// NewEvent projects a stored submission into its queue payload.
func NewEvent(s Submission, at time.Time) Event {
	return Event{
		SubmissionID:  s.ID,
		Name:          s.Name,
		Address:       s.Address,
		IDNumber:      s.IDNumber,
		ImageFilename: s.ImageFilename,
		BlobURL:       s.BlobURL,
		Timestamp:     at.UTC().Format(time.RFC3339Nano),
	}
}
