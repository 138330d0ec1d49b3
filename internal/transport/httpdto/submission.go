package httpdto

import "mime/multipart"

// SubmitForm is the multipart body of POST /submit
type SubmitForm struct {
	Name       string                `form:"name" binding:"required,notblank"`
	Address    string                `form:"address" binding:"required,notblank"`
	IDNumber   string                `form:"id_number" binding:"required,notblank"`
	Photograph *multipart.FileHeader `form:"photograph" binding:"required"`
}

// SubmitResponse is returned after a submission is stored and announced
type SubmitResponse struct {
	Message      string `json:"message"`
	SubmissionID int64  `json:"submission_id"`
	BlobURL      string `json:"blob_url"`
}
