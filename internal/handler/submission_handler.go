package handler

import (
	"errors"
	"io"
	"net/http"

	"form-intake/internal/services"
	"form-intake/internal/transport/httpdto"
	intake_errors "form-intake/pkg/errors"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	service *services.SubmissionService
}

func NewSubmissionHandler(service *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

func (h *SubmissionHandler) Submit(c *gin.Context) {
	var form httpdto.SubmitForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusUnprocessableEntity, httpdto.NewErrorResponse(bindingDetail(err)))
		return
	}

	photo := form.Photograph
	res, err := h.service.Submit(c.Request.Context(), services.SubmitInput{
		Name:     form.Name,
		Address:  form.Address,
		IDNumber: form.IDNumber,
		Photo: services.Photo{
			Filename:    photo.Filename,
			ContentType: photo.Header.Get("Content-Type"),
			Size:        photo.Size,
			Open: func() (io.ReadCloser, error) {
				return photo.Open()
			},
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, intake_errors.ErrNotImage):
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("File must be an image"))
		case errors.Is(err, intake_errors.ErrTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, httpdto.NewErrorResponse("File too large"))
		case errors.Is(err, intake_errors.ErrInvalidInput):
			c.JSON(http.StatusUnprocessableEntity, httpdto.NewErrorResponse("invalid form submission"))
		default:
			// the service has already logged the failed stage
			c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("Internal server error: "+err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, httpdto.SubmitResponse{
		Message:      "Form submitted successfully",
		SubmissionID: res.SubmissionID,
		BlobURL:      res.BlobURL,
	})
}
