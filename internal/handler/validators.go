package handler

import (
	"errors"
	"reflect"

	"form-intake/internal/transport/httpdto"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// RegisterValidators adds the custom tags used by the form DTOs to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	return v.RegisterValidation("notblank", validators.NotBlank)
}

// bindingDetail turns a binding failure into the client-facing detail string.
func bindingDetail(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return "field required: " + formFieldName(verrs[0].StructField())
	}
	return "invalid form submission"
}

func formFieldName(structField string) string {
	if f, ok := reflect.TypeOf(httpdto.SubmitForm{}).FieldByName(structField); ok {
		if tag := f.Tag.Get("form"); tag != "" {
			return tag
		}
	}
	return structField
}
