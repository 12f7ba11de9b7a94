package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// bindingErrorMessage turns gin binding failures into a readable 400 body
// without leaking struct internals.
func bindingErrorMessage(err error) string {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		fields := make([]string, len(verr))
		for i, fe := range verr {
			fields[i] = fmt.Sprintf("%s failed on %q", fe.Field(), fe.Tag())
		}
		return "validation failed: " + strings.Join(fields, ", ")
	}
	return err.Error()
}
