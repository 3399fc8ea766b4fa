package handlers

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"
)

// Notice is a user-facing notification carried on JSON responses. Kind is
// "error" for failures and "info" for non-fatal conditions such as a
// distribution no-op or an empty floor list.
type Notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// apiError responds with a bare error notice.
func apiError(e *core.RequestEvent, status int, message string) error {
	return e.JSON(status, map[string]any{
		"notice": Notice{Kind: "error", Message: message},
	})
}

// validationError responds with 422 and, for ozzo field errors, a per-field
// message map so the form can mark the offending controls.
func validationError(e *core.RequestEvent, err error) error {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for name, fe := range fieldErrs {
			fields[name] = fe.Error()
		}
		return e.JSON(http.StatusUnprocessableEntity, map[string]any{
			"notice": Notice{Kind: "error", Message: "Validation failed"},
			"fields": fields,
		})
	}
	return e.JSON(http.StatusUnprocessableEntity, map[string]any{
		"notice": Notice{Kind: "error", Message: err.Error()},
	})
}
