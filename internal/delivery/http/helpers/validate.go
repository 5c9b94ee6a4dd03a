package helpers

import (
	"encoding/json"
	"net/http"

	"guestportal/internal/domain"
)

// Validator is implemented by request DTOs that support validation.
// Validate returns all field violations found; nil or empty means valid.
type Validator interface {
	Validate() []domain.FieldViolation
}

// DecodeAndValidate decodes the request body into dest (with
// DisallowUnknownFields) and, if dest implements Validator, runs Validate().
// On decode failure it writes a 400 JSON error; on validation failure it
// writes a 400 carrying every violation. Returns false in both cases, and
// callers should return immediately.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if v, ok := dest.(Validator); ok {
		if violations := v.Validate(); len(violations) > 0 {
			WriteValidationError(w, violations)
			return false
		}
	}
	return true
}
