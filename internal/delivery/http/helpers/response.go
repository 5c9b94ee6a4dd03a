package helpers

import (
	"encoding/json"
	"net/http"

	"guestportal/internal/domain"
)

// DataResponse is the success envelope for invitation endpoints.
// swagger:model DataResponse
type DataResponse struct {
	Success    bool            `json:"success"`
	Data       any             `json:"data"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
}

// MessageResponse is the success envelope for endpoints that return no record.
// swagger:model MessageResponse
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the error envelope for all endpoints. Errors is set only
// for aggregated validation failures.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Status  string                  `json:"status"`
	Message string                  `json:"message"`
	Errors  []domain.FieldViolation `json:"errors,omitempty"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and
// encodes v as the response body.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData writes a success envelope with the given data.
func WriteData(w http.ResponseWriter, statusCode int, data any) {
	WriteJSON(w, statusCode, DataResponse{Success: true, Data: data})
}

// WritePagedData writes a success envelope with data and pagination metadata.
func WritePagedData(w http.ResponseWriter, statusCode int, data any, meta PaginationMeta) {
	WriteJSON(w, statusCode, DataResponse{Success: true, Data: data, Pagination: &meta})
}

// WriteMessage writes a success envelope carrying only a message.
func WriteMessage(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, MessageResponse{Success: true, Message: message})
}

// WriteError writes an error envelope with the given message.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Status: "error", Message: message})
}

// WriteValidationError writes a 400 error envelope carrying every field
// violation so a client can render all problems at once.
func WriteValidationError(w http.ResponseWriter, violations []domain.FieldViolation) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Status:  "error",
		Message: "Validation Error",
		Errors:  violations,
	})
}
