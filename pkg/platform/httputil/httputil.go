// Package httputil maps domain errors onto the JSON error envelope shared by
// every endpoint. Handlers never set error statuses directly.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "volunteerhub/pkg/domain-errors"
)

var statusByCode = map[dErrors.Code]int{
	dErrors.CodeValidation:     http.StatusBadRequest,
	dErrors.CodeDuplicate:      http.StatusBadRequest,
	dErrors.CodeCapacity:       http.StatusBadRequest,
	dErrors.CodeCapacityCommit: http.StatusBadRequest,
	dErrors.CodeConflict:       http.StatusBadRequest,
	dErrors.CodeBadRequest:     http.StatusBadRequest,
	dErrors.CodeUnauthorized:   http.StatusUnauthorized,
	dErrors.CodeForbidden:      http.StatusForbidden,
	dErrors.CodeNotFound:       http.StatusNotFound,
	dErrors.CodeUnavailable:    http.StatusInternalServerError,
	dErrors.CodeInternal:       http.StatusInternalServerError,
}

// WriteJSON encodes v with the given status. Encoding failures are swallowed;
// by the time they can occur the status line is already on the wire.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError renders err as the standard error envelope. The message and any
// structured metadata (duplicate lists, remaining capacity) are included so
// the UI can render a specific message; internal errors omit detail.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		code = dErrors.CodeInternal
		status = http.StatusInternalServerError
	}

	body := map[string]any{
		"success": false,
		"error":   string(code),
	}
	if code != dErrors.CodeInternal && code != dErrors.CodeUnavailable {
		var de *dErrors.Error
		if errors.As(err, &de) {
			body["message"] = de.Message
		}
		for k, v := range dErrors.MetaOf(err) {
			body[k] = v
		}
	}

	WriteJSON(w, status, body)
}
