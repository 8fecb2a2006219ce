package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/fitcenter/backend/internal/services"
)

const maxBodyBytes = 1_048_576 // 1 MB

var errMultipleObjects = errors.New("request body must only contain a single JSON object")

// decodeJSON reads exactly one JSON object with no unknown fields into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errMultipleObjects
	}
	return nil
}

// decodeAndValidate writes the error response itself and reports whether
// the handler may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *services.ValidationHelper, dst any) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		if errors.Is(err, errMultipleObjects) {
			services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		} else {
			services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		}
		return false
	}
	if err := v.ValidateStruct(dst); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// MemberDirectory resolves display names for the staff confirmation screen.
type MemberDirectory interface {
	MemberName(ctx context.Context, memberID string) (string, error)
}

// idDirectory is used when no directory is wired; it shows the member id.
type idDirectory struct{}

func (idDirectory) MemberName(_ context.Context, memberID string) (string, error) {
	return memberID, nil
}
