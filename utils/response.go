package utils

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// maxBodyBytes caps request bodies read by DecodeJSON
const maxBodyBytes = 1 << 20

// WriteJSON writes v with the given status code
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// WriteError renders err as {"error": ...}. Internal causes are logged and
// never sent to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternal("Internal server error", err)
	}

	log.Printf("[%s] %s %s: %v", RequestIDFrom(r.Context()), r.Method, r.URL.Path, err)

	if appErr.Kind == KindInternal {
		WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	body := map[string]interface{}{"error": appErr.Message}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	WriteJSON(w, appErr.Kind.HTTPStatus(), body)
}

// DecodeJSON decodes the request body into dst
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &AppError{Kind: KindInvalidArgument, Message: "Invalid input", Err: err}
	}
	return nil
}
