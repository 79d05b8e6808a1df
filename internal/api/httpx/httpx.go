package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/5w1tchy/library-api/internal/api/apperr"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeJSON reads a single JSON value from the request body into v.
// Unknown fields are ignored.
func DecodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return errors.New("invalid JSON")
	}
	return nil
}

// BadBody answers a DecodeJSON failure with 413 or 400.
func BadBody(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		apperr.WriteStatus(w, r, http.StatusRequestEntityTooLarge, "Request Entity Too Large", "")
		return
	}
	apperr.BadRequest(w, r, err.Error())
}

// ServerError logs err and writes the matching problem response.
func ServerError(w http.ResponseWriter, r *http.Request, err error, title string) {
	slog.ErrorContext(r.Context(), title,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", r.Header.Get("X-Request-ID"),
		"err", err,
	)
	apperr.HandleDBError(w, r, err, title)
}
