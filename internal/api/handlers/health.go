package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/5w1tchy/library-api/internal/api/apperr"
)

// Healthz answers as long as the process serves HTTP.
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// Readyz pings the store.
func Readyz(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			apperr.WriteStatus(w, r, http.StatusServiceUnavailable, "Service Unavailable", "database unreachable")
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ready"))
	}
}
