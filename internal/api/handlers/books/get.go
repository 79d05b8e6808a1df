package books

import (
	"net/http"

	"github.com/5w1tchy/library-api/internal/api/apperr"
	"github.com/5w1tchy/library-api/internal/api/dto"
	"github.com/5w1tchy/library-api/internal/api/httpx"
	"github.com/5w1tchy/library-api/internal/service"
)

func get(svc *service.Books) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, found, err := svc.FindOne(r.Context(), r.PathValue("isbn"))
		if err != nil {
			httpx.ServerError(w, r, err, "fetch failed")
			return
		}
		if !found {
			apperr.NotFound(w, r)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, dto.BookToDTO(b))
	}
}

// head reports existence only.
func head(svc *service.Books) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := svc.IsPresent(r.Context(), r.PathValue("isbn"))
		if err != nil {
			httpx.ServerError(w, r, err, "lookup failed")
			return
		}
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
