package books

import (
	"errors"
	"net/http"

	"github.com/5w1tchy/library-api/internal/api/apperr"
	"github.com/5w1tchy/library-api/internal/api/dto"
	"github.com/5w1tchy/library-api/internal/api/httpx"
	"github.com/5w1tchy/library-api/internal/service"
)

func patch(svc *service.Books) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isbn := r.PathValue("isbn")

		var body dto.BookDTO
		if err := httpx.DecodeJSON(r, &body); err != nil {
			httpx.BadBody(w, r, err)
			return
		}

		exists, err := svc.IsPresent(r.Context(), isbn)
		if err != nil {
			httpx.ServerError(w, r, err, "patch failed")
			return
		}
		if !exists {
			apperr.NotFound(w, r)
			return
		}

		b, err := svc.PartialUpdate(r.Context(), isbn, dto.BookFromDTO(body))
		if errors.Is(err, service.ErrNotFound) {
			apperr.NotFound(w, r)
			return
		} else if err != nil {
			httpx.ServerError(w, r, err, "patch failed")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, dto.BookToDTO(b))
	}
}
