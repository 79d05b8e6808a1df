package authors

import (
	"errors"
	"net/http"

	"github.com/5w1tchy/library-api/internal/api/apperr"
	"github.com/5w1tchy/library-api/internal/api/dto"
	"github.com/5w1tchy/library-api/internal/api/httpx"
	"github.com/5w1tchy/library-api/internal/service"
)

func patch(svc *service.Authors) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var body dto.AuthorDTO
		if err := httpx.DecodeJSON(r, &body); err != nil {
			httpx.BadBody(w, r, err)
			return
		}

		exists, err := svc.IsPresent(r.Context(), id)
		if err != nil {
			httpx.ServerError(w, r, err, "patch failed")
			return
		}
		if !exists {
			apperr.NotFound(w, r)
			return
		}

		// the author may have been deleted since the check above
		a, err := svc.PartialUpdate(r.Context(), id, dto.AuthorFromDTO(body))
		if errors.Is(err, service.ErrNotFound) {
			apperr.NotFound(w, r)
			return
		} else if err != nil {
			httpx.ServerError(w, r, err, "patch failed")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, dto.AuthorToDTO(a))
	}
}
