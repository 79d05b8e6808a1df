package authors

import (
	"errors"
	"net/http"

	"github.com/5w1tchy/library-api/internal/api/apperr"
	"github.com/5w1tchy/library-api/internal/api/dto"
	"github.com/5w1tchy/library-api/internal/api/httpx"
	"github.com/5w1tchy/library-api/internal/service"
)

// put replaces every field of an existing author. Fields missing from the
// body are stored as null. A missing author is never created.
func put(svc *service.Authors) http.HandlerFunc {
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

		body.ID = &id
		saved, err := svc.Replace(r.Context(), dto.AuthorFromDTO(body))
		if errors.Is(err, service.ErrNotFound) {
			apperr.NotFound(w, r)
			return
		} else if err != nil {
			httpx.ServerError(w, r, err, "replace failed")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, dto.AuthorToDTO(saved))
	}
}
