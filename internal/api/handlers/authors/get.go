package authors

import (
	"net/http"

	"github.com/5w1tchy/library-api/internal/api/apperr"
	"github.com/5w1tchy/library-api/internal/api/dto"
	"github.com/5w1tchy/library-api/internal/api/httpx"
	"github.com/5w1tchy/library-api/internal/service"
)

func get(svc *service.Authors) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		a, found, err := svc.FindOne(r.Context(), id)
		if err != nil {
			httpx.ServerError(w, r, err, "fetch failed")
			return
		}
		if !found {
			apperr.NotFound(w, r)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, dto.AuthorToDTO(a))
	}
}
