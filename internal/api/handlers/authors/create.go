package authors

import (
	"net/http"

	"github.com/5w1tchy/library-api/internal/api/dto"
	"github.com/5w1tchy/library-api/internal/api/httpx"
	"github.com/5w1tchy/library-api/internal/service"
)

func create(svc *service.Authors) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body dto.AuthorDTO
		if err := httpx.DecodeJSON(r, &body); err != nil {
			httpx.BadBody(w, r, err)
			return
		}

		a := dto.AuthorFromDTO(body)
		a.ID = 0 // always generated
		saved, err := svc.Save(r.Context(), a)
		if err != nil {
			httpx.ServerError(w, r, err, "create failed")
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, dto.AuthorToDTO(saved))
	}
}
