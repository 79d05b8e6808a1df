package books

import (
	"net/http"

	"github.com/5w1tchy/library-api/internal/api/dto"
	"github.com/5w1tchy/library-api/internal/api/httpx"
	"github.com/5w1tchy/library-api/internal/service"
)

// put creates the book (201) or replaces it (200). The isbn in the path wins
// over any isbn in the body.
func put(svc *service.Books) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isbn := r.PathValue("isbn")

		var body dto.BookDTO
		if err := httpx.DecodeJSON(r, &body); err != nil {
			httpx.BadBody(w, r, err)
			return
		}

		existed, err := svc.IsPresent(r.Context(), isbn)
		if err != nil {
			httpx.ServerError(w, r, err, "save failed")
			return
		}

		saved, err := svc.Save(r.Context(), isbn, dto.BookFromDTO(body))
		if err != nil {
			httpx.ServerError(w, r, err, "save failed")
			return
		}

		status := http.StatusCreated
		if existed {
			status = http.StatusOK
		}
		httpx.WriteJSON(w, status, dto.BookToDTO(saved))
	}
}
