package authors

import (
	"net/http"
	"strconv"

	"github.com/5w1tchy/library-api/internal/api/apperr"
	"github.com/5w1tchy/library-api/internal/api/dto"
	"github.com/5w1tchy/library-api/internal/api/httpx"
	"github.com/5w1tchy/library-api/internal/page"
	"github.com/5w1tchy/library-api/internal/service"
	storeauthors "github.com/5w1tchy/library-api/internal/store/authors"
)

// GET /authors?page=&size=&sort=   -> page of authors
// GET /authors?ageLessThan=N      -> plain array
func list(svc *service.Authors) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if raw := q.Get("ageLessThan"); raw != "" {
			age, err := strconv.Atoi(raw)
			if err != nil {
				apperr.BadRequest(w, r, "ageLessThan must be an integer")
				return
			}
			out, err := svc.AgeLessThan(r.Context(), age)
			if err != nil {
				httpx.ServerError(w, r, err, "list failed")
				return
			}
			httpx.WriteJSON(w, http.StatusOK, toDTOs(out))
			return
		}

		p, err := svc.FindPage(r.Context(), page.FromQuery(q, storeauthors.SortColumns))
		if err != nil {
			httpx.ServerError(w, r, err, "list failed")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, page.Map(p, dto.AuthorToDTO))
	}
}
