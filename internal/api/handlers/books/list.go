package books

import (
	"net/http"

	"github.com/5w1tchy/library-api/internal/api/dto"
	"github.com/5w1tchy/library-api/internal/api/httpx"
	"github.com/5w1tchy/library-api/internal/page"
	"github.com/5w1tchy/library-api/internal/service"
	storebooks "github.com/5w1tchy/library-api/internal/store/books"
)

func list(svc *service.Books) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := page.FromQuery(r.URL.Query(), storebooks.SortColumns)
		p, err := svc.FindPage(r.Context(), req)
		if err != nil {
			httpx.ServerError(w, r, err, "list failed")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, page.Map(p, dto.BookToDTO))
	}
}
