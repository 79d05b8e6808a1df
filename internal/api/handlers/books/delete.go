package books

import (
	"net/http"

	"github.com/5w1tchy/library-api/internal/api/httpx"
	"github.com/5w1tchy/library-api/internal/service"
)

func del(svc *service.Books) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), r.PathValue("isbn")); err != nil {
			httpx.ServerError(w, r, err, "delete failed")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
