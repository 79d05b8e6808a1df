package authors

import (
	"net/http"

	"github.com/5w1tchy/library-api/internal/api/httpx"
	"github.com/5w1tchy/library-api/internal/service"
)

// del answers 204 whether or not the author existed.
func del(svc *service.Authors) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			httpx.ServerError(w, r, err, "delete failed")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
