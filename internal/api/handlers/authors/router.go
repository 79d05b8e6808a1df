// Package authors serves /authors.
package authors

import (
	"net/http"
	"strconv"

	"github.com/5w1tchy/library-api/internal/api/apperr"
	"github.com/5w1tchy/library-api/internal/api/dto"
	"github.com/5w1tchy/library-api/internal/models"
	"github.com/5w1tchy/library-api/internal/service"
	"github.com/samber/lo"
)

func Mount(mux *http.ServeMux, svc *service.Authors) {
	mux.HandleFunc("POST /authors", create(svc))
	mux.HandleFunc("GET /authors", list(svc))
	mux.HandleFunc("GET /authors/{id}", get(svc))
	mux.HandleFunc("PUT /authors/{id}", put(svc))
	mux.HandleFunc("PATCH /authors/{id}", patch(svc))
	mux.HandleFunc("DELETE /authors/{id}", del(svc))
}

// pathID parses {id}; on failure it has already written a 400.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		apperr.BadRequest(w, r, "id must be an integer")
		return 0, false
	}
	return id, true
}

func toDTOs(in []models.Author) []dto.AuthorDTO {
	return lo.Map(in, func(a models.Author, _ int) dto.AuthorDTO {
		return dto.AuthorToDTO(a)
	})
}
