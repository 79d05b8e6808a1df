// Package books serves /books. Books are keyed by their ISBN.
package books

import (
	"net/http"

	"github.com/5w1tchy/library-api/internal/service"
)

func Mount(mux *http.ServeMux, svc *service.Books) {
	mux.HandleFunc("GET /books", list(svc))
	mux.HandleFunc("GET /books/{isbn}", get(svc))
	mux.HandleFunc("HEAD /books/{isbn}", head(svc))
	mux.HandleFunc("PUT /books/{isbn}", put(svc))
	mux.HandleFunc("PATCH /books/{isbn}", patch(svc))
	mux.HandleFunc("DELETE /books/{isbn}", del(svc))
}
