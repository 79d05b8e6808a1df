package router

import (
	"database/sql"
	"net/http"

	"github.com/5w1tchy/library-api/internal/api/handlers"
	"github.com/5w1tchy/library-api/internal/api/handlers/authors"
	"github.com/5w1tchy/library-api/internal/api/handlers/books"
	"github.com/5w1tchy/library-api/internal/service"
)

func Router(db *sql.DB, authorSvc *service.Authors, bookSvc *service.Books) http.Handler {
	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /healthz", handlers.Healthz)
	mux.Handle("GET /readyz", handlers.Readyz(db))

	authors.Mount(mux, authorSvc)
	books.Mount(mux, bookSvc)

	return mux
}
