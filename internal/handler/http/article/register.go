package article

import (
	"log/slog"
	"net/http"

	"newscrawl/internal/repository"
)

// Register wires the article routes into the mux.
func Register(mux *http.ServeMux, repo repository.ArticleRepository, logger *slog.Logger) {
	mux.Handle("GET /articles", ListHandler{Repo: repo, Logger: logger})
	mux.Handle("GET /articles/{id}", GetHandler{Repo: repo, Logger: logger})
}
