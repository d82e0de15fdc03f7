package article

import (
	"fmt"
	"log/slog"
	"net/http"

	"newscrawl/internal/domain/entity"
	"newscrawl/internal/handler/http/pathutil"
	"newscrawl/internal/handler/http/respond"
	"newscrawl/internal/observability/logging"
	"newscrawl/internal/repository"
)

// GetHandler serves GET /articles/{id}: one article including its body text.
type GetHandler struct {
	Repo   repository.ArticleRepository
	Logger *slog.Logger
}

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	id, err := pathutil.ExtractID(r.URL.Path, "/articles/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, &entity.ValidationError{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return
	}

	article, err := h.Repo.Get(ctx, id)
	if err != nil {
		logger.Error("article lookup failed",
			slog.Int64("id", id),
			slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	if article == nil {
		respond.SafeError(w, http.StatusNotFound,
			fmt.Errorf("article %d: %w", id, entity.ErrNotFound))
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(article, true))
}
