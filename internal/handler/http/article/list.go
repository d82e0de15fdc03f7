package article

import (
	"log/slog"
	"net/http"
	"strconv"

	"newscrawl/internal/domain/entity"
	"newscrawl/internal/handler/http/respond"
	"newscrawl/internal/observability/logging"
	"newscrawl/internal/repository"
)

// maxListLimit caps the limit query parameter.
const maxListLimit = 200

// ListHandler serves GET /articles: stored articles ordered by published
// time descending, optionally filtered by a title substring.
type ListHandler struct {
	Repo   repository.ArticleRepository
	Logger *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	filters, err := parseListFilters(r)
	if err != nil {
		logger.Warn("invalid list parameters", slog.Any("error", err))
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	articles, err := h.Repo.ListRecent(ctx, filters)
	if err != nil {
		logger.Error("article listing failed", slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	items := make([]DTO, 0, len(articles))
	for _, a := range articles {
		items = append(items, toDTO(a, false))
	}

	respond.JSON(w, http.StatusOK, ListResponse{Count: len(items), Items: items})
}

// parseListFilters reads the limit and q query parameters.
func parseListFilters(r *http.Request) (repository.ArticleListFilters, error) {
	filters := repository.ArticleListFilters{
		TitleQuery: r.URL.Query().Get("q"),
	}

	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return filters, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > maxListLimit {
		return filters, &entity.ValidationError{
			Field:   "limit",
			Message: "limit must be an integer between 1 and 200",
		}
	}

	filters.Limit = limit
	return filters, nil
}
