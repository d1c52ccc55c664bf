package news

import (
	"net/http"
	"strconv"

	"newsportal/internal/handler/http/language"
	"newsportal/internal/handler/http/respond"
	newsUC "newsportal/internal/usecase/news"
)

const (
	defaultLatestCount = 4
	maxLatestCount     = 50
)

type LatestHandler struct{ Svc *newsUC.Service }

// ServeHTTP returns the newest items for the front-page strip. The count
// query parameter is clamped to a sane range.
func (h LatestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	count := defaultLatestCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respond.SafeError(w, http.StatusBadRequest, errInvalidCount)
			return
		}
		count = min(n, maxLatestCount)
	}

	lang := language.FromRequest(r)
	items, err := h.Svc.Latest(r.Context(), count, lang)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, feedDTO(item, lang))
	}
	respond.JSON(w, http.StatusOK, dtos)
}
