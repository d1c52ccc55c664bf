package news

import (
	"errors"
	"net/http"

	"newsportal/internal/handler/http/pathutil"
	"newsportal/internal/handler/http/respond"
	newsUC "newsportal/internal/usecase/news"
)

var errInvalidCount = errors.New("count must be a positive integer")

type GetHandler struct{ Svc *newsUC.Service }

// ServeHTTP returns one news item with both language variants.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/news/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	item, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, newsUC.ErrInvalidNewsID) {
			code = http.StatusBadRequest
		} else if errors.Is(err, newsUC.ErrNewsNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, detailDTO(item))
}
