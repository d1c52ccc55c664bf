// Package news exposes the news feed and admin CRUD over HTTP.
package news

import (
	"log/slog"
	"net/http"
	"time"

	"newsportal/internal/common/pagination"
	"newsportal/internal/handler/http/language"
	"newsportal/internal/handler/http/requestid"
	"newsportal/internal/handler/http/respond"
	newsUC "newsportal/internal/usecase/news"
)

type ListHandler struct {
	Svc           *newsUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP returns one page of the feed in the negotiated language,
// newest first.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	reqID := requestid.FromContext(ctx)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		h.Logger.Warn("invalid pagination parameters",
			"error", err.Error(),
			"request_id", reqID)
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	lang := language.FromRequest(r)
	result, err := h.Svc.ListPage(ctx, params, lang)
	if err != nil {
		h.Logger.Error("failed to list news",
			"error", err.Error(),
			"page", params.Page,
			"request_id", reqID)
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(result.Data))
	for _, item := range result.Data {
		dtos = append(dtos, feedDTO(item, lang))
	}

	h.Logger.Info("news feed served",
		"page", params.Page,
		"limit", params.Limit,
		"language", lang,
		"returned_count", len(dtos),
		"duration_ms", time.Since(start).Milliseconds(),
		"request_id", reqID)

	respond.JSON(w, http.StatusOK, pagination.NewResponse(dtos, result.Pagination))
}
