package news

import (
	"log/slog"
	"net/http"

	"newsportal/internal/common/pagination"
	"newsportal/internal/handler/http/auth"
	newsUC "newsportal/internal/usecase/news"
)

// Register wires the news routes into the mux. Reads are public; mutating
// routes require an admin JWT.
func Register(mux *http.ServeMux, svc *newsUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET    /news", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET    /news/latest", LatestHandler{svc})
	mux.Handle("GET    /news/", GetHandler{svc})

	mux.Handle("POST   /news", auth.Authz(CreateHandler{svc}))
	mux.Handle("PUT    /news/", auth.Authz(UpdateHandler{svc}))
	mux.Handle("DELETE /news/", auth.Authz(DeleteHandler{svc}))
}
