package http

import (
	"net/http"

	_ "github.com/DRSN-tech/production-admin/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/production-admin/internal/usecase"
	"github.com/DRSN-tech/production-admin/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router     *chi.Mux
	cookieName string
	logger     logger.Logger
}

func NewRouter(router *chi.Mux, cookieName string, logger logger.Logger) *Router {
	return &Router{router: router, cookieName: cookieName, logger: logger}
}

// Init регистрирует маршруты. reports может быть nil: тогда выгрузка отчетов отвечает 503.
func (r *Router) Init(workspaces usecase.WorkspaceProvider, reports usecase.ReportUC, audit usecase.AuditPublisher) {
	r.router.Use(requestID)
	r.router.Use(middleware.RealIP)
	r.router.Use(accessLog(r.logger))
	r.router.Use(middleware.Recoverer)

	r.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // ссылка на JSON относительно хоста запроса
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(session(r.cookieName))

		v1.Route("/products", func(pr chi.Router) {
			NewProductHandler(workspaces, audit, r.logger).routes(pr)
			pr.Route("/{id}/raw-materials", NewAssociationHandler(workspaces, audit, r.logger).routes)
		})

		v1.Route("/raw-materials", func(rm chi.Router) {
			rm.Get("/options", rawMaterialOptions(workspaces))
			NewRawMaterialHandler(workspaces, audit, r.logger).routes(rm)
		})

		v1.Route("/production-suggestions", NewSuggestionHandler(workspaces, reports, r.logger).routes)
	})
}

func (r *Router) Handler() http.Handler {
	return r.router
}
