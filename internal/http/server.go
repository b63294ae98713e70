package http

import (
	"net/http"

	"github.com/clubkit/touchline/internal/board"
	"github.com/clubkit/touchline/internal/club"
	"github.com/clubkit/touchline/internal/config"
	"github.com/clubkit/touchline/internal/formation"
	"github.com/clubkit/touchline/internal/metrics"
	"github.com/clubkit/touchline/internal/notifier"
)

func NewServer(store club.TacticsStore, boards *board.Manager, catalog *formation.Catalog, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier) *Server {
	server := &Server{
		Store:          store,
		Boards:         boards,
		Catalog:        catalog,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/members", Chain(s.ListMembersHandler(), paramsMiddleware))
	s.Router.Handle("/templates", Chain(s.ListTemplatesHandler(), paramsMiddleware))
	s.Router.Handle("/board/load", Chain(s.LoadBoardHandler(), paramsMiddleware))
	s.Router.Handle("/board/place", Chain(s.PlacePlayerHandler(), paramsMiddleware))
	s.Router.Handle("/board/move", Chain(s.MovePlayerHandler(), paramsMiddleware))
	s.Router.Handle("/board/remove", Chain(s.RemovePlayerHandler(), paramsMiddleware))
	s.Router.Handle("/board/template", Chain(s.SetTemplateHandler(), paramsMiddleware))
	s.Router.Handle("/board/reapply", Chain(s.ReapplyTemplateHandler(), paramsMiddleware))
	s.Router.Handle("/board/strategy", Chain(s.SetStrategyHandler(), paramsMiddleware))
	s.Router.Handle("/board/opponent", Chain(s.SetOpponentHandler(), paramsMiddleware))
	s.Router.Handle("/board/save", Chain(s.SaveBoardHandler(), paramsMiddleware))
	s.Router.Handle("/goals/add", Chain(s.AddGoalHandler(), paramsMiddleware))
	s.Router.Handle("/goals/edit", Chain(s.EditGoalHandler(), paramsMiddleware))
	s.Router.Handle("/goals/remove", Chain(s.RemoveGoalHandler(), paramsMiddleware))
	s.Router.Handle("/timeline", Chain(s.TimelineHandler(), paramsMiddleware))
	s.Router.Handle("/score", Chain(s.ScoreHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
