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

type Server struct {
	Store          club.TacticsStore
	Boards         *board.Manager
	Catalog        *formation.Catalog
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
}
