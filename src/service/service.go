// Package service exposes the state of a running node over HTTP.
package service

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/mosaicnetworks/gossamer/src/node"
	"github.com/mosaicnetworks/gossamer/src/telemetry"
	"github.com/sirupsen/logrus"
)

// Runner is the part of a node.Runner the service reads from.
type Runner interface {
	GetStats() map[string]string
	State() node.State
}

// Service ...
type Service struct {
	sync.Mutex

	bindAddress string
	runner      Runner
	mux         *http.ServeMux
	logger      *logrus.Entry
}

// NewService ...
func NewService(bindAddress string, r Runner, logger *logrus.Entry) *Service {
	service := Service{
		bindAddress: bindAddress,
		runner:      r,
		mux:         http.NewServeMux(),
		logger:      logger,
	}

	service.registerHandlers()

	return &service
}

func (s *Service) registerHandlers() {
	s.logger.Debug("Registering Gossamer API handlers")
	s.mux.Handle("/stats", telemetry.Instrument("stats", s.makeHandler(s.GetStats)))
	s.mux.Handle("/healthz", telemetry.Instrument("healthz", s.makeHandler(s.GetHealth)))
	s.mux.Handle("/metrics", telemetry.MetricsHandler())
}

func (s *Service) makeHandler(fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Lock()
		defer s.Unlock()

		// enable CORS
		w.Header().Set("Access-Control-Allow-Origin", "*")

		fn(w, r)
	}
}

// Handler returns the handler serving every endpoint of the service.
func (s *Service) Handler() http.Handler {
	return s.mux
}

// Serve calls ListenAndServe. This is a blocking call.
func (s *Service) Serve() {
	s.logger.WithField("bind_address", s.bindAddress).Debug("Serving Gossamer API")

	err := http.ListenAndServe(s.bindAddress, s.mux)
	if err != nil {
		s.logger.Error(err)
	}
}

// GetStats ...
func (s *Service) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := s.runner.GetStats()

	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(stats)
}

// GetHealth answers 200 once the node is running, and 503 before the handshake
// or after shutdown.
func (s *Service) GetHealth(w http.ResponseWriter, r *http.Request) {
	state := s.runner.State()

	switch state {
	case node.Running, node.InputClosed:
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Write([]byte(state.String()))
}
