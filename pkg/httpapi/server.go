package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/hkex/market-sim/pkg/simulation"
	"github.com/hkex/market-sim/pkg/storage"
	"github.com/hkex/market-sim/pkg/storage/promsink"
)

// Server exposes the simulation's status, metrics and live-tick feed
// over HTTP. It never drives the simulation itself — it only reads
// whatever state Sim currently holds.
type Server struct {
	Sim    *simulation.Simulation
	Hub    *Hub
	Prom   *promsink.Sink
	Logger *zap.Logger

	httpServer *http.Server
}

// New wires the routes onto a fresh mux.Router and wraps it in
// rs/cors the way the teacher's API server does.
func New(sim *simulation.Simulation, hub *Hub, prom *promsink.Sink, logger *zap.Logger, addr string) *Server {
	s := &Server{Sim: sim, Hub: hub, Prom: prom, Logger: logger}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	router.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)
	router.HandleFunc("/ws", hub.ServeWS)

	handler := cors.AllowAll().Handler(router)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving HTTP until the listener errors or is
// closed by Shutdown.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the HTTP server at once via http.Server.Close: the
// listener and all active connections are closed without waiting for
// in-flight requests to finish.
func (s *Server) Shutdown() error {
	return s.httpServer.Close()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := s.Sim.BuildStatus()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		s.Logger.Error("encode status", zap.Error(err))
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	metrics := s.Sim.BuildMetrics()
	text, err := s.metricsText(metrics)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	w.Write([]byte(text))
}

func (s *Server) metricsText(metrics []storage.Metric) (string, error) {
	return s.Prom.GetMetricsText(simulation.MetricsPrefix, metrics)
}

// BroadcastTick pushes the current status to every connected websocket
// client — cmd/market-sim calls this from a ticker running at the
// simulation's wait interval, independently of the tick loop.
func (s *Server) BroadcastTick() {
	s.Hub.Broadcast(s.Sim.BuildStatus())
}
