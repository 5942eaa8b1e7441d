package metrics

import (
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CommandTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_command_total",
			Help: "Total number of commands handled by command key",
		},
		[]string{"command"},
	)

	CommandErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_command_errors",
			Help: "Total number of command handler errors by command key",
		},
		[]string{"command"},
	)

	CommandDenied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_command_denied_total",
			Help: "Total number of command invocations denied by the access gate",
		},
		[]string{"command"},
	)

	QuizCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_quiz_created_total",
			Help: "Total number of quiz polls sent",
		},
	)

	QuizAbandoned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_quiz_abandoned_total",
			Help: "Total number of quiz dialogues aborted before completion",
		},
	)

	StoreErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_store_errors_total",
			Help: "Total number of database errors swallowed by the access gate",
		},
	)
)

type Server struct {
	*http.Server
}

// SetupServer registers the bot metrics and returns an HTTP server
// exposing them on /metrics, along with /healthz and pprof.
func SetupServer(addr string) *Server {
	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		CommandTotal,
		CommandErrors,
		CommandDenied,
		QuizCreated,
		QuizAbandoned,
		StoreErrors,
	)

	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	http.HandleFunc("/healthz", healthzHandler)
	return &Server{server}
}

// healthzHandler returns a simple health check response
func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) Run() {
	_ = s.ListenAndServe()
}
