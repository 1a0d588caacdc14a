package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// ConvergeRuns counts convergence runs by requested state and outcome
	// (changed, unchanged, error).
	ConvergeRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "grantsync_converge_runs_total",
		Help: "Convergence runs by requested state and outcome",
	}, []string{"state", "outcome"})

	// Operations counts emitted operations by kind.
	Operations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "grantsync_operations_total",
		Help: "Operations emitted by convergence runs, by kind",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(ConvergeRuns, Operations)
}
