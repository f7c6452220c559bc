package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var countTasksInQueue = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "cpu_tasks_in_queue",
	Help: "Number of CPU tasks waiting for a worker",
})

var dispatcherSignalCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "dispatcher_signal_count",
	Help: "How often the dispatcher has signaled to start worker",
})

var activeWorkerCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "active_worker_count",
	Help: "Number of active CPU workers",
})

var rateLimitDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "rate_limit_decisions_total",
	Help: "Rate limiter verdicts",
}, []string{"result"})

var documentOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "document_outcomes_total",
	Help: "Terminal per-document pipeline states",
}, []string{"label", "outcome"})

var claimDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "claim_decisions_total",
	Help: "Claim decisions by status",
}, []string{"status"})

var backupResults = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "backup_results_total",
	Help: "Background document backups by result",
}, []string{"result"})

var visionFallbacks = promauto.NewCounter(prometheus.CounterOpts{
	Name: "vision_fallback_total",
	Help: "Documents routed to the vision capability",
})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IncrementTasksInQueue() {
	countTasksInQueue.Inc()
}

func DecrementTasksInQueue() {
	countTasksInQueue.Dec()
}

func StartDispatcherSignalCount() {
	dispatcherSignalCount.Inc()
}

func IncrementActiveWorkerCount() {
	activeWorkerCount.Inc()
}
func DecrementActiveWorkerCount() {
	activeWorkerCount.Dec()
}

func CountRateLimit(result string) {
	rateLimitDecisions.WithLabelValues(result).Inc()
}

func CountDocument(label string, outcome string) {
	documentOutcomes.WithLabelValues(label, outcome).Inc()
}

func CountDecision(status string) {
	claimDecisions.WithLabelValues(status).Inc()
}

func CountBackup(result string) {
	backupResults.WithLabelValues(result).Inc()
}

func CountVisionFallback() {
	visionFallbacks.Inc()
}

var claimDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "process_claim_duration_seconds",
	Help:    "Total time spent adjudicating one claim.",
	Buckets: []float64{.5, 1, 2, 5, 10, 30, 60},
}, []string{"status"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of pipeline stages and external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30},
}, []string{"service"})

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CaptureClaimMetrics(label string, timeElapsed time.Duration) {
	claimDuration.WithLabelValues(label).Observe(timeElapsed.Seconds())
}
