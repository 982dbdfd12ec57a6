package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ambassador_http_requests_total",
			Help: "Nombre total de requêtes HTTP par méthode, chemin et status",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ambassador_http_request_duration_seconds",
			Help:    "Durée des requêtes HTTP",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	snapshotRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ambassador_snapshot_refreshes_total",
			Help: "Cycles de rafraîchissement du snapshot, par résultat",
		},
		[]string{"result"},
	)
)

// ObserveRequest enregistre une requête HTTP terminée
func ObserveRequest(method, path string, status int, duration time.Duration) {
	requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveSnapshotRefresh enregistre l'issue d'un cycle de rafraîchissement
// (published, stale, error)
func ObserveSnapshotRefresh(result string) {
	snapshotRefreshes.WithLabelValues(result).Inc()
}

// Handler expose l'endpoint /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
