package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		verifyTotal,
		verifyDuration,
		publishTotal,
		publishDuration,
		postsActive,
		postsExpiredTotal,
		pendingQueueDepth,
	)
}

var (
	// result: ok | already_used | oracle_unavailable | not_successful | mismatch
	verifyTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_verify_total",
			Help: "Payment verification attempts by result.",
		},
		[]string{"result"},
	)

	verifyDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "payment_verify_duration_seconds",
			Help:    "Duration of payment verification including the provider call.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)

	// result: ok | metadata_unavailable | publish_failed | not_in_queue
	publishTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "channel_publish_total",
			Help: "Channel publication attempts by result.",
		},
		[]string{"result"},
	)

	publishDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "channel_publish_duration_seconds",
			Help:    "Duration of the publication pipeline including enrichment.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)

	postsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "posts_active",
			Help: "Currently live sponsored posts.",
		},
	)

	postsExpiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "posts_expired_total",
			Help: "Posts removed by the expiry scheduler.",
		},
	)

	pendingQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pending_queue_depth",
			Help: "Submissions waiting for payment confirmation.",
		},
	)
)

func IncVerify(result string)            { verifyTotal.WithLabelValues(result).Inc() }
func ObserveVerifyDuration(sec float64)  { verifyDuration.Observe(sec) }
func IncPublish(result string)           { publishTotal.WithLabelValues(result).Inc() }
func ObservePublishDuration(sec float64) { publishDuration.Observe(sec) }
func IncPostsActive()                    { postsActive.Inc() }
func DecPostsActive()                    { postsActive.Dec() }
func IncPostsExpired()                   { postsExpiredTotal.Inc() }
func SetPendingQueueDepth(n int)         { pendingQueueDepth.Set(float64(n)) }
