package registry

import "github.com/prometheus/client_golang/prometheus"

var (
	subscriptionsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "pubsub",
			Subsystem: "registry",
			Name:      "subscriptions",
			Help:      "Current number of subscriptions",
		},
		[]string{"registry"},
	)

	notificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pubsub",
			Subsystem: "registry",
			Name:      "notifications_total",
			Help:      "Total number of Notify calls",
		},
		[]string{"registry", "event"},
	)

	callbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pubsub",
			Subsystem: "registry",
			Name:      "callbacks_total",
			Help:      "Total number of callback invocations",
		},
		[]string{"registry", "event"},
	)

	callbackErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pubsub",
			Subsystem: "registry",
			Name:      "callback_errors_total",
			Help:      "Total number of callbacks that returned an error",
		},
		[]string{"registry", "event"},
	)

	notifyDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pubsub",
			Subsystem: "registry",
			Name:      "notify_duration_seconds",
			Help:      "Duration of Notify calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"registry"},
	)
)

func init() {
	prometheus.MustRegister(subscriptionsGauge, notificationsTotal, callbacksTotal, callbackErrorsTotal, notifyDuration)
}
