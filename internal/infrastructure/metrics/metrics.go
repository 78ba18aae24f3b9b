package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RoomsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "driftroom",
		Name:      "rooms_active",
		Help:      "Number of live rooms in the registry.",
	})

	ConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "driftroom",
		Name:      "connections_active",
		Help:      "Number of open websocket connections.",
	})

	RoomsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "driftroom",
		Name:      "rooms_created_total",
		Help:      "Rooms created since process start.",
	})

	RoomsExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "driftroom",
		Name:      "rooms_expired_total",
		Help:      "Rooms torn down by the expiry deadline.",
	})

	RoomsDrainedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "driftroom",
		Name:      "rooms_drained_total",
		Help:      "Rooms deleted early because the last member left.",
	})

	MessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "driftroom",
		Name:      "messages_total",
		Help:      "Inbound events routed, by kind.",
	}, []string{"kind"})

	FanoutRecipients = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "driftroom",
		Name:      "fanout_recipients",
		Help:      "Recipients per room broadcast.",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
	})

	DroppedSendsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "driftroom",
		Name:      "dropped_sends_total",
		Help:      "Events dropped because a client send buffer was full.",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
