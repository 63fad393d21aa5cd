package services

import "github.com/prometheus/client_golang/prometheus"

var (
	zenCoinsAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zen_coins_awarded_total",
			Help: "Zen Coins credited to users, by ledger reason",
		},
		[]string{"reason"},
	)
	zenCoinsDebited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zen_coins_debited_total",
			Help: "Zen Coins removed by negative awards, by ledger reason",
		},
		[]string{"reason"},
	)
	achievementsUnlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "achievements_unlocked_total",
			Help: "Achievements unlocked, by achievement name",
		},
		[]string{"achievement"},
	)
)

// RegisterMetrics adds the reward counters to reg. Call once from main.go.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(zenCoinsAwarded, zenCoinsDebited, achievementsUnlocked)
}
