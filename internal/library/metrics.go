package library

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	gamesTotalGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "steam",
		Subsystem: "library",
		Name:      "games_total",
		Help:      "Number of games in the library",
	}, []string{"steam_id"})

	notPlayedGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "steam",
		Subsystem: "library",
		Name:      "not_played_total",
		Help:      "Number of games in the library that were never played",
	}, []string{"steam_id"})

	playtimeHoursGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "steam",
		Subsystem: "library",
		Name:      "playtime_hours",
		Help:      "Total playtime across the library (in hours)",
	}, []string{"steam_id"})
)

func init() {
	prometheus.MustRegister(gamesTotalGauge)
	prometheus.MustRegister(notPlayedGauge)
	prometheus.MustRegister(playtimeHoursGauge)
}

func reportSummary(summary Summary, steamId string) {
	gamesTotalGauge.WithLabelValues(steamId).Set(float64(summary.TotalGames))
	notPlayedGauge.WithLabelValues(steamId).Set(float64(summary.NotPlayedCount))
	playtimeHoursGauge.WithLabelValues(steamId).Set(summary.TotalHours)
}
