package steam

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ownedGamePlaytimeGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "steam",
		Subsystem: "owned_games",
		Name:      "playtime_seconds",
		Help:      "Amount of time an owned game has been played (in seconds)",
	}, []string{"app_id", "game_name", "steam_id"})

	achievementGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "steam",
		Subsystem: "achievements",
		Name:      "achieved",
		Help:      "Whether an achievement has been achieved (1) or not (0)",
	}, []string{"app_id", "game_name", "achievement_name", "steam_id"})

	apiRequestsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "steam",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Steam Web API requests by endpoint and outcome",
	}, []string{"endpoint", "outcome"})
)

func init() {
	prometheus.MustRegister(ownedGamePlaytimeGauge)
	prometheus.MustRegister(achievementGauge)
	prometheus.MustRegister(apiRequestsCounter)
}

func recordRequest(endpoint string, err error) {
	apiRequestsCounter.WithLabelValues(endpoint, requestOutcome(err)).Inc()
}

func requestOutcome(err error) string {
	if err == nil {
		return "ok"
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return strconv.Itoa(statusErr.StatusCode)
	}
	return "error"
}

// ReportOwnedGame reports playtime metrics for a game
func ReportOwnedGame(game OwnedGame, steamId string) {
	// Prometheus prefers seconds rather than minutes
	playtimeSeconds := float64(60 * game.PlaytimeForever)
	ownedGamePlaytimeGauge.With(prometheus.Labels{
		"game_name": game.Name,
		"app_id":    strconv.FormatUint(game.AppId, 10),
		"steam_id":  steamId,
	}).Set(playtimeSeconds)
}

// ReportAchievements reports one gauge per global achievement, 0 for the ones
// the player has not unlocked.
func ReportAchievements(playerAchievements []PlayerAchievement, globalAchievements []GlobalAchievement, gameName string, appId uint64, steamId string) {
	achieved := make(map[string]bool, len(playerAchievements))
	for _, a := range playerAchievements {
		achieved[a.APIName] = a.IsAchieved()
	}

	for _, global := range globalAchievements {
		value := 0.0
		if achieved[global.Name] {
			value = 1
		}
		achievementGauge.With(prometheus.Labels{
			"game_name":        gameName,
			"app_id":           strconv.FormatUint(appId, 10),
			"achievement_name": global.Name,
			"steam_id":         steamId,
		}).Set(value)
	}
}
