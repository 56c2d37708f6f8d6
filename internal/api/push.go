package api

import (
	"fmt"

	"github.com/joshhsoj1902/steam-library-exporter/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/sirupsen/logrus"
)

const pushJobName = "steam_library_exporter"

// PushSteamMetrics sends the steam_* metrics of a finished run to a Prometheus
// Pushgateway, grouped by steam_id.
func PushSteamMetrics(gatewayURL string, steamId string) error {
	return pushMetrics(gatewayURL, steamId, prometheus.DefaultGatherer)
}

func pushMetrics(gatewayURL string, steamId string, gatherer prometheus.Gatherer) error {
	pusher := push.New(gatewayURL, pushJobName).
		Gatherer(NewFilteredGatherer(gatherer, "steam_")).
		Grouping("steam_id", steamId)

	if err := pusher.Push(); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", gatewayURL, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"pushgateway": gatewayURL,
		"steam_id":    steamId,
	}).Info("Pushed metrics to Pushgateway")
	return nil
}
