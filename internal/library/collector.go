package library

import (
	"context"

	"github.com/google/uuid"
	"github.com/joshhsoj1902/steam-library-exporter/internal/logger"
	"github.com/joshhsoj1902/steam-library-exporter/internal/steam"
	"github.com/sirupsen/logrus"
)

// SteamAPI is the subset of the Steam client the collector needs.
type SteamAPI interface {
	GetOwnedGames(ctx context.Context, steamId string) (steam.OwnedGamesResponse, error)
	GetGameDetails(ctx context.Context, steamId string, appId uint64) steam.GameDetails
}

type Collector struct {
	client  SteamAPI
	steamId string
}

func NewCollector(client SteamAPI, steamId string) *Collector {
	return &Collector{
		client:  client,
		steamId: steamId,
	}
}

// OwnedGames fetches the library. Any failure is logged and reported as an
// empty library.
func (c *Collector) OwnedGames(ctx context.Context) []steam.OwnedGame {
	resp, err := c.client.GetOwnedGames(ctx, c.steamId)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"steam_id": c.steamId,
			"error":    err.Error(),
		}).Warn("Failed to get owned games")
		return nil
	}
	return resp.Games
}

// Collect fetches details for every game in order and builds the summary.
// It returns false when no games could be retrieved.
func (c *Collector) Collect(ctx context.Context) (Summary, bool) {
	runLog := logger.Log.WithFields(logrus.Fields{
		"steam_id": c.steamId,
		"run_id":   uuid.NewString(),
	})

	games := c.OwnedGames(ctx)
	if len(games) == 0 {
		runLog.Warn("No owned games to process")
		return Summary{}, false
	}

	runLog.WithField("game_count", len(games)).Info("Processing owned games")

	records := make([]GameRecord, 0, len(games))
	for i, game := range games {
		if ctx.Err() != nil {
			runLog.WithError(ctx.Err()).Warn("Collection cancelled")
			return Summary{}, false
		}

		runLog.WithFields(logrus.Fields{
			"game":     game.Name,
			"app_id":   game.AppId,
			"progress": i + 1,
			"total":    len(games),
		}).Info("Processing game")

		details := c.client.GetGameDetails(ctx, c.steamId, game.AppId)
		steam.ReportOwnedGame(game, c.steamId)
		steam.ReportAchievements(details.PlayerAchievements, details.GlobalAchievements, game.Name, game.AppId, c.steamId)

		records = append(records, NewGameRecord(game, details))
	}

	summary := BuildSummary(records)
	reportSummary(summary, c.steamId)

	runLog.WithFields(logrus.Fields{
		"total_games":      summary.TotalGames,
		"total_hours":      summary.TotalHours,
		"not_played_count": summary.NotPlayedCount,
	}).Info("Completed Steam library collection")

	return summary, true
}
