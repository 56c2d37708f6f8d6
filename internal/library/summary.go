package library

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/joshhsoj1902/steam-library-exporter/internal/steam"
)

type SortMode string

const (
	SortAlphabetical SortMode = "alphabetical"
	SortTime         SortMode = "time"
)

var ErrUnknownSortMode = errors.New("unknown sort mode")

// ParseSortMode accepts "alphabetical" or "time".
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case SortAlphabetical, SortTime:
		return SortMode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortMode, s)
}

type GameRecord struct {
	Name               string                    `json:"name"`
	PlaytimeHours      float64                   `json:"playtime_hours"`
	AppID              uint64                    `json:"appid"`
	UserStats          steam.PlayerStats         `json:"user_stats"`
	GlobalAchievements []steam.GlobalAchievement `json:"global_achievements"`
	PlayerAchievements []steam.PlayerAchievement `json:"player_achievements"`
}

type Summary struct {
	TotalGames          int          `json:"total_games"`
	TotalHours          float64      `json:"total_hours"`
	TotalHoursFormatted string       `json:"total_hours_formatted"`
	NotPlayedCount      int          `json:"not_played_count"`
	Games               []GameRecord `json:"games"`
}

// MinutesToHours converts Steam's playtime_forever minutes to hours.
func MinutesToHours(minutes int) float64 {
	return float64(minutes) / 60
}

// NewGameRecord combines an owned game with its per-game details.
func NewGameRecord(game steam.OwnedGame, details steam.GameDetails) GameRecord {
	name := game.Name
	if name == "" {
		name = "Unknown"
	}
	record := GameRecord{
		Name:               name,
		PlaytimeHours:      MinutesToHours(game.PlaytimeForever),
		AppID:              game.AppId,
		UserStats:          details.UserStats,
		GlobalAchievements: details.GlobalAchievements,
		PlayerAchievements: details.PlayerAchievements,
	}
	if record.GlobalAchievements == nil {
		record.GlobalAchievements = []steam.GlobalAchievement{}
	}
	if record.PlayerAchievements == nil {
		record.PlayerAchievements = []steam.PlayerAchievement{}
	}
	return record
}

// BuildSummary totals the records in the order given.
func BuildSummary(records []GameRecord) Summary {
	summary := Summary{
		TotalGames: len(records),
		Games:      records,
	}
	if summary.Games == nil {
		summary.Games = []GameRecord{}
	}
	for _, r := range records {
		summary.TotalHours += r.PlaytimeHours
		if r.PlaytimeHours == 0 {
			summary.NotPlayedCount++
		}
	}
	summary.TotalHoursFormatted = FormatPlaytime(summary.TotalHours)
	return summary
}

// FormatPlaytime renders hours as "Nd Nh Nm", truncating each unit.
func FormatPlaytime(hours float64) string {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours < 0 {
		hours = 0
	}
	days := math.Floor(hours / 24)
	rem := hours - days*24
	wholeHours := math.Floor(rem)
	minutes := math.Floor((rem - wholeHours) * 60)
	return fmt.Sprintf("%dd %dh %dm", int64(days), int64(wholeHours), int64(minutes))
}

// SortGames returns a sorted copy of records. The input slice is left as is.
func SortGames(records []GameRecord, mode SortMode) ([]GameRecord, error) {
	sorted := make([]GameRecord, len(records))
	copy(sorted, records)

	switch mode {
	case SortAlphabetical:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Name < sorted[j].Name
		})
	case SortTime:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].PlaytimeHours > sorted[j].PlaytimeHours
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSortMode, mode)
	}
	return sorted, nil
}

// Sorted returns a copy of s with its games reordered.
func (s Summary) Sorted(mode SortMode) (Summary, error) {
	games, err := SortGames(s.Games, mode)
	if err != nil {
		return Summary{}, err
	}
	s.Games = games
	return s, nil
}
