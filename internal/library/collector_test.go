package library

import (
	"context"
	"errors"
	"testing"

	"github.com/joshhsoj1902/steam-library-exporter/internal/steam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSteam struct {
	games    []steam.OwnedGame
	err      error
	details  map[uint64]steam.GameDetails
	detailed []uint64
}

func (s *stubSteam) GetOwnedGames(_ context.Context, _ string) (steam.OwnedGamesResponse, error) {
	if s.err != nil {
		return steam.OwnedGamesResponse{}, s.err
	}
	return steam.OwnedGamesResponse{GameCount: uint(len(s.games)), Games: s.games}, nil
}

func (s *stubSteam) GetGameDetails(_ context.Context, _ string, appId uint64) steam.GameDetails {
	s.detailed = append(s.detailed, appId)
	return s.details[appId]
}

func TestCollect(t *testing.T) {
	api := &stubSteam{
		games: []steam.OwnedGame{
			{AppId: 1, Name: "A", PlaytimeForever: 0},
			{AppId: 2, Name: "B", PlaytimeForever: 120},
		},
		details: map[uint64]steam.GameDetails{
			2: {
				GlobalAchievements: []steam.GlobalAchievement{{Name: "WIN", Percent: 10}},
				PlayerAchievements: []steam.PlayerAchievement{{APIName: "WIN", Achieved: 1}},
			},
		},
	}

	summary, ok := NewCollector(api, "1").Collect(context.Background())
	require.True(t, ok)

	assert.Equal(t, []uint64{1, 2}, api.detailed)
	assert.Equal(t, 2, summary.TotalGames)
	assert.Equal(t, 2.0, summary.TotalHours)
	assert.Equal(t, 1, summary.NotPlayedCount)
	assert.Equal(t, "0d 2h 0m", summary.TotalHoursFormatted)

	require.Len(t, summary.Games, 2)
	assert.Empty(t, summary.Games[0].GlobalAchievements)
	assert.NotNil(t, summary.Games[0].GlobalAchievements)
	assert.Len(t, summary.Games[1].PlayerAchievements, 1)
}

func TestCollectOwnedGamesFailure(t *testing.T) {
	api := &stubSteam{err: errors.New("unexpected status code 500")}

	_, ok := NewCollector(api, "1").Collect(context.Background())

	assert.False(t, ok)
	assert.Empty(t, api.detailed)
}

func TestCollectEmptyLibrary(t *testing.T) {
	_, ok := NewCollector(&stubSteam{}, "1").Collect(context.Background())
	assert.False(t, ok)
}

func TestCollectCancelled(t *testing.T) {
	api := &stubSteam{games: []steam.OwnedGame{{AppId: 1, Name: "A"}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := NewCollector(api, "1").Collect(ctx)

	assert.False(t, ok)
	assert.Empty(t, api.detailed)
}
