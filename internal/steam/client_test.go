package steam

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSteamID = "76561197987123908"

type fakeSteam struct {
	responses map[string]string
	statuses  map[string]int

	mu       sync.Mutex
	requests []*http.Request
}

func (f *fakeSteam) recorded() []*http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*http.Request(nil), f.requests...)
}

func newFakeSteam(t *testing.T) (*fakeSteam, *Client) {
	t.Helper()
	f := &fakeSteam{
		responses: map[string]string{},
		statuses:  map[string]int{},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r)
		f.mu.Unlock()
		if status, ok := f.statuses[r.URL.Path]; ok {
			w.WriteHeader(status)
			w.Write([]byte(`{}`))
			return
		}
		body, ok := f.responses[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return f, NewClient("test-key", srv.URL, 0)
}

func TestGetOwnedGames(t *testing.T) {
	f, client := newFakeSteam(t)
	f.responses[OwnedGamesEndpoint] = `{"response":{"game_count":2,"games":[
		{"appid":1,"name":"A","playtime_forever":0},
		{"appid":2,"name":"B","playtime_forever":120}]}}`

	resp, err := client.GetOwnedGames(context.Background(), testSteamID)
	require.NoError(t, err)
	require.Len(t, resp.Games, 2)
	assert.Equal(t, uint64(2), resp.Games[1].AppId)
	assert.Equal(t, 120, resp.Games[1].PlaytimeForever)

	require.Len(t, f.recorded(), 1)
	q := f.recorded()[0].URL.Query()
	assert.Equal(t, "test-key", q.Get("key"))
	assert.Equal(t, testSteamID, q.Get("steamid"))
	assert.Equal(t, "true", q.Get("include_appinfo"))
	assert.Equal(t, "true", q.Get("include_played_free_games"))
	assert.Equal(t, "json", q.Get("format"))
}

func TestGetOwnedGamesValidation(t *testing.T) {
	f, client := newFakeSteam(t)

	_, err := client.GetOwnedGames(context.Background(), "")
	assert.True(t, errors.Is(err, ErrEmptySteamID))

	_, err = client.GetOwnedGames(context.Background(), "gaben")
	assert.Error(t, err)

	noKey := NewClient("", client.origin, 0)
	_, err = noKey.GetOwnedGames(context.Background(), testSteamID)
	assert.True(t, errors.Is(err, ErrMissingAPIKey))

	assert.Empty(t, f.recorded(), "validation failures must not reach the API")
}

func TestGetOwnedGamesStatusErrors(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests, http.StatusInternalServerError} {
		f, client := newFakeSteam(t)
		f.statuses[OwnedGamesEndpoint] = status

		_, err := client.GetOwnedGames(context.Background(), testSteamID)
		require.Error(t, err)

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, status, statusErr.StatusCode)
	}
}

func TestGetJSONRejectsHTML(t *testing.T) {
	f, client := newFakeSteam(t)
	f.responses[OwnedGamesEndpoint] = `<html><body>Service Unavailable</body></html>`

	_, err := client.GetOwnedGames(context.Background(), testSteamID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTML")
}

func TestGetGameDetails(t *testing.T) {
	f, client := newFakeSteam(t)
	f.responses[UserStatsEndpoint] = `{"playerstats":{"steamID":"76561197987123908","gameName":"B",
		"stats":[{"name":"kills","value":42}],"achievements":[{"name":"WIN","achieved":1}]}}`
	f.responses[GlobalAchievementsEndpoint] = `{"achievementpercentages":{"achievements":[
		{"name":"WIN","percent":"12.5"},{"name":"LOSE","percent":87.5}]}}`
	f.responses[PlayerAchievementsEndpoint] = `{"playerstats":{"steamID":"76561197987123908","gameName":"B",
		"achievements":[{"apiname":"WIN","achieved":1,"unlocktime":1700000000},{"apiname":"LOSE","achieved":0,"unlocktime":0}],"success":true}}`

	details := client.GetGameDetails(context.Background(), testSteamID, 2)

	assert.Equal(t, "B", details.UserStats.GameName)
	assert.Equal(t, map[string]float64{"kills": 42}, details.UserStats.Values())

	require.Len(t, details.GlobalAchievements, 2)
	assert.Equal(t, Percent(12.5), details.GlobalAchievements[0].Percent)
	assert.Equal(t, Percent(87.5), details.GlobalAchievements[1].Percent)

	require.Len(t, details.PlayerAchievements, 2)
	assert.True(t, details.PlayerAchievements[0].IsAchieved())
	assert.False(t, details.PlayerAchievements[1].IsAchieved())

	require.Len(t, f.recorded(), 3)
	assert.Equal(t, "2", f.recorded()[1].URL.Query().Get("gameid"))
}

func TestGetGameDetailsPartialFailure(t *testing.T) {
	f, client := newFakeSteam(t)
	f.statuses[UserStatsEndpoint] = http.StatusBadRequest
	f.responses[GlobalAchievementsEndpoint] = `{"achievementpercentages":{"achievements":[{"name":"WIN","percent":50}]}}`
	f.responses[PlayerAchievementsEndpoint] = `{"playerstats":{"achievements":[{"apiname":"WIN","achieved":1}]}}`

	details := client.GetGameDetails(context.Background(), testSteamID, 7)

	assert.Equal(t, PlayerStats{}, details.UserStats)
	assert.Len(t, details.GlobalAchievements, 1)
	assert.Len(t, details.PlayerAchievements, 1)
	assert.Len(t, f.recorded(), 3, "a failed request must not stop the remaining ones")
}

func TestGetGameDetailsAllFailed(t *testing.T) {
	f, client := newFakeSteam(t)
	f.statuses[UserStatsEndpoint] = http.StatusForbidden
	f.statuses[GlobalAchievementsEndpoint] = http.StatusForbidden
	f.statuses[PlayerAchievementsEndpoint] = http.StatusForbidden

	details := client.GetGameDetails(context.Background(), testSteamID, 7)

	assert.Equal(t, PlayerStats{}, details.UserStats)
	assert.NotNil(t, details.GlobalAchievements)
	assert.Empty(t, details.GlobalAchievements)
	assert.NotNil(t, details.PlayerAchievements)
	assert.Empty(t, details.PlayerAchievements)
}

func TestRequestCounter(t *testing.T) {
	f, client := newFakeSteam(t)
	f.statuses[PlayerAchievementsEndpoint] = http.StatusForbidden

	before := testutil.ToFloat64(apiRequestsCounter.WithLabelValues(PlayerAchievementsEndpoint, "403"))
	_, err := client.GetPlayerAchievements(context.Background(), testSteamID, 1)
	require.Error(t, err)
	after := testutil.ToFloat64(apiRequestsCounter.WithLabelValues(PlayerAchievementsEndpoint, "403"))

	assert.Equal(t, before+1, after)
}
