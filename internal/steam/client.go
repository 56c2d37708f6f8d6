package steam

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joshhsoj1902/steam-library-exporter/internal/logger"
	"github.com/sirupsen/logrus"
)

const (
	DefaultAPIOrigin           = "https://api.steampowered.com"
	OwnedGamesEndpoint         = "/IPlayerService/GetOwnedGames/v0001/"
	UserStatsEndpoint          = "/ISteamUserStats/GetUserStatsForGame/v0002/"
	GlobalAchievementsEndpoint = "/ISteamUserStats/GetGlobalAchievementPercentagesForApp/v0002/"
	PlayerAchievementsEndpoint = "/ISteamUserStats/GetPlayerAchievements/v0001/"
	DefaultRequestTimeout      = 10 * time.Second
	maxLoggedBodyPreviewBytes  = 200
)

var (
	ErrEmptySteamID  = errors.New("steam ID cannot be empty")
	ErrMissingAPIKey = errors.New("Steam API key is not configured - set STEAM_KEY environment variable")
)

type Client struct {
	apiKey     string
	origin     string
	httpClient *http.Client
}

// NewClient builds a client for the Steam Web API at origin. An empty origin
// uses the public API and a non-positive timeout uses DefaultRequestTimeout.
func NewClient(apiKey string, origin string, timeout time.Duration) *Client {
	if origin == "" {
		origin = DefaultAPIOrigin
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Client{
		apiKey: apiKey,
		origin: strings.TrimRight(origin, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params map[string]string, target interface{}) (err error) {
	defer func() {
		recordRequest(endpoint, err)
	}()

	url := c.origin + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	q := req.URL.Query()
	for k, v := range params {
		q.Add(k, v)
	}
	q.Add("key", c.apiKey)
	q.Add("format", "json")
	req.URL.RawQuery = q.Encode()

	// Log the request without the API key
	debugQuery := make([]string, 0, len(params)+2)
	for k, v := range params {
		debugQuery = append(debugQuery, fmt.Sprintf("%s=%s", k, v))
	}
	debugQuery = append(debugQuery, "key=[HIDDEN]", "format=json")
	sort.Strings(debugQuery)
	logger.Log.WithFields(logrus.Fields{
		"url":    url,
		"params": strings.Join(debugQuery, "&"),
	}).Debug("Making Steam API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"status_code": resp.StatusCode,
		"body_length": len(body),
	}).Debug("Steam API response received")

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return &StatusError{StatusCode: resp.StatusCode, Message: "rate limited by Steam API (429)"}
	case http.StatusUnauthorized:
		return &StatusError{StatusCode: resp.StatusCode, Message: "unauthorized (401) - check your Steam API key"}
	case http.StatusForbidden:
		return &StatusError{StatusCode: resp.StatusCode, Message: "forbidden (403) - check your Steam API key and permissions, or the profile may be private"}
	case http.StatusBadRequest:
		return &StatusError{StatusCode: resp.StatusCode, Message: "bad request (400): " + preview(body)}
	default:
		return &StatusError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("unexpected status code %d: %s", resp.StatusCode, preview(body))}
	}

	// Steam serves HTML error pages with a 200 on some outages
	if len(body) > 0 && body[0] == '<' {
		return fmt.Errorf("received HTML instead of JSON: %s", preview(body))
	}

	if err := json.NewDecoder(bytes.NewReader(body)).Decode(target); err != nil {
		return fmt.Errorf("failed to decode JSON: %w, body: %s", err, preview(body))
	}

	return nil
}

// StatusError is returned for any non-200 response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return e.Message
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > maxLoggedBodyPreviewBytes {
		s = s[:maxLoggedBodyPreviewBytes] + "..."
	}
	return s
}

func validateSteamID(steamId string) error {
	if steamId == "" {
		return ErrEmptySteamID
	}
	if _, err := strconv.ParseUint(steamId, 10, 64); err != nil {
		return fmt.Errorf("invalid Steam ID format: '%s' - Steam IDs must be numeric (e.g., 76561197987123908)", steamId)
	}
	return nil
}

// GetOwnedGames retrieves the list of games owned by a Steam user
func (c *Client) GetOwnedGames(ctx context.Context, steamId string) (OwnedGamesResponse, error) {
	logger.Log.WithField("steam_id", steamId).Info("Fetching owned games from Steam API")

	if err := validateSteamID(steamId); err != nil {
		return OwnedGamesResponse{}, err
	}
	if c.apiKey == "" {
		return OwnedGamesResponse{}, ErrMissingAPIKey
	}

	params := map[string]string{
		"steamid":                   steamId,
		"include_appinfo":           "true",
		"include_played_free_games": "true",
	}

	var httpResp OwnedGamesHttpResponse
	if err := c.getJSON(ctx, OwnedGamesEndpoint, params, &httpResp); err != nil {
		return OwnedGamesResponse{}, fmt.Errorf("GetOwnedGames failed for steamid=%s: %w", steamId, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"steam_id":   steamId,
		"game_count": len(httpResp.Response.Games),
	}).Info("Successfully fetched owned games from Steam API")

	return httpResp.Response, nil
}

// GetUserStatsForGame retrieves the stats block for a specific game and user
func (c *Client) GetUserStatsForGame(ctx context.Context, steamId string, appId uint64) (PlayerStats, error) {
	params := map[string]string{
		"steamid": steamId,
		"appid":   strconv.FormatUint(appId, 10),
	}

	var resp UserStatsResponse
	if err := c.getJSON(ctx, UserStatsEndpoint, params, &resp); err != nil {
		return PlayerStats{}, fmt.Errorf("GetUserStatsForGame failed for appid=%d: %w", appId, err)
	}
	return resp.PlayerStats, nil
}

// GetGlobalAchievementPercentages retrieves the unlock percentage of every achievement in a game
func (c *Client) GetGlobalAchievementPercentages(ctx context.Context, appId uint64) ([]GlobalAchievement, error) {
	params := map[string]string{
		"gameid": strconv.FormatUint(appId, 10),
	}

	var resp GlobalAchievementResponse
	if err := c.getJSON(ctx, GlobalAchievementsEndpoint, params, &resp); err != nil {
		return nil, fmt.Errorf("GetGlobalAchievementPercentages failed for appid=%d: %w", appId, err)
	}
	return resp.AchievementPercentages.Achievements, nil
}

// GetPlayerAchievements retrieves the achieved flag of every achievement for a user
func (c *Client) GetPlayerAchievements(ctx context.Context, steamId string, appId uint64) ([]PlayerAchievement, error) {
	params := map[string]string{
		"steamid": steamId,
		"appid":   strconv.FormatUint(appId, 10),
	}

	var resp PlayerAchievementsResponse
	if err := c.getJSON(ctx, PlayerAchievementsEndpoint, params, &resp); err != nil {
		return nil, fmt.Errorf("GetPlayerAchievements failed for appid=%d: %w", appId, err)
	}
	return resp.PlayerStats.Achievements, nil
}

// GetGameDetails issues the three per-game requests in order. A failed request
// leaves its field empty and never prevents the others from being made.
func (c *Client) GetGameDetails(ctx context.Context, steamId string, appId uint64) GameDetails {
	details := GameDetails{
		GlobalAchievements: []GlobalAchievement{},
		PlayerAchievements: []PlayerAchievement{},
	}

	fields := logrus.Fields{
		"steam_id": steamId,
		"app_id":   appId,
	}

	if stats, err := c.GetUserStatsForGame(ctx, steamId, appId); err != nil {
		logger.Log.WithFields(fields).WithError(err).Warn("No user stats for game")
	} else {
		details.UserStats = stats
	}

	if global, err := c.GetGlobalAchievementPercentages(ctx, appId); err != nil {
		logger.Log.WithFields(fields).WithError(err).Warn("No global achievements for game")
	} else if global != nil {
		details.GlobalAchievements = global
	}

	if player, err := c.GetPlayerAchievements(ctx, steamId, appId); err != nil {
		logger.Log.WithFields(fields).WithError(err).Warn("No player achievements for game")
	} else if player != nil {
		details.PlayerAchievements = player
	}

	return details
}
