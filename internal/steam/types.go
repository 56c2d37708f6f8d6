package steam

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type Stat struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type Achievement struct {
	Name     string `json:"name"`
	Achieved int    `json:"achieved"`
}

// PlayerStats is the playerstats object returned by GetUserStatsForGame.
// Every field is omitted when empty so a missing response encodes as {}.
type PlayerStats struct {
	SteamID      string        `json:"steamID,omitempty"`
	GameName     string        `json:"gameName,omitempty"`
	Stats        []Stat        `json:"stats,omitempty"`
	Achievements []Achievement `json:"achievements,omitempty"`
}

// Values returns the stats keyed by name.
func (p PlayerStats) Values() map[string]float64 {
	values := make(map[string]float64, len(p.Stats))
	for _, s := range p.Stats {
		values[s.Name] = s.Value
	}
	return values
}

type UserStatsResponse struct {
	PlayerStats PlayerStats `json:"playerstats"`
}

// Percent is a global unlock percentage. Steam has served it both as a JSON
// number and as a quoted decimal string.
type Percent float64

func (p *Percent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*p = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid percent %q: %w", s, err)
		}
		*p = Percent(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = Percent(f)
	return nil
}

func (p Percent) String() string {
	return strconv.FormatFloat(float64(p), 'f', -1, 64)
}

type GlobalAchievement struct {
	Name    string  `json:"name"`
	Percent Percent `json:"percent"`
}

type GlobalAchievementResponse struct {
	AchievementPercentages struct {
		Achievements []GlobalAchievement `json:"achievements"`
	} `json:"achievementpercentages"`
}

type PlayerAchievement struct {
	APIName    string `json:"apiname"`
	Achieved   int    `json:"achieved"`
	UnlockTime int64  `json:"unlocktime,omitempty"`
}

func (a PlayerAchievement) IsAchieved() bool {
	return a.Achieved == 1
}

type PlayerAchievementsResponse struct {
	PlayerStats struct {
		SteamID      string              `json:"steamID"`
		GameName     string              `json:"gameName"`
		Achievements []PlayerAchievement `json:"achievements"`
		Success      bool                `json:"success"`
	} `json:"playerstats"`
}

type OwnedGame struct {
	AppId           uint64 `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int    `json:"playtime_forever"` // This is in minutes
}

type OwnedGamesResponse struct {
	GameCount uint        `json:"game_count"`
	Games     []OwnedGame `json:"games"`
}

type OwnedGamesHttpResponse struct {
	Response OwnedGamesResponse `json:"response"`
}

// GameDetails groups the three per-game lookups. Each field is independently
// empty when its request failed.
type GameDetails struct {
	UserStats          PlayerStats
	GlobalAchievements []GlobalAchievement
	PlayerAchievements []PlayerAchievement
}
