package model

import "time"

// Game is one row of the season schedule.
type Game struct {
	GameID   string    `json:"game_id" validate:"required"`
	Season   int       `json:"season" validate:"gt=0"`
	Week     int       `json:"week" validate:"gt=0"`
	Gameday  time.Time `json:"gameday"`
	HomeTeam string    `json:"home_team" validate:"required"`
	AwayTeam string    `json:"away_team" validate:"required,nefield=HomeTeam"`
}

// TeamGame is a schedule row seen from one participant.
type TeamGame struct {
	GameID  string    `json:"game_id"`
	Season  int       `json:"season"`
	Week    int       `json:"week"`
	Gameday time.Time `json:"gameday"`
	Team    string    `json:"team"`
	Opp     string    `json:"opp"`
	IsHome  bool      `json:"is_home"`
}

// SeasonWeek identifies one week of one season.
type SeasonWeek struct {
	Season int `json:"season"`
	Week   int `json:"week"`
}
