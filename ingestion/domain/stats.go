package domain

import (
	"fmt"
	"strings"
	"time"
)

// Statistics is the per-season statline of a single team.
type Statistics struct {
	MatchesPlayed int `json:"matches_played"`
	Wins          int `json:"wins"`
	Draws         int `json:"draws"`
	Losses        int `json:"losses"`
	GoalsFor      int `json:"goals_for"`
	GoalsAgainst  int `json:"goals_against"`
}

// TeamStatistics is a single raw record of the pipeline. One record per team
// per run, persisted as one JSONL line in the backup object and one row in
// the raw warehouse table.
type TeamStatistics struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	League     string     `json:"league"`
	Season     int        `json:"season"`
	Month      int        `json:"month"`
	Statistics Statistics `json:"statistics"`
}

// Team identifies a team to fetch statistics for.
type Team struct {
	ID       int
	LeagueID int
	Season   int
	Name     string
	League   string
}

// DefaultTeams is the fetch set used when none is configured.
// Dinamo Bucuresti, Liga 1, season 2023.
var DefaultTeams = []Team{
	{
		ID:       635,
		LeagueID: 283,
		Season:   2023,
		Name:     "Dinamo",
		League:   "Liga 1",
	},
}

// RunResult summarizes a completed pipeline run.
type RunResult struct {
	RunID       string `json:"runId"`
	ObjectName  string `json:"objectName"`
	Teams       int    `json:"teams"`
	FailedTeams int    `json:"failedTeams"`
}

// RunObjectName builds the backup object name for a run:
// <slug>_statistics_<season>_<timestamp>_processed.jsonl.
func RunObjectName(slug string, season int, t time.Time) string {
	return fmt.Sprintf("%s_statistics_%d_%s_processed.jsonl", slug, season, t.UTC().Format("20060102_150405"))
}

// TeamSlug lowercases a team name into the object-name slug.
func TeamSlug(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
}
