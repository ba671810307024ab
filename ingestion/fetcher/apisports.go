package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	retry "github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/common"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/domain"
)

const (
	apiSportsHost = "v3.football.api-sports.io"

	fetchAttempts = 3
)

var (
	ErrMissingAPIKey = errors.New("APISPORTS_KEY is not set")

	ErrEmptyResponse = errors.New("api-sports returned an empty response")
)

// APISports fetches real team statistics from v3.football.api-sports.io.
type APISports struct {
	client *resty.Client
}

func NewAPISports() (*APISports, error) {
	key := common.GetEnv("APISPORTS_KEY", "")
	if key == "" {
		return nil, ErrMissingAPIKey
	}

	client := resty.New().
		SetBaseURL(common.GetEnv("APISPORTS_BASE_URL", "https://"+apiSportsHost)).
		SetHeader("x-rapidapi-key", key).
		SetHeader("x-rapidapi-host", apiSportsHost).
		SetTimeout(30 * time.Second)

	return &APISports{
		client: client,
	}, nil
}

// statisticsResponse models the subset of the teams/statistics payload the
// pipeline keeps.
type statisticsResponse struct {
	Response struct {
		League struct {
			Name   string `json:"name"`
			Season int    `json:"season"`
		} `json:"league"`
		Team struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"team"`
		Fixtures struct {
			Played totals `json:"played"`
			Wins   totals `json:"wins"`
			Draws  totals `json:"draws"`
			Loses  totals `json:"loses"`
		} `json:"fixtures"`
		Goals struct {
			For     goalTotals `json:"for"`
			Against goalTotals `json:"against"`
		} `json:"goals"`
	} `json:"response"`
}

type totals struct {
	Total int `json:"total"`
}

type goalTotals struct {
	Total totals `json:"total"`
}

func (a *APISports) TeamStatistics(ctx context.Context, team domain.Team) (*domain.TeamStatistics, error) {
	var payload statisticsResponse

	err := retry.Do(
		func() error {
			resp, err := a.client.R().
				SetContext(ctx).
				SetQueryParams(map[string]string{
					"league": strconv.Itoa(team.LeagueID),
					"season": strconv.Itoa(team.Season),
					"team":   strconv.Itoa(team.ID),
				}).
				SetResult(&payload).
				Get("/teams/statistics")
			if err != nil {
				return err
			}

			if resp.StatusCode() >= http.StatusInternalServerError {
				return fmt.Errorf("api-sports responded with %d", resp.StatusCode())
			}

			if resp.StatusCode() != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("api-sports responded with %d", resp.StatusCode()))
			}

			return nil
		},
		retry.Attempts(fetchAttempts),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}

	r := payload.Response
	if r.Team.ID == 0 {
		return nil, ErrEmptyResponse
	}

	return &domain.TeamStatistics{
		ID:     r.Team.ID,
		Name:   r.Team.Name,
		League: r.League.Name,
		Season: r.League.Season,
		Month:  int(time.Now().UTC().Month()),
		Statistics: domain.Statistics{
			MatchesPlayed: r.Fixtures.Played.Total,
			Wins:          r.Fixtures.Wins.Total,
			Draws:         r.Fixtures.Draws.Total,
			Losses:        r.Fixtures.Loses.Total,
			GoalsFor:      r.Goals.For.Total.Total,
			GoalsAgainst:  r.Goals.Against.Total.Total,
		},
	}, nil
}
