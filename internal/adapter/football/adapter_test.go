package football

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KaedeZzz/MatchRecommender/internal/config"
	"github.com/KaedeZzz/MatchRecommender/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func sampleRaw() *model.FootballMatch {
	return &model.FootballMatch{
		ID:          int64Ptr(9),
		UTCDate:     "2025-06-01T10:00:00Z",
		Status:      "SCHEDULED",
		Stage:       "REGULAR_SEASON",
		Matchday:    intPtr(30),
		Competition: model.FootballCompetition{Name: "Premier League"},
		HomeTeam:    model.FootballTeam{ID: int64Ptr(57), Name: "Arsenal FC"},
		AwayTeam:    model.FootballTeam{ID: int64Ptr(61), Name: "Chelsea FC"},
	}
}

func TestNormalizeMatchBasicFields(t *testing.T) {
	got := NormalizeMatch(sampleRaw())

	assert.Equal(t, model.MatchID("9"), got.ID)
	assert.Equal(t, model.SportFootball, got.Sport)
	assert.Equal(t, Source, got.Source)
	assert.Equal(t, "Arsenal FC vs Chelsea FC", got.Teams)
	assert.Equal(t, "2025-06-01T10:00:00+00:00", got.Time)
	assert.Equal(t, "Premier League", got.League)
	require.NotNil(t, got.Raw)
	assert.Equal(t, "Arsenal FC", got.Raw.HomeTeam)
}

func TestNormalizeMatchImportanceSkipsRegularSeason(t *testing.T) {
	got := NormalizeMatch(sampleRaw())
	// 常规赛阶段不进importance，只留联赛名和轮次
	assert.Equal(t, "Premier League | Matchday 30", got.Importance)
}

func TestNormalizeMatchImportanceWithStage(t *testing.T) {
	raw := sampleRaw()
	raw.Stage = "FINAL"
	raw.Matchday = nil
	got := NormalizeMatch(raw)
	assert.Equal(t, "Premier League | FINAL", got.Importance)
}

func TestNormalizeMatchImportanceFallsBackToStatus(t *testing.T) {
	raw := &model.FootballMatch{ID: int64Ptr(1), Status: "POSTPONED"}
	got := NormalizeMatch(raw)
	assert.Equal(t, "POSTPONED", got.Importance)

	got = NormalizeMatch(&model.FootballMatch{ID: int64Ptr(2)})
	assert.Equal(t, "scheduled", got.Importance)
}

func TestNormalizeMatchSynthesizedIDIsDeterministic(t *testing.T) {
	raw := sampleRaw()
	raw.ID = nil

	first := NormalizeMatch(raw)
	second := NormalizeMatch(raw)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, model.MatchID("57-61-2025-06-01T10:00:00Z"), first.ID)
}

func TestNormalizeMatchMissingTeamsUsesPlaceholders(t *testing.T) {
	raw := &model.FootballMatch{ID: int64Ptr(3)}
	got := NormalizeMatch(raw)
	assert.Equal(t, "Home vs Away", got.Teams)
	assert.NotEmpty(t, got.Teams)
}

func TestNormalizeMatchesSkipsNil(t *testing.T) {
	got := NormalizeMatches([]*model.FootballMatch{nil, sampleRaw(), nil})
	assert.Len(t, got, 1)
}

func TestFetchMatchesSendsAuthAndWindow(t *testing.T) {
	var gotToken, gotStatus, gotFrom, gotTo string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Auth-Token")
		gotStatus = r.URL.Query().Get("status")
		gotFrom = r.URL.Query().Get("dateFrom")
		gotTo = r.URL.Query().Get("dateTo")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"matches":[{"id":9,"utcDate":"2025-06-01T10:00:00Z","status":"SCHEDULED","homeTeam":{"id":57,"name":"Arsenal FC"},"awayTeam":{"id":61,"name":"Chelsea FC"},"competition":{"name":"Premier League"}}]}`))
	}))
	defer server.Close()

	logger := logrus.New()
	a := &Adapter{
		cfg:        &config.SportConfig{APIURL: server.URL, Status: []string{"SCHEDULED"}, AuthToken: "secret"},
		window:     3,
		httpClient: server.Client(),
		logger:     logger,
		now:        func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) },
	}

	matches, err := a.FetchMatches(context.Background())
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "secret", gotToken)
	assert.Equal(t, "SCHEDULED", gotStatus)
	assert.Equal(t, "2025-06-01", gotFrom)
	assert.Equal(t, "2025-06-04", gotTo)
	assert.Equal(t, "Arsenal FC vs Chelsea FC", matches[0].Teams)
}

func TestFetchMatchesNon200Fails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	a := &Adapter{
		cfg:        &config.SportConfig{APIURL: server.URL, Status: []string{"SCHEDULED"}},
		window:     3,
		httpClient: server.Client(),
		logger:     logrus.New(),
		now:        time.Now,
	}

	_, err := a.FetchMatches(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
