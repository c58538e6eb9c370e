package service

import (
	"context"
	"errors"
	"testing"

	"github.com/KaedeZzz/MatchRecommender/internal/config"
	"github.com/KaedeZzz/MatchRecommender/internal/interfaces"
	"github.com/KaedeZzz/MatchRecommender/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	matches []*model.Match
	saves   int
}

func (s *memStore) Load() ([]*model.Match, error) {
	return s.matches, nil
}

func (s *memStore) Save(matches []*model.Match) error {
	s.matches = matches
	s.saves++
	return nil
}

type fakeAdapter struct {
	sport model.Sport
	batch []*model.Match
	err   error
}

func (f *fakeAdapter) GetSport() model.Sport { return f.sport }

func (f *fakeAdapter) FetchMatches(ctx context.Context) ([]*model.Match, error) {
	return f.batch, f.err
}

func newSyncFixture(t *testing.T, fake *fakeAdapter) (*SyncService, *memStore) {
	t.Helper()
	cfg := &config.Config{
		Settings: config.SettingsConfig{EnabledSports: []string{"cs2"}},
		Sports: map[string]config.SportConfig{
			"cs2": {AuthToken: "token"},
		},
	}
	ms := &memStore{}
	svc := NewSyncService(ms, logrus.New(), cfg)
	svc.adapterFactory[model.SportCS2] = func(cfg *config.Config, logger *logrus.Logger) interfaces.SportAdapter {
		return fake
	}
	return svc, ms
}

func TestSyncSportPersistsMergedBatch(t *testing.T) {
	fake := &fakeAdapter{sport: model.SportCS2, batch: []*model.Match{
		match(model.SportCS2, "2", "2025-01-02T00:00:00+00:00"),
		match(model.SportCS2, "1", "2025-01-01T00:00:00+00:00"),
	}}
	svc, ms := newSyncFixture(t, fake)
	ms.matches = []*model.Match{match(model.SportLoL, "7", "2025-01-03T00:00:00+00:00")}

	require.NoError(t, svc.SyncSport(context.Background(), model.SportCS2))

	require.Len(t, ms.matches, 3)
	assert.Equal(t, model.MatchID("1"), ms.matches[0].ID)
	assert.Equal(t, model.MatchID("2"), ms.matches[1].ID)
	assert.Equal(t, model.SportLoL, ms.matches[2].Sport)
}

func TestSyncSportMissingTokenSkips(t *testing.T) {
	fake := &fakeAdapter{sport: model.SportCS2}
	svc, ms := newSyncFixture(t, fake)
	cfg := svc.cfg.Sports["cs2"]
	cfg.AuthToken = ""
	svc.cfg.Sports["cs2"] = cfg

	err := svc.SyncSport(context.Background(), model.SportCS2)
	require.ErrorIs(t, err, ErrTokenMissing)
	assert.Zero(t, ms.saves)
}

func TestSyncSportFetchFailureLeavesStoreUntouched(t *testing.T) {
	fake := &fakeAdapter{sport: model.SportCS2, err: errors.New("boom")}
	svc, ms := newSyncFixture(t, fake)
	ms.matches = []*model.Match{match(model.SportCS2, "1", "2025-01-01T00:00:00+00:00")}

	err := svc.SyncSport(context.Background(), model.SportCS2)
	require.Error(t, err)
	assert.Zero(t, ms.saves)
	require.Len(t, ms.matches, 1)
}

func TestSyncSportUnknownSport(t *testing.T) {
	svc, _ := newSyncFixture(t, &fakeAdapter{sport: model.SportCS2})
	err := svc.SyncSport(context.Background(), model.SportFootball)
	require.Error(t, err)
}

func TestSyncAllContinuesPastFailures(t *testing.T) {
	fake := &fakeAdapter{sport: model.SportCS2, batch: []*model.Match{
		match(model.SportCS2, "1", "2025-01-01T00:00:00+00:00"),
	}}
	svc, ms := newSyncFixture(t, fake)
	svc.cfg.Settings.EnabledSports = []string{"lol", "cs2", "cricket"}
	svc.cfg.Sports["lol"] = config.SportConfig{} // 无令牌

	results := svc.SyncAll(context.Background())

	require.Len(t, results, 2)
	assert.ErrorIs(t, results[model.SportLoL], ErrTokenMissing)
	assert.NoError(t, results[model.SportCS2])
	require.Len(t, ms.matches, 1)
}
