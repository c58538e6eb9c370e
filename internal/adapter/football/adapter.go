package football

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/KaedeZzz/MatchRecommender/internal/adapter"
	"github.com/KaedeZzz/MatchRecommender/internal/config"
	"github.com/KaedeZzz/MatchRecommender/internal/interfaces"
	"github.com/KaedeZzz/MatchRecommender/internal/model"
	"github.com/KaedeZzz/MatchRecommender/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// Source football-data.org 数据来源标识
const Source = "football-data.org"

type Adapter struct {
	cfg        *config.SportConfig
	window     int // 查询窗口（天）
	httpClient *http.Client
	logger     *logrus.Logger
	now        func() time.Time
}

// NewFootballAdapter 创建 football-data.org 适配器
func NewFootballAdapter(cfg *config.Config, logger *logrus.Logger) interfaces.SportAdapter {
	sportCfg := cfg.Sports[string(model.SportFootball)]
	return &Adapter{
		cfg:        &sportCfg,
		window:     cfg.Settings.TimeWindow,
		httpClient: httpclient.NewHTTPClient(&sportCfg, logger),
		logger:     logger,
		now:        time.Now,
	}
}

// GetSport ========== 实现SportAdapter接口 ==========
func (a *Adapter) GetSport() model.Sport {
	return model.SportFootball
}

// FetchMatches 按配置的状态列表逐个拉取指定窗口内的足球比赛，并清洗为统一模型
func (a *Adapter) FetchMatches(ctx context.Context) ([]*model.Match, error) {
	var raw []*model.FootballMatch
	for _, status := range a.cfg.Status {
		page, err := a.fetchStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		raw = append(raw, page...)
	}
	a.logger.Infof("football-data 返回%d场比赛", len(raw))
	return NormalizeMatches(raw), nil
}

func (a *Adapter) fetchStatus(ctx context.Context, status string) ([]*model.FootballMatch, error) {
	u, err := url.Parse(a.cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("解析football接口地址失败: %w", err)
	}

	today := a.now().UTC()
	q := u.Query()
	q.Set("status", status)
	q.Set("dateFrom", today.Format("2006-01-02"))
	q.Set("dateTo", today.AddDate(0, 0, a.window).Format("2006-01-02"))
	if a.cfg.Competitions != "" {
		q.Set("competitions", a.cfg.Competitions)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("构建football请求失败: %w", err)
	}
	req.Header.Set("X-Auth-Token", a.cfg.AuthToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求football-data失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("football-data返回异常状态 %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload model.FootballMatchesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("解析football比赛列表失败: %w", err)
	}
	return payload.Matches, nil
}

// NormalizeMatches 批量清洗，空记录直接跳过
func NormalizeMatches(raw []*model.FootballMatch) []*model.Match {
	normalized := make([]*model.Match, 0, len(raw))
	for _, r := range raw {
		if r == nil {
			continue
		}
		normalized = append(normalized, NormalizeMatch(r))
	}
	return normalized
}

// NormalizeMatch 按推荐器的 schema 清洗单条足球数据，补全 id、时间和 importance 等字段
func NormalizeMatch(raw *model.FootballMatch) *model.Match {
	home, away := raw.HomeTeam, raw.AwayTeam

	var id model.MatchID
	if raw.ID != nil {
		id = model.MatchID(strconv.FormatInt(*raw.ID, 10))
	} else {
		// API 没给 id 时，组合稳定字段生成可复现的键
		id = model.MatchID(fmt.Sprintf("%s-%s-%s", teamKey(home.ID), teamKey(away.ID), raw.UTCDate))
	}

	league := raw.Competition.Name

	var parts []string
	if league != "" {
		parts = append(parts, league)
	}
	if raw.Stage != "" && raw.Stage != "REGULAR_SEASON" {
		parts = append(parts, raw.Stage)
	}
	if raw.Matchday != nil {
		parts = append(parts, fmt.Sprintf("Matchday %d", *raw.Matchday))
	}
	importance := strings.Join(parts, " | ")
	if importance == "" {
		importance = raw.Status
	}
	if importance == "" {
		importance = "scheduled"
	}

	if league == "" {
		league = "Football"
	}

	return &model.Match{
		ID:         id,
		Sport:      model.SportFootball,
		Source:     Source,
		League:     league,
		Teams:      fmt.Sprintf("%s vs %s", nameOr(home.Name, "Home"), nameOr(away.Name, "Away")),
		Time:       adapter.NormalizeTime(raw.UTCDate),
		Importance: importance,
		Status:     raw.Status,
		Matchday:   raw.Matchday,
		Stage:      raw.Stage,
		Venue:      raw.Venue,
		Raw: &model.RawExtra{
			HomeTeam: home.Name,
			AwayTeam: away.Name,
			Group:    raw.Group,
		},
	}
}

func teamKey(id *int64) string {
	if id == nil {
		return "unknown"
	}
	return strconv.FormatInt(*id, 10)
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
