package pandascore

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

// Source PandaScore 数据来源标识（cs2 与 lol 共用）
const Source = "pandascore.co"

// Game 区分 cs2 / lol 的少量差异，其余逻辑共用一个适配器
type Game struct {
	Sport             model.Sport
	Placeholder       string // 无对阵信息时的兜底标签
	DefaultTournament string // 赛事名为空时的兜底（lol 用）
	SkipStarted       bool   // 拉取时过滤已开赛的比赛（lol 用）
}

var (
	CS2 = Game{Sport: model.SportCS2, Placeholder: "CS2 Match"}
	LoL = Game{Sport: model.SportLoL, Placeholder: "LoL Match", DefaultTournament: "LoL Tournament", SkipStarted: true}
)

type Adapter struct {
	game       Game
	cfg        *config.SportConfig
	httpClient *http.Client
	logger     *logrus.Logger
	now        func() time.Time
}

// NewCS2Adapter 创建 PandaScore CS2 适配器
func NewCS2Adapter(cfg *config.Config, logger *logrus.Logger) interfaces.SportAdapter {
	sportCfg := cfg.Sports[string(model.SportCS2)]
	return newAdapter(CS2, &sportCfg, logger)
}

// NewLoLAdapter 创建 PandaScore LoL 适配器
func NewLoLAdapter(cfg *config.Config, logger *logrus.Logger) interfaces.SportAdapter {
	sportCfg := cfg.Sports[string(model.SportLoL)]
	return newAdapter(LoL, &sportCfg, logger)
}

func newAdapter(game Game, cfg *config.SportConfig, logger *logrus.Logger) *Adapter {
	return &Adapter{
		game:       game,
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
		now:        time.Now,
	}
}

// GetSport ========== 实现SportAdapter接口 ==========
func (a *Adapter) GetSport() model.Sport {
	return a.game.Sport
}

// FetchMatches 逐个状态拉取 PandaScore 赛事列表，摊平为比赛并清洗为统一模型。
// 双方未定（名称含 TBD）的比赛在此边界直接丢弃，不进入清洗。
func (a *Adapter) FetchMatches(ctx context.Context) ([]*model.Match, error) {
	var raw []*model.PandaScoreMatch
	for _, status := range a.cfg.Status {
		tournaments, err := a.fetchStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		raw = append(raw, a.flatten(tournaments)...)
	}
	a.logger.Infof("PandaScore 返回%d场%s比赛", len(raw), a.game.Sport)
	return NormalizeMatches(raw, a.game, a.cfg.Tier), nil
}

// buildAPIURL 构建 PandaScore 比赛列表 URL，包含必要的查询参数
func (a *Adapter) buildAPIURL(status string) string {
	u := fmt.Sprintf("%s/%s?range[tier]=%s", a.cfg.APIURL, status, strings.Join(a.cfg.Tier, ","))
	return u + "&token=" + url.QueryEscape(a.cfg.AuthToken)
}

func (a *Adapter) fetchStatus(ctx context.Context, status string) ([]*model.PandaScoreTournament, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.buildAPIURL(status), nil)
	if err != nil {
		return nil, fmt.Errorf("构建PandaScore请求失败: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求PandaScore失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("PandaScore返回异常状态 %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tournaments []*model.PandaScoreTournament
	if err := json.NewDecoder(resp.Body).Decode(&tournaments); err != nil {
		return nil, fmt.Errorf("解析PandaScore赛事列表失败: %w", err)
	}
	return tournaments, nil
}

// flatten 把赛事列表摊平成比赛列表，补上所属赛事名并做边界过滤
func (a *Adapter) flatten(tournaments []*model.PandaScoreTournament) []*model.PandaScoreMatch {
	now := a.now()
	var matches []*model.PandaScoreMatch
	for _, t := range tournaments {
		if t == nil {
			continue
		}
		name := strings.TrimSpace(t.League.Name + " " + t.Serie.Name)
		if name == "" {
			name = a.game.DefaultTournament
		}
		for _, m := range t.Matches {
			if m == nil {
				continue
			}
			if strings.Contains(m.Name, "TBD") {
				continue
			}
			if a.game.SkipStarted {
				start := m.BeginAt
				if start == "" {
					start = m.ScheduledAt
				}
				if ts, ok := adapter.ParseStartTime(start); ok && ts.Before(now) {
					continue
				}
			}
			m.Tournament = name
			matches = append(matches, m)
		}
	}
	return matches
}

// NormalizeMatches 批量清洗，空记录直接跳过
func NormalizeMatches(raw []*model.PandaScoreMatch, game Game, tiers []string) []*model.Match {
	normalized := make([]*model.Match, 0, len(raw))
	for _, r := range raw {
		if r == nil {
			continue
		}
		normalized = append(normalized, NormalizeMatch(r, game, tiers))
	}
	return normalized
}

// NormalizeMatch 把单条 PandaScore 比赛清洗进统一 schema
func NormalizeMatch(raw *model.PandaScoreMatch, game Game, tiers []string) *model.Match {
	var id model.MatchID
	if raw.ID != nil {
		id = model.MatchID(strconv.FormatInt(*raw.ID, 10))
	} else {
		// 没有原生 id 时用比赛名+开赛时间拼出可复现的键
		name := raw.Name
		if name == "" {
			name = string(game.Sport)
		}
		id = model.MatchID(name + "-" + raw.BeginAt)
	}

	teams := strings.Join(TeamNames(raw), " vs ")
	if teams == "" {
		teams = raw.Name
	}
	if teams == "" {
		teams = game.Placeholder
	}

	tournament := raw.Tournament
	if tournament == "" {
		tournament = "Unknown Tournament"
	}

	start := raw.BeginAt
	if start == "" {
		start = raw.ScheduledAt
	}

	stage := raw.Round
	if stage == "" {
		stage = raw.Phase
	}

	importance := "unknown"
	if len(tiers) > 0 {
		importance = "tier-" + tiers[len(tiers)-1]
	}

	return &model.Match{
		ID:         id,
		Sport:      game.Sport,
		Source:     Source,
		Tournament: tournament,
		Teams:      teams,
		Time:       adapter.NormalizeTime(start),
		Importance: importance,
		Status:     raw.Status,
		Stage:      stage,
	}
}

// TeamNames 从 PandaScore opponents 载荷中提取可读的队名
func TeamNames(raw *model.PandaScoreMatch) []string {
	var names []string
	for _, entry := range raw.Opponents {
		if entry == nil || entry.Opponent == nil {
			continue
		}
		if entry.Opponent.Name != "" {
			names = append(names, entry.Opponent.Name)
		}
	}
	return names
}
