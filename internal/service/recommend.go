package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/KaedeZzz/MatchRecommender/internal/config"
	"github.com/KaedeZzz/MatchRecommender/internal/interfaces"
	"github.com/KaedeZzz/MatchRecommender/internal/llm"
	"github.com/KaedeZzz/MatchRecommender/internal/model"

	"github.com/sirupsen/logrus"
)

// ErrProfileMissing 用户偏好文件缺失或为空：提示用户补全，不触发模型调用
var ErrProfileMissing = errors.New("用户偏好文件缺失或为空")

const recommendSystemPrompt = "你是一个专业的体育+电竞赛事推荐助手，会输出严格的 JSON。"

// Recommendation 模型返回的单条推荐，Match 为存档中对应的比赛
type Recommendation struct {
	ID     model.MatchID `json:"id"`
	Teams  string        `json:"teams"`
	Score  float64       `json:"score"`
	Reason string        `json:"reason"`
	Match  *model.Match  `json:"match,omitempty"`
}

// RecommendService 个性化推荐：读取存档 + 用户偏好，调用模型打分排序。
// 只调用存档的 Load，不参与合并与保存。
type RecommendService struct {
	store  interfaces.MatchStore
	client *llm.Client
	logger *logrus.Logger
	cfg    *config.Config
}

// NewRecommendService 创建推荐服务（模型客户端由调用方显式注入，无全局状态）
func NewRecommendService(store interfaces.MatchStore, client *llm.Client, logger *logrus.Logger, cfg *config.Config) *RecommendService {
	return &RecommendService{
		store:  store,
		client: client,
		logger: logger,
		cfg:    cfg,
	}
}

// Recommend 生成个性化推荐列表（按分数从高到低，截断到配置的条数）
func (s *RecommendService) Recommend(ctx context.Context) ([]*Recommendation, error) {
	matches, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("读取比赛存档失败: %w", err)
	}
	if len(matches) == 0 {
		s.logger.Info("没有待选比赛，跳过推荐")
		return []*Recommendation{}, nil
	}

	profile, err := s.loadUserProfile()
	if err != nil {
		return nil, err
	}

	prompt, err := BuildPrompt(profile, matches)
	if err != nil {
		return nil, err
	}

	raw, err := s.client.CompleteJSON(ctx, recommendSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("调用推荐模型失败: %w", err)
	}

	recs, err := ParseRecommendations(raw)
	if err != nil {
		s.logger.WithError(err).Warn("模型输出不是有效的推荐JSON")
		return nil, err
	}

	// 按 score 从高到低排一下（模型一般已经排好，这里再保险一下）
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	byID := make(map[model.MatchID]*model.Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}

	count := s.cfg.Settings.Count
	result := make([]*Recommendation, 0, count)
	for _, rec := range recs {
		match, ok := byID[rec.ID]
		if !ok {
			// 模型编造的 id 直接丢弃
			continue
		}
		rec.Match = match
		if rec.Teams == "" {
			rec.Teams = match.Teams
		}
		result = append(result, rec)
		if len(result) >= count {
			break
		}
	}
	return result, nil
}

// loadUserProfile 从偏好文件读取用户兴趣，缺失或为空时返回 ErrProfileMissing
func (s *RecommendService) loadUserProfile() (string, error) {
	data, err := os.ReadFile(s.cfg.Settings.ProfilePath)
	if err != nil {
		s.logger.Warnf("未找到 %s，请先创建用户偏好文件", s.cfg.Settings.ProfilePath)
		return "", ErrProfileMissing
	}
	profile := strings.TrimSpace(string(data))
	if profile == "" {
		s.logger.Warnf("%s 为空，请写入你想要的兴趣描述", s.cfg.Settings.ProfilePath)
		return "", ErrProfileMissing
	}
	return profile, nil
}

// BuildPrompt 把用户兴趣 + 比赛列表拼成交给模型的提示词
func BuildPrompt(profile string, matches []*model.Match) (string, error) {
	encoded, err := json.Marshal(matches)
	if err != nil {
		return "", fmt.Errorf("序列化比赛列表失败: %w", err)
	}
	return fmt.Sprintf(`
你是一个资深体育+电竞赛事推荐编辑，需要根据用户兴趣对比赛进行打分排序并给出推荐理由。

【用户兴趣】
%s

【待选比赛列表（JSON 数组）】
%s

请根据用户兴趣为每场比赛打分并排序，要求：
1. 返回一个 JSON 对象，字段为 "recommendations"（数组）。
2. recommendations 数组中每个元素包含字段：
   - id: 比赛 id
   - teams：比赛双方的队名，格式如 "队伍A vs 队伍B"，不要包括别的信息。如果不是电竞比赛，则把队名全部翻译成中文。
   - score: 推荐分数（0-100 的整数，越高越推荐）
   - reason: 中文推荐理由，1-2 句话。
3. 只输出 JSON，不要任何额外解释、文字或代码块标记。
`, profile, string(encoded)), nil
}

// ParseRecommendations 解析模型输出的 {"recommendations": [...]} 结构
func ParseRecommendations(raw string) ([]*Recommendation, error) {
	var payload struct {
		Recommendations []*Recommendation `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(llm.StripCodeFence(raw)), &payload); err != nil {
		return nil, fmt.Errorf("解析推荐JSON失败: %w", err)
	}
	if payload.Recommendations == nil {
		return nil, errors.New("返回的 JSON 中没有有效的 recommendations 数组")
	}
	return payload.Recommendations, nil
}
