package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/KaedeZzz/MatchRecommender/internal/adapter/football"
	"github.com/KaedeZzz/MatchRecommender/internal/adapter/pandascore"
	"github.com/KaedeZzz/MatchRecommender/internal/config"
	"github.com/KaedeZzz/MatchRecommender/internal/interfaces"
	"github.com/KaedeZzz/MatchRecommender/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrTokenMissing 数据源访问令牌未配置：提示后跳过该运动，不算整体失败
var ErrTokenMissing = errors.New("缺少访问令牌")

type SyncService struct {
	store  interfaces.MatchStore
	logger *logrus.Logger
	cfg    *config.Config
	// 适配器工厂：新增运动仅需添加此处
	adapterFactory map[model.Sport]func(cfg *config.Config, logger *logrus.Logger) interfaces.SportAdapter
}

func NewSyncService(store interfaces.MatchStore, logger *logrus.Logger, cfg *config.Config) *SyncService {
	return &SyncService{
		store:  store,
		logger: logger,
		cfg:    cfg,
		adapterFactory: map[model.Sport]func(cfg *config.Config, logger *logrus.Logger) interfaces.SportAdapter{
			model.SportFootball: football.NewFootballAdapter,
			model.SportCS2:      pandascore.NewCS2Adapter,
			model.SportLoL:      pandascore.NewLoLAdapter,
		},
	}
}

// SyncSport 通用同步方法：拉取→清洗→合并→落盘，单运动完整跑完。
// 拉取失败时直接返回，该运动已持久化的旧条目保持不动。
func (s *SyncService) SyncSport(ctx context.Context, sport model.Sport) error {
	log := s.logger.WithFields(logrus.Fields{
		"run_id": uuid.NewString(),
		"sport":  sport,
	})

	sportCfg, ok := s.cfg.Sports[string(sport)]
	if !ok {
		return fmt.Errorf("未配置的运动: %s", sport)
	}
	if sportCfg.AuthToken == "" {
		log.Warnf("未配置%s的访问令牌，请在 .env 中补充后重试，本次跳过", sport)
		return fmt.Errorf("%s: %w", sport, ErrTokenMissing)
	}

	builder, ok := s.adapterFactory[sport]
	if !ok {
		return fmt.Errorf("未支持的运动: %s", sport)
	}
	adapter := builder(s.cfg, s.logger)

	batch, err := adapter.FetchMatches(ctx)
	if err != nil {
		return fmt.Errorf("%s拉取比赛失败: %w", sport, err)
	}

	existing, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("读取比赛存档失败: %w", err)
	}

	merged := MergeMatches(existing, sport, batch)
	if err := s.store.Save(merged); err != nil {
		return fmt.Errorf("写入比赛存档失败: %w", err)
	}

	log.Infof("同步完成：写入%d场%s比赛，保留%d条其他条目", len(batch), sport, len(merged)-len(batch))
	return nil
}

// SyncAll 依次同步启用的运动（串行执行，避免并发写同一份存档）。
// 单个运动失败只影响自身，整体继续。
func (s *SyncService) SyncAll(ctx context.Context) map[model.Sport]error {
	results := make(map[model.Sport]error, len(s.cfg.Settings.EnabledSports))
	for _, name := range s.cfg.Settings.EnabledSports {
		sport, ok := model.ParseSport(name)
		if !ok {
			s.logger.Warnf("忽略未知运动: %s", name)
			continue
		}
		err := s.SyncSport(ctx, sport)
		if err != nil {
			s.logger.WithError(err).Warnf("%s同步失败，保留既有数据", sport)
		}
		results[sport] = err
	}
	return results
}
