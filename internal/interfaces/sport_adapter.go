package interfaces

import (
	"context"

	"github.com/KaedeZzz/MatchRecommender/internal/model"
)

// SportAdapter 所有运动数据源必须实现的核心接口
type SportAdapter interface {
	GetSport() model.Sport                                    // 运动类型
	FetchMatches(ctx context.Context) ([]*model.Match, error) // 拉取并清洗为统一比赛模型
}

// MatchStore 合并后比赛集合的持久化接口
type MatchStore interface {
	// Load 读取已持久化的比赛集合；文件不存在或损坏时返回空集合
	Load() ([]*model.Match, error)
	// Save 全量写回比赛集合（对调用方而言是原子替换）
	Save(matches []*model.Match) error
}
