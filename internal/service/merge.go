package service

import (
	"sort"

	"github.com/KaedeZzz/MatchRecommender/internal/model"
)

// MergeMatches 将某一运动最新一批比赛并入既有集合。
// 本次抓取即该运动的完整真相：旧的同运动条目全部让位（包括批次里不再出现的），
// 其他运动的条目原样保留，最后按开赛时间稳定排序（时间为空排最前）。
func MergeMatches(existing []*model.Match, sport model.Sport, batch []*model.Match) []*model.Match {
	// 批内去重：同 (sport,id) 以后出现者为准
	seen := make(map[model.MatchKey]int, len(batch))
	deduped := make([]*model.Match, 0, len(batch))
	for _, m := range batch {
		if m == nil {
			continue
		}
		k := m.Key()
		if idx, ok := seen[k]; ok {
			deduped[idx] = m
			continue
		}
		seen[k] = len(deduped)
		deduped = append(deduped, m)
	}

	merged := make([]*model.Match, 0, len(existing)+len(deduped))
	for _, m := range existing {
		if m == nil || m.Sport == sport {
			continue
		}
		merged = append(merged, m)
	}
	merged = append(merged, deduped...)

	// 显式稳定排序：时间相同的条目保持「保留在前、新批在后」的相对顺序
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Time < merged[j].Time
	})
	return merged
}
