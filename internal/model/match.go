package model

import (
	"encoding/json"
	"strconv"
)

// Sport 运动类型枚举
type Sport string

const (
	SportFootball Sport = "football"
	SportCS2      Sport = "cs2"
	SportLoL      Sport = "lol"
)

// ParseSport 解析运动类型参数（仅接受受支持的运动）
func ParseSport(s string) (Sport, bool) {
	switch Sport(s) {
	case SportFootball, SportCS2, SportLoL:
		return Sport(s), true
	default:
		return "", false
	}
}

// MatchID 比赛ID：数据源给的是数字ID，缺失时由稳定字段拼接生成字符串ID。
// 序列化时数字ID仍按数字写出，保证 matches.json 与旧数据兼容。
type MatchID string

func (id MatchID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *MatchID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = MatchID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = MatchID(n.String())
	return nil
}

// Match 统一的比赛模型（抹平各数据源差异）
type Match struct {
	ID         MatchID   `json:"id"`                   // 比赛ID
	Sport      Sport     `json:"sport"`                // 运动类型
	Source     string    `json:"source"`               // 数据来源
	League     string    `json:"league,omitempty"`     // 联赛名（足球）
	Tournament string    `json:"tournament,omitempty"` // 赛事名（电竞）
	Teams      string    `json:"teams"`                // 对阵双方
	Time       string    `json:"time"`                 // 开赛时间（ISO-8601，未知为空）
	Importance string    `json:"importance"`           // 重要性标签（永不为空）
	Status     string    `json:"status,omitempty"`     // 数据源状态
	Matchday   *int      `json:"matchday,omitempty"`   // 轮次（足球）
	Stage      string    `json:"stage,omitempty"`      // 阶段
	Venue      string    `json:"venue,omitempty"`      // 场馆
	Raw        *RawExtra `json:"raw,omitempty"`        // 原始补充字段
}

// RawExtra 保留的原始字段（推荐器展示用）
type RawExtra struct {
	HomeTeam string `json:"homeTeam,omitempty"`
	AwayTeam string `json:"awayTeam,omitempty"`
	Group    string `json:"group,omitempty"`
}

// MatchKey (sport, id) 组合键，合并去重用
type MatchKey struct {
	Sport Sport
	ID    MatchID
}

// Key 返回该比赛的组合键
func (m *Match) Key() MatchKey {
	return MatchKey{Sport: m.Sport, ID: m.ID}
}
