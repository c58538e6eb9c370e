package model

// PandaScoreTournament PandaScore 赛事列表接口返回的单个赛事（含比赛列表）
type PandaScoreTournament struct {
	League  PandaScoreLeague   `json:"league"`
	Serie   PandaScoreSerie    `json:"serie"`
	Matches []*PandaScoreMatch `json:"matches"`
}

// PandaScoreLeague 联赛信息
type PandaScoreLeague struct {
	Name string `json:"name"`
}

// PandaScoreSerie 赛季/系列赛信息
type PandaScoreSerie struct {
	Name string `json:"name"`
}

// PandaScoreMatch PandaScore 原始比赛记录（cs2 与 lol 共用同一结构）
type PandaScoreMatch struct {
	ID          *int64                     `json:"id"`
	Name        string                     `json:"name"`
	BeginAt     string                     `json:"begin_at"`
	ScheduledAt string                     `json:"scheduled_at"`
	Status      string                     `json:"status"`
	Round       string                     `json:"round"`
	Phase       string                     `json:"phase"`
	Opponents   []*PandaScoreOpponentEntry `json:"opponents"`

	// Tournament 拉取阶段由所属赛事的 league+serie 拼出，不来自接口字段
	Tournament string `json:"-"`
}

// PandaScoreOpponentEntry opponents 数组元素（嵌套一层 opponent）
type PandaScoreOpponentEntry struct {
	Opponent *PandaScoreOpponent `json:"opponent"`
}

// PandaScoreOpponent 参赛队伍
type PandaScoreOpponent struct {
	Name string `json:"name"`
}
