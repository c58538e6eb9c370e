package model

// FootballMatchesResponse football-data.org 比赛列表接口响应
type FootballMatchesResponse struct {
	Matches []*FootballMatch `json:"matches"`
}

// FootballMatch football-data.org 原始比赛记录
type FootballMatch struct {
	ID          *int64              `json:"id"`
	UTCDate     string              `json:"utcDate"`
	Status      string              `json:"status"`
	Stage       string              `json:"stage"`
	Matchday    *int                `json:"matchday"`
	Group       string              `json:"group"`
	Venue       string              `json:"venue"`
	Competition FootballCompetition `json:"competition"`
	HomeTeam    FootballTeam        `json:"homeTeam"`
	AwayTeam    FootballTeam        `json:"awayTeam"`
}

// FootballCompetition 联赛信息
type FootballCompetition struct {
	Name string `json:"name"`
}

// FootballTeam 参赛球队
type FootballTeam struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}
