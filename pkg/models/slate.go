package models

// RawSlate is one contest slate as published in the DFS dataset
type RawSlate struct {
	ID               string       `json:"_id"`
	Operator         string       `json:"operator"`
	OperatorGameType string       `json:"operatorGameType"`
	OperatorName     string       `json:"operatorName"` // slate name
	DfsSlatePlayers  []*RawPlayer `json:"dfsSlatePlayers"`
}

// RawPlayer is a player entry inside a slate, as published by the operator
type RawPlayer struct {
	SlatePlayerID      float64 `json:"slatePlayerId"`
	OperatorPlayerName string  `json:"operatorPlayerName"`
	OperatorPosition   string  `json:"operatorPosition"`
	OperatorSalary     float64 `json:"operatorSalary"`
	Team               string  `json:"team"`
	FantasyPoints      float64 `json:"fantasyPoints"`
}

// Player is the display-ready form of a RawPlayer
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	Position string `json:"position"`
	Salary   string `json:"salary"` // "$9,000"
	Points   string `json:"points"` // "28.5"
}

// SlateSummary describes one slate node of the filter tree
type SlateSummary struct {
	Name        string `json:"name"`
	PlayerCount int    `json:"player_count"`
}

// GameTypeSummary describes one game type node of the filter tree
type GameTypeSummary struct {
	Name   string         `json:"name"`
	Slates []SlateSummary `json:"slates"`
}

// OperatorSummary describes one operator node of the filter tree
type OperatorSummary struct {
	Name      string            `json:"name"`
	GameTypes []GameTypeSummary `json:"game_types"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}
