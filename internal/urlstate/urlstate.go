// Package urlstate maps dashboard selections to and from the query string.
//
// The query string is the only persistence the dashboard has, so a link to
// any view restores it. Writes emit only non-default values: page is omitted
// when it is 1 and rowsPerPage when it is 8, and empty strings remove their
// parameter. Parameters always appear in the order operator, gameType,
// slateName, page, rowsPerPage, playerId.
package urlstate

import (
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names
const (
	ParamOperator    = "operator"
	ParamGameType    = "gameType"
	ParamSlateName   = "slateName"
	ParamPage        = "page"
	ParamRowsPerPage = "rowsPerPage"
	ParamPlayerID    = "playerId"
)

// Defaults applied when a numeric parameter is absent
const (
	DefaultPage        = 1
	DefaultRowsPerPage = 8
)

// Params is the selection state carried by the query string. An empty string
// means the parameter is absent. Page and RowsPerPage hold whatever the URL
// said, 0 when it held no number at all; validating them is up to the caller.
type Params struct {
	Operator    string `json:"operator,omitempty"`
	GameType    string `json:"gameType,omitempty"`
	SlateName   string `json:"slateName,omitempty"`
	Page        int    `json:"page"`
	RowsPerPage int    `json:"rowsPerPage"`
	PlayerID    string `json:"playerId,omitempty"`
}

// Update is a partial Params; nil fields keep the current value
type Update struct {
	Operator    *string
	GameType    *string
	SlateName   *string
	Page        *int
	RowsPerPage *int
	PlayerID    *string
}

// String returns a pointer to s, for building an Update
func String(s string) *string { return &s }

// Int returns a pointer to n, for building an Update
func Int(n int) *int { return &n }

// Read extracts Params from query values
func Read(values url.Values) Params {
	return Params{
		Operator:    values.Get(ParamOperator),
		GameType:    values.Get(ParamGameType),
		SlateName:   values.Get(ParamSlateName),
		Page:        parseInt(values.Get(ParamPage), DefaultPage),
		RowsPerPage: parseInt(values.Get(ParamRowsPerPage), DefaultRowsPerPage),
		PlayerID:    values.Get(ParamPlayerID),
	}
}

// Merge applies u over p
func Merge(p Params, u Update) Params {
	if u.Operator != nil {
		p.Operator = *u.Operator
	}
	if u.GameType != nil {
		p.GameType = *u.GameType
	}
	if u.SlateName != nil {
		p.SlateName = *u.SlateName
	}
	if u.Page != nil {
		p.Page = *u.Page
	}
	if u.RowsPerPage != nil {
		p.RowsPerPage = *u.RowsPerPage
	}
	if u.PlayerID != nil {
		p.PlayerID = *u.PlayerID
	}
	return p
}

// Encode renders p as a query string, omitting empty and default values
func Encode(p Params) string {
	var b strings.Builder
	add := func(key, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}

	if p.Operator != "" {
		add(ParamOperator, p.Operator)
	}
	if p.GameType != "" {
		add(ParamGameType, p.GameType)
	}
	if p.SlateName != "" {
		add(ParamSlateName, p.SlateName)
	}
	if p.Page != 0 && p.Page != DefaultPage {
		add(ParamPage, strconv.Itoa(p.Page))
	}
	if p.RowsPerPage != 0 && p.RowsPerPage != DefaultRowsPerPage {
		add(ParamRowsPerPage, strconv.Itoa(p.RowsPerPage))
	}
	if p.PlayerID != "" {
		add(ParamPlayerID, p.PlayerID)
	}

	return b.String()
}

// Write merges u over the params currently in values and returns the
// resulting query string. Parameters other than the six dashboard ones are
// not carried over.
func Write(values url.Values, u Update) string {
	return Encode(Merge(Read(values), u))
}

// parseInt reads a leading integer the way browsers' parseInt does: leading
// whitespace and a sign are allowed and trailing garbage is ignored ("3abc"
// is 3). Absent input yields def; input with no leading digits yields 0.
func parseInt(s string, def int) int {
	if s == "" {
		return def
	}

	s = strings.TrimLeft(s, " \t\n\r\f\v")
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}

	n, err := strconv.Atoi(sign + s[:end])
	if err != nil {
		return 0
	}
	return n
}
