package urlstate

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(t *testing.T, rawQuery string) url.Values {
	t.Helper()
	v, err := url.ParseQuery(rawQuery)
	require.NoError(t, err)
	return v
}

func TestRead_Defaults(t *testing.T) {
	p := Read(url.Values{})
	assert.Equal(t, Params{Page: 1, RowsPerPage: 8}, p)
}

func TestRead_AllParams(t *testing.T) {
	p := Read(values(t, "operator=DraftKings&gameType=Classic&slateName=Sun+Main&page=3&rowsPerPage=16&playerId=42"))
	assert.Equal(t, Params{
		Operator:    "DraftKings",
		GameType:    "Classic",
		SlateName:   "Sun Main",
		Page:        3,
		RowsPerPage: 16,
		PlayerID:    "42",
	}, p)
}

func TestRead_NumericParsing(t *testing.T) {
	tests := []struct {
		query string
		page  int
		rows  int
	}{
		{"page=&rowsPerPage=", 1, 8},
		{"page=abc&rowsPerPage=xyz", 0, 0},
		{"page=2abc&rowsPerPage=24px", 2, 24},
		{"page=%20%205", 5, 8},
		{"page=-3", -3, 8},
		{"page=%2B4", 4, 8},
		{"page=99999999999999999999999", 0, 8},
		{"rowsPerPage=10", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			p := Read(values(t, tt.query))
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.rows, p.RowsPerPage)
		})
	}
}

func TestEncode_OmitsDefaultsAndEmpties(t *testing.T) {
	assert.Equal(t, "", Encode(Params{Page: 1, RowsPerPage: 8}))
	assert.Equal(t, "operator=DK", Encode(Params{Operator: "DK", Page: 1, RowsPerPage: 8}))
	assert.Equal(t,
		"operator=DK&gameType=Classic&slateName=Sun+Main&page=2&rowsPerPage=24&playerId=7",
		Encode(Params{Operator: "DK", GameType: "Classic", SlateName: "Sun Main", Page: 2, RowsPerPage: 24, PlayerID: "7"}),
	)
}

func TestEncode_FixedOrder(t *testing.T) {
	got := Write(values(t, "playerId=7&rowsPerPage=16&page=2&slateName=Main&gameType=Classic&operator=DK"), Update{})
	assert.Equal(t, "operator=DK&gameType=Classic&slateName=Main&page=2&rowsPerPage=16&playerId=7", got)
}

func TestWrite_MergesOverCurrent(t *testing.T) {
	current := values(t, "operator=DK&gameType=Classic&slateName=Main&page=3")

	got := Write(current, Update{Page: Int(1), SlateName: String("Late")})
	assert.Equal(t, "operator=DK&gameType=Classic&slateName=Late", got)

	got = Write(current, Update{GameType: String(""), SlateName: String("")})
	assert.Equal(t, "operator=DK&page=3", got)
}

func TestWrite_DropsUnknownParams(t *testing.T) {
	got := Write(values(t, "operator=DK&utm_source=mail"), Update{})
	assert.Equal(t, "operator=DK", got)
}

func TestRoundTrip(t *testing.T) {
	queries := []string{
		"",
		"operator=DK",
		"operator=Draft+Kings&gameType=Show%26Down&slateName=Main+%2F+Early",
		"operator=DK&gameType=Classic&slateName=Main&page=4&rowsPerPage=24&playerId=12",
		"page=1&rowsPerPage=8",
		"page=-2&rowsPerPage=16",
		"playerId=99&unrelated=x",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			before := Read(values(t, q))
			after := Read(values(t, Write(values(t, q), Update{})))
			assert.Equal(t, before, after)
		})
	}
}

func TestSynchronizer(t *testing.T) {
	u, err := url.Parse("/dashboard?operator=DK&page=2")
	require.NoError(t, err)

	loc := NewURL(u)
	sync := NewSynchronizer(loc)

	assert.Equal(t, Params{Operator: "DK", Page: 2, RowsPerPage: 8}, sync.ReadFromSource())

	sync.WriteToSource(Update{GameType: String("Classic")})
	assert.Equal(t, "/dashboard?operator=DK&gameType=Classic&page=2", loc.RequestURI())

	// Each write reads the location afresh
	loc.Replace("operator=FD")
	sync.WriteToSource(Update{RowsPerPage: Int(16)})
	assert.Equal(t, "/dashboard?operator=FD&rowsPerPage=16", loc.RequestURI())

	sync.WriteToSource(Update{Operator: String("")})
	assert.Equal(t, "/dashboard?rowsPerPage=16", loc.RequestURI())
}

func TestURL_DoesNotAliasInput(t *testing.T) {
	u, err := url.Parse("/?operator=DK")
	require.NoError(t, err)

	loc := NewURL(u)
	loc.Replace("operator=FD")

	assert.Equal(t, "operator=DK", u.RawQuery)
	assert.Equal(t, "/?operator=FD", loc.RequestURI())
	assert.Equal(t, "/", NewURL(nil).RequestURI())
}
