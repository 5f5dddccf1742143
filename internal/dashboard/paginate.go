package dashboard

import (
	"github.com/XavierBriggs/fortuna/services/slate-dashboard/internal/urlstate"
	"github.com/XavierBriggs/fortuna/services/slate-dashboard/pkg/models"
)

// Page is one page of a slate's roster
type Page struct {
	Players     []models.Player `json:"players"`
	Total       int             `json:"total"`
	Start       int             `json:"start"` // inclusive index into the full roster
	End         int             `json:"end"`   // exclusive
	TotalPages  int             `json:"total_pages"`
	PageOptions []int           `json:"page_options"`
}

// Paginate slices players into the requested 1-based page. Pages outside
// 1..TotalPages come back empty.
func Paginate(players []models.Player, page, rowsPerPage int) Page {
	if rowsPerPage <= 0 {
		rowsPerPage = urlstate.DefaultRowsPerPage
	}

	total := len(players)
	totalPages := (total + rowsPerPage - 1) / rowsPerPage

	out := Page{
		Players:     []models.Player{},
		Total:       total,
		TotalPages:  totalPages,
		PageOptions: make([]int, totalPages),
	}
	for i := range out.PageOptions {
		out.PageOptions[i] = i + 1
	}

	if page < 1 || page > totalPages {
		return out
	}

	out.Start = (page - 1) * rowsPerPage
	out.End = min(out.Start+rowsPerPage, total)
	out.Players = append(out.Players, players[out.Start:out.End]...)
	return out
}
