package dashboard

import (
	"github.com/XavierBriggs/fortuna/services/slate-dashboard/internal/urlstate"
	"github.com/XavierBriggs/fortuna/services/slate-dashboard/pkg/models"
)

// RowsPerPageOptions are the page sizes the player table offers
var RowsPerPageOptions = []int{8, 16, 24}

// State is the user's current selection. Empty strings and a nil player mean
// nothing is selected at that level.
type State struct {
	SelectedOperator  string         `json:"selected_operator"`
	SelectedGameType  string         `json:"selected_game_type"`
	SelectedSlateName string         `json:"selected_slate_name"`
	SelectedPlayer    *models.Player `json:"selected_player"`
	CurrentPage       int            `json:"current_page"`
	RowsPerPage       int            `json:"rows_per_page"`
}

// DefaultState is the state before any selection is made
func DefaultState() State {
	return State{
		CurrentPage: urlstate.DefaultPage,
		RowsPerPage: urlstate.DefaultRowsPerPage,
	}
}

// Params projects the state onto its query string form
func (s State) Params() urlstate.Params {
	p := urlstate.Params{
		Operator:    s.SelectedOperator,
		GameType:    s.SelectedGameType,
		SlateName:   s.SelectedSlateName,
		Page:        s.CurrentPage,
		RowsPerPage: s.RowsPerPage,
	}
	if s.SelectedPlayer != nil {
		p.PlayerID = s.SelectedPlayer.ID
	}
	return p
}

func (s State) clone() State {
	if s.SelectedPlayer != nil {
		p := *s.SelectedPlayer
		s.SelectedPlayer = &p
	}
	return s
}

func validRowsPerPage(rows int) bool {
	for _, opt := range RowsPerPageOptions {
		if opt == rows {
			return true
		}
	}
	return false
}
