// Package dashboard owns the dashboard's selection state.
//
// A Store is created in a loading phase with New, then resolved once from
// URL parameters against the slate catalog. Every setter applies its cascade
// reset in a single locked update, so readers never observe a half-applied
// change.
package dashboard

import (
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/XavierBriggs/fortuna/services/slate-dashboard/internal/urlstate"
	"github.com/XavierBriggs/fortuna/services/slate-dashboard/pkg/models"
)

// Catalog is the read side of the slate filter index
type Catalog interface {
	Operators() []string
	GameTypes(operator string) []string
	SlateNames(operator, gameType string) []string
	Players(operator, gameType, slateName string) []models.Player
	Player(operator, gameType, slateName, id string) (models.Player, bool)
}

// Store holds one user's SelectionState
type Store struct {
	mu      sync.Mutex
	catalog Catalog
	state   State
	ready   bool
	created bool
}

// View is a consistent snapshot of everything the dashboard renders
type View struct {
	Ready              bool     `json:"ready"`
	State              State    `json:"state"`
	Operators          []string `json:"operators"`
	GameTypes          []string `json:"game_types"`
	SlateNames         []string `json:"slate_names"`
	RowsPerPageOptions []int    `json:"rows_per_page_options"`
	Page               Page     `json:"page"`
}

// New creates a store in the loading phase
func New(catalog Catalog) *Store {
	if catalog == nil {
		panic("dashboard: New called with a nil catalog")
	}
	return &Store{
		catalog: catalog,
		state:   DefaultState(),
		created: true,
	}
}

// mustInit fails fast when the store is used without going through New
func (s *Store) mustInit() {
	if s == nil || !s.created {
		panic("dashboard: Store used outside its initialization scope; create it with dashboard.New")
	}
}

// Resolve seeds the selection from URL params and ends the loading phase.
//
// Each URL value is accepted only if the catalog knows it under the already
// accepted parent. When no operator survives, the first operator, its first
// game type and its first slate are selected. The page is kept only if it
// exists for the resolved slate. A playerId naming a player of the resolved
// slate selects that player; otherwise the first player on the page is
// selected.
func (s *Store) Resolve(p urlstate.Params) {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		panic("dashboard: Resolve called on a store that is already resolved")
	}

	st := DefaultState()

	if slices.Contains(s.catalog.Operators(), p.Operator) {
		st.SelectedOperator = p.Operator
		if slices.Contains(s.catalog.GameTypes(p.Operator), p.GameType) {
			st.SelectedGameType = p.GameType
			if slices.Contains(s.catalog.SlateNames(p.Operator, p.GameType), p.SlateName) {
				st.SelectedSlateName = p.SlateName
			}
		}
	}

	if validRowsPerPage(p.RowsPerPage) {
		st.RowsPerPage = p.RowsPerPage
	}

	if st.SelectedOperator == "" {
		s.autoSelect(&st)
	}

	totalPages := Paginate(s.players(st), 1, st.RowsPerPage).TotalPages
	if p.Page >= 1 && p.Page <= totalPages {
		st.CurrentPage = p.Page
	}

	if p.PlayerID != "" && st.SelectedSlateName != "" {
		if player, ok := s.catalog.Player(st.SelectedOperator, st.SelectedGameType, st.SelectedSlateName, p.PlayerID); ok {
			st.SelectedPlayer = &player
		}
	}

	s.state = st
	s.selectFirstPlayer()
	s.ready = true

	zap.L().Debug("dashboard state resolved",
		zap.String("operator", st.SelectedOperator),
		zap.String("game_type", st.SelectedGameType),
		zap.String("slate", st.SelectedSlateName),
		zap.Int("page", s.state.CurrentPage),
		zap.Int("rows_per_page", st.RowsPerPage),
	)
}

// autoSelect picks the first option at each level, stopping at an empty one
func (s *Store) autoSelect(st *State) {
	ops := s.catalog.Operators()
	if len(ops) == 0 {
		return
	}
	st.SelectedOperator = ops[0]

	gameTypes := s.catalog.GameTypes(st.SelectedOperator)
	if len(gameTypes) == 0 {
		return
	}
	st.SelectedGameType = gameTypes[0]

	slateNames := s.catalog.SlateNames(st.SelectedOperator, st.SelectedGameType)
	if len(slateNames) == 0 {
		return
	}
	st.SelectedSlateName = slateNames[0]
}

// Ready reports whether Resolve has completed. State read before that is provisional.
func (s *Store) Ready() bool {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// State returns a copy of the current selection
func (s *Store) State() State {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Params returns the current selection in query string form
func (s *Store) Params() urlstate.Params {
	return s.State().Params()
}

// SetOperator selects an operator and clears everything beneath it
func (s *Store) SetOperator(operator string) {
	s.update(func(st *State) {
		st.SelectedOperator = operator
		st.SelectedGameType = ""
		st.SelectedSlateName = ""
		st.SelectedPlayer = nil
		st.CurrentPage = 1
	})
}

// SetGameType selects a game type and clears the slate and player
func (s *Store) SetGameType(gameType string) {
	s.update(func(st *State) {
		st.SelectedGameType = gameType
		st.SelectedSlateName = ""
		st.SelectedPlayer = nil
		st.CurrentPage = 1
	})
}

// SetSlateName selects a slate and clears the player
func (s *Store) SetSlateName(slateName string) {
	s.update(func(st *State) {
		st.SelectedSlateName = slateName
		st.SelectedPlayer = nil
		st.CurrentPage = 1
	})
}

// SetPlayer selects a player for the detail panel; nil clears it
func (s *Store) SetPlayer(player *models.Player) {
	s.update(func(st *State) {
		if player == nil {
			st.SelectedPlayer = nil
			return
		}
		p := *player
		st.SelectedPlayer = &p
	})
}

// SelectPlayerByID selects a player of the current slate. It reports false,
// leaving the state untouched, when the slate has no such player.
func (s *Store) SelectPlayerByID(id string) bool {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	player, ok := s.catalog.Player(st.SelectedOperator, st.SelectedGameType, st.SelectedSlateName, id)
	if !ok {
		return false
	}
	s.state.SelectedPlayer = &player
	return true
}

// SetPage moves to a 1-based page
func (s *Store) SetPage(page int) {
	s.update(func(st *State) {
		st.CurrentPage = page
	})
}

// SetRowsPerPage changes the page size and returns to the first page
func (s *Store) SetRowsPerPage(rows int) {
	s.update(func(st *State) {
		st.RowsPerPage = rows
		st.CurrentPage = 1
	})
}

// NextPage advances one page unless already on the last one
func (s *Store) NextPage() {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()

	page := Paginate(s.players(s.state), s.state.CurrentPage, s.state.RowsPerPage)
	if s.state.CurrentPage < page.TotalPages {
		s.state.CurrentPage++
	}
}

// PreviousPage goes back one page unless already on the first one
func (s *Store) PreviousPage() {
	s.update(func(st *State) {
		if st.CurrentPage > 1 {
			st.CurrentPage--
		}
	})
}

// SelectFirstPlayer selects the first player on the current page when no
// player is selected yet
func (s *Store) SelectFirstPlayer() {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectFirstPlayer()
}

func (s *Store) selectFirstPlayer() {
	if s.state.SelectedPlayer != nil {
		return
	}
	page := Paginate(s.players(s.state), s.state.CurrentPage, s.state.RowsPerPage)
	if len(page.Players) > 0 {
		first := page.Players[0]
		s.state.SelectedPlayer = &first
	}
}

// View returns a snapshot of the selection with its dropdown options and page
func (s *Store) View() View {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state.clone()
	v := View{
		Ready:              s.ready,
		State:              st,
		Operators:          s.catalog.Operators(),
		GameTypes:          []string{},
		SlateNames:         []string{},
		RowsPerPageOptions: slices.Clone(RowsPerPageOptions),
	}

	if st.SelectedOperator != "" {
		v.GameTypes = s.catalog.GameTypes(st.SelectedOperator)
	}
	if st.SelectedOperator != "" && st.SelectedGameType != "" {
		v.SlateNames = s.catalog.SlateNames(st.SelectedOperator, st.SelectedGameType)
	}
	v.Page = Paginate(s.players(st), st.CurrentPage, st.RowsPerPage)

	return v
}

// update applies fn to the state as one indivisible step
func (s *Store) update(fn func(st *State)) {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	fn(&next)
	s.state = next
}

// players returns the roster of the selected slate, empty until all three
// filters are chosen
func (s *Store) players(st State) []models.Player {
	if st.SelectedOperator == "" || st.SelectedGameType == "" || st.SelectedSlateName == "" {
		return []models.Player{}
	}
	return s.catalog.Players(st.SelectedOperator, st.SelectedGameType, st.SelectedSlateName)
}
