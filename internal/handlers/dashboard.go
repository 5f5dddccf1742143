package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/XavierBriggs/fortuna/services/slate-dashboard/internal/dashboard"
	"github.com/XavierBriggs/fortuna/services/slate-dashboard/internal/urlstate"
)

// Dashboard actions accepted by PostAction
const (
	ActionSelectOperator = "select_operator"
	ActionSelectGameType = "select_game_type"
	ActionSelectSlate    = "select_slate"
	ActionSelectPlayer   = "select_player"
	ActionSetPage        = "set_page"
	ActionSetRowsPerPage = "set_rows_per_page"
	ActionNextPage       = "next_page"
	ActionPreviousPage   = "previous_page"
)

// ActionRequest is one user interaction with the dashboard
type ActionRequest struct {
	Action string          `json:"action"`
	Value  json.RawMessage `json:"value,omitempty"`
}

// Navigation tells the browser which address to install. It is always a
// replace: no new history entry and no scroll reset.
type Navigation struct {
	Location string `json:"location"`
	Query    string `json:"query"`
	Replace  bool   `json:"replace"`
	Scroll   bool   `json:"scroll"`
}

// DashboardResponse is the dashboard view plus where the browser should be
type DashboardResponse struct {
	dashboard.View
	Navigation Navigation `json:"navigation"`
}

// errBadAction marks a client mistake in an action request
type errBadAction struct {
	msg string
}

func (e *errBadAction) Error() string { return e.msg }

// GetDashboard resolves the selection carried by the query string and
// returns the view with the canonical query
// Query params: operator, gameType, slateName, page, rowsPerPage, playerId
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	store, sync, loc := h.openSession(r)

	persist(store, sync)
	respondJSON(w, http.StatusOK, h.response(store, loc))
}

// PostAction resolves the selection carried by the query string, applies
// one action to it and returns the new view and query
func (h *Handler) PostAction(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	store, sync, loc := h.openSession(r)

	if err := h.apply(store, req); err != nil {
		var bad *errBadAction
		if errors.As(err, &bad) {
			respondError(w, http.StatusBadRequest, bad.msg, nil)
			return
		}
		respondError(w, http.StatusNotFound, err.Error(), nil)
		return
	}

	// The player table selects its first row whenever nothing is selected
	store.SelectFirstPlayer()

	persist(store, sync)
	respondJSON(w, http.StatusOK, h.response(store, loc))
}

// openSession runs the two-phase initialization for one request: the index
// is already built, so resolve the URL selection against it
func (h *Handler) openSession(r *http.Request) (*dashboard.Store, *urlstate.Synchronizer, *urlstate.URL) {
	loc := urlstate.NewURL(&url.URL{Path: h.pagePath, RawQuery: r.URL.RawQuery})
	sync := urlstate.NewSynchronizer(loc)

	store := dashboard.New(h.index)
	store.Resolve(sync.ReadFromSource())

	return store, sync, loc
}

func (h *Handler) response(store *dashboard.Store, loc *urlstate.URL) DashboardResponse {
	return DashboardResponse{
		View: store.View(),
		Navigation: Navigation{
			Location: loc.RequestURI(),
			Query:    urlstate.Encode(urlstate.Read(loc.Query())),
			Replace:  true,
			Scroll:   false,
		},
	}
}

// persist writes the whole selection back to the location
func persist(store *dashboard.Store, sync *urlstate.Synchronizer) {
	p := store.Params()
	sync.WriteToSource(urlstate.Update{
		Operator:    &p.Operator,
		GameType:    &p.GameType,
		SlateName:   &p.SlateName,
		Page:        &p.Page,
		RowsPerPage: &p.RowsPerPage,
		PlayerID:    &p.PlayerID,
	})
}

// apply runs one action against the store. Filter values must exist in the
// index under the current selection, so the persisted query always resolves
// back to the same view; "" or null clears the level.
func (h *Handler) apply(store *dashboard.Store, req ActionRequest) error {
	st := store.State()

	switch req.Action {
	case ActionSelectOperator:
		v, err := stringValue(req.Value)
		if err != nil {
			return err
		}
		if v != "" && !slices.Contains(h.index.Operators(), v) {
			return &errBadAction{msg: fmt.Sprintf("unknown operator %q", v)}
		}
		store.SetOperator(v)

	case ActionSelectGameType:
		v, err := stringValue(req.Value)
		if err != nil {
			return err
		}
		if v != "" && !slices.Contains(h.index.GameTypes(st.SelectedOperator), v) {
			return &errBadAction{msg: fmt.Sprintf("unknown game type %q for operator %q", v, st.SelectedOperator)}
		}
		store.SetGameType(v)

	case ActionSelectSlate:
		v, err := stringValue(req.Value)
		if err != nil {
			return err
		}
		if v != "" && !slices.Contains(h.index.SlateNames(st.SelectedOperator, st.SelectedGameType), v) {
			return &errBadAction{msg: fmt.Sprintf("unknown slate %q for %s / %s", v, st.SelectedOperator, st.SelectedGameType)}
		}
		store.SetSlateName(v)

	case ActionSelectPlayer:
		id, err := stringValue(req.Value)
		if err != nil {
			return err
		}
		if id == "" {
			store.SetPlayer(nil)
			return nil
		}
		if !store.SelectPlayerByID(id) {
			return fmt.Errorf("player %s not found in selected slate", id)
		}

	case ActionSetPage:
		page, err := intValue(req.Value)
		if err != nil {
			return err
		}
		totalPages := store.View().Page.TotalPages
		if page < 1 || page > totalPages {
			return &errBadAction{msg: fmt.Sprintf("page must be between 1 and %d", totalPages)}
		}
		store.SetPage(page)

	case ActionSetRowsPerPage:
		rows, err := intValue(req.Value)
		if err != nil {
			return err
		}
		if !slices.Contains(dashboard.RowsPerPageOptions, rows) {
			return &errBadAction{msg: "rows_per_page must be one of 8, 16, 24"}
		}
		store.SetRowsPerPage(rows)

	case ActionNextPage:
		store.NextPage()

	case ActionPreviousPage:
		store.PreviousPage()

	default:
		return &errBadAction{msg: fmt.Sprintf("unknown action %q", req.Action)}
	}

	return nil
}

// stringValue accepts a JSON string, number or null (which clears)
func stringValue(raw json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}

	return "", &errBadAction{msg: "value must be a string"}
}

// intValue accepts a JSON number or numeric string
func intValue(raw json.RawMessage) (int, error) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return parsed, nil
		}
	}

	return 0, &errBadAction{msg: "value must be an integer"}
}
