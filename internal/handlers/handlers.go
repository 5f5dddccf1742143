package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/XavierBriggs/fortuna/services/slate-dashboard/internal/dashboard"
	"github.com/XavierBriggs/fortuna/services/slate-dashboard/pkg/models"
)

// SlateIndex is the filter index the handlers serve from
type SlateIndex interface {
	dashboard.Catalog
	Tree() []models.OperatorSummary
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	index    SlateIndex
	pagePath string
}

// NewHandler creates a new handler. pagePath is the browser path the
// dashboard lives at; navigation targets returned to the client use it.
func NewHandler(index SlateIndex, pagePath string) *Handler {
	if pagePath == "" {
		pagePath = "/"
	}
	return &Handler{
		index:    index,
		pagePath: pagePath,
	}
}

// HealthCheck returns the health status of the service
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	operators := len(h.index.Operators())

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "healthy",
		"timestamp":     time.Now().UTC(),
		"service":       "slate-dashboard",
		"operators":     operators,
		"dataset_empty": operators == 0,
	})
}

// GetOperators lists every operator in dataset order
func (h *Handler) GetOperators(w http.ResponseWriter, r *http.Request) {
	operators := h.index.Operators()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"operators": operators,
		"count":     len(operators),
	})
}

// GetGameTypes lists the game types of one operator
func (h *Handler) GetGameTypes(w http.ResponseWriter, r *http.Request) {
	operator := pathParam(r, "operator")
	gameTypes := h.index.GameTypes(operator)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"operator":   operator,
		"game_types": gameTypes,
		"count":      len(gameTypes),
	})
}

// GetSlateNames lists the slates of an operator's game type
func (h *Handler) GetSlateNames(w http.ResponseWriter, r *http.Request) {
	operator := pathParam(r, "operator")
	gameType := pathParam(r, "gameType")
	slateNames := h.index.SlateNames(operator, gameType)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"operator":    operator,
		"game_type":   gameType,
		"slate_names": slateNames,
		"count":       len(slateNames),
	})
}

// GetPlayers lists the roster of a slate
// Query params: limit, offset
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	operator := pathParam(r, "operator")
	gameType := pathParam(r, "gameType")
	slateName := pathParam(r, "slateName")

	limit := parseIntParam(r, "limit", 500)
	offset := parseIntParam(r, "offset", 0)

	// Validate limit
	if limit > 500 || limit <= 0 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}

	players := h.index.Players(operator, gameType, slateName)
	total := len(players)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"operator":   operator,
		"game_type":  gameType,
		"slate_name": slateName,
		"players":    players[offset:end],
		"count":      end - offset,
		"total":      total,
		"limit":      limit,
		"offset":     offset,
	})
}

// GetPlayer returns one player of a slate
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	player, ok := h.index.Player(
		pathParam(r, "operator"),
		pathParam(r, "gameType"),
		pathParam(r, "slateName"),
		pathParam(r, "playerID"),
	)
	if !ok {
		respondError(w, http.StatusNotFound, "player not found", nil)
		return
	}

	respondJSON(w, http.StatusOK, player)
}

// GetFilters returns the whole operator -> game type -> slate tree
func (h *Handler) GetFilters(w http.ResponseWriter, r *http.Request) {
	tree := h.index.Tree()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"operators": tree,
		"count":     len(tree),
	})
}

// Helper functions

// pathParam returns the decoded value of a chi URL parameter
// pathParam returns a decoded chi URL param. chi matches against RawPath when
// the request has one (e.g. an escaped "/"), and params are still escaped then.
func pathParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value
	}
	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}
	return value
}

func parseIntParam(r *http.Request, param string, defaultValue int) int {
	valueStr := r.URL.Query().Get(param)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Error("error encoding response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}

	if err != nil {
		zap.L().Warn(message, zap.Int("status", status), zap.Error(err))
	}

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		zap.L().Error("error encoding error response", zap.Error(err))
	}
}
