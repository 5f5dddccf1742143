package slates

import (
	"strconv"
	"strings"

	"github.com/XavierBriggs/fortuna/services/slate-dashboard/pkg/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Display fallbacks for absent raw fields
const (
	UnknownPlayerName = "Unknown Player"
	NotAvailable      = "N/A"

	// DefenseMarker identifies team defense/special teams entries, which are never listed
	DefenseMarker = "D/ST"
)

// normalizer converts raw operator player entries into display-ready players.
// A message.Printer is not safe for concurrent use, so each normalizer owns one.
type normalizer struct {
	printer *message.Printer
}

func newNormalizer() *normalizer {
	return &normalizer{printer: message.NewPrinter(language.AmericanEnglish)}
}

// NormalizePlayer converts a single raw player into its display form
func NormalizePlayer(raw *models.RawPlayer) models.Player {
	return newNormalizer().player(raw)
}

// Listable reports whether a raw player entry belongs in a slate's player list
func Listable(raw *models.RawPlayer) bool {
	return raw != nil &&
		raw.OperatorPlayerName != "" &&
		!strings.Contains(raw.OperatorPlayerName, DefenseMarker)
}

// players filters and normalizes a slate's roster, keeping the source order
func (n *normalizer) players(raw []*models.RawPlayer) []models.Player {
	out := make([]models.Player, 0, len(raw))
	for _, rp := range raw {
		if !Listable(rp) {
			continue
		}
		out = append(out, n.player(rp))
	}
	return out
}

func (n *normalizer) player(raw *models.RawPlayer) models.Player {
	if raw == nil {
		raw = &models.RawPlayer{}
	}

	p := models.Player{
		Name:     orDefault(raw.OperatorPlayerName, UnknownPlayerName),
		Team:     orDefault(raw.Team, NotAvailable),
		Position: orDefault(raw.OperatorPosition, NotAvailable),
		Salary:   "$0",
		Points:   "0",
	}

	// Zero is treated the same as absent for every numeric field
	if raw.SlatePlayerID != 0 {
		p.ID = formatNumber(raw.SlatePlayerID)
	}
	if raw.OperatorSalary != 0 {
		p.Salary = "$" + n.printer.Sprintf("%v", number.Decimal(raw.OperatorSalary))
	}
	if raw.FantasyPoints != 0 {
		p.Points = formatNumber(raw.FantasyPoints)
	}

	return p
}

// formatNumber renders the shortest decimal form of f: 28.5 -> "28.5", 21 -> "21"
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
