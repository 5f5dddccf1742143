package slates

import (
	"github.com/XavierBriggs/fortuna/services/slate-dashboard/pkg/models"
)

type gameTypeKey struct {
	operator string
	gameType string
}

type slateKey struct {
	operator  string
	gameType  string
	slateName string
}

// Index is the operator -> game type -> slate -> players lookup behind the
// dashboard's cascading filters. It is immutable once built and safe for
// concurrent readers.
type Index struct {
	operators  []string
	gameTypes  map[string][]string
	slateNames map[gameTypeKey][]string
	players    map[slateKey][]models.Player
}

// BuildIndex derives the filter index from the raw slate records.
//
// Each level keeps the first-seen order of its keys without duplicates. A
// record only contributes to the levels whose fields it carries, so a record
// with an operator but no game type still lists the operator. When several
// records share the same operator, game type and slate name, the roster of
// the first one wins.
func BuildIndex(raw []*models.RawSlate) *Index {
	idx := &Index{
		operators:  []string{},
		gameTypes:  make(map[string][]string),
		slateNames: make(map[gameTypeKey][]string),
		players:    make(map[slateKey][]models.Player),
	}

	n := newNormalizer()
	for _, rec := range raw {
		if rec == nil || rec.Operator == "" {
			continue
		}

		gameTypes, seen := idx.gameTypes[rec.Operator]
		if !seen {
			idx.operators = append(idx.operators, rec.Operator)
			gameTypes = []string{}
		}

		if rec.OperatorGameType == "" {
			idx.gameTypes[rec.Operator] = gameTypes
			continue
		}

		gtKey := gameTypeKey{rec.Operator, rec.OperatorGameType}
		slateNames, seen := idx.slateNames[gtKey]
		if !seen {
			gameTypes = append(gameTypes, rec.OperatorGameType)
			slateNames = []string{}
		}
		idx.gameTypes[rec.Operator] = gameTypes

		if rec.OperatorName == "" {
			idx.slateNames[gtKey] = slateNames
			continue
		}

		sKey := slateKey{rec.Operator, rec.OperatorGameType, rec.OperatorName}
		if _, seen := idx.players[sKey]; !seen {
			slateNames = append(slateNames, rec.OperatorName)
			idx.players[sKey] = n.players(rec.DfsSlatePlayers)
		}
		idx.slateNames[gtKey] = slateNames
	}

	return idx
}

// Operators returns every operator in first-seen order
func (idx *Index) Operators() []string {
	return cloneStrings(idx.operators)
}

// GameTypes returns the game types offered by an operator, or an empty list
// when the operator is unknown
func (idx *Index) GameTypes(operator string) []string {
	return cloneStrings(idx.gameTypes[operator])
}

// SlateNames returns the slates of an operator's game type, or an empty list
// when either key is unknown
func (idx *Index) SlateNames(operator, gameType string) []string {
	return cloneStrings(idx.slateNames[gameTypeKey{operator, gameType}])
}

// Players returns the listable roster of a slate, or an empty list when any
// key is unknown
func (idx *Index) Players(operator, gameType, slateName string) []models.Player {
	src := idx.players[slateKey{operator, gameType, slateName}]
	out := make([]models.Player, len(src))
	copy(out, src)
	return out
}

// Player finds a player by id within one slate
func (idx *Index) Player(operator, gameType, slateName, id string) (models.Player, bool) {
	if id == "" {
		return models.Player{}, false
	}
	for _, p := range idx.players[slateKey{operator, gameType, slateName}] {
		if p.ID == id {
			return p, true
		}
	}
	return models.Player{}, false
}

// HasOperator reports whether operator is a known operator
func (idx *Index) HasOperator(operator string) bool {
	_, ok := idx.gameTypes[operator]
	return ok && operator != ""
}

// HasGameType reports whether gameType is offered by operator
func (idx *Index) HasGameType(operator, gameType string) bool {
	_, ok := idx.slateNames[gameTypeKey{operator, gameType}]
	return ok && gameType != ""
}

// HasSlate reports whether slateName exists for the operator's game type
func (idx *Index) HasSlate(operator, gameType, slateName string) bool {
	_, ok := idx.players[slateKey{operator, gameType, slateName}]
	return ok && slateName != ""
}

// Tree returns the whole filter hierarchy with roster sizes
func (idx *Index) Tree() []models.OperatorSummary {
	tree := make([]models.OperatorSummary, 0, len(idx.operators))
	for _, op := range idx.operators {
		opNode := models.OperatorSummary{Name: op, GameTypes: []models.GameTypeSummary{}}
		for _, gt := range idx.gameTypes[op] {
			gtNode := models.GameTypeSummary{Name: gt, Slates: []models.SlateSummary{}}
			for _, slate := range idx.slateNames[gameTypeKey{op, gt}] {
				gtNode.Slates = append(gtNode.Slates, models.SlateSummary{
					Name:        slate,
					PlayerCount: len(idx.players[slateKey{op, gt, slate}]),
				})
			}
			opNode.GameTypes = append(opNode.GameTypes, gtNode)
		}
		tree = append(tree, opNode)
	}
	return tree
}

func cloneStrings(src []string) []string {
	out := make([]string, len(src))
	copy(out, src)
	return out
}
