package vocab

import "partsearch/internal/model"

// positionIndicators maps each canonical Position to its multilingual
// indicator phrases (spec §4.1, §3).
var positionIndicators = map[model.Position][]string{
	model.PositionFront:     {"front", "dianteiro", "dianteira", "delantero"},
	model.PositionRear:      {"rear", "traseiro", "traseira", "trasero"},
	model.PositionLeft:      {"left", "esquerdo", "esquerda", "izquierdo"},
	model.PositionRight:     {"right", "direito", "direita", "derecho"},
	model.PositionUpper:     {"upper", "superior"},
	model.PositionLower:     {"lower", "inferior"},
	model.PositionInner:     {"inner", "interno", "interna"},
	model.PositionOuter:     {"outer", "externo", "externa"},
	model.PositionDriver:    {"driver side", "lado do motorista"},
	model.PositionPassenger: {"passenger side", "lado do passageiro"},
}

// Positions is the closed installation-position vocabulary, in
// canonical iteration order.
var Positions = []model.Position{
	model.PositionFront, model.PositionRear, model.PositionLeft,
	model.PositionRight, model.PositionUpper, model.PositionLower,
	model.PositionInner, model.PositionOuter, model.PositionDriver,
	model.PositionPassenger,
}

// MatchPositions returns every canonical Position whose indicator phrase
// appears in normalized text, preserving the iteration order of the
// canonical set.
func MatchPositions(normalized string) []model.Position {
	var out []model.Position
	for _, p := range Positions {
		for _, ind := range positionIndicators[p] {
			if containsWord(normalized, ind) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// IsPosition reports whether p is a member of the closed position
// vocabulary.
func IsPosition(p model.Position) bool {
	for _, known := range Positions {
		if known == p {
			return true
		}
	}
	return false
}
