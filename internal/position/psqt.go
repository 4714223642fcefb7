package position

import (
	"github.com/lgbarn/varboard-go/internal/types"
)

// Piece-square bonuses, white's point of view, indexed [pieceType][rank][file].
// Small centralization-shaped tables: the engine only needs a stable,
// incrementally maintainable accumulator, not a tuned evaluation.
var psqBonus = [types.PieceTypeNB][8][8]types.Score{}

func init() {
	center := [8]int{-3, -1, 0, 2, 2, 0, -1, -3}
	for pt := types.Pawn; pt <= types.King; pt++ {
		for r := 0; r < 8; r++ {
			for f := 0; f < 8; f++ {
				var mg, eg int
				switch pt {
				case types.Pawn:
					mg = 2 * center[f] * r
					eg = 4 * r
				case types.King:
					mg = -8*center[r] + 4*center[f]
					eg = 6 * (center[r] + center[f])
				default:
					mg = 5 * (center[r] + center[f])
					eg = 3 * (center[r] + center[f])
				}
				psqBonus[pt][r][f] = types.Score{MG: types.Value(mg), EG: types.Value(eg)}
			}
		}
	}
}

// psqValue returns the signed piece-square score of a coloured piece on s:
// positive contributions for White, mirrored and negated for Black.
func psqValue(pc types.Piece, s types.Square) types.Score {
	pt := pc.TypeOf()
	base := types.Score{MG: types.MidgameValue[pt], EG: types.EndgameValue[pt]}
	rel := types.RelativeSquare(pc.ColorOf(), s)
	score := base.Add(psqBonus[pt][rel.Rank()][rel.File()])
	if pc.ColorOf() == types.Black {
		return score.Neg()
	}
	return score
}
