package position

import (
	"github.com/lgbarn/varboard-go/internal/bitboard"
	"github.com/lgbarn/varboard-go/internal/types"
)

// Variant rule accessors, forwarded from the descriptor so callers do not
// reach through Variant() for the common queries.

// MaxFile returns the highest playable file of the variant's board.
func (p *Position) MaxFile() types.File { return p.variant.MaxFile }

// MaxRank returns the highest playable rank of the variant's board.
func (p *Position) MaxRank() types.Rank { return p.variant.MaxRank }

// BoardMask returns the playing-area mask of the variant's board.
func (p *Position) BoardMask() bitboard.Bitboard { return p.variant.BoardMask() }

// DoubleStepEnabled reports whether pawns may advance two squares from
// their start rank.
func (p *Position) DoubleStepEnabled() bool { return p.variant.DoubleStep }

// CastlingEnabled reports whether the variant has castling at all.
func (p *Position) CastlingEnabled() bool { return p.variant.Castling }

// CheckingPermitted reports whether giving check is a legal act.
func (p *Position) CheckingPermitted() bool { return p.variant.Checking }

// MustCapture reports whether capturing is compulsory when possible.
func (p *Position) MustCapture() bool { return p.variant.MustCapture }

// PieceDrops reports whether captured pieces enter the capturer's hand.
func (p *Position) PieceDrops() bool { return p.variant.PieceDrops }

// DropLoop reports whether promoted pieces keep their type in hand.
func (p *Position) DropLoop() bool { return p.variant.DropLoop }

// PromotionRank returns the relative rank on which pawns promote.
func (p *Position) PromotionRank() types.Rank { return p.variant.PromotionRank }

// PromotionPieceTypes returns the piece types a pawn may promote to.
func (p *Position) PromotionPieceTypes() []types.PieceType { return p.variant.PromotionPieceTypes }

// CaptureTheFlag returns the squares colour c must reach to win, empty
// when the variant has no flag rule.
func (p *Position) CaptureTheFlag(c types.Color) bitboard.Bitboard { return p.variant.Flag(c) }

// MaxCheckCount returns the winning check total, zero when disabled.
func (p *Position) MaxCheckCount() int { return p.variant.MaxCheckCount }

// StalemateValue returns the game value of being stalemated, from the
// stalemated side's point of view, with mate values scaled by ply.
func (p *Position) StalemateValue(ply int) types.Value {
	return scaleMate(p.variant.StalemateValue, ply)
}

// CheckmateValue returns the game value of being checkmated, from the
// mated side's point of view, with mate values scaled by ply.
func (p *Position) CheckmateValue(ply int) types.Value {
	return scaleMate(p.variant.CheckmateValue, ply)
}

// BareKingValue returns the game value of being reduced to a bare king,
// from the bared side's point of view, ValueNone when the rule is off.
func (p *Position) BareKingValue(ply int) types.Value {
	return scaleMate(p.variant.BareKingValue, ply)
}

// scaleMate converts a rule's nominal mate value into a ply-adjusted score
// so that earlier wins compare strictly higher.
func scaleMate(v types.Value, ply int) types.Value {
	switch v {
	case types.ValueMate:
		return types.MateIn(ply)
	case -types.ValueMate:
		return types.MatedIn(ply)
	default:
		return v
	}
}

// countAllPieces returns the total number of c's pieces on the board.
func (p *Position) countAllPieces(c types.Color) int {
	return p.pieceCount[types.MakePiece(c, types.AllPieces)]
}

// isBare reports whether colour c has nothing but its king left.
func (p *Position) isBare(c types.Color) bool {
	return p.countAllPieces(c) == 1 && p.Count(c, types.King) == 1
}

// IsVariantEnd checks the variant's immediate win and loss rules, in
// priority order: bare king, capture the flag, check count. It returns the
// game value from the side to move's point of view and whether any rule
// fired; checkmate and stalemate are not covered here since they require
// move generation.
func (p *Position) IsVariantEnd(ply int) (types.Value, bool) {
	us := p.sideToMove
	them := us.Opposite()
	v := p.variant

	if v.BareKingValue != types.ValueNone {
		usBare, themBare := p.isBare(us), p.isBare(them)
		switch {
		case usBare && themBare:
			return types.ValueDraw, true
		case themBare:
			return -scaleMate(v.BareKingValue, ply), true
		case usBare && !v.BareKingMove:
			// With the countermove rule the mover still gets one move,
			// which may bare the opponent in turn and draw.
			return scaleMate(v.BareKingValue, ply), true
		}
	}

	if v.Flag(them) != 0 || v.Flag(us) != 0 {
		themKsq, usKsq := p.KingSquare(them), p.KingSquare(us)
		themReached := themKsq != types.SquareNone && v.Flag(them).IsSet(themKsq)
		usReached := usKsq != types.SquareNone && v.Flag(us).IsSet(usKsq)
		switch {
		case v.FlagMove && themReached && usReached:
			return types.ValueDraw, true
		case v.FlagMove && usReached:
			// The opponent has had its countermove and failed to equalize.
			return types.MateIn(ply), true
		case !v.FlagMove && themReached:
			return types.MatedIn(ply), true
		case !v.FlagMove && usReached:
			return types.MateIn(ply), true
		}
	}

	if v.MaxCheckCount > 0 {
		if p.st.ChecksGiven[them] >= v.MaxCheckCount {
			return types.MatedIn(ply), true
		}
		if p.st.ChecksGiven[us] >= v.MaxCheckCount {
			return types.MateIn(ply), true
		}
	}

	return types.ValueNone, false
}
