package position

import (
	"github.com/lgbarn/varboard-go/internal/bitboard"
	"github.com/lgbarn/varboard-go/internal/errors"
	"github.com/lgbarn/varboard-go/internal/types"
)

// Validate cross-checks every redundant structure of the position: the
// square array against the bitmasks, the piece lists and counts against
// both, and the incrementally maintained state fields against a from-
// scratch recomputation. It returns an error wrapping
// ErrInconsistentPosition naming the first mismatch found.
//
// Intended for tests and debugging assertions; it allocates and is far too
// slow for the search path.
func (p *Position) Validate() error {
	wrap := func(format string, args ...interface{}) error {
		return errors.Wrapf(errors.ErrInconsistentPosition, format, args...)
	}

	// Square array versus occupancy masks.
	var all, white, black bitboard.Bitboard
	byType := [types.PieceTypeNB]bitboard.Bitboard{}
	for s := types.SquareA1; s < types.SquareNB; s++ {
		pc := p.board[s]
		if pc == types.NoPiece {
			if p.Pieces().IsSet(s) {
				return wrap("square %s: occupancy set but board empty", s)
			}
			continue
		}
		if pc.TypeOf() == types.AllPieces || pc.TypeOf() >= types.PieceTypeNB {
			return wrap("square %s: invalid piece %d", s, int(pc))
		}
		all |= bitboard.SquareBB(s)
		byType[pc.TypeOf()] |= bitboard.SquareBB(s)
		if pc.ColorOf() == types.White {
			white |= bitboard.SquareBB(s)
		} else {
			black |= bitboard.SquareBB(s)
		}
	}
	if all != p.Pieces() {
		return wrap("global occupancy mask disagrees with board array")
	}
	if white != p.byColorBB[types.White] || black != p.byColorBB[types.Black] {
		return wrap("colour occupancy masks disagree with board array")
	}
	for pt := types.Pawn; pt < types.PieceTypeNB; pt++ {
		if byType[pt] != p.byTypeBB[pt] {
			return wrap("occupancy mask for %s disagrees with board array", pt)
		}
	}
	if white&black != 0 {
		return wrap("colour masks overlap")
	}

	// Piece counts and lists.
	for c := types.White; c < types.ColorNB; c++ {
		total := 0
		for pt := types.Pawn; pt <= types.King; pt++ {
			pc := types.MakePiece(c, pt)
			n := p.pieceCount[pc]
			if n != p.PiecesCT(c, pt).PopCount() {
				return wrap("count of %v %s is %d, mask has %d",
					c, pt, n, p.PiecesCT(c, pt).PopCount())
			}
			total += n
			for i := 0; i < n; i++ {
				s := p.pieceList[pc][i]
				if !s.IsOK() || p.board[s] != pc {
					return wrap("piece list of %v %s entry %d points at %s", c, pt, i, s)
				}
				if p.index[s] != i {
					return wrap("square %s has index %d, list slot is %d", s, p.index[s], i)
				}
			}
		}
		if total != p.pieceCount[types.MakePiece(c, types.AllPieces)] {
			return wrap("aggregate piece count of %v is stale", c)
		}
	}

	// In-hand reserves.
	for c := types.White; c < types.ColorNB; c++ {
		total := 0
		for pt := types.Pawn; pt <= types.King; pt++ {
			n := p.pieceCountInHand[c][pt]
			if n < 0 {
				return wrap("negative in-hand count for %v %s", c, pt)
			}
			total += n
		}
		if total != p.pieceCountInHand[c][types.AllPieces] {
			return wrap("aggregate in-hand count of %v is stale", c)
		}
	}

	if p.promotedPieces&^p.Pieces() != 0 {
		return wrap("promotion marker on an empty square")
	}

	// Castling bookkeeping.
	for _, cr := range []types.CastlingRight{
		types.WhiteOO, types.WhiteOOO, types.BlackOO, types.BlackOOO,
	} {
		if p.st.CastlingRights&cr == 0 {
			continue
		}
		c := types.White
		if cr&(types.BlackOO|types.BlackOOO) != 0 {
			c = types.Black
		}
		rsq := p.castlingRookSquare[cr]
		if p.board[rsq] != types.MakePiece(c, types.Rook) {
			return wrap("castling right %v: no rook on %s", cr, rsq)
		}
		ksq := p.KingSquare(c)
		if ksq == types.SquareNone {
			return wrap("castling right %v without a king", cr)
		}
		if p.castlingRightsMask[ksq]&cr == 0 || p.castlingRightsMask[rsq]&cr == 0 {
			return wrap("castling right %v not covered by revocation masks", cr)
		}
	}

	if ep := p.st.EPSquare; ep != types.SquareNone {
		if !ep.IsOK() || !p.IsEmpty(ep) {
			return wrap("en-passant square %s is not an empty board square", ep)
		}
	}

	// Incremental state versus a from-scratch recomputation.
	var fresh StateInfo
	fresh.EPSquare = p.st.EPSquare
	fresh.CastlingRights = p.st.CastlingRights
	p.setState(&fresh)

	if fresh.Key != p.st.Key {
		return wrap("position key is stale: have %016x, recomputed %016x",
			uint64(p.st.Key), uint64(fresh.Key))
	}
	if fresh.PawnKey != p.st.PawnKey {
		return wrap("pawn key is stale")
	}
	if fresh.MaterialKey != p.st.MaterialKey {
		return wrap("material key is stale")
	}
	if fresh.NonPawnMaterial != p.st.NonPawnMaterial {
		return wrap("non-pawn material is stale")
	}
	if fresh.PSQ != p.st.PSQ {
		return wrap("piece-square accumulator is stale")
	}
	if fresh.CheckersBB != p.st.CheckersBB {
		return wrap("checkers mask is stale")
	}
	return nil
}
