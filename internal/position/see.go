package position

import (
	"github.com/lgbarn/varboard-go/internal/bitboard"
	"github.com/lgbarn/varboard-go/internal/types"
)

// SeeGe reports whether the static exchange evaluation of m meets the
// threshold: the material balance after the best sequence of recaptures on
// the destination square, from the mover's point of view, is at least
// threshold. Only normal moves are evaluated; castling, promotions,
// en-passant and drops conservatively compare zero against the threshold.
func (p *Position) SeeGe(m types.Move, threshold types.Value) bool {
	if m.Kind() != types.Normal {
		return types.ValueZero >= threshold
	}

	from, to := m.From(), m.To()

	swap := types.PieceValueMg(p.board[to]) - threshold
	if swap < 0 {
		return false
	}

	swap = types.PieceValueMg(p.board[from]) - swap
	if swap <= 0 {
		return true
	}

	occupied := p.Pieces() ^ bitboard.SquareBB(from) ^ bitboard.SquareBB(to)
	stm := p.board[from].ColorOf()
	attackers := p.AttackersToOcc(to, occupied)

	// res flips with each capture in the sequence; the side that runs out
	// of profitable recaptures loses the exchange.
	res := types.Value(1)

	for {
		stm = stm.Opposite()
		attackers &= occupied

		stmAttackers := attackers & p.byColorBB[stm]
		if stmAttackers == 0 {
			break
		}

		// Pinned pieces may not recapture while their pinners are still on
		// the board.
		if p.st.Pinners[stm.Opposite()]&occupied != 0 {
			stmAttackers &^= p.st.BlockersForKing[stm]
		}
		if stmAttackers == 0 {
			break
		}
		res ^= 1

		// Capture with the least valuable attacker, uncovering x-ray
		// attackers behind it.
		if bb := stmAttackers & p.byTypeBB[types.Pawn]; bb != 0 {
			if swap = types.MidgameValue[types.Pawn] - swap; swap < res {
				break
			}
			occupied ^= bitboard.SquareBB(bb.LSB())
			attackers |= bitboard.BishopAttacks(to, occupied) & p.PiecesTT(types.Bishop, types.Queen)
		} else if bb = stmAttackers & p.byTypeBB[types.Knight]; bb != 0 {
			if swap = types.MidgameValue[types.Knight] - swap; swap < res {
				break
			}
			occupied ^= bitboard.SquareBB(bb.LSB())
		} else if bb = stmAttackers & p.byTypeBB[types.Bishop]; bb != 0 {
			if swap = types.MidgameValue[types.Bishop] - swap; swap < res {
				break
			}
			occupied ^= bitboard.SquareBB(bb.LSB())
			attackers |= bitboard.BishopAttacks(to, occupied) & p.PiecesTT(types.Bishop, types.Queen)
		} else if bb = stmAttackers & p.byTypeBB[types.Rook]; bb != 0 {
			if swap = types.MidgameValue[types.Rook] - swap; swap < res {
				break
			}
			occupied ^= bitboard.SquareBB(bb.LSB())
			attackers |= bitboard.RookAttacks(to, occupied) & p.PiecesTT(types.Rook, types.Queen)
		} else if bb = stmAttackers & p.byTypeBB[types.Queen]; bb != 0 {
			if swap = types.MidgameValue[types.Queen] - swap; swap < res {
				break
			}
			occupied ^= bitboard.SquareBB(bb.LSB())
			attackers |= bitboard.BishopAttacks(to, occupied)&p.PiecesTT(types.Bishop, types.Queen) |
				bitboard.RookAttacks(to, occupied)&p.PiecesTT(types.Rook, types.Queen)
		} else {
			// King capture: legal only if the opponent has no attackers
			// left, otherwise the result flips back to the previous capture.
			if attackers&^p.byColorBB[stm] != 0 {
				res ^= 1
			}
			return res != 0
		}
	}
	return res != 0
}
