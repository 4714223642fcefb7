package position

import (
	"github.com/lgbarn/varboard-go/internal/bitboard"
	"github.com/lgbarn/varboard-go/internal/hashing"
	"github.com/lgbarn/varboard-go/internal/types"
	"github.com/lgbarn/varboard-go/internal/variant"
)

// pawnPush returns the square delta of a single pawn advance for a colour.
func pawnPush(c types.Color) types.Square {
	if c == types.White {
		return 8
	}
	return -8
}

// MovedPiece returns the piece that m moves: the piece on the origin
// square, or the held piece for drops.
func (p *Position) MovedPiece(m types.Move) types.Piece {
	if m.Kind() == types.DropMove {
		return types.MakePiece(p.sideToMove, m.DropType())
	}
	return p.board[m.From()]
}

// Capture reports whether m captures a piece. Castling is encoded as
// "king captures rook" and is not a capture.
func (p *Position) Capture(m types.Move) bool {
	if m.Kind() == types.CastlingMove || m.Kind() == types.DropMove {
		return false
	}
	return !p.IsEmpty(m.To()) || m.Kind() == types.EnPassantMove
}

// CaptureOrPromotion reports whether m is a capture or a promotion.
func (p *Position) CaptureOrPromotion(m types.Move) bool {
	if m.Kind() != types.Normal {
		return m.Kind() != types.DropMove && m.Kind() != types.CastlingMove
	}
	return !p.IsEmpty(m.To())
}

// AdvancedPawnPush reports whether m pushes a pawn beyond the middle of
// the board from the mover's point of view.
func (p *Position) AdvancedPawnPush(m types.Move) bool {
	return p.MovedPiece(m).TypeOf() == types.Pawn &&
		types.RelativeRank(p.sideToMove, m.From().Rank()) > types.Rank4
}

// PawnPassed reports whether a pawn of colour c on s has no enemy pawn in
// front of it on its own or an adjacent file.
func (p *Position) PawnPassed(c types.Color, s types.Square) bool {
	return p.PiecesCT(c.Opposite(), types.Pawn)&bitboard.PassedPawnMask(c, s) == 0
}

// OppositeBishops reports whether each side has exactly one bishop and
// they stand on opposite-coloured squares.
func (p *Position) OppositeBishops() bool {
	return p.Count(types.White, types.Bishop) == 1 &&
		p.Count(types.Black, types.Bishop) == 1 &&
		types.OppositeColors(p.Squares(types.White, types.Bishop)[0],
			p.Squares(types.Black, types.Bishop)[0])
}

// GivesCheck reports whether the pseudo-legal move m gives check, derived
// from the pre-move check-square masks so it costs O(1) for normal moves.
func (p *Position) GivesCheck(m types.Move) bool {
	us := p.sideToMove
	them := us.Opposite()
	ksq := p.KingSquare(them)
	if ksq == types.SquareNone {
		return false
	}
	from, to := m.From(), m.To()

	// Direct check.
	if p.st.CheckSquares[p.MovedPiece(m).TypeOf()].IsSet(to) {
		return true
	}

	if m.Kind() == types.DropMove {
		return false
	}

	// Discovered check.
	if p.st.BlockersForKing[them].IsSet(from) && !bitboard.Aligned(from, to, ksq) {
		return true
	}

	switch m.Kind() {
	case types.PromotionMove:
		attacks := bitboard.AttacksBB(us, m.PromotionType(), to,
			p.Pieces()^bitboard.SquareBB(from))
		return attacks.IsSet(ksq)

	case types.EnPassantMove:
		capsq := types.MakeSquare(to.File(), from.Rank())
		occupied := p.Pieces() ^ bitboard.SquareBB(from) ^ bitboard.SquareBB(capsq) |
			bitboard.SquareBB(to)
		return bitboard.RookAttacks(ksq, occupied)&p.PiecesCTT(us, types.Queen, types.Rook) != 0 ||
			bitboard.BishopAttacks(ksq, occupied)&p.PiecesCTT(us, types.Queen, types.Bishop) != 0

	case types.CastlingMove:
		kfrom, rfrom := from, to
		kto := types.RelativeSquare(us, types.SquareC1)
		rto := types.RelativeSquare(us, types.SquareD1)
		if rfrom > kfrom {
			kto = types.RelativeSquare(us, types.SquareG1)
			rto = types.RelativeSquare(us, types.SquareF1)
		}
		if !bitboard.PseudoAttacks(types.Rook, rto).IsSet(ksq) {
			return false
		}
		occupied := p.Pieces() ^ bitboard.SquareBB(kfrom) ^ bitboard.SquareBB(rfrom) |
			bitboard.SquareBB(rto) | bitboard.SquareBB(kto)
		return bitboard.RookAttacks(rto, occupied).IsSet(ksq)
	}
	return false
}

// Legal reports whether the pseudo-legal move m does not leave the mover's
// king attacked, and respects the variant's no-checking rule when set.
func (p *Position) Legal(m types.Move) bool {
	us := p.sideToMove
	from, to := m.From(), m.To()
	ksq := p.KingSquare(us)

	if !p.variant.Checking && p.GivesCheck(m) {
		return false
	}
	if ksq == types.SquareNone || m.Kind() == types.DropMove {
		// Nothing leaves the board, so no discovered exposure is possible.
		return true
	}

	switch m.Kind() {
	case types.EnPassantMove:
		capsq := to - pawnPush(us)
		occupied := p.Pieces() ^ bitboard.SquareBB(from) ^ bitboard.SquareBB(capsq) |
			bitboard.SquareBB(to)
		them := us.Opposite()
		return bitboard.RookAttacks(ksq, occupied)&p.PiecesCTT(them, types.Queen, types.Rook) == 0 &&
			bitboard.BishopAttacks(ksq, occupied)&p.PiecesCTT(them, types.Queen, types.Bishop) == 0

	case types.CastlingMove:
		// The king must not pass through or land on an attacked square.
		// The walk runs from the king's destination back to its origin,
		// which may lie on either side in Chess960.
		kto := types.RelativeSquare(us, types.SquareC1)
		if to > from {
			kto = types.RelativeSquare(us, types.SquareG1)
		}
		step := types.Square(1)
		if kto > from {
			step = -1
		}
		for s := kto; s != from; s += step {
			if p.AttackersTo(s)&p.byColorBB[us.Opposite()] != 0 {
				return false
			}
		}
		// In Chess960 the moving rook may have been shielding the king.
		return !p.chess960 || !p.st.BlockersForKing[us].IsSet(to)
	}

	if p.board[from].TypeOf() == types.King {
		return p.AttackersToOcc(to, p.Pieces()^bitboard.SquareBB(from))&
			p.byColorBB[us.Opposite()] == 0
	}

	// Non-king movers must not be pinned, or must stay on the pin line.
	return !p.st.BlockersForKing[us].IsSet(from) || bitboard.Aligned(from, to, ksq)
}

// KeyAfter predicts the position key after m without applying it. Only
// normal moves, captures and drops are supported, which is what the
// transposition-table prefetch path needs.
func (p *Position) KeyAfter(m types.Move) types.Key {
	k := p.st.Key ^ hashing.Side
	to := m.To()

	if m.Kind() == types.DropMove {
		pc := types.MakePiece(p.sideToMove, m.DropType())
		n := p.pieceCountInHand[p.sideToMove][m.DropType()]
		return k ^ hashing.Piece[pc][to] ^ hashing.InHand[pc][n] ^ hashing.InHand[pc][n-1]
	}

	from := m.From()
	pc := p.board[from]
	if captured := p.board[to]; captured != types.NoPiece {
		k ^= hashing.Piece[captured][to]
		if p.variant.PieceDrops {
			pt := handPieceType(p.variant, captured.TypeOf(), p.IsPromoted(to))
			hpc := types.MakePiece(p.sideToMove, pt)
			n := p.pieceCountInHand[p.sideToMove][pt]
			k ^= hashing.InHand[hpc][n] ^ hashing.InHand[hpc][n+1]
		}
	}
	return k ^ hashing.Piece[pc][from] ^ hashing.Piece[pc][to]
}

// handPieceType returns the type a captured piece takes when it enters the
// capturer's hand: promoted pieces demote to pawns unless the variant
// loops them back at their promoted type.
func handPieceType(v *variant.Variant, captured types.PieceType, promoted bool) types.PieceType {
	if promoted && !v.DropLoop {
		return types.Pawn
	}
	return captured
}

// doCastling moves the king to its castling destination and the rook to
// its final square in one atomic step, in either direction. The move is
// encoded as "king captures rook", so from is the king's square and to the
// rook's. It returns the king's destination and the rook's home and
// destination squares.
func (p *Position) doCastling(do bool, us types.Color, from, to types.Square) (kto, rfrom, rto types.Square) {
	kingSide := to > from
	rfrom = to
	if kingSide {
		rto = types.RelativeSquare(us, types.SquareF1)
		kto = types.RelativeSquare(us, types.SquareG1)
	} else {
		rto = types.RelativeSquare(us, types.SquareD1)
		kto = types.RelativeSquare(us, types.SquareC1)
	}
	king := types.MakePiece(us, types.King)
	rook := types.MakePiece(us, types.Rook)

	// Remove both pieces first: source and destination squares can overlap
	// in Chess960.
	if do {
		p.removePiece(king, from)
		p.removePiece(rook, rfrom)
		p.board[from], p.board[rfrom] = types.NoPiece, types.NoPiece
		p.putPiece(king, kto)
		p.putPiece(rook, rto)
	} else {
		p.removePiece(king, kto)
		p.removePiece(rook, rto)
		p.board[kto], p.board[rto] = types.NoPiece, types.NoPiece
		p.putPiece(king, from)
		p.putPiece(rook, rfrom)
	}
	return kto, rfrom, rto
}

// DoMove applies a pseudo-legal move, deriving givesCheck itself.
func (p *Position) DoMove(m types.Move, newSt *StateInfo) {
	p.DoMoveGC(m, newSt, p.GivesCheck(m))
}

// DoMoveGC applies a pseudo-legal move m, linking newSt into the state
// chain. newSt must be distinct from the current state and is owned by the
// caller. givesCheck may be supplied precomputed by the move generator.
//
// The board, bitmasks, piece lists, hash keys, castling rights, en-passant
// square, counters and side to move are all updated; UndoMove restores
// every one of them except piece-list ordering.
func (p *Position) DoMoveGC(m types.Move, newSt *StateInfo, givesCheck bool) {
	k := p.st.Key ^ hashing.Side

	newSt.copyFrom(p.st)
	newSt.Previous = p.st
	newSt.CapturedPromoted = false
	p.st = newSt
	st := newSt

	p.gamePly++
	st.Rule50++
	st.PliesFromNull++

	us := p.sideToMove
	them := us.Opposite()
	from, to := m.From(), m.To()
	pc := p.MovedPiece(m)

	var captured types.Piece
	switch m.Kind() {
	case types.EnPassantMove:
		captured = types.MakePiece(them, types.Pawn)
	case types.CastlingMove, types.DropMove:
		captured = types.NoPiece
	default:
		captured = p.board[to]
	}

	if m.Kind() == types.CastlingMove {
		rook := types.MakePiece(us, types.Rook)
		var rfrom, rto types.Square
		to, rfrom, rto = p.doCastling(true, us, from, to)
		st.PSQ = st.PSQ.Add(psqValue(rook, rto)).Sub(psqValue(rook, rfrom))
		k ^= hashing.Piece[rook][rfrom] ^ hashing.Piece[rook][rto]
	}

	if captured != types.NoPiece {
		capsq := to
		if captured.TypeOf() == types.Pawn {
			if m.Kind() == types.EnPassantMove {
				capsq -= pawnPush(us)
			}
			st.PawnKey ^= hashing.Piece[captured][capsq]
		} else {
			st.NonPawnMaterial[them] -= types.PieceValueMg(captured)
		}

		p.removePiece(captured, capsq)
		if m.Kind() == types.EnPassantMove {
			p.board[capsq] = types.NoPiece
		}
		k ^= hashing.Piece[captured][capsq]
		st.MaterialKey ^= hashing.Piece[captured][p.pieceCount[captured]]
		st.PSQ = st.PSQ.Sub(psqValue(captured, capsq))
		st.Rule50 = 0

		if p.variant.PieceDrops {
			st.CapturedPromoted = p.promotedPieces.IsSet(capsq)
			pt := handPieceType(p.variant, captured.TypeOf(), st.CapturedPromoted)
			hpc := types.MakePiece(us, pt)
			p.addToHand(us, pt)
			n := p.pieceCountInHand[us][pt]
			k ^= hashing.InHand[hpc][n-1] ^ hashing.InHand[hpc][n]
		}
		p.promotedPieces &^= bitboard.SquareBB(capsq)
	}

	// Hash the moving piece and update castling rights.
	if m.Kind() == types.DropMove {
		n := p.pieceCountInHand[us][pc.TypeOf()]
		k ^= hashing.Piece[pc][to] ^ hashing.InHand[pc][n] ^ hashing.InHand[pc][n-1]
	} else {
		k ^= hashing.Piece[pc][from] ^ hashing.Piece[pc][to]

		if st.CastlingRights != types.NoCastling {
			if cr := p.castlingRightsMask[from] | p.castlingRightsMask[to]; cr&st.CastlingRights != 0 {
				k ^= hashing.Castling[st.CastlingRights&cr]
				st.CastlingRights &^= cr
			}
		}
	}

	// Reset the en-passant square.
	if st.EPSquare != types.SquareNone {
		k ^= hashing.EnPassant[st.EPSquare.File()]
		st.EPSquare = types.SquareNone
	}

	// Move the piece. Castling was handled above.
	switch m.Kind() {
	case types.CastlingMove:
	case types.DropMove:
		p.dropPiece(pc, to)
		st.MaterialKey ^= hashing.Piece[pc][p.pieceCount[pc]-1]
		if pc.TypeOf() == types.Pawn {
			st.PawnKey ^= hashing.Piece[pc][to]
		} else {
			st.NonPawnMaterial[us] += types.PieceValueMg(pc)
		}
		st.Rule50 = 0
	default:
		if p.promotedPieces.IsSet(from) {
			p.promotedPieces ^= bitboard.SquareBB(from) | bitboard.SquareBB(to)
		}
		p.movePiece(pc, from, to)
	}

	if pc.TypeOf() == types.Pawn && m.Kind() != types.DropMove {
		if to^from == 16 && p.variant.DoubleStep &&
			bitboard.PawnAttacks(us, to-pawnPush(us))&p.PiecesCT(them, types.Pawn) != 0 {
			// Set the en-passant square only if the opponent can capture.
			st.EPSquare = to - pawnPush(us)
			k ^= hashing.EnPassant[st.EPSquare.File()]
		} else if m.Kind() == types.PromotionMove {
			promotion := types.MakePiece(us, m.PromotionType())
			p.removePiece(pc, to)
			p.putPiece(promotion, to)
			p.promotedPieces |= bitboard.SquareBB(to)

			k ^= hashing.Piece[pc][to] ^ hashing.Piece[promotion][to]
			st.PawnKey ^= hashing.Piece[pc][to]
			st.MaterialKey ^= hashing.Piece[promotion][p.pieceCount[promotion]-1] ^
				hashing.Piece[pc][p.pieceCount[pc]]
			st.PSQ = st.PSQ.Add(psqValue(promotion, to)).Sub(psqValue(pc, to))
			st.NonPawnMaterial[us] += types.PieceValueMg(promotion)
		}
		st.PawnKey ^= hashing.Piece[pc][from] ^ hashing.Piece[pc][to]
		st.Rule50 = 0
	}

	if m.Kind() == types.DropMove {
		st.PSQ = st.PSQ.Add(psqValue(pc, to))
	} else {
		st.PSQ = st.PSQ.Add(psqValue(pc, to)).Sub(psqValue(pc, from))
	}

	st.CapturedPiece = captured
	st.Key = k

	st.CheckersBB = 0
	if givesCheck {
		if ksq := p.KingSquare(them); ksq != types.SquareNone {
			st.CheckersBB = p.AttackersTo(ksq) & p.byColorBB[us]
		}
		if p.variant.MaxCheckCount > 0 {
			st.ChecksGiven[us]++
		}
	}

	p.sideToMove = them
	p.setCheckInfo(st)
}

// UndoMove retracts the last applied move, restoring the board and all
// counters to their pre-move values bit-for-bit, except for the documented
// piece-list reordering. The state chain head pops to the previous
// snapshot; the discarded snapshot's fields are not reconstructed.
func (p *Position) UndoMove(m types.Move) {
	p.sideToMove = p.sideToMove.Opposite()
	us := p.sideToMove
	from, to := m.From(), m.To()
	pc := p.board[to]

	if m.Kind() == types.PromotionMove {
		p.removePiece(pc, to)
		pc = types.MakePiece(us, types.Pawn)
		p.putPiece(pc, to)
		p.promotedPieces &^= bitboard.SquareBB(to)
	}

	switch m.Kind() {
	case types.CastlingMove:
		p.doCastling(false, us, from, to)
	case types.DropMove:
		p.undropPiece(pc, to)
	default:
		if p.promotedPieces.IsSet(to) {
			p.promotedPieces ^= bitboard.SquareBB(from) | bitboard.SquareBB(to)
		}
		p.movePiece(pc, to, from)
	}

	if m.Kind() != types.CastlingMove && m.Kind() != types.DropMove &&
		p.st.CapturedPiece != types.NoPiece {
		capsq := to
		if m.Kind() == types.EnPassantMove {
			capsq -= pawnPush(us)
		}
		p.putPiece(p.st.CapturedPiece, capsq)
		if p.variant.PieceDrops {
			pt := handPieceType(p.variant, p.st.CapturedPiece.TypeOf(), p.st.CapturedPromoted)
			p.removeFromHand(us, pt)
			if p.st.CapturedPromoted {
				p.promotedPieces |= bitboard.SquareBB(capsq)
			}
		}
	}

	p.st = p.st.Previous
	p.gamePly--
}

// DoNullMove flips the side to move without touching the board. Used by
// the search for null-move pruning. The mover must not be in check.
func (p *Position) DoNullMove(newSt *StateInfo) {
	*newSt = *p.st
	newSt.Previous = p.st
	p.st = newSt

	if p.st.EPSquare != types.SquareNone {
		p.st.Key ^= hashing.EnPassant[p.st.EPSquare.File()]
		p.st.EPSquare = types.SquareNone
	}
	p.st.Key ^= hashing.Side
	p.st.Rule50++
	p.st.PliesFromNull = 0

	p.sideToMove = p.sideToMove.Opposite()
	p.setCheckInfo(p.st)
}

// UndoNullMove retracts a null move.
func (p *Position) UndoNullMove() {
	p.st = p.st.Previous
	p.sideToMove = p.sideToMove.Opposite()
}
