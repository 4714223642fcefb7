package position

import (
	"github.com/lgbarn/varboard-go/internal/bitboard"
	"github.com/lgbarn/varboard-go/internal/hashing"
	"github.com/lgbarn/varboard-go/internal/types"
)

// StateInfo is one ply's snapshot of derived state. It is written once by
// the move that produces it and never mutated afterwards; undo simply pops
// the chain head back to the previous snapshot.
type StateInfo struct {
	// Copied from the previous state when a move is made.
	PawnKey         types.Key
	MaterialKey     types.Key
	NonPawnMaterial [types.ColorNB]types.Value
	CastlingRights  types.CastlingRight
	Rule50          int
	PliesFromNull   int
	ChecksGiven     [types.ColorNB]int
	PSQ             types.Score
	EPSquare        types.Square

	// Recomputed after the move is applied; never copied.
	Key              types.Key
	CheckersBB       bitboard.Bitboard
	CapturedPiece    types.Piece
	CapturedPromoted bool
	BlockersForKing  [types.ColorNB]bitboard.Bitboard
	Pinners          [types.ColorNB]bitboard.Bitboard
	CheckSquares     [types.PieceTypeNB]bitboard.Bitboard
	Previous         *StateInfo
}

// copyFrom copies the memberwise-copied fields from a predecessor snapshot.
func (si *StateInfo) copyFrom(prev *StateInfo) {
	si.PawnKey = prev.PawnKey
	si.MaterialKey = prev.MaterialKey
	si.NonPawnMaterial = prev.NonPawnMaterial
	si.CastlingRights = prev.CastlingRights
	si.Rule50 = prev.Rule50
	si.PliesFromNull = prev.PliesFromNull
	si.ChecksGiven = prev.ChecksGiven
	si.PSQ = prev.PSQ
	si.EPSquare = prev.EPSquare
}

const stateChunkSize = 64

// StateList is the storage backing a state chain. It appends in O(1) and
// never relocates existing elements on growth, so StateInfo pointers held
// by a Position stay valid for the list's lifetime.
type StateList struct {
	chunks []*[stateChunkSize]StateInfo
	used   int
}

// NewStateList returns an empty list with one pre-allocated chunk.
func NewStateList() *StateList {
	return &StateList{chunks: []*[stateChunkSize]StateInfo{new([stateChunkSize]StateInfo)}}
}

// Push appends a zeroed StateInfo and returns its stable address.
func (l *StateList) Push() *StateInfo {
	chunk := l.used / stateChunkSize
	if chunk == len(l.chunks) {
		l.chunks = append(l.chunks, new([stateChunkSize]StateInfo))
	}
	si := &l.chunks[chunk][l.used%stateChunkSize]
	*si = StateInfo{}
	l.used++
	return si
}

// Pop releases the most recently pushed StateInfo.
func (l *StateList) Pop() {
	if l.used > 0 {
		l.used--
	}
}

// Len returns the number of live elements.
func (l *StateList) Len() int {
	return l.used
}

// AttackersTo returns all pieces of both colours attacking s under the
// current occupancy.
func (p *Position) AttackersTo(s types.Square) bitboard.Bitboard {
	return p.AttackersToOcc(s, p.byTypeBB[types.AllPieces])
}

// AttackersToOcc returns all pieces attacking s given an explicit occupancy
// mask, which lets callers probe hypothetical boards without mutating the
// position.
func (p *Position) AttackersToOcc(s types.Square, occupied bitboard.Bitboard) bitboard.Bitboard {
	return bitboard.PawnAttacks(types.Black, s)&p.PiecesCT(types.White, types.Pawn) |
		bitboard.PawnAttacks(types.White, s)&p.PiecesCT(types.Black, types.Pawn) |
		bitboard.KnightAttacks(s)&p.byTypeBB[types.Knight] |
		bitboard.RookAttacks(s, occupied)&p.PiecesTT(types.Rook, types.Queen) |
		bitboard.BishopAttacks(s, occupied)&p.PiecesTT(types.Bishop, types.Queen) |
		bitboard.KingAttacks(s)&p.byTypeBB[types.King]
}

// AttacksFrom returns the attack set of a piece of colour c and type pt
// standing on s, under the current occupancy.
func (p *Position) AttacksFrom(c types.Color, pt types.PieceType, s types.Square) bitboard.Bitboard {
	return bitboard.AttacksBB(c, pt, s, p.byTypeBB[types.AllPieces])
}

// SliderBlockers computes, for the given set of potential sliding
// attackers, the pieces (of either colour) that are the sole occupant of a
// ray between a slider and square s. It also returns the subset of sliders
// that pin a piece of the same colour as the one on s.
func (p *Position) SliderBlockers(sliders bitboard.Bitboard, s types.Square) (blockers, pinners bitboard.Bitboard) {
	snipers := (bitboard.PseudoAttacks(types.Rook, s)&p.PiecesTT(types.Queen, types.Rook) |
		bitboard.PseudoAttacks(types.Bishop, s)&p.PiecesTT(types.Queen, types.Bishop)) & sliders

	for snipers != 0 {
		sniperSq := snipers.PopLSB()
		b := bitboard.Between(s, sniperSq) & p.byTypeBB[types.AllPieces]
		if b != 0 && !b.MoreThanOne() {
			blockers |= b
			if p.board[s] != types.NoPiece && b&p.byColorBB[p.board[s].ColorOf()] != 0 {
				pinners |= bitboard.SquareBB(sniperSq)
			}
		}
	}
	return blockers, pinners
}

// setCheckInfo recomputes the per-ply check machinery: blocker/pinner sets
// for both kings and the squares from which each piece type would give
// check to the side to move's opponent. These depend on the opponent's
// attack geometry relative to the mover's king and cannot be patched
// incrementally.
func (p *Position) setCheckInfo(si *StateInfo) {
	for c := types.White; c < types.ColorNB; c++ {
		si.BlockersForKing[c] = 0
		si.Pinners[c.Opposite()] = 0
		if ksq := p.KingSquare(c); ksq != types.SquareNone {
			si.BlockersForKing[c], si.Pinners[c.Opposite()] =
				p.SliderBlockers(p.byColorBB[c.Opposite()], ksq)
		}
	}

	for pt := types.AllPieces; pt < types.PieceTypeNB; pt++ {
		si.CheckSquares[pt] = 0
	}
	ksq := p.KingSquare(p.sideToMove.Opposite())
	if ksq == types.SquareNone {
		return
	}
	occupied := p.byTypeBB[types.AllPieces]
	si.CheckSquares[types.Pawn] = bitboard.PawnAttacks(p.sideToMove.Opposite(), ksq)
	si.CheckSquares[types.Knight] = bitboard.KnightAttacks(ksq)
	si.CheckSquares[types.Bishop] = bitboard.BishopAttacks(ksq, occupied)
	si.CheckSquares[types.Rook] = bitboard.RookAttacks(ksq, occupied)
	si.CheckSquares[types.Queen] = si.CheckSquares[types.Bishop] | si.CheckSquares[types.Rook]
}

// setState recomputes every derived field of si from scratch. It is used
// when setting up a position from its textual encoding and by the
// consistency checker; move application maintains these incrementally.
func (p *Position) setState(si *StateInfo) {
	si.Key = 0
	si.PawnKey = hashing.NoPawns
	si.MaterialKey = 0
	si.NonPawnMaterial[types.White] = 0
	si.NonPawnMaterial[types.Black] = 0
	si.PSQ = types.Score{}

	si.CheckersBB = 0
	if ksq := p.KingSquare(p.sideToMove); ksq != types.SquareNone {
		si.CheckersBB = p.AttackersTo(ksq) & p.byColorBB[p.sideToMove.Opposite()]
	}
	p.setCheckInfo(si)

	for b := p.byTypeBB[types.AllPieces]; b != 0; {
		s := b.PopLSB()
		pc := p.board[s]
		si.Key ^= hashing.Piece[pc][s]
		si.PSQ = si.PSQ.Add(psqValue(pc, s))
		switch pc.TypeOf() {
		case types.Pawn:
			si.PawnKey ^= hashing.Piece[pc][s]
		case types.King:
			// Kings carry no material value.
		default:
			si.NonPawnMaterial[pc.ColorOf()] += types.PieceValueMg(pc)
		}
	}

	if si.EPSquare != types.SquareNone {
		si.Key ^= hashing.EnPassant[si.EPSquare.File()]
	}
	if p.sideToMove == types.Black {
		si.Key ^= hashing.Side
	}
	si.Key ^= hashing.Castling[si.CastlingRights]

	for c := types.White; c < types.ColorNB; c++ {
		for pt := types.Pawn; pt <= types.King; pt++ {
			pc := types.MakePiece(c, pt)
			for cnt := 0; cnt < p.pieceCount[pc]; cnt++ {
				si.MaterialKey ^= hashing.Piece[pc][cnt]
			}
			si.Key ^= hashing.InHand[pc][p.pieceCountInHand[c][pt]]
		}
	}
}
