// Package position implements the board-state engine: the authoritative
// representation of one game position, structural queries over it, and the
// reversible do/undo move protocol that keeps all derived state (bitboards,
// piece lists, hash keys, material and positional accumulators) maintained
// incrementally.
//
// A Position is mutated by exactly one logical search path at a time; it
// provides no internal synchronization. The caller owns the StateInfo chain
// and the variant descriptor; the Position only keeps non-owning pointers
// to both.
package position

import (
	"fmt"
	"strings"

	"github.com/lgbarn/varboard-go/internal/bitboard"
	"github.com/lgbarn/varboard-go/internal/types"
	"github.com/lgbarn/varboard-go/internal/variant"
)

const maxPieceListSize = 16

// Position stores the board representation, the redundant occupancy
// bitmasks and piece lists, castling bookkeeping, in-hand reserves for drop
// variants, and pointers to the current StateInfo and variant descriptor.
type Position struct {
	board      [64]types.Piece
	byTypeBB   [types.PieceTypeNB]bitboard.Bitboard
	byColorBB  [types.ColorNB]bitboard.Bitboard
	pieceCount [types.PieceNB]int
	pieceList  [types.PieceNB][maxPieceListSize]types.Square
	index      [64]int

	castlingRightsMask [64]types.CastlingRight
	castlingRookSquare [types.CastlingRightNB]types.Square
	castlingPath       [types.CastlingRightNB]bitboard.Bitboard

	gamePly    int
	sideToMove types.Color
	thread     interface{}
	st         *StateInfo

	variant  *variant.Variant
	chess960 bool

	pieceCountInHand [types.ColorNB][types.PieceTypeNB]int
	promotedPieces   bitboard.Bitboard
}

// SideToMove returns the colour to move.
func (p *Position) SideToMove() types.Color {
	return p.sideToMove
}

// GamePly returns the number of half-moves played to reach this position.
func (p *Position) GamePly() int {
	return p.gamePly
}

// IsChess960 reports whether castling rooks are identified positionally.
func (p *Position) IsChess960() bool {
	return p.chess960
}

// Variant returns the active rule descriptor.
func (p *Position) Variant() *variant.Variant {
	return p.variant
}

// Thread returns the opaque owning-thread handle stored by Set, verbatim.
func (p *Position) Thread() interface{} {
	return p.thread
}

// State returns the current head of the state chain.
func (p *Position) State() *StateInfo {
	return p.st
}

// Pieces returns the global occupancy mask.
func (p *Position) Pieces() bitboard.Bitboard {
	return p.byTypeBB[types.AllPieces]
}

// PiecesT returns the occupancy of one piece type, both colours.
func (p *Position) PiecesT(pt types.PieceType) bitboard.Bitboard {
	return p.byTypeBB[pt]
}

// PiecesTT returns the combined occupancy of two piece types.
func (p *Position) PiecesTT(pt1, pt2 types.PieceType) bitboard.Bitboard {
	return p.byTypeBB[pt1] | p.byTypeBB[pt2]
}

// PiecesC returns the occupancy of one colour.
func (p *Position) PiecesC(c types.Color) bitboard.Bitboard {
	return p.byColorBB[c]
}

// PiecesCT returns the occupancy of one colour and piece type.
func (p *Position) PiecesCT(c types.Color, pt types.PieceType) bitboard.Bitboard {
	return p.byColorBB[c] & p.byTypeBB[pt]
}

// PiecesCTT returns the occupancy of one colour over two piece types.
func (p *Position) PiecesCTT(c types.Color, pt1, pt2 types.PieceType) bitboard.Bitboard {
	return p.byColorBB[c] & (p.byTypeBB[pt1] | p.byTypeBB[pt2])
}

// PieceOn returns the piece on a square, NoPiece when empty.
func (p *Position) PieceOn(s types.Square) types.Piece {
	return p.board[s]
}

// IsEmpty reports whether a square is empty.
func (p *Position) IsEmpty(s types.Square) bool {
	return p.board[s] == types.NoPiece
}

// Count returns the number of pieces of one colour and type.
func (p *Position) Count(c types.Color, pt types.PieceType) int {
	return p.pieceCount[types.MakePiece(c, pt)]
}

// CountAll returns the number of pieces of one type for both colours.
func (p *Position) CountAll(pt types.PieceType) int {
	return p.pieceCount[types.MakePiece(types.White, pt)] +
		p.pieceCount[types.MakePiece(types.Black, pt)]
}

// Squares returns the current squares of a colour's pieces of one type.
// The returned slice aliases the internal dense piece list: it is only
// valid until the next mutation, and its order is unspecified.
func (p *Position) Squares(c types.Color, pt types.PieceType) []types.Square {
	pc := types.MakePiece(c, pt)
	return p.pieceList[pc][:p.pieceCount[pc]]
}

// KingSquare returns the square of the colour's king, or SquareNone when
// the colour has no king (some variants allow king capture).
func (p *Position) KingSquare(c types.Color) types.Square {
	pc := types.MakePiece(c, types.King)
	if p.pieceCount[pc] != 1 {
		return types.SquareNone
	}
	return p.pieceList[pc][0]
}

// EPSquare returns the en-passant target square, SquareNone when absent.
func (p *Position) EPSquare() types.Square {
	return p.st.EPSquare
}

// CountInHand returns the number of pieces of one type held in reserve.
func (p *Position) CountInHand(c types.Color, pt types.PieceType) int {
	return p.pieceCountInHand[c][pt]
}

// IsPromoted reports whether the piece on s arrived there by promotion.
// Drop variants use this to demote captured promoted pieces.
func (p *Position) IsPromoted(s types.Square) bool {
	return p.promotedPieces.IsSet(s)
}

// Castling queries.

// CanCastle returns the subset of cr still available.
func (p *Position) CanCastle(cr types.CastlingRight) types.CastlingRight {
	return p.st.CastlingRights & cr
}

// CastlingImpeded reports whether any castling-path square is occupied.
func (p *Position) CastlingImpeded(cr types.CastlingRight) bool {
	return p.byTypeBB[types.AllPieces]&p.castlingPath[cr] != 0
}

// CastlingRookSquare returns the home square of the castling rook.
func (p *Position) CastlingRookSquare(cr types.CastlingRight) types.Square {
	return p.castlingRookSquare[cr]
}

// Hash keys and accumulators.

// Key returns the position hash key.
func (p *Position) Key() types.Key {
	return p.st.Key
}

// PawnKey returns the pawn-structure hash key.
func (p *Position) PawnKey() types.Key {
	return p.st.PawnKey
}

// MaterialKey returns the material-signature hash key.
func (p *Position) MaterialKey() types.Key {
	return p.st.MaterialKey
}

// PsqScore returns the incrementally maintained piece-square score.
func (p *Position) PsqScore() types.Score {
	return p.st.PSQ
}

// NonPawnMaterial returns the non-pawn material value of one colour.
func (p *Position) NonPawnMaterial(c types.Color) types.Value {
	return p.st.NonPawnMaterial[c]
}

// Rule50Count returns the fifty-move-type counter.
func (p *Position) Rule50Count() int {
	return p.st.Rule50
}

// CapturedPiece returns the piece captured by the move that produced the
// current state, NoPiece if it was not a capture.
func (p *Position) CapturedPiece() types.Piece {
	return p.st.CapturedPiece
}

// Check state.

// Checkers returns the pieces giving check to the side to move.
func (p *Position) Checkers() bitboard.Bitboard {
	return p.st.CheckersBB
}

// BlockersForKing returns the pieces blocking a slider line to c's king.
func (p *Position) BlockersForKing(c types.Color) bitboard.Bitboard {
	return p.st.BlockersForKing[c]
}

// Pinners returns c's sliders that pin an enemy piece to the enemy king.
func (p *Position) Pinners(c types.Color) bitboard.Bitboard {
	return p.st.Pinners[c]
}

// CheckSquares returns the squares from which a piece of the given type
// would give check to the side not to move.
func (p *Position) CheckSquares(pt types.PieceType) bitboard.Bitboard {
	return p.st.CheckSquares[pt]
}

// ChecksGiven returns the number of checks a colour has delivered, for
// check-count win conditions.
func (p *Position) ChecksGiven(c types.Color) int {
	return p.st.ChecksGiven[c]
}

// Board mutation primitives. All three maintain the square array and every
// bitmask family atomically with respect to each other.

func (p *Position) putPiece(pc types.Piece, s types.Square) {
	p.board[s] = pc
	p.byTypeBB[types.AllPieces] |= bitboard.SquareBB(s)
	p.byTypeBB[pc.TypeOf()] |= bitboard.SquareBB(s)
	p.byColorBB[pc.ColorOf()] |= bitboard.SquareBB(s)
	p.index[s] = p.pieceCount[pc]
	p.pieceCount[pc]++
	p.pieceList[pc][p.index[s]] = s
	p.pieceCount[types.MakePiece(pc.ColorOf(), types.AllPieces)]++
}

// removePiece is not reversible bit-for-bit: the dense piece list is kept
// compact by swapping the removed entry with the list's last entry, so a
// do/undo pair does not restore the original list order. Only membership
// and count are meaningful to callers.
func (p *Position) removePiece(pc types.Piece, s types.Square) {
	p.byTypeBB[types.AllPieces] ^= bitboard.SquareBB(s)
	p.byTypeBB[pc.TypeOf()] ^= bitboard.SquareBB(s)
	p.byColorBB[pc.ColorOf()] ^= bitboard.SquareBB(s)
	// board[s] is left stale; callers overwrite or clear it.
	p.pieceCount[pc]--
	lastSquare := p.pieceList[pc][p.pieceCount[pc]]
	p.index[lastSquare] = p.index[s]
	p.pieceList[pc][p.index[lastSquare]] = lastSquare
	p.pieceList[pc][p.pieceCount[pc]] = types.SquareNone
	p.pieceCount[types.MakePiece(pc.ColorOf(), types.AllPieces)]--
}

// movePiece leaves index[from] stale; this is fine because index is only
// consulted for occupied squares.
func (p *Position) movePiece(pc types.Piece, from, to types.Square) {
	fromTo := bitboard.SquareBB(from) ^ bitboard.SquareBB(to)
	p.byTypeBB[types.AllPieces] ^= fromTo
	p.byTypeBB[pc.TypeOf()] ^= fromTo
	p.byColorBB[pc.ColorOf()] ^= fromTo
	p.board[from] = types.NoPiece
	p.board[to] = pc
	p.index[to] = p.index[from]
	p.pieceList[pc][p.index[to]] = to
}

// In-hand reserve accounting for drop variants.

func (p *Position) addToHand(c types.Color, pt types.PieceType) {
	p.pieceCountInHand[c][pt]++
	p.pieceCountInHand[c][types.AllPieces]++
}

func (p *Position) removeFromHand(c types.Color, pt types.PieceType) {
	p.pieceCountInHand[c][pt]--
	p.pieceCountInHand[c][types.AllPieces]--
}

func (p *Position) dropPiece(pc types.Piece, s types.Square) {
	p.putPiece(pc, s)
	p.removeFromHand(pc.ColorOf(), pc.TypeOf())
}

func (p *Position) undropPiece(pc types.Piece, s types.Square) {
	p.removePiece(pc, s)
	p.board[s] = types.NoPiece
	p.addToHand(pc.ColorOf(), pc.TypeOf())
}

// String returns a human-readable board dump with the key fields, intended
// for logs and tests rather than machine consumption.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n +---+---+---+---+---+---+---+---+\n")
	for r := p.variant.MaxRank; r >= types.Rank1; r-- {
		for f := types.FileA; f <= p.variant.MaxFile; f++ {
			pc := p.board[types.MakeSquare(f, r)]
			if pc == types.NoPiece {
				sb.WriteString(" |  ")
			} else {
				fmt.Fprintf(&sb, " | %c", p.variant.PieceLetter(pc))
			}
		}
		sb.WriteString(" |\n +---+---+---+---+---+---+---+---+\n")
	}
	fmt.Fprintf(&sb, "\nFen: %s\n", p.FEN())
	fmt.Fprintf(&sb, "Key: %016X\n", uint64(p.st.Key))
	sb.WriteString("Checkers:")
	for b := p.st.CheckersBB; b != 0; {
		fmt.Fprintf(&sb, " %s", b.PopLSB())
	}
	sb.WriteString("\n")
	return sb.String()
}
