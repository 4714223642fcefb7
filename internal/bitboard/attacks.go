package bitboard

import (
	"github.com/lgbarn/varboard-go/internal/types"
)

// Ray directions, indexed into the ray tables. The first four are the
// "positive" directions whose rays grow toward higher square indices.
const (
	dirNorth = iota
	dirEast
	dirNorthEast
	dirNorthWest
	dirSouth
	dirWest
	dirSouthWest
	dirSouthEast
	dirNB
)

var (
	rayAttacks    [dirNB][64]Bitboard
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [types.ColorNB][64]Bitboard

	pseudoRook   [64]Bitboard
	pseudoBishop [64]Bitboard

	betweenBB  [64][64]Bitboard
	lineBB     [64][64]Bitboard
	distanceSq [64][64]int
)

func init() {
	initRays()
	initLeapers()
	initLines()
}

var dirDeltas = [dirNB][2]int{
	dirNorth:     {0, 1},
	dirEast:      {1, 0},
	dirNorthEast: {1, 1},
	dirNorthWest: {-1, 1},
	dirSouth:     {0, -1},
	dirWest:      {-1, 0},
	dirSouthWest: {-1, -1},
	dirSouthEast: {1, -1},
}

func initRays() {
	for s := types.SquareA1; s < types.SquareNB; s++ {
		for d := 0; d < dirNB; d++ {
			df, dr := dirDeltas[d][0], dirDeltas[d][1]
			f, r := int(s.File())+df, int(s.Rank())+dr
			for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				rayAttacks[d][s] |= SquareBB(types.MakeSquare(types.File(f), types.Rank(r)))
				f += df
				r += dr
			}
		}
		pseudoRook[s] = rayAttacks[dirNorth][s] | rayAttacks[dirSouth][s] |
			rayAttacks[dirEast][s] | rayAttacks[dirWest][s]
		pseudoBishop[s] = rayAttacks[dirNorthEast][s] | rayAttacks[dirNorthWest][s] |
			rayAttacks[dirSouthEast][s] | rayAttacks[dirSouthWest][s]
	}
}

func initLeapers() {
	for s := types.SquareA1; s < types.SquareNB; s++ {
		b := SquareBB(s)

		n := (b << 17) &^ FileABB
		n |= (b << 15) &^ FileHBB
		n |= (b >> 17) &^ FileHBB
		n |= (b >> 15) &^ FileABB
		n |= (b << 10) &^ (FileABB | FileBBB)
		n |= (b << 6) &^ (FileGBB | FileHBB)
		n |= (b >> 10) &^ (FileGBB | FileHBB)
		n |= (b >> 6) &^ (FileABB | FileBBB)
		knightAttacks[s] = n

		kingAttacks[s] = b.North() | b.South() | b.East() | b.West() |
			b.NorthEast() | b.NorthWest() | b.SouthEast() | b.SouthWest()

		pawnAttacks[types.White][s] = b.NorthEast() | b.NorthWest()
		pawnAttacks[types.Black][s] = b.SouthEast() | b.SouthWest()
	}
}

func initLines() {
	for s1 := types.SquareA1; s1 < types.SquareNB; s1++ {
		for s2 := types.SquareA1; s2 < types.SquareNB; s2++ {
			fd := abs(int(s1.File()) - int(s2.File()))
			rd := abs(int(s1.Rank()) - int(s2.Rank()))
			distanceSq[s1][s2] = max(fd, rd)
			if s1 == s2 {
				continue
			}
			for d := 0; d < dirNB; d++ {
				if rayAttacks[d][s1].IsSet(s2) {
					opposite := (d + 4) % dirNB
					betweenBB[s1][s2] = rayAttacks[d][s1] &^ rayAttacks[d][s2] &^ SquareBB(s2)
					lineBB[s1][s2] = rayAttacks[d][s1] | rayAttacks[opposite][s1] | SquareBB(s1)
					break
				}
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Distance returns the Chebyshev distance between two squares.
func Distance(s1, s2 types.Square) int {
	return distanceSq[s1][s2]
}

// Between returns the squares strictly between two squares, or Empty when
// they are not aligned on a rank, file or diagonal.
func Between(s1, s2 types.Square) Bitboard {
	return betweenBB[s1][s2]
}

// Line returns the full line through two aligned squares, endpoints
// included, or Empty when they are not aligned.
func Line(s1, s2 types.Square) Bitboard {
	return lineBB[s1][s2]
}

// Aligned reports whether three squares lie on one line.
func Aligned(s1, s2, s3 types.Square) bool {
	return lineBB[s1][s2]&SquareBB(s3) != 0
}

func slidingAttack(dir int, s types.Square, occupied Bitboard) Bitboard {
	attacks := rayAttacks[dir][s]
	blockers := attacks & occupied
	if blockers != 0 {
		var first types.Square
		if dir < dirSouth {
			first = blockers.LSB()
		} else {
			first = blockers.MSB()
		}
		attacks &^= rayAttacks[dir][first]
	}
	return attacks
}

// RookAttacks returns the rook attack set from s given the occupancy.
func RookAttacks(s types.Square, occupied Bitboard) Bitboard {
	return slidingAttack(dirNorth, s, occupied) | slidingAttack(dirSouth, s, occupied) |
		slidingAttack(dirEast, s, occupied) | slidingAttack(dirWest, s, occupied)
}

// BishopAttacks returns the bishop attack set from s given the occupancy.
func BishopAttacks(s types.Square, occupied Bitboard) Bitboard {
	return slidingAttack(dirNorthEast, s, occupied) | slidingAttack(dirNorthWest, s, occupied) |
		slidingAttack(dirSouthEast, s, occupied) | slidingAttack(dirSouthWest, s, occupied)
}

// QueenAttacks returns the queen attack set from s given the occupancy.
func QueenAttacks(s types.Square, occupied Bitboard) Bitboard {
	return RookAttacks(s, occupied) | BishopAttacks(s, occupied)
}

// KnightAttacks returns the knight attack set from s.
func KnightAttacks(s types.Square) Bitboard {
	return knightAttacks[s]
}

// KingAttacks returns the king attack set from s.
func KingAttacks(s types.Square) Bitboard {
	return kingAttacks[s]
}

// PawnAttacks returns the squares attacked by a pawn of colour c on s.
func PawnAttacks(c types.Color, s types.Square) Bitboard {
	return pawnAttacks[c][s]
}

// PseudoAttacks returns the attack set of a piece type on an empty board.
func PseudoAttacks(pt types.PieceType, s types.Square) Bitboard {
	switch pt {
	case types.Knight:
		return knightAttacks[s]
	case types.Bishop:
		return pseudoBishop[s]
	case types.Rook:
		return pseudoRook[s]
	case types.Queen:
		return pseudoRook[s] | pseudoBishop[s]
	case types.King:
		return kingAttacks[s]
	}
	return Empty
}

// AttacksBB returns the attack set of a coloured piece type on s given the
// occupancy. The colour only matters for pawns.
func AttacksBB(c types.Color, pt types.PieceType, s types.Square, occupied Bitboard) Bitboard {
	switch pt {
	case types.Pawn:
		return pawnAttacks[c][s]
	case types.Knight:
		return knightAttacks[s]
	case types.Bishop:
		return BishopAttacks(s, occupied)
	case types.Rook:
		return RookAttacks(s, occupied)
	case types.Queen:
		return QueenAttacks(s, occupied)
	case types.King:
		return kingAttacks[s]
	}
	return Empty
}
