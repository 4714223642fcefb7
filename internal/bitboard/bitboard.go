// Package bitboard provides 64-bit set representations of board squares and
// the precomputed attack geometry used by the position engine.
package bitboard

import (
	"fmt"
	"math/bits"

	"github.com/lgbarn/varboard-go/internal/types"
)

// Bitboard represents a 64-bit board where each bit corresponds to a square.
// Bit 0 = a1, bit 7 = h1, bit 56 = a8, bit 63 = h8.
type Bitboard uint64

// File masks.
const (
	FileABB Bitboard = 0x0101010101010101 << iota
	FileBBB
	FileCBB
	FileDBB
	FileEBB
	FileFBB
	FileGBB
	FileHBB
)

// Rank masks.
const (
	Rank1BB Bitboard = 0xFF << (8 * iota)
	Rank2BB
	Rank3BB
	Rank4BB
	Rank5BB
	Rank6BB
	Rank7BB
	Rank8BB
)

// Empty and full boards.
const (
	Empty      Bitboard = 0
	AllSquares Bitboard = 0xFFFFFFFFFFFFFFFF
)

// SquareBB returns a bitboard with only the given square set.
func SquareBB(s types.Square) Bitboard {
	return 1 << uint(s)
}

// FileBB returns the mask of the given file.
func FileBB(f types.File) Bitboard {
	return FileABB << uint(f)
}

// RankBB returns the mask of the given rank.
func RankBB(r types.Rank) Bitboard {
	return Rank1BB << uint(8*r)
}

// BoardArea returns the mask of the playing area for a board bounded by
// the given maximum file and rank. The full board is returned for 8x8.
func BoardArea(maxFile types.File, maxRank types.Rank) Bitboard {
	area := Empty
	for f := types.FileA; f <= maxFile; f++ {
		for r := types.Rank1; r <= maxRank; r++ {
			area |= SquareBB(types.MakeSquare(f, r))
		}
	}
	return area
}

// IsSet reports whether the bit for the square is set.
func (b Bitboard) IsSet(s types.Square) bool {
	return b&SquareBB(s) != 0
}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the lowest set square. The bitboard must be non-empty.
func (b Bitboard) LSB() types.Square {
	if b == 0 {
		return types.SquareNone
	}
	return types.Square(bits.TrailingZeros64(uint64(b)))
}

// MSB returns the highest set square. The bitboard must be non-empty.
func (b Bitboard) MSB() types.Square {
	if b == 0 {
		return types.SquareNone
	}
	return types.Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLSB removes the lowest set bit and returns its square.
func (b *Bitboard) PopLSB() types.Square {
	s := b.LSB()
	*b &= *b - 1
	return s
}

// MoreThanOne reports whether at least two bits are set.
func (b Bitboard) MoreThanOne() bool {
	return b&(b-1) != 0
}

// Shift helpers used to build the leaper tables.

// North shifts the bitboard one rank up.
func (b Bitboard) North() Bitboard { return b << 8 }

// South shifts the bitboard one rank down.
func (b Bitboard) South() Bitboard { return b >> 8 }

// East shifts the bitboard one file right.
func (b Bitboard) East() Bitboard { return (b << 1) &^ FileABB }

// West shifts the bitboard one file left.
func (b Bitboard) West() Bitboard { return (b >> 1) &^ FileHBB }

// NorthEast shifts one square diagonally toward h8.
func (b Bitboard) NorthEast() Bitboard { return (b << 9) &^ FileABB }

// NorthWest shifts one square diagonally toward a8.
func (b Bitboard) NorthWest() Bitboard { return (b << 7) &^ FileHBB }

// SouthEast shifts one square diagonally toward h1.
func (b Bitboard) SouthEast() Bitboard { return (b >> 7) &^ FileABB }

// SouthWest shifts one square diagonally toward a1.
func (b Bitboard) SouthWest() Bitboard { return (b >> 9) &^ FileHBB }

// ForwardRanks returns the mask of ranks strictly in front of the given
// rank from the colour's point of view.
func ForwardRanks(c types.Color, r types.Rank) Bitboard {
	if c == types.White {
		return ^Rank1BB << uint(8*r)
	}
	return ^Rank8BB >> uint(8*(types.Rank8-r))
}

// PassedPawnMask returns the squares an enemy pawn must occupy to stop the
// pawn on s from promoting: the pawn's file and both adjacent files, on the
// ranks in front of it.
func PassedPawnMask(c types.Color, s types.Square) Bitboard {
	file := FileBB(s.File())
	span := file | file.East() | file.West()
	return span & ForwardRanks(c, s.Rank())
}

// String returns a visual representation of the bitboard.
func (b Bitboard) String() string {
	s := ""
	for r := types.Rank8; r >= types.Rank1; r-- {
		s += fmt.Sprintf("%d ", r+1)
		for f := types.FileA; f <= types.FileH; f++ {
			if b.IsSet(types.MakeSquare(f, r)) {
				s += "X "
			} else {
				s += ". "
			}
		}
		s += "\n"
	}
	return s + "  a b c d e f g h\n"
}
