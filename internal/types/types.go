// Package types provides the core value types shared by the board engine:
// colours, pieces, squares, evaluation values and castling rights.
package types

// Color represents the colour of a piece or player.
type Color int

const (
	White Color = iota
	Black
	ColorNB
)

// String returns the string representation of a colour.
func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Color) Opposite() Color {
	return c ^ 1
}

// PieceType identifies a kind of piece independent of its colour.
// AllPieces is a pseudo piece type used for aggregate occupancy and counts.
type PieceType int

const (
	AllPieces PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	PieceTypeNB
)

// String returns the string representation of a piece type.
func (pt PieceType) String() string {
	names := []string{"All", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if int(pt) < len(names) {
		return names[pt]
	}
	return "Unknown"
}

// Piece is a coloured piece: the piece type in the low bits and the colour
// in bit 3, so that white pieces are 1..6 and black pieces 9..14.
type Piece int

const (
	NoPiece Piece = 0
	PieceNB Piece = 16
)

const pieceColorShift = 3

// MakePiece creates a coloured piece value.
func MakePiece(c Color, pt PieceType) Piece {
	return Piece(int(c)<<pieceColorShift | int(pt))
}

// TypeOf extracts the piece type from a coloured piece.
func (p Piece) TypeOf() PieceType {
	return PieceType(p & 7)
}

// ColorOf extracts the colour from a coloured piece.
func (p Piece) ColorOf() Color {
	return Color(p >> pieceColorShift)
}

// File is a board file, 0 (file a) through 7 (file h).
type File int

// Rank is a board rank, 0 (rank 1) through 7 (rank 8).
type Rank int

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
	FileNB
)

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	RankNB
)

// RelativeRank returns the rank as seen from the given colour's side of the
// board, so Rank1 is always the colour's back rank.
func RelativeRank(c Color, r Rank) Rank {
	if c == White {
		return r
	}
	return Rank8 - r
}

// Square is a board square index, 0 (a1) through 63 (h8), rank-major.
type Square int

const (
	SquareA1 Square = iota
	SquareB1
	SquareC1
	SquareD1
	SquareE1
	SquareF1
	SquareG1
	SquareH1
)

const (
	SquareNB   Square = 64
	SquareNone Square = 64
)

// Frequently referenced squares.
const (
	SquareD8 Square = 59
	SquareE8 Square = 60
	SquareH8 Square = 63
)

// MakeSquare builds a square from file and rank.
func MakeSquare(f File, r Rank) Square {
	return Square(int(r)*8 + int(f))
}

// File returns the file of the square.
func (s Square) File() File {
	return File(s & 7)
}

// Rank returns the rank of the square.
func (s Square) Rank() Rank {
	return Rank(s >> 3)
}

// IsOK reports whether the square is on the board.
func (s Square) IsOK() bool {
	return s >= SquareA1 && s < SquareNB
}

// RelativeSquare mirrors the square vertically for Black.
func RelativeSquare(c Color, s Square) Square {
	if c == White {
		return s
	}
	return s ^ 56
}

// FlippedVertically returns the square mirrored across the horizontal axis.
func (s Square) FlippedVertically() Square {
	return s ^ 56
}

// OppositeColors reports whether two squares are of opposite shade.
func OppositeColors(s1, s2 Square) bool {
	d := int(s1) ^ int(s2)
	return ((d>>3)^d)&1 != 0
}

// String returns the algebraic name of the square, or "-" for SquareNone.
func (s Square) String() string {
	if !s.IsOK() {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

// SquareFromString parses an algebraic square name like "e4".
// It returns SquareNone if the string is not a valid square.
func SquareFromString(str string) Square {
	if len(str) != 2 || str[0] < 'a' || str[0] > 'h' || str[1] < '1' || str[1] > '8' {
		return SquareNone
	}
	return MakeSquare(File(str[0]-'a'), Rank(str[1]-'1'))
}

// Value is a position evaluation in centipawn-like units. Mate scores are
// encoded near ValueMate so that shorter mates compare strictly higher.
type Value int

const (
	ValueZero     Value = 0
	ValueDraw     Value = 0
	ValueMate     Value = 32000
	ValueInfinite Value = 32001
	ValueNone     Value = 32002
)

// MateIn returns the value of giving mate in ply half-moves.
func MateIn(ply int) Value {
	return ValueMate - Value(ply)
}

// MatedIn returns the value of being mated in ply half-moves.
func MatedIn(ply int) Value {
	return -ValueMate + Value(ply)
}

// Midgame and endgame material values per piece type.
var (
	MidgameValue = [PieceTypeNB]Value{0, 128, 782, 830, 1289, 2529, 0}
	EndgameValue = [PieceTypeNB]Value{0, 213, 865, 918, 1378, 2687, 0}
)

// PieceValueMg returns the midgame value of a coloured piece.
func PieceValueMg(p Piece) Value {
	return MidgameValue[p.TypeOf()]
}

// Score is a pair of midgame and endgame values accumulated together.
type Score struct {
	MG Value
	EG Value
}

// Add returns the componentwise sum of two scores.
func (s Score) Add(o Score) Score {
	return Score{s.MG + o.MG, s.EG + o.EG}
}

// Sub returns the componentwise difference of two scores.
func (s Score) Sub(o Score) Score {
	return Score{s.MG - o.MG, s.EG - o.EG}
}

// Neg returns the componentwise negation of a score.
func (s Score) Neg() Score {
	return Score{-s.MG, -s.EG}
}

// Key is a Zobrist hash key.
type Key uint64

// CastlingRight is a bit set over the four castling options.
type CastlingRight int

const (
	NoCastling CastlingRight = 0
	WhiteOO    CastlingRight = 1
	WhiteOOO   CastlingRight = 2
	BlackOO    CastlingRight = 4
	BlackOOO   CastlingRight = 8

	KingSide  CastlingRight = WhiteOO | BlackOO
	QueenSide CastlingRight = WhiteOOO | BlackOOO

	AnyCastling     CastlingRight = 15
	CastlingRightNB               = 16
)

// MakeCastlingRight builds the right for a colour and side, where side is
// one of WhiteOO or WhiteOOO.
func MakeCastlingRight(c Color, side CastlingRight) CastlingRight {
	return side << (2 * CastlingRight(c))
}

// CastlingRightsOf returns both rights of a colour.
func CastlingRightsOf(c Color) CastlingRight {
	return (WhiteOO | WhiteOOO) << (2 * CastlingRight(c))
}

// String returns the FEN-style token for the rights, "-" when empty.
func (cr CastlingRight) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteOO != 0 {
		s += "K"
	}
	if cr&WhiteOOO != 0 {
		s += "Q"
	}
	if cr&BlackOO != 0 {
		s += "k"
	}
	if cr&BlackOOO != 0 {
		s += "q"
	}
	return s
}
