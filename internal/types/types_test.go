package types

import (
	"testing"
)

func TestMakePiece(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		pt    PieceType
	}{
		{"white pawn", White, Pawn},
		{"white king", White, King},
		{"black pawn", Black, Pawn},
		{"black queen", Black, Queen},
		{"black king", Black, King},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := MakePiece(tt.color, tt.pt)
			if got := pc.TypeOf(); got != tt.pt {
				t.Errorf("TypeOf() = %v, want %v", got, tt.pt)
			}
			if got := pc.ColorOf(); got != tt.color {
				t.Errorf("ColorOf() = %v, want %v", got, tt.color)
			}
		})
	}
}

func TestColorOpposite(t *testing.T) {
	if White.Opposite() != Black {
		t.Error("White.Opposite() != Black")
	}
	if Black.Opposite() != White {
		t.Error("Black.Opposite() != White")
	}
}

func TestSquareRoundTrip(t *testing.T) {
	for s := SquareA1; s < SquareNB; s++ {
		if got := MakeSquare(s.File(), s.Rank()); got != s {
			t.Errorf("MakeSquare(File(), Rank()) = %v, want %v", got, s)
		}
		if got := SquareFromString(s.String()); got != s {
			t.Errorf("SquareFromString(%q) = %v, want %v", s.String(), got, s)
		}
	}
}

func TestSquareFromStringInvalid(t *testing.T) {
	for _, str := range []string{"", "e", "e9", "i4", "e44", "4e", "--"} {
		if got := SquareFromString(str); got != SquareNone {
			t.Errorf("SquareFromString(%q) = %v, want SquareNone", str, got)
		}
	}
}

func TestRelativeSquare(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		sq    string
		want  string
	}{
		{"white a1 unchanged", White, "a1", "a1"},
		{"white e4 unchanged", White, "e4", "e4"},
		{"black a1 mirrors to a8", Black, "a1", "a8"},
		{"black e1 mirrors to e8", Black, "e1", "e8"},
		{"black h8 mirrors to h1", Black, "h8", "h1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RelativeSquare(tt.color, SquareFromString(tt.sq))
			if got.String() != tt.want {
				t.Errorf("RelativeSquare = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRelativeRank(t *testing.T) {
	if got := RelativeRank(White, Rank2); got != Rank2 {
		t.Errorf("RelativeRank(White, Rank2) = %v, want Rank2", got)
	}
	if got := RelativeRank(Black, Rank7); got != Rank2 {
		t.Errorf("RelativeRank(Black, Rank7) = %v, want Rank2", got)
	}
	if got := RelativeRank(Black, Rank1); got != Rank8 {
		t.Errorf("RelativeRank(Black, Rank1) = %v, want Rank8", got)
	}
}

func TestOppositeColors(t *testing.T) {
	a1 := SquareFromString("a1")
	b1 := SquareFromString("b1")
	b2 := SquareFromString("b2")
	h8 := SquareFromString("h8")
	if OppositeColors(a1, h8) {
		t.Error("a1 and h8 are both dark")
	}
	if !OppositeColors(a1, b1) {
		t.Error("a1 and b1 differ in shade")
	}
	if OppositeColors(a1, b2) {
		t.Error("a1 and b2 are both dark")
	}
}

func TestMateValues(t *testing.T) {
	if MateIn(0) != ValueMate {
		t.Errorf("MateIn(0) = %d, want %d", MateIn(0), ValueMate)
	}
	if MateIn(3) >= MateIn(2) {
		t.Error("a shorter mate must compare strictly higher")
	}
	if MatedIn(3) <= MatedIn(2) {
		t.Error("a longer loss must compare strictly higher")
	}
	if MateIn(5) != -MatedIn(5) {
		t.Error("MateIn and MatedIn are not symmetric")
	}
}

func TestScoreArithmetic(t *testing.T) {
	a := Score{MG: 10, EG: -4}
	b := Score{MG: 3, EG: 7}
	if got := a.Add(b); got != (Score{MG: 13, EG: 3}) {
		t.Errorf("Add = %+v", got)
	}
	if got := a.Sub(b); got != (Score{MG: 7, EG: -11}) {
		t.Errorf("Sub = %+v", got)
	}
	if got := a.Neg(); got != (Score{MG: -10, EG: 4}) {
		t.Errorf("Neg = %+v", got)
	}
	if got := a.Add(b).Sub(b); got != a {
		t.Errorf("Add then Sub is not an identity: %+v", got)
	}
}

func TestMakeCastlingRight(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		side  CastlingRight
		want  CastlingRight
	}{
		{"white kingside", White, WhiteOO, WhiteOO},
		{"white queenside", White, WhiteOOO, WhiteOOO},
		{"black kingside", Black, WhiteOO, BlackOO},
		{"black queenside", Black, WhiteOOO, BlackOOO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MakeCastlingRight(tt.color, tt.side); got != tt.want {
				t.Errorf("MakeCastlingRight = %v, want %v", got, tt.want)
			}
		})
	}

	if got := CastlingRightsOf(Black); got != BlackOO|BlackOOO {
		t.Errorf("CastlingRightsOf(Black) = %v", got)
	}
}

func TestCastlingRightString(t *testing.T) {
	tests := []struct {
		cr   CastlingRight
		want string
	}{
		{NoCastling, "-"},
		{WhiteOO, "K"},
		{AnyCastling, "KQkq"},
		{BlackOO | BlackOOO, "kq"},
		{WhiteOO | BlackOOO, "Kq"},
	}
	for _, tt := range tests {
		if got := tt.cr.String(); got != tt.want {
			t.Errorf("CastlingRight(%d).String() = %q, want %q", tt.cr, got, tt.want)
		}
	}
}
