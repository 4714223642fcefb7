// Package variant defines the read-only rule descriptor that parameterizes
// the position engine, together with a catalogue of preset variants.
//
// A Variant is immutable once constructed: the engine queries it and never
// writes to it, so one descriptor may back any number of positions.
package variant

import (
	"strings"

	"github.com/lgbarn/varboard-go/internal/bitboard"
	"github.com/lgbarn/varboard-go/internal/errors"
	"github.com/lgbarn/varboard-go/internal/types"
)

// Variant describes the rule set of one game variant.
type Variant struct {
	// Name is the canonical lookup token for the variant.
	Name string

	// Board geometry. Files and ranks above these bounds are off-board.
	MaxFile types.File
	MaxRank types.Rank

	// PieceToChar maps piece types to their uppercase FEN letters, indexed
	// by types.PieceType. Index 0 (AllPieces) is unused.
	PieceToChar string

	// Promotion rules.
	PromotionRank       types.Rank
	PromotionPieceTypes []types.PieceType

	// Rule enablement flags.
	DoubleStep  bool // pawns may advance two squares from their start rank
	Castling    bool
	Checking    bool // giving check is permitted at all
	MustCapture bool
	PieceDrops  bool
	DropLoop    bool // captured promoted pieces keep their type in hand instead of demoting to pawn

	// Terminal condition parameters. A value of types.ValueNone disables
	// the corresponding rule.
	StalemateValue types.Value
	CheckmateValue types.Value
	BareKingValue  types.Value
	BareKingMove   bool // the bare-king rule triggers on the mover's opponent

	// Capture-the-flag target squares per colour, empty when disabled.
	WhiteFlag bitboard.Bitboard
	BlackFlag bitboard.Bitboard
	FlagMove  bool // the flag rule rewards the side to move rather than punishing it

	// Maximum checks a side may give before winning; zero disables the rule.
	MaxCheckCount int

	// StartFEN is the preset starting position.
	StartFEN string
}

// BoardMask returns the bitboard mask of this variant's playing area.
func (v *Variant) BoardMask() bitboard.Bitboard {
	return bitboard.BoardArea(v.MaxFile, v.MaxRank)
}

// Flag returns the capture-the-flag target squares of a colour.
func (v *Variant) Flag(c types.Color) bitboard.Bitboard {
	if c == types.White {
		return v.WhiteFlag
	}
	return v.BlackFlag
}

// PieceLetter returns the FEN letter for a coloured piece.
func (v *Variant) PieceLetter(p types.Piece) byte {
	ch := v.PieceToChar[p.TypeOf()]
	if p.ColorOf() == types.Black {
		ch += 'a' - 'A'
	}
	return ch
}

// PieceFromLetter maps a FEN letter to a coloured piece, or NoPiece when
// the letter is not in this variant's alphabet.
func (v *Variant) PieceFromLetter(ch byte) types.Piece {
	upper := ch
	c := types.White
	if ch >= 'a' && ch <= 'z' {
		upper = ch - ('a' - 'A')
		c = types.Black
	}
	for pt := types.Pawn; pt <= types.King; pt++ {
		if v.PieceToChar[pt] == upper {
			return types.MakePiece(c, pt)
		}
	}
	return types.NoPiece
}

const standardStartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

const centerMask = bitboard.Bitboard(1)<<27 | bitboard.Bitboard(1)<<28 |
	bitboard.Bitboard(1)<<35 | bitboard.Bitboard(1)<<36 // d4, e4, d5, e5

func standardBase(name string) Variant {
	return Variant{
		Name:                name,
		MaxFile:             types.FileH,
		MaxRank:             types.Rank8,
		PieceToChar:         " PNBRQK",
		PromotionRank:       types.Rank8,
		PromotionPieceTypes: []types.PieceType{types.Queen, types.Rook, types.Bishop, types.Knight},
		DoubleStep:          true,
		Castling:            true,
		Checking:            true,
		StalemateValue:      types.ValueDraw,
		CheckmateValue:      -types.ValueMate,
		BareKingValue:       types.ValueNone,
		StartFEN:            standardStartFEN,
	}
}

func builtins() map[string]*Variant {
	standard := standardBase("standard")

	crazyhouse := standardBase("crazyhouse")
	crazyhouse.PieceDrops = true
	crazyhouse.StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR[] w KQkq - 0 1"

	threeCheck := standardBase("3check")
	threeCheck.MaxCheckCount = 3
	threeCheck.StartFEN = standardStartFEN + " +0+0"

	koth := standardBase("kingofthehill")
	koth.WhiteFlag = centerMask
	koth.BlackFlag = centerMask

	racingKings := standardBase("racingkings")
	racingKings.Castling = false
	racingKings.Checking = false
	racingKings.WhiteFlag = bitboard.Rank8BB
	racingKings.BlackFlag = bitboard.Rank8BB
	racingKings.FlagMove = true
	racingKings.StartFEN = "8/8/8/8/8/8/krbnNBRK/qrbnNBRQ w - - 0 1"

	antichess := standardBase("antichess")
	antichess.Castling = false
	antichess.MustCapture = true
	antichess.StalemateValue = types.ValueMate

	bareKing := standardBase("bareking")
	bareKing.DoubleStep = false
	bareKing.Castling = false
	bareKing.BareKingValue = -types.ValueMate

	all := []*Variant{
		&standard, &crazyhouse, &threeCheck, &koth, &racingKings, &antichess, &bareKing,
	}
	m := make(map[string]*Variant, len(all))
	for _, v := range all {
		m[v.Name] = v
	}
	// Common aliases.
	m["chess"] = &standard
	m["threecheck"] = &threeCheck
	m["giveaway"] = &antichess
	return m
}

var presets = builtins()

// Lookup returns the preset variant for a name token.
func Lookup(name string) (*Variant, error) {
	if v, ok := presets[strings.ToLower(name)]; ok {
		return v, nil
	}
	return nil, errors.Wrapf(errors.ErrUnknownVariant, "variant %q", name)
}

// Standard returns the standard chess descriptor.
func Standard() *Variant {
	return presets["standard"]
}
