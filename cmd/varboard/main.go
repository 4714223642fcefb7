// varboard is a diagnostic tool for the board-state engine: it sets up a
// position for any supported variant, applies a sequence of moves and
// prints the resulting board, keys and rule state.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lgbarn/varboard-go/internal/position"
	"github.com/lgbarn/varboard-go/internal/types"
)

const programVersion = "0.1.0"

var (
	variantName = flag.String("variant", "standard", "variant to play (standard, crazyhouse, 3check, kingofthehill, racingkings, antichess, bareking)")
	fen         = flag.String("fen", "", "position to set up instead of the variant's starting position")
	moves       = flag.String("moves", "", "space-separated moves in long algebraic form (e2e4, e7e8q, P@e4, O-O)")
	chess960    = flag.Bool("chess960", false, "identify castling rooks by position and accept file-letter castling tokens")
	check       = flag.Bool("check", false, "run the consistency checker after every move")
	version     = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("varboard version %s\n", programVersion)
		os.Exit(0)
	}

	newPosition := position.NewPosition
	if *chess960 {
		newPosition = position.NewChess960Position
	}
	pos, states, err := newPosition(*variantName, *fen)
	if err != nil {
		fatal(err)
	}

	for _, token := range strings.Fields(*moves) {
		m, err := parseMove(pos, token)
		if err != nil {
			fatal(err)
		}
		if !pos.Legal(m) {
			fatal(fmt.Errorf("move %s leaves the king attacked", token))
		}
		pos.DoMove(m, states.Push())
		if *check {
			if err := pos.Validate(); err != nil {
				fatal(fmt.Errorf("after %s: %w", token, err))
			}
		}
	}

	fmt.Print(pos)
	fmt.Printf("Rule50: %d  GamePly: %d\n", pos.Rule50Count(), pos.GamePly())
	if pos.MaxCheckCount() > 0 {
		fmt.Printf("Checks given: +%d+%d\n",
			pos.ChecksGiven(types.White), pos.ChecksGiven(types.Black))
	}
	if v, ended := pos.IsVariantEnd(0); ended {
		fmt.Printf("Game over by variant rule, value %d\n", int(v))
	}
	if pos.IsDraw(0) {
		fmt.Println("Drawn by rule")
	}
}

// parseMove reads one move in long algebraic form against the current
// position: origin and destination squares, an optional promotion letter,
// "P@sq" drops and "O-O"/"O-O-O" castling.
func parseMove(pos *position.Position, token string) (types.Move, error) {
	us := pos.SideToMove()

	if token == "O-O" || token == "O-O-O" {
		side := types.WhiteOOO
		if token == "O-O" {
			side = types.WhiteOO
		}
		cr := types.MakeCastlingRight(us, side)
		if pos.CanCastle(cr) == 0 {
			return types.MoveNone, fmt.Errorf("castling %s is not available", token)
		}
		return types.NewCastling(pos.KingSquare(us), pos.CastlingRookSquare(cr)), nil
	}

	if len(token) == 4 && token[1] == '@' {
		pc := pos.Variant().PieceFromLetter(token[0])
		to := types.SquareFromString(token[2:])
		if pc == types.NoPiece || to == types.SquareNone {
			return types.MoveNone, fmt.Errorf("bad drop %q", token)
		}
		if pos.CountInHand(us, pc.TypeOf()) == 0 {
			return types.MoveNone, fmt.Errorf("no %c in hand", token[0])
		}
		return types.NewDrop(pc.TypeOf(), to), nil
	}

	if len(token) < 4 {
		return types.MoveNone, fmt.Errorf("bad move %q", token)
	}
	from := types.SquareFromString(token[:2])
	to := types.SquareFromString(token[2:4])
	if from == types.SquareNone || to == types.SquareNone {
		return types.MoveNone, fmt.Errorf("bad move %q", token)
	}
	pc := pos.PieceOn(from)
	if pc == types.NoPiece || pc.ColorOf() != us {
		return types.MoveNone, fmt.Errorf("no %v piece on %s", us, from)
	}

	if len(token) == 5 {
		pt := pos.Variant().PieceFromLetter(token[4] &^ 0x20).TypeOf()
		if pt < types.Knight || pt > types.Queen {
			return types.MoveNone, fmt.Errorf("bad promotion %q", token)
		}
		return types.NewPromotion(from, to, pt), nil
	}

	if pc.TypeOf() == types.Pawn && to == pos.EPSquare() {
		return types.NewEnPassant(from, to), nil
	}
	if pc.TypeOf() == types.King && pos.PieceOn(to) == types.MakePiece(us, types.Rook) {
		return types.NewCastling(from, to), nil
	}
	return types.NewMove(from, to), nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "varboard: %v\n", err)
	os.Exit(1)
}
