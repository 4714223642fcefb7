package position

import (
	"testing"

	"github.com/lgbarn/varboard-go/internal/testutil"
	"github.com/lgbarn/varboard-go/internal/types"
)

// applyMoves plays a sequence of moves, pushing one state per move.
func applyMoves(t *testing.T, p *Position, states *StateList, moves ...types.Move) {
	t.Helper()
	for _, m := range moves {
		if !p.Legal(m) {
			t.Fatalf("move %v is illegal in %s", m, p.FEN())
		}
		p.DoMove(m, states.Push())
	}
}

// undoMoves retracts moves in reverse order.
func undoMoves(p *Position, states *StateList, moves ...types.Move) {
	for i := len(moves) - 1; i >= 0; i-- {
		p.UndoMove(moves[i])
		states.Pop()
	}
}

func TestDoMoveQuiet(t *testing.T) {
	p, states := mustPosition(t, "standard", "")
	m := types.NewMove(sq("e2"), sq("e4"))
	key := p.Key()

	p.DoMove(m, states.Push())

	if p.PieceOn(sq("e4")) != types.MakePiece(types.White, types.Pawn) {
		t.Error("pawn did not arrive on e4")
	}
	if !p.IsEmpty(sq("e2")) {
		t.Error("e2 is still occupied")
	}
	if p.SideToMove() != types.Black {
		t.Error("side to move did not flip")
	}
	if p.GamePly() != 1 {
		t.Errorf("GamePly = %d, want 1", p.GamePly())
	}
	if p.Rule50Count() != 0 {
		t.Error("a pawn move must reset the fifty-move counter")
	}
	if p.EPSquare() != types.SquareNone {
		t.Error("no black pawn can capture on e3, so no en-passant square")
	}
	if p.Key() == key {
		t.Error("key did not change")
	}
	testutil.AssertNoError(t, p.Validate())

	p.UndoMove(m)
	states.Pop()
	testutil.AssertEqual(t, p.FEN(), startFEN)
	if p.Key() != key {
		t.Error("undo did not restore the key")
	}
	testutil.AssertNoError(t, p.Validate())
}

func TestDoMoveRule50Counter(t *testing.T) {
	p, states := mustPosition(t, "standard", "")
	moves := []types.Move{
		types.NewMove(sq("g1"), sq("f3")),
		types.NewMove(sq("g8"), sq("f6")),
	}
	applyMoves(t, p, states, moves...)
	if p.Rule50Count() != 2 {
		t.Errorf("Rule50Count = %d after two knight moves", p.Rule50Count())
	}
}

func TestDoUndoSequence(t *testing.T) {
	p, states := mustPosition(t, "standard", "")
	moves := []types.Move{
		types.NewMove(sq("e2"), sq("e4")),
		types.NewMove(sq("e7"), sq("e5")),
		types.NewMove(sq("g1"), sq("f3")),
		types.NewMove(sq("b8"), sq("c6")),
		types.NewMove(sq("f1"), sq("b5")),
		types.NewMove(sq("g8"), sq("f6")),
		types.NewCastling(sq("e1"), sq("h1")),
		types.NewMove(sq("f6"), sq("e4")),
	}
	keys := make([]types.Key, 0, len(moves))

	for _, m := range moves {
		keys = append(keys, p.Key())
		if !p.Legal(m) {
			t.Fatalf("%v is illegal in %s", m, p.FEN())
		}
		p.DoMove(m, states.Push())
		testutil.AssertNoError(t, p.Validate(), "after %v", m)
	}

	for i := len(moves) - 1; i >= 0; i-- {
		p.UndoMove(moves[i])
		states.Pop()
		if p.Key() != keys[i] {
			t.Fatalf("undo of %v restored key %x, want %x", moves[i], p.Key(), keys[i])
		}
		testutil.AssertNoError(t, p.Validate(), "after undoing %v", moves[i])
	}
	testutil.AssertEqual(t, p.FEN(), startFEN)
}

func TestDoMoveCapture(t *testing.T) {
	p, states := mustPosition(t, "standard", "")
	moves := []types.Move{
		types.NewMove(sq("e2"), sq("e4")),
		types.NewMove(sq("d7"), sq("d5")),
	}
	applyMoves(t, p, states, moves...)

	capture := types.NewMove(sq("e4"), sq("d5"))
	if !p.Capture(capture) {
		t.Error("exd5 is a capture")
	}
	applyMoves(t, p, states, capture)

	if p.Count(types.Black, types.Pawn) != 7 {
		t.Errorf("black pawn count = %d, want 7", p.Count(types.Black, types.Pawn))
	}
	if p.CapturedPiece() != types.MakePiece(types.Black, types.Pawn) {
		t.Errorf("CapturedPiece = %v", p.CapturedPiece())
	}
	testutil.AssertNoError(t, p.Validate())

	undoMoves(p, states, append(moves, capture)...)
	testutil.AssertEqual(t, p.FEN(), startFEN)
}

func TestDoMoveEnPassant(t *testing.T) {
	p, states := mustPosition(t, "standard", "")
	setup := []types.Move{
		types.NewMove(sq("e2"), sq("e4")),
		types.NewMove(sq("d7"), sq("d6")),
		types.NewMove(sq("e4"), sq("e5")),
		types.NewMove(sq("f7"), sq("f5")),
	}
	applyMoves(t, p, states, setup...)

	if p.EPSquare() != sq("f6") {
		t.Fatalf("EPSquare = %v, want f6", p.EPSquare())
	}

	ep := types.NewEnPassant(sq("e5"), sq("f6"))
	fenBefore := p.FEN()
	applyMoves(t, p, states, ep)

	if !p.IsEmpty(sq("f5")) {
		t.Error("captured pawn still on f5")
	}
	if p.PieceOn(sq("f6")) != types.MakePiece(types.White, types.Pawn) {
		t.Error("capturing pawn did not arrive on f6")
	}
	if p.Count(types.Black, types.Pawn) != 7 {
		t.Error("black pawn count did not drop")
	}
	testutil.AssertNoError(t, p.Validate())

	p.UndoMove(ep)
	states.Pop()
	testutil.AssertEqual(t, p.FEN(), fenBefore)
}

func TestDoMoveCastling(t *testing.T) {
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
	p, states := mustPosition(t, "standard", fen)

	oo := types.NewCastling(sq("e1"), sq("h1"))
	applyMoves(t, p, states, oo)

	if p.PieceOn(sq("g1")) != types.MakePiece(types.White, types.King) {
		t.Error("king did not land on g1")
	}
	if p.PieceOn(sq("f1")) != types.MakePiece(types.White, types.Rook) {
		t.Error("rook did not land on f1")
	}
	if p.CanCastle(types.WhiteOO|types.WhiteOOO) != 0 {
		t.Error("white kept castling rights after castling")
	}
	if p.CanCastle(types.BlackOO|types.BlackOOO) != types.BlackOO|types.BlackOOO {
		t.Error("black lost castling rights")
	}
	testutil.AssertNoError(t, p.Validate())

	ooo := types.NewCastling(sq("e8"), sq("a8"))
	applyMoves(t, p, states, ooo)
	if p.PieceOn(sq("c8")) != types.MakePiece(types.Black, types.King) {
		t.Error("king did not land on c8")
	}
	if p.PieceOn(sq("d8")) != types.MakePiece(types.Black, types.Rook) {
		t.Error("rook did not land on d8")
	}
	testutil.AssertNoError(t, p.Validate())

	undoMoves(p, states, oo, ooo)
	testutil.AssertEqual(t, p.FEN(), fen)
}

func TestDoMoveChess960Castling(t *testing.T) {
	t.Run("king left of its destination", func(t *testing.T) {
		// Queenside with the king on b1: the destination c1 lies on the
		// far side of the origin, so the attack walk runs westward.
		fen := "1k6/8/8/8/8/8/8/RK6 w A - 0 1"
		p, states, err := NewChess960Position("standard", fen)
		testutil.AssertNoError(t, err)

		m := types.NewCastling(sq("b1"), sq("a1"))
		key := p.Key()
		applyMoves(t, p, states, m)

		if p.PieceOn(sq("c1")) != types.MakePiece(types.White, types.King) {
			t.Error("king did not land on c1")
		}
		if p.PieceOn(sq("d1")) != types.MakePiece(types.White, types.Rook) {
			t.Error("rook did not land on d1")
		}
		testutil.AssertNoError(t, p.Validate())

		undoMoves(p, states, m)
		testutil.AssertEqual(t, p.FEN(), fen)
		if p.Key() != key {
			t.Error("undo did not restore the key")
		}
	})

	t.Run("king already on its destination", func(t *testing.T) {
		fen := "5k2/8/8/8/8/8/8/6KR w H - 0 1"
		p, states, err := NewChess960Position("standard", fen)
		testutil.AssertNoError(t, err)

		m := types.NewCastling(sq("g1"), sq("h1"))
		applyMoves(t, p, states, m)

		if p.PieceOn(sq("g1")) != types.MakePiece(types.White, types.King) {
			t.Error("king did not stay on g1")
		}
		if p.PieceOn(sq("f1")) != types.MakePiece(types.White, types.Rook) {
			t.Error("rook did not land on f1")
		}
		testutil.AssertNoError(t, p.Validate())

		undoMoves(p, states, m)
		testutil.AssertEqual(t, p.FEN(), fen)
	})

	t.Run("destination under attack is still illegal", func(t *testing.T) {
		p, _, err := NewChess960Position("standard", "1k6/8/8/8/8/8/2r5/RK6 w A - 0 1")
		testutil.AssertNoError(t, err)
		if p.Legal(types.NewCastling(sq("b1"), sq("a1"))) {
			t.Error("castling onto an attacked c1 must be illegal")
		}
	})
}

func TestCastlingRightsRevocation(t *testing.T) {
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"

	t.Run("rook move drops one side", func(t *testing.T) {
		p, states := mustPosition(t, "standard", fen)
		applyMoves(t, p, states, types.NewMove(sq("a1"), sq("a2")))
		if p.CanCastle(types.WhiteOOO) != 0 {
			t.Error("queenside right survived the rook move")
		}
		if p.CanCastle(types.WhiteOO) == 0 {
			t.Error("kingside right was wrongly dropped")
		}
		testutil.AssertNoError(t, p.Validate())
	})

	t.Run("king move drops both", func(t *testing.T) {
		p, states := mustPosition(t, "standard", fen)
		applyMoves(t, p, states, types.NewMove(sq("e1"), sq("e2")))
		if p.CanCastle(types.WhiteOO|types.WhiteOOO) != 0 {
			t.Error("king move kept castling rights")
		}
		testutil.AssertNoError(t, p.Validate())
	})

	t.Run("rook capture drops the victim's right", func(t *testing.T) {
		p, states := mustPosition(t, "standard", fen)
		m := types.NewMove(sq("a1"), sq("a8"))
		applyMoves(t, p, states, m)
		if p.CanCastle(types.BlackOOO) != 0 {
			t.Error("black queenside right survived the rook capture")
		}
		testutil.AssertNoError(t, p.Validate())

		undoMoves(p, states, m)
		if p.CanCastle(types.AnyCastling) != types.AnyCastling {
			t.Error("undo did not restore the rights")
		}
	})
}

func TestDoMovePromotion(t *testing.T) {
	fen := "8/P6k/8/8/8/8/7K/8 w - - 0 1"
	p, states := mustPosition(t, "standard", fen)

	m := types.NewPromotion(sq("a7"), sq("a8"), types.Queen)
	applyMoves(t, p, states, m)

	if p.PieceOn(sq("a8")) != types.MakePiece(types.White, types.Queen) {
		t.Error("no queen on a8")
	}
	if p.Count(types.White, types.Pawn) != 0 {
		t.Error("pawn count did not drop")
	}
	if !p.IsPromoted(sq("a8")) {
		t.Error("promotion square not marked")
	}
	if p.NonPawnMaterial(types.White) != types.MidgameValue[types.Queen] {
		t.Errorf("NonPawnMaterial = %d", p.NonPawnMaterial(types.White))
	}
	testutil.AssertNoError(t, p.Validate())

	undoMoves(p, states, m)
	testutil.AssertEqual(t, p.FEN(), fen)
	if p.IsPromoted(sq("a8")) {
		t.Error("promotion marker survived the undo")
	}
}

func TestNullMove(t *testing.T) {
	p, states := mustPosition(t, "standard", "")
	fen := p.FEN()
	key := p.Key()

	p.DoNullMove(states.Push())
	if p.SideToMove() != types.Black {
		t.Error("null move did not flip the side")
	}
	if p.Key() == key {
		t.Error("null move did not change the key")
	}
	if p.State().PliesFromNull != 0 {
		t.Error("PliesFromNull not reset")
	}

	p.UndoNullMove()
	states.Pop()
	testutil.AssertEqual(t, p.FEN(), fen)
	if p.Key() != key {
		t.Error("undo null did not restore the key")
	}
	testutil.AssertNoError(t, p.Validate())
}

func TestKeyAfter(t *testing.T) {
	t.Run("quiet move", func(t *testing.T) {
		p, states := mustPosition(t, "standard", "")
		m := types.NewMove(sq("g1"), sq("f3"))
		want := p.KeyAfter(m)
		p.DoMove(m, states.Push())
		if p.Key() != want {
			t.Errorf("KeyAfter = %x, actual %x", want, p.Key())
		}
	})

	t.Run("capture", func(t *testing.T) {
		p, states := mustPosition(t, "standard", "")
		applyMoves(t, p, states,
			types.NewMove(sq("e2"), sq("e4")),
			types.NewMove(sq("d7"), sq("d5")))
		m := types.NewMove(sq("e4"), sq("d5"))
		want := p.KeyAfter(m)
		p.DoMove(m, states.Push())
		if p.Key() != want {
			t.Errorf("KeyAfter = %x, actual %x", want, p.Key())
		}
	})

	t.Run("drop", func(t *testing.T) {
		p, states := mustPosition(t, "crazyhouse",
			"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR[Pp] w KQkq - 0 1")
		m := types.NewDrop(types.Pawn, sq("e4"))
		want := p.KeyAfter(m)
		p.DoMove(m, states.Push())
		if p.Key() != want {
			t.Errorf("KeyAfter = %x, actual %x", want, p.Key())
		}
	})
}

func TestGivesCheck(t *testing.T) {
	t.Run("direct rook check", func(t *testing.T) {
		p, _ := mustPosition(t, "standard", "4k3/8/8/8/8/8/4R3/4K3 w - - 0 1")
		if !p.GivesCheck(types.NewMove(sq("e2"), sq("e5"))) {
			t.Error("Re5 gives check on the e-file")
		}
		if p.GivesCheck(types.NewMove(sq("e2"), sq("d2"))) {
			t.Error("Rd2 does not give check")
		}
	})

	t.Run("discovered check", func(t *testing.T) {
		p, _ := mustPosition(t, "standard", "4k3/8/8/8/3r4/4P3/8/4RK2 w - - 0 1")
		if !p.GivesCheck(types.NewMove(sq("e3"), sq("d4"))) {
			t.Error("the capture clears the e-file and discovers the rook check")
		}
		if p.GivesCheck(types.NewMove(sq("e3"), sq("e4"))) {
			t.Error("the pawn push keeps the e-file blocked")
		}
	})

	t.Run("promotion check", func(t *testing.T) {
		p, _ := mustPosition(t, "standard", "4k3/2P5/8/8/8/8/8/4K3 w - - 0 1")
		if !p.GivesCheck(types.NewPromotion(sq("c7"), sq("c8"), types.Queen)) {
			t.Error("promoting to a queen checks along the rank")
		}
		if p.GivesCheck(types.NewPromotion(sq("c7"), sq("c8"), types.Knight)) {
			t.Error("a knight on c8 does not check e8")
		}
	})

	t.Run("castling check", func(t *testing.T) {
		p, _ := mustPosition(t, "standard", "4kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1")
		// The rook lands on f1, but the king is off the f-file.
		if p.GivesCheck(types.NewCastling(sq("e1"), sq("h1"))) {
			t.Error("the king on e8 is not on the castled rook's file")
		}
		p2, _ := mustPosition(t, "standard", "5k2/8/8/8/8/8/8/R3K2R w KQ - 0 1")
		if !p2.GivesCheck(types.NewCastling(sq("e1"), sq("h1"))) {
			t.Error("castling delivers a rook check on the f-file")
		}
	})

	t.Run("drop check", func(t *testing.T) {
		p, _ := mustPosition(t, "crazyhouse",
			"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR[Nn] w KQkq - 0 1")
		if !p.GivesCheck(types.NewDrop(types.Knight, sq("d6"))) {
			t.Error("N@d6 checks the king on e8")
		}
		if p.GivesCheck(types.NewDrop(types.Knight, sq("e4"))) {
			t.Error("N@e4 does not check")
		}
	})

	t.Run("check state after the move", func(t *testing.T) {
		p, states := mustPosition(t, "standard", "4k3/8/8/8/8/8/4R3/4K3 w - - 0 1")
		applyMoves(t, p, states, types.NewMove(sq("e2"), sq("e5")))
		if p.Checkers() == 0 {
			t.Error("checkers mask is empty after a checking move")
		}
		testutil.AssertNoError(t, p.Validate())
	})
}

func TestLegal(t *testing.T) {
	t.Run("pinned piece", func(t *testing.T) {
		p, _ := mustPosition(t, "standard", "4k3/8/8/8/8/4r3/4N3/4K3 w - - 0 1")
		if p.Legal(types.NewMove(sq("e2"), sq("c3"))) {
			t.Error("the knight is pinned to the king")
		}
		if !p.Legal(types.NewMove(sq("e1"), sq("d1"))) {
			t.Error("the king may step aside")
		}
	})

	t.Run("pinned slider stays on the line", func(t *testing.T) {
		p, _ := mustPosition(t, "standard", "4k3/8/8/8/8/4r3/4R3/4K3 w - - 0 1")
		if !p.Legal(types.NewMove(sq("e2"), sq("e3"))) {
			t.Error("capturing along the pin line is legal")
		}
		if p.Legal(types.NewMove(sq("e2"), sq("d2"))) {
			t.Error("leaving the pin line is illegal")
		}
	})

	t.Run("king into attack", func(t *testing.T) {
		p, _ := mustPosition(t, "standard", "4k3/8/8/8/8/8/3r4/4K3 w - - 0 1")
		if p.Legal(types.NewMove(sq("e1"), sq("d1"))) {
			t.Error("d1 is covered by the rook")
		}
		if !p.Legal(types.NewMove(sq("e1"), sq("d2"))) {
			t.Error("capturing the rook is legal")
		}
	})

	t.Run("en passant uncovers the king", func(t *testing.T) {
		p, _ := mustPosition(t, "standard", "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
		if p.EPSquare() != sq("d3") {
			t.Fatalf("EPSquare = %v, want d3", p.EPSquare())
		}
		if p.Legal(types.NewEnPassant(sq("e4"), sq("d3"))) {
			t.Error("the capture exposes the king on the fourth rank")
		}
	})

	t.Run("castling through attack", func(t *testing.T) {
		p, _ := mustPosition(t, "standard", "4k3/8/8/8/8/5r2/8/R3K2R w KQ - 0 1")
		if p.Legal(types.NewCastling(sq("e1"), sq("h1"))) {
			t.Error("the king would cross f1, which is attacked")
		}
		if !p.Legal(types.NewCastling(sq("e1"), sq("a1"))) {
			t.Error("queenside castling avoids the attacked file")
		}
	})

	t.Run("checks forbidden", func(t *testing.T) {
		p, _ := mustPosition(t, "racingkings", "8/8/8/8/8/2k5/8/KR6 w - - 0 1")
		if p.Legal(types.NewMove(sq("b1"), sq("c1"))) {
			t.Error("Rc1+ is illegal when giving check is forbidden")
		}
		if !p.Legal(types.NewMove(sq("b1"), sq("d1"))) {
			t.Error("a quiet rook move is legal")
		}
	})
}

func TestMovedPieceAndClassifiers(t *testing.T) {
	p, _ := mustPosition(t, "crazyhouse",
		"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR[] w KQkq - 0 2")

	quiet := types.NewMove(sq("g1"), sq("f3"))
	capture := types.NewMove(sq("e4"), sq("d5"))
	drop := types.NewDrop(types.Knight, sq("f5"))

	if p.MovedPiece(quiet) != types.MakePiece(types.White, types.Knight) {
		t.Error("MovedPiece of Nf3")
	}
	if p.MovedPiece(drop) != types.MakePiece(types.White, types.Knight) {
		t.Error("MovedPiece of N@f5")
	}
	if p.Capture(quiet) || !p.Capture(capture) || p.Capture(drop) {
		t.Error("Capture classification")
	}
	if p.CaptureOrPromotion(quiet) || !p.CaptureOrPromotion(capture) {
		t.Error("CaptureOrPromotion classification")
	}
	if p.AdvancedPawnPush(types.NewMove(sq("d2"), sq("d3"))) {
		t.Error("d2d3 is not an advanced push")
	}

	ap, _ := mustPosition(t, "standard", "4k3/8/4P3/8/8/8/8/4K3 w - - 0 1")
	if !ap.AdvancedPawnPush(types.NewMove(sq("e6"), sq("e7"))) {
		t.Error("a push from the sixth rank is an advanced push")
	}

	// Black's ranks count from the eighth side of the board.
	bp, _ := mustPosition(t, "standard", "4k3/8/8/4p3/3p4/8/8/4K3 b - - 0 1")
	if !bp.AdvancedPawnPush(types.NewMove(sq("d4"), sq("d3"))) {
		t.Error("d4d3 is an advanced push for black")
	}
	if bp.AdvancedPawnPush(types.NewMove(sq("e5"), sq("e4"))) {
		t.Error("e5e4 is not yet an advanced push for black")
	}
}

func TestPawnPassedAndOppositeBishops(t *testing.T) {
	p, _ := mustPosition(t, "standard", "4k3/8/2b5/1p6/8/4P3/1P6/2B1K3 w - - 0 1")
	if !p.PawnPassed(types.White, sq("e3")) {
		t.Error("e3 has no enemy pawn in its path")
	}
	if p.PawnPassed(types.White, sq("b2")) {
		t.Error("b2 is blocked by the pawn on b5")
	}
	if !p.OppositeBishops() {
		t.Error("c1 and c6 stand on opposite shades")
	}
}
