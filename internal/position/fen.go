package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/varboard-go/internal/bitboard"
	"github.com/lgbarn/varboard-go/internal/errors"
	"github.com/lgbarn/varboard-go/internal/types"
	"github.com/lgbarn/varboard-go/internal/variant"
)

// NewPosition creates a position for the named variant, set up from fen, or
// from the variant's starting position when fen is empty. It allocates the
// backing state list and returns it alongside the position; callers push
// one StateInfo per move they apply.
func NewPosition(variantName, fen string) (*Position, *StateList, error) {
	return newPosition(variantName, fen, false)
}

// NewChess960Position is NewPosition with positional rook identification, so
// castling tokens may be file letters and the king and rooks may start on
// any back-rank squares.
func NewChess960Position(variantName, fen string) (*Position, *StateList, error) {
	return newPosition(variantName, fen, true)
}

func newPosition(variantName, fen string, chess960 bool) (*Position, *StateList, error) {
	v, err := variant.Lookup(variantName)
	if err != nil {
		return nil, nil, err
	}
	if fen == "" {
		fen = v.StartFEN
	}
	p := new(Position)
	states := NewStateList()
	if err := p.Set(v, fen, chess960, states.Push(), nil); err != nil {
		return nil, nil, err
	}
	return p, states, nil
}

// SetVariantCode sets up the starting position of the named variant as seen
// by colour c: Black gets the colour-flipped rendition, so the code plus a
// colour fully determines the board.
func (p *Position) SetVariantCode(code string, c types.Color, st *StateInfo) error {
	v, err := variant.Lookup(code)
	if err != nil {
		return err
	}
	if err := p.Set(v, v.StartFEN, false, st, nil); err != nil {
		return err
	}
	if c == types.Black {
		p.Flip()
	}
	return nil
}

func fenError(fen, field string) error {
	return &errors.FENError{Err: errors.ErrInvalidFEN, FEN: fen, Field: field}
}

// Set initializes the position from its textual encoding under the rules of
// v. st becomes the root of the state chain and is fully recomputed; thread
// is stored verbatim as the owning-thread handle. On error the position is
// left in an unspecified state and must be Set again before use.
//
// The encoding is the standard six-field form, extended with an optional
// bracketed in-hand list after the board field for drop variants, a '~'
// marker after pieces that arrived by promotion, and an optional trailing
// "+W+B" field giving the check counts for check-count variants. Castling
// tokens may be file letters when chess960 is true.
func (p *Position) Set(v *variant.Variant, fen string, chess960 bool, st *StateInfo, thread interface{}) error {
	*p = Position{}
	*st = StateInfo{}
	p.variant = v
	p.chess960 = chess960
	p.thread = thread
	p.st = st
	st.EPSquare = types.SquareNone
	st.CapturedPiece = types.NoPiece

	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return fenError(fen, "")
	}

	boardTok := fields[0]
	handTok := ""
	if open := strings.IndexByte(boardTok, '['); open >= 0 {
		end := strings.IndexByte(boardTok, ']')
		if end < open {
			return fenError(fen, "hand")
		}
		handTok = boardTok[open+1 : end]
		boardTok = boardTok[:open]
	}

	if err := p.parseBoard(fen, boardTok); err != nil {
		return err
	}
	for i := 0; i < len(handTok); i++ {
		pc := v.PieceFromLetter(handTok[i])
		if pc == types.NoPiece {
			if handTok[i] == '-' {
				continue
			}
			return fenError(fen, "hand")
		}
		p.addToHand(pc.ColorOf(), pc.TypeOf())
	}

	switch fields[1] {
	case "w":
		p.sideToMove = types.White
	case "b":
		p.sideToMove = types.Black
	default:
		return fenError(fen, "side")
	}

	if len(fields) > 2 && fields[2] != "-" && v.Castling {
		if err := p.parseCastling(fen, fields[2]); err != nil {
			return err
		}
	}

	if len(fields) > 3 && fields[3] != "-" {
		ep := types.SquareFromString(fields[3])
		if ep == types.SquareNone {
			return fenError(fen, "en-passant")
		}
		// Accept the square only if an en-passant capture is actually
		// possible: a capturing pawn, a just-pushed pawn behind the square,
		// and an empty push path.
		us := p.sideToMove
		them := us.Opposite()
		if bitboard.PawnAttacks(them, ep)&p.PiecesCT(us, types.Pawn) != 0 &&
			p.PiecesCT(them, types.Pawn).IsSet(ep+pawnPush(them)) &&
			p.Pieces()&(bitboard.SquareBB(ep)|bitboard.SquareBB(ep+pawnPush(us))) == 0 {
			st.EPSquare = ep
		}
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return fenError(fen, "halfmove clock")
		}
		st.Rule50 = n
	}

	fullmove := 1
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return fenError(fen, "fullmove number")
		}
		fullmove = n
	}
	p.gamePly = 2 * (fullmove - 1)
	if p.sideToMove == types.Black {
		p.gamePly++
	}

	if len(fields) > 6 && v.MaxCheckCount > 0 {
		var w, b int
		if _, err := fmt.Sscanf(fields[6], "+%d+%d", &w, &b); err != nil {
			return fenError(fen, "check counts")
		}
		st.ChecksGiven[types.White] = w
		st.ChecksGiven[types.Black] = b
	}

	p.setState(st)
	return nil
}

func (p *Position) parseBoard(fen, boardTok string) error {
	v := p.variant
	f, r := types.FileA, v.MaxRank
	for i := 0; i < len(boardTok); i++ {
		ch := boardTok[i]
		switch {
		case ch == '/':
			if r == types.Rank1 {
				return fenError(fen, "board")
			}
			r--
			f = types.FileA

		case ch >= '1' && ch <= '8':
			f += types.File(ch - '0')

		case ch == '~':
			if f == types.FileA {
				return fenError(fen, "board")
			}
			p.promotedPieces |= bitboard.SquareBB(types.MakeSquare(f-1, r))

		default:
			pc := v.PieceFromLetter(ch)
			if pc == types.NoPiece || f > v.MaxFile {
				return fenError(fen, "board")
			}
			p.putPiece(pc, types.MakeSquare(f, r))
			f++
		}
	}
	return nil
}

func (p *Position) parseCastling(fen, tok string) error {
	for i := 0; i < len(tok); i++ {
		ch := tok[i]
		c := types.Black
		if ch >= 'A' && ch <= 'Z' {
			c = types.White
		}
		ksq := p.KingSquare(c)
		if ksq == types.SquareNone {
			return fenError(fen, "castling")
		}
		rook := types.MakePiece(c, types.Rook)
		var rsq types.Square

		switch upper := ch &^ 0x20; {
		case upper == 'K':
			for rsq = types.RelativeSquare(c, types.SquareH1); rsq > ksq && p.board[rsq] != rook; rsq-- {
			}
		case upper == 'Q':
			for rsq = types.RelativeSquare(c, types.SquareA1); rsq < ksq && p.board[rsq] != rook; rsq++ {
			}
		case upper >= 'A' && upper <= 'H':
			rsq = types.MakeSquare(types.File(upper-'A'), types.RelativeRank(c, types.Rank1))
		default:
			return fenError(fen, "castling")
		}
		if p.board[rsq] != rook {
			return fenError(fen, "castling")
		}
		p.setCastlingRight(c, ksq, rsq)
	}
	return nil
}

// setCastlingRight registers one castling option: the rights bit, the masks
// that revoke it when either home square is touched, and the path squares
// that must be empty.
func (p *Position) setCastlingRight(c types.Color, kfrom, rfrom types.Square) {
	side := types.WhiteOOO
	kto := types.RelativeSquare(c, types.SquareC1)
	rto := types.RelativeSquare(c, types.SquareD1)
	if kfrom < rfrom {
		side = types.WhiteOO
		kto = types.RelativeSquare(c, types.SquareG1)
		rto = types.RelativeSquare(c, types.SquareF1)
	}
	cr := types.MakeCastlingRight(c, side)

	p.st.CastlingRights |= cr
	p.castlingRightsMask[kfrom] |= cr
	p.castlingRightsMask[rfrom] |= cr
	p.castlingRookSquare[cr] = rfrom
	p.castlingPath[cr] = (bitboard.Between(rfrom, rto) | bitboard.Between(kfrom, kto) |
		bitboard.SquareBB(rto) | bitboard.SquareBB(kto)) &^
		(bitboard.SquareBB(kfrom) | bitboard.SquareBB(rfrom))
}

// FEN returns the position's textual encoding, the exact inverse of Set.
func (p *Position) FEN() string {
	v := p.variant
	var sb strings.Builder

	for r := v.MaxRank; ; r-- {
		empty := 0
		for f := types.FileA; f <= v.MaxFile; f++ {
			s := types.MakeSquare(f, r)
			pc := p.board[s]
			if pc == types.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(v.PieceLetter(pc))
			if p.promotedPieces.IsSet(s) {
				sb.WriteByte('~')
			}
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r == types.Rank1 {
			break
		}
		sb.WriteByte('/')
	}

	if v.PieceDrops {
		sb.WriteByte('[')
		for c := types.White; c < types.ColorNB; c++ {
			for pt := types.Queen; pt >= types.Pawn; pt-- {
				for n := 0; n < p.pieceCountInHand[c][pt]; n++ {
					sb.WriteByte(v.PieceLetter(types.MakePiece(c, pt)))
				}
			}
		}
		sb.WriteByte(']')
	}

	if p.sideToMove == types.White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	sb.WriteString(p.castlingFEN())

	fmt.Fprintf(&sb, " %s %d %d", p.st.EPSquare, p.st.Rule50, 1+(p.gamePly-int(p.sideToMove))/2)

	if v.MaxCheckCount > 0 {
		fmt.Fprintf(&sb, " +%d+%d", p.st.ChecksGiven[types.White], p.st.ChecksGiven[types.Black])
	}
	return sb.String()
}

func (p *Position) castlingFEN() string {
	if p.st.CastlingRights == types.NoCastling {
		return "-"
	}
	var sb strings.Builder
	order := []struct {
		cr  types.CastlingRight
		std byte
	}{
		{types.WhiteOO, 'K'},
		{types.WhiteOOO, 'Q'},
		{types.BlackOO, 'k'},
		{types.BlackOOO, 'q'},
	}
	for _, o := range order {
		if p.st.CastlingRights&o.cr == 0 {
			continue
		}
		if !p.chess960 {
			sb.WriteByte(o.std)
			continue
		}
		ch := byte('A' + p.castlingRookSquare[o.cr].File())
		if o.cr&(types.BlackOO|types.BlackOOO) != 0 {
			ch += 'a' - 'A'
		}
		sb.WriteByte(ch)
	}
	return sb.String()
}

// Flip replaces the position with its colour-flipped mirror image: the
// board reversed vertically, piece colours, side to move, castling rights
// and check counts swapped. The flipped position has the same game-
// theoretic value with the colours exchanged.
func (p *Position) Flip() {
	fields := strings.Fields(p.FEN())

	board, hand := fields[0], ""
	if open := strings.IndexByte(board, '['); open >= 0 {
		board, hand = board[:open], board[open:]
	}
	ranks := strings.Split(board, "/")
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	fields[0] = swapCase(strings.Join(ranks, "/") + hand)

	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}

	if len(fields) > 2 {
		fields[2] = swapCase(fields[2])
	}
	if len(fields) > 3 && fields[3] != "-" {
		ep := types.SquareFromString(fields[3])
		fields[3] = ep.FlippedVertically().String()
	}
	if len(fields) > 6 {
		var w, b int
		fmt.Sscanf(fields[6], "+%d+%d", &w, &b)
		fields[6] = fmt.Sprintf("+%d+%d", b, w)
	}

	st := p.st
	if err := p.Set(p.variant, strings.Join(fields, " "), p.chess960, st, p.thread); err != nil {
		panic("flip produced an unparseable position: " + err.Error())
	}
}

func swapCase(s string) string {
	b := []byte(s)
	for i, ch := range b {
		switch {
		case ch >= 'a' && ch <= 'z':
			b[i] = ch - ('a' - 'A')
		case ch >= 'A' && ch <= 'Z':
			b[i] = ch + ('a' - 'A')
		}
	}
	return string(b)
}
