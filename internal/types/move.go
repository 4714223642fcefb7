package types

// MoveKind distinguishes the special move encodings.
type MoveKind int

const (
	Normal MoveKind = iota
	PromotionMove
	EnPassantMove
	CastlingMove
	DropMove
)

// Move packs a move into a single word:
//
//	bits 0..5   destination square
//	bits 6..11  origin square (dropped piece type for drops)
//	bits 12..13 promotion piece type, offset from Knight
//	bits 14..16 move kind
//
// Castling is encoded as "king moves to the rook's square", which covers
// both standard and Chess960 rook placements with one representation.
type Move uint32

const (
	// MoveNone is the absence of a move.
	MoveNone Move = 0
	// MoveNull is the null move: origin and destination coincide.
	MoveNull Move = Move(SquareB1)<<6 | Move(SquareB1)
)

const (
	moveFromShift = 6
	movePromShift = 12
	moveKindShift = 14
)

// NewMove builds a normal move.
func NewMove(from, to Square) Move {
	return Move(from)<<moveFromShift | Move(to)
}

// NewPromotion builds a pawn promotion to the given piece type.
func NewPromotion(from, to Square, pt PieceType) Move {
	return Move(PromotionMove)<<moveKindShift |
		Move(pt-Knight)<<movePromShift |
		Move(from)<<moveFromShift | Move(to)
}

// NewEnPassant builds an en-passant capture.
func NewEnPassant(from, to Square) Move {
	return Move(EnPassantMove)<<moveKindShift | Move(from)<<moveFromShift | Move(to)
}

// NewCastling builds a castling move from the king's square to the rook's.
func NewCastling(kingFrom, rookSquare Square) Move {
	return Move(CastlingMove)<<moveKindShift | Move(kingFrom)<<moveFromShift | Move(rookSquare)
}

// NewDrop builds a drop of an in-hand piece of the given type onto a square.
func NewDrop(pt PieceType, to Square) Move {
	return Move(DropMove)<<moveKindShift | Move(pt)<<moveFromShift | Move(to)
}

// From returns the origin square. Meaningless for drops.
func (m Move) From() Square {
	return Square(m>>moveFromShift) & 0x3F
}

// To returns the destination square.
func (m Move) To() Square {
	return Square(m) & 0x3F
}

// Kind returns the move kind.
func (m Move) Kind() MoveKind {
	return MoveKind(m >> moveKindShift)
}

// PromotionType returns the promotion piece type of a promotion move.
func (m Move) PromotionType() PieceType {
	return PieceType(m>>movePromShift)&3 + Knight
}

// DropType returns the dropped piece type of a drop move.
func (m Move) DropType() PieceType {
	return PieceType(m>>moveFromShift) & 0x3F
}

// IsOK reports whether the move is a real move, i.e. neither MoveNone nor
// MoveNull. Drops are always real; for other kinds origin and destination
// must differ.
func (m Move) IsOK() bool {
	if m.Kind() == DropMove {
		return true
	}
	return m.From() != m.To()
}

// String returns the move in long algebraic form: "e2e4", "e7e8q" for
// promotions, "P@e4" for drops, "0000" for the null move.
func (m Move) String() string {
	if m == MoveNone {
		return "(none)"
	}
	if m == MoveNull {
		return "0000"
	}
	switch m.Kind() {
	case DropMove:
		letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
		return string(letters[m.DropType()]) + "@" + m.To().String()
	case PromotionMove:
		promo := []byte{'n', 'b', 'r', 'q'}
		return m.From().String() + m.To().String() + string(promo[m.PromotionType()-Knight])
	default:
		return m.From().String() + m.To().String()
	}
}
